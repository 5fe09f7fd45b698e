package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestReconciler_PostsRefreshOnEachTick(t *testing.T) {
	loop := NewLoop(nil, 4)
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go loop.Run(loopCtx)

	var count int32
	r := NewReconciler(ReconcilerConfig{Interval: 10 * time.Millisecond}, loop, func() {
		atomic.AddInt32(&count, 1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()
	r.Run(ctx)

	if atomic.LoadInt32(&count) < 2 {
		t.Fatalf("expected at least 2 refresh ticks, got %d", count)
	}
}
