package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_PostRunsOnLoopGoroutine(t *testing.T) {
	loop := NewLoop(nil, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var ran int32
	done := make(chan struct{})
	loop.Post(func() {
		atomic.StoreInt32(&ran, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event never ran")
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("expected event to run")
	}
}

func TestLoop_RecoversPanicInOneEvent(t *testing.T) {
	loop := NewLoop(nil, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	loop.Post(func() { panic("boom") })

	done := make(chan struct{})
	loop.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not survive a panicking event")
	}
}

func TestLoop_TryPostFailsWhenFull(t *testing.T) {
	loop := NewLoop(nil, 1)
	block := make(chan struct{})
	defer close(block)
	loop.Post(func() { <-block }) // fills the size-1 buffer; nothing drains it yet

	if loop.TryPost(func() {}) {
		t.Fatalf("expected TryPost to report the buffer full")
	}
}
