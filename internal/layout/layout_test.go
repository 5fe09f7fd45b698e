package layout

import (
	"testing"

	"github.com/1broseidon/termtile/internal/geometry"
)

func fullHDLayout() *Layout {
	monitor := geometry.Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	l := New(monitor, &DirectionalEndTiling{Direction: Horizontal, StartFrom: 1, ZoneIdx: 0})
	l.NewZoneVec() // zones[0] = [monitorRect]
	return l
}

func TestExtend_DirectionalGrowsOneZoneAtATime(t *testing.T) {
	l := fullHDLayout()
	l.Update(0, 0)

	if got := len(l.Zones[0]); got != 1 {
		t.Fatalf("initial tiling size = %d, want 1", got)
	}

	l.EnsurePositions(2, 0, 0)

	if got := len(l.Zones); got != 2 {
		t.Fatalf("tiling count = %d, want 2", got)
	}
	second := l.Zones[1]
	if len(second) != 2 {
		t.Fatalf("second tiling size = %d, want 2", len(second))
	}

	var total int
	for _, z := range second {
		if z.Left != 0 || z.Right != 1920 {
			t.Fatalf("zone %+v does not span full width", z)
		}
		total += z.H()
	}
	if total != 1080 {
		t.Fatalf("zones do not cover monitor height: total=%d", total)
	}
}

func TestEnsurePositions_CoversMonitorAtEveryCount(t *testing.T) {
	l := fullHDLayout()
	for n := 1; n <= 6; n++ {
		l.EnsurePositions(n, 0, 0)
		tiling := l.Zones[n-1]
		if len(tiling) != n {
			t.Fatalf("tiling %d has %d zones, want %d", n, len(tiling), n)
		}
		var area int
		for _, z := range tiling {
			area += z.W() * z.H()
		}
		want := 1920 * 1080
		if area != want {
			t.Fatalf("tiling %d covers area %d, want %d", n, area, want)
		}
	}
}

func TestSplitThenMergeRestoresOriginal(t *testing.T) {
	l := fullHDLayout()
	original := l.Zones[0][0]

	newIdx := l.Split(0, 0, SplitDirection{Dir: Vertical, Coordinate: 960})
	if len(l.Zones[0]) != 2 {
		t.Fatalf("split did not grow tiling")
	}
	if !l.CanMergeZones(0, 0, newIdx) {
		t.Fatalf("split halves should be mergeable")
	}
	if err := l.MergeZones(0, 0, newIdx); err != nil {
		t.Fatalf("MergeZones: %v", err)
	}
	if len(l.Zones[0]) != 1 {
		t.Fatalf("merge did not shrink tiling")
	}
	if l.Zones[0][0] != original {
		t.Fatalf("merged zone = %+v, want %+v", l.Zones[0][0], original)
	}
}

func TestSwapZonesTwiceIsIdentity(t *testing.T) {
	l := fullHDLayout()
	l.Split(0, 0, SplitDirection{Dir: Vertical, Coordinate: 960})
	before := append([]geometry.Zone(nil), l.Zones[0]...)

	l.SwapZones(0, 0, 1)
	l.SwapZones(0, 0, 1)

	for i := range before {
		if l.Zones[0][i] != before[i] {
			t.Fatalf("double swap did not restore zone %d", i)
		}
	}
}
