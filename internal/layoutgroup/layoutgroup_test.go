package layoutgroup

import (
	"testing"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
)

func sampleLayout(rect geometry.Zone) *layout.Layout {
	l := layout.New(rect, &layout.DirectionalEndTiling{Direction: layout.Vertical, StartFrom: 1, ZoneIdx: 0})
	l.NewZoneVec()
	return l
}

func TestConvertForMonitor_SameRectReturnsNil(t *testing.T) {
	rect := geometry.Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	g := New("default", sampleLayout(rect))

	if got := g.ConvertForMonitor(rect); got != nil {
		t.Fatalf("ConvertForMonitor(same rect) = %+v, want nil", got)
	}
}

func TestConvertForMonitor_ScalesAndTranslates(t *testing.T) {
	source := geometry.Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	target := geometry.Zone{Left: 1920, Top: 0, Right: 1920 + 2560, Bottom: 1440}

	g := New("default", sampleLayout(source))
	g.Layouts[0].Split(0, 0, layout.SplitDirection{Dir: layout.Vertical, Coordinate: 960})

	converted := g.ConvertForMonitor(target)
	if converted == nil {
		t.Fatalf("expected a converted group")
	}
	if converted.Layouts[0].MonitorRect != target {
		t.Fatalf("converted MonitorRect = %+v, want %+v", converted.Layouts[0].MonitorRect, target)
	}

	whole := converted.Layouts[0].Zones[0]
	var totalW int
	for _, z := range whole {
		if z.Top != target.Top || z.Bottom != target.Bottom {
			t.Fatalf("zone %+v not scaled to target vertical extent", z)
		}
		totalW += z.W()
	}
	if totalW != target.W() {
		t.Fatalf("converted zones span width %d, want %d", totalW, target.W())
	}
}

func TestSwapVariantsPreservesDefaultIdentity(t *testing.T) {
	rect := geometry.Zone{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	g := New("default", sampleLayout(rect))
	g.Layouts = append(g.Layouts, sampleLayout(rect))
	g.DefaultIdx = 1

	defaultLayout := g.Layouts[g.DefaultIdx]
	g.SwapVariants(0, 1)

	if g.Layouts[g.DefaultIdx] != defaultLayout {
		t.Fatalf("SwapVariants did not preserve default identity")
	}
}
