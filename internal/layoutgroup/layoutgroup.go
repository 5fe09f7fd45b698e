// Package layoutgroup bundles named variants of a Layout (designed against
// one monitor) and knows how to re-project them onto a differently sized or
// positioned monitor's work area.
package layoutgroup

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
)

// LayoutGroup is a named bundle of interchangeable Layout variants for one
// monitor, with a designated default.
type LayoutGroup struct {
	Name       string
	Layouts    []*layout.Layout
	DefaultIdx int
}

// New creates a LayoutGroup with a single variant as its default.
func New(name string, defaultLayout *layout.Layout) *LayoutGroup {
	return &LayoutGroup{
		Name:       name,
		Layouts:    []*layout.Layout{defaultLayout},
		DefaultIdx: 0,
	}
}

// Clone deep-copies the group and all of its variants.
func (g *LayoutGroup) Clone() *LayoutGroup {
	layouts := make([]*layout.Layout, len(g.Layouts))
	for i, l := range g.Layouts {
		layouts[i] = l.Clone()
	}
	return &LayoutGroup{Name: g.Name, Layouts: layouts, DefaultIdx: g.DefaultIdx}
}

// ConvertForMonitor re-projects the group onto targetMonitorRect. It returns
// nil if the default variant is already designed for that exact rect (no
// conversion needed; callers should clone the group themselves in that case).
func (g *LayoutGroup) ConvertForMonitor(targetMonitorRect geometry.Zone) *LayoutGroup {
	source := g.Layouts[g.DefaultIdx].MonitorRect
	if source == targetMonitorRect {
		return nil
	}

	out := g.Clone()
	sw, sh := source.W(), source.H()

	for _, l := range out.Layouts {
		for i, tiling := range l.Zones {
			for j, z := range tiling {
				l.Zones[i][j] = projectZone(z, source, targetMonitorRect, sw, sh)
			}
		}
		l.MonitorRect = targetMonitorRect
	}
	return out
}

func projectZone(z, source, target geometry.Zone, sw, sh int) geometry.Zone {
	translate := func(coord, from, scaleNum, scaleDen, to int) int {
		if scaleDen == 0 {
			return coord - from + to
		}
		return roundDiv((coord-from)*scaleNum, scaleDen) + to
	}
	tw, th := target.W(), target.H()
	return geometry.Zone{
		Left:   translate(z.Left, source.Left, tw, sw, target.Left),
		Top:    translate(z.Top, source.Top, th, sh, target.Top),
		Right:  translate(z.Right, source.Left, tw, sw, target.Left),
		Bottom: translate(z.Bottom, source.Top, th, sh, target.Top),
	}
}

func roundDiv(num, den int) int {
	if den == 0 {
		return num
	}
	if (num < 0) != (den < 0) {
		return -((-num + den/2) / den)
	}
	return (num + den/2) / den
}

// SwapVariants exchanges variants i and j, preserving DefaultIdx's identity
// (it keeps pointing at whichever variant was previously default).
func (g *LayoutGroup) SwapVariants(i, j int) {
	g.Layouts[i], g.Layouts[j] = g.Layouts[j], g.Layouts[i]
	switch g.DefaultIdx {
	case i:
		g.DefaultIdx = j
	case j:
		g.DefaultIdx = i
	}
}

// UpdateAll recomputes cached Positions for every variant under the given
// paddings.
func (g *LayoutGroup) UpdateAll(windowPadding, edgePadding int) {
	for _, l := range g.Layouts {
		l.Update(windowPadding, edgePadding)
	}
}
