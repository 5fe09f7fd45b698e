// Package layout implements the tiling data model for a single monitor:
// a sequence of manually authored zone arrangements ("tilings") indexed by
// window count, plus a declarative rule for deriving the tiling for any
// window count beyond the manually authored ones.
package layout

import (
	"fmt"

	"github.com/1broseidon/termtile/internal/geometry"
)

// Direction is the axis a split or end-tiling extension cuts along.
// Horizontal describes a horizontal cut line, producing a top/bottom pair;
// Vertical describes a vertical cut line, producing a left/right pair.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// SplitDirection names the axis and absolute coordinate of a manual cut.
type SplitDirection struct {
	Dir        Direction
	Coordinate int
}

// RepeatingSplit is one step of a Repeating end-tiling cycle.
type RepeatingSplit struct {
	Direction      Direction
	SplitRatio     float64
	SplitIdxOffset int
	Swap           bool
}

// EndTilingBehaviour is a closed sum type: a Layout's tiling for N windows,
// once N exceeds the manually authored tilings, is derived either
// Directionally or by Repeating a fixed split cycle. Implemented as an
// interface with an unexported marker so no other type can satisfy it.
type EndTilingBehaviour interface {
	isEndTilingBehaviour()
}

// DirectionalEndTiling grows a tiling by re-splitting the fixed manual base
// tiling's ZoneIdx zone along Direction into evenly sized strips, one more
// strip per window than the last extension.
type DirectionalEndTiling struct {
	Direction Direction
	StartFrom int
	FromZones []geometry.Zone // captured base tiling once StartFrom > 1; nil until materialized
	ZoneIdx   int
}

func (*DirectionalEndTiling) isEndTilingBehaviour() {}

// RepeatingEndTiling cycles through a fixed sequence of split steps,
// re-applying the same cycle against progressively larger tilings.
type RepeatingEndTiling struct {
	Splits  [][]RepeatingSplit
	ZoneIdx int
}

func (*RepeatingEndTiling) isEndTilingBehaviour() {}

// Layout is a family of tilings of one monitor's work area.
type Layout struct {
	MonitorRect      geometry.Zone
	Zones            [][]geometry.Zone
	ManualZonesUntil int
	EndTiling        EndTilingBehaviour
	Positions        [][]geometry.Position

	windowPadding int
	edgePadding   int
}

// New creates an empty Layout for monitorRect with the given end-tiling rule.
func New(monitorRect geometry.Zone, endTiling EndTilingBehaviour) *Layout {
	return &Layout{
		MonitorRect: monitorRect,
		EndTiling:   endTiling,
	}
}

func cloneZoneSlice(z []geometry.Zone) []geometry.Zone {
	out := make([]geometry.Zone, len(z))
	copy(out, z)
	return out
}

// Clone deep-copies the layout, including any captured Directional FromZones.
func (l *Layout) Clone() *Layout {
	zones := make([][]geometry.Zone, len(l.Zones))
	for i, t := range l.Zones {
		zones[i] = cloneZoneSlice(t)
	}
	positions := make([][]geometry.Position, len(l.Positions))
	for i, p := range l.Positions {
		positions[i] = append([]geometry.Position(nil), p...)
	}
	return &Layout{
		MonitorRect:      l.MonitorRect,
		Zones:            zones,
		ManualZonesUntil: l.ManualZonesUntil,
		EndTiling:        cloneEndTiling(l.EndTiling),
		Positions:        positions,
		windowPadding:    l.windowPadding,
		edgePadding:      l.edgePadding,
	}
}

func cloneEndTiling(e EndTilingBehaviour) EndTilingBehaviour {
	switch v := e.(type) {
	case *DirectionalEndTiling:
		clone := *v
		clone.FromZones = cloneZoneSlice(v.FromZones)
		return &clone
	case *RepeatingEndTiling:
		clone := *v
		clone.Splits = make([][]RepeatingSplit, len(v.Splits))
		for i, s := range v.Splits {
			clone.Splits[i] = append([]RepeatingSplit(nil), s...)
		}
		return &clone
	default:
		return nil
	}
}

// NewZoneVec appends a manually authored tiling containing a single zone
// equal to the full monitor rect and grows ManualZonesUntil to match.
func (l *Layout) NewZoneVec() {
	l.Zones = append(l.Zones, []geometry.Zone{l.MonitorRect})
	l.ManualZonesUntil++
}

// NewZoneVecFrom appends a manually authored tiling cloned from zones[i].
func (l *Layout) NewZoneVecFrom(i int) {
	l.Zones = append(l.Zones, cloneZoneSlice(l.Zones[i]))
	l.ManualZonesUntil++
}

func splitZone(tiling []geometry.Zone, idx int, dir SplitDirection) []geometry.Zone {
	zone := tiling[idx]

	var newZone, shrunk geometry.Zone
	switch dir.Dir {
	case Horizontal:
		offset := dir.Coordinate - zone.Top
		half := zone.H() / 2
		if offset < half {
			newZone = geometry.Zone{Left: zone.Left, Top: zone.Top, Right: zone.Right, Bottom: dir.Coordinate}
			shrunk = geometry.Zone{Left: zone.Left, Top: dir.Coordinate, Right: zone.Right, Bottom: zone.Bottom}
		} else {
			newZone = geometry.Zone{Left: zone.Left, Top: dir.Coordinate, Right: zone.Right, Bottom: zone.Bottom}
			shrunk = geometry.Zone{Left: zone.Left, Top: zone.Top, Right: zone.Right, Bottom: dir.Coordinate}
		}
	default: // Vertical
		offset := dir.Coordinate - zone.Left
		half := zone.W() / 2
		if offset < half {
			newZone = geometry.Zone{Left: zone.Left, Top: zone.Top, Right: dir.Coordinate, Bottom: zone.Bottom}
			shrunk = geometry.Zone{Left: dir.Coordinate, Top: zone.Top, Right: zone.Right, Bottom: zone.Bottom}
		} else {
			newZone = geometry.Zone{Left: dir.Coordinate, Top: zone.Top, Right: zone.Right, Bottom: zone.Bottom}
			shrunk = geometry.Zone{Left: zone.Left, Top: zone.Top, Right: dir.Coordinate, Bottom: zone.Bottom}
		}
	}

	tiling[idx] = shrunk
	return append(tiling, newZone)
}

// Split cuts zones[i][j] per dir and returns the new zone's index within
// zones[i]. The new zone is always appended at the end of the tiling.
func (l *Layout) Split(i, j int, dir SplitDirection) int {
	// j identifies which zone to cut; splitZone always cuts tiling[idx], so
	// swap the target into position j is unnecessary: zones are addressed by
	// their current slice index, which is j itself.
	l.Zones[i] = splitZoneAt(l.Zones[i], j, dir)
	return len(l.Zones[i]) - 1
}

func splitZoneAt(tiling []geometry.Zone, idx int, dir SplitDirection) []geometry.Zone {
	return splitZone(tiling, idx, dir)
}

// CanMergeZones reports whether zones[i][j] and zones[i][k] share a full edge.
func (l *Layout) CanMergeZones(i, j, k int) bool {
	return canMerge(l.Zones[i][j], l.Zones[i][k])
}

func canMerge(a, b geometry.Zone) bool {
	if a.Left == b.Left && a.Right == b.Right {
		return a.Bottom == b.Top || a.Top == b.Bottom
	}
	if a.Top == b.Top && a.Bottom == b.Bottom {
		return a.Right == b.Left || a.Left == b.Right
	}
	return false
}

func mergedZone(a, b geometry.Zone) geometry.Zone {
	return geometry.Zone{
		Left:   min(a.Left, b.Left),
		Top:    min(a.Top, b.Top),
		Right:  max(a.Right, b.Right),
		Bottom: max(a.Bottom, b.Bottom),
	}
}

// MergeZones merges zones[i][j] and zones[i][k] into zones[i][j] and
// removes k from the tiling.
func (l *Layout) MergeZones(i, j, k int) error {
	tiling := l.Zones[i]
	if !canMerge(tiling[j], tiling[k]) {
		return fmt.Errorf("layout: zones %d and %d in tiling %d are not mergeable", j, k, i)
	}
	tiling[j] = mergedZone(tiling[j], tiling[k])
	l.Zones[i] = removeIdx(tiling, k)
	return nil
}

func removeIdx(z []geometry.Zone, idx int) []geometry.Zone {
	out := make([]geometry.Zone, 0, len(z)-1)
	out = append(out, z[:idx]...)
	out = append(out, z[idx+1:]...)
	return out
}

// SwapZones exchanges zones[i][j] and zones[i][k].
func (l *Layout) SwapZones(i, j, k int) {
	l.Zones[i][j], l.Zones[i][k] = l.Zones[i][k], l.Zones[i][j]
}

// SwapZoneVectors exchanges the entire tilings at index i and j.
func (l *Layout) SwapZoneVectors(i, j int) {
	l.Zones[i], l.Zones[j] = l.Zones[j], l.Zones[i]
}

// DeleteZones removes the given zone indices from tiling i. idxs must be
// supplied in ascending order; they are processed descending internally so
// earlier removals don't invalidate later indices.
func (l *Layout) DeleteZones(i int, idxs ...int) {
	tiling := l.Zones[i]
	for k := len(idxs) - 1; k >= 0; k-- {
		tiling = removeIdx(tiling, idxs[k])
	}
	l.Zones[i] = tiling
}

// MergeAndSplitZones merges zones[i][j] and zones[i][k], then splits the
// merged zone, leaving the freshly split-off zone at position k.
func (l *Layout) MergeAndSplitZones(i, j, k int, dir SplitDirection) error {
	if err := l.MergeZones(i, j, k); err != nil {
		return err
	}
	merged := j
	if k < j {
		merged--
	}
	newIdx := l.Split(i, merged, dir)
	l.SwapZones(i, k, newIdx)
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func roundRatio(ratio float64, extent int) int {
	return int(ratio*float64(extent) + 0.5)
}

// Extend appends exactly one new tiling, one zone larger than the last,
// derived from EndTiling.
func (l *Layout) Extend() {
	switch e := l.EndTiling.(type) {
	case *DirectionalEndTiling:
		l.extendDirectional(e)
	case *RepeatingEndTiling:
		l.extendRepeating(e)
	}
}

// extendDirectional always re-splits the fixed manual base tiling
// (zones[ManualZonesUntil-1], or the frozen copy of it captured the first
// time StartFrom > 1) from scratch, dividing the target zone evenly across
// however many zones the new tiling needs. This matches
// himewm_layout::Layout::extend()'s Directional arm, which re-clones and
// re-splits the same base tiling on every call rather than incrementally
// splitting the previous one — the latter would make later strips
// increasingly uneven.
func (l *Layout) extendDirectional(d *DirectionalEndTiling) {
	if d.FromZones == nil && d.StartFrom > 1 {
		last := l.ManualZonesUntil - 1
		d.FromZones = cloneZoneSlice(l.Zones[last])
		l.ManualZonesUntil--
	}

	var base []geometry.Zone
	if d.StartFrom == 1 {
		base = cloneZoneSlice(l.Zones[l.ManualZonesUntil-1])
	} else {
		base = cloneZoneSlice(d.FromZones)
	}

	l.Zones = append(l.Zones, base)
	last := len(l.Zones) - 1
	target := len(l.Zones)

	zone := l.Zones[last][d.ZoneIdx]
	var extent int
	if d.Direction == Horizontal {
		extent = zone.H()
	} else {
		extent = zone.W()
	}
	divisor := target - len(l.Zones[last]) + 1
	if divisor < 1 {
		divisor = 1
	}
	offset := extent / divisor

	for len(l.Zones[last]) < target {
		z := l.Zones[last][d.ZoneIdx]
		var coordinate int
		if d.Direction == Horizontal {
			coordinate = z.Top + offset
		} else {
			coordinate = z.Left + offset
		}
		l.Zones[last] = splitZone(l.Zones[last], d.ZoneIdx, SplitDirection{Dir: d.Direction, Coordinate: coordinate})
	}

	n := len(l.Zones[last])
	for i := n - 2; i > d.ZoneIdx; i-- {
		l.Zones[last][d.ZoneIdx], l.Zones[last][i] = l.Zones[last][i], l.Zones[last][d.ZoneIdx]
	}
}

// extendRepeating cycles through r.Splits, re-applying cycle N's split list
// to a clone of the tiling from N cycles ago. Which existing zone each split
// in the list cuts depends on where it falls in the cycle: himewm_layout's
// Repeating arm branches three ways — the very first split of the very
// first cycle always cuts the manually-placed ZoneIdx, the first split of
// every later cycle counts back from the end of the tiling by the full
// cycle length, and every other split counts back by its position within
// the cycle. A single formula ignoring that position produces the wrong
// zone once more than one cycle has run.
func (l *Layout) extendRepeating(r *RepeatingEndTiling) {
	n := len(r.Splits)
	if n == 0 {
		return
	}
	oldLen := len(l.Zones)
	repeatingIdx := (oldLen - l.ManualZonesUntil) % n
	if repeatingIdx < 0 {
		repeatingIdx += n
	}
	cycleNumber := (oldLen - l.ManualZonesUntil) / n

	baseIdx := oldLen - 1 - repeatingIdx
	if baseIdx < 0 {
		baseIdx = oldLen - 1
	}
	newTiling := cloneZoneSlice(l.Zones[baseIdx])

	for i, sp := range r.Splits[repeatingIdx] {
		var splitIdx int
		switch {
		case i == 0 && cycleNumber == 0:
			splitIdx = r.ZoneIdx
		case i == 0:
			splitIdx = len(newTiling) - 1 - n + sp.SplitIdxOffset
		default:
			splitIdx = len(newTiling) - 1 - i + sp.SplitIdxOffset
		}
		z := newTiling[splitIdx]

		var coordinate, extent int
		if sp.Direction == Horizontal {
			extent = z.H()
			coordinate = z.Top + roundRatio(sp.SplitRatio, extent)
		} else {
			extent = z.W()
			coordinate = z.Left + roundRatio(sp.SplitRatio, extent)
		}

		newTiling = splitZone(newTiling, splitIdx, SplitDirection{Dir: sp.Direction, Coordinate: coordinate})
		if sp.Swap {
			last := len(newTiling) - 1
			newTiling[splitIdx], newTiling[last] = newTiling[last], newTiling[splitIdx]
		}
	}

	l.Zones = append(l.Zones, newTiling)
}

// Update recomputes Positions for every tiling under the given paddings.
func (l *Layout) Update(windowPadding, edgePadding int) {
	l.windowPadding = windowPadding
	l.edgePadding = edgePadding

	positions := make([][]geometry.Position, len(l.Zones))
	for i, tiling := range l.Zones {
		ps := make([]geometry.Position, len(tiling))
		for j, z := range tiling {
			ps[j] = geometry.ToPosition(z, l.MonitorRect, windowPadding, edgePadding)
		}
		positions[i] = ps
	}
	l.Positions = positions
}

// PositionsLen returns how many tilings currently have cached positions.
func (l *Layout) PositionsLen() int {
	return len(l.Positions)
}

// GetPositionsAt returns the Positions for a tiling of n+1 windows. Callers
// must have already Extend()ed and Update()d until PositionsLen() > n.
func (l *Layout) GetPositionsAt(n int) []geometry.Position {
	return l.Positions[n]
}

// EnsurePositions extends and updates the layout in a loop until it has a
// tiling (and cached positions) for count windows.
func (l *Layout) EnsurePositions(count, windowPadding, edgePadding int) {
	for l.PositionsLen() < count {
		l.Extend()
		l.Update(windowPadding, edgePadding)
	}
}
