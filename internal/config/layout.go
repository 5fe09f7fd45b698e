package config

import (
	"fmt"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/layoutgroup"
)

// EndTilingConfig is the YAML tagged-union encoding of layout.EndTilingBehaviour.
// Exactly one of Directional/Repeating must be set, matching Kind.
type EndTilingConfig struct {
	Kind        string                    `yaml:"kind"`
	Directional *DirectionalEndTilingYAML `yaml:"directional,omitempty"`
	Repeating   *RepeatingEndTilingYAML   `yaml:"repeating,omitempty"`
}

type DirectionalEndTilingYAML struct {
	Direction string `yaml:"direction"` // "horizontal" | "vertical"
	StartFrom int    `yaml:"start_from"`
	ZoneIdx   int    `yaml:"zone_idx"`
}

type RepeatingSplitYAML struct {
	Direction      string  `yaml:"direction"`
	SplitRatio     float64 `yaml:"split_ratio"`
	SplitIdxOffset int     `yaml:"split_idx_offset"`
	Swap           bool    `yaml:"swap"`
}

type RepeatingEndTilingYAML struct {
	Splits  [][]RepeatingSplitYAML `yaml:"splits"`
	ZoneIdx int                    `yaml:"zone_idx"`
}

// LayoutConfig describes one variant of a layout group, authored against a
// reference resolution and re-projected onto each real monitor at bootstrap
// (see internal/layoutgroup.ConvertForMonitor).
type LayoutConfig struct {
	ReferenceWidth  int             `yaml:"reference_width"`
	ReferenceHeight int             `yaml:"reference_height"`
	EndTiling       EndTilingConfig `yaml:"end_tiling"`
}

// LayoutGroupConfig is the persisted form of a layoutgroup.LayoutGroup.
type LayoutGroupConfig struct {
	Name       string         `yaml:"name"`
	DefaultIdx int            `yaml:"default_idx"`
	Layouts    []LayoutConfig `yaml:"layouts"`
}

func parseDirection(s string) (layout.Direction, error) {
	switch s {
	case "horizontal", "":
		return layout.Horizontal, nil
	case "vertical":
		return layout.Vertical, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", s)
	}
}

func (e EndTilingConfig) build() (layout.EndTilingBehaviour, error) {
	switch e.Kind {
	case "directional":
		if e.Directional == nil {
			return nil, fmt.Errorf("kind: directional requires a directional block")
		}
		dir, err := parseDirection(e.Directional.Direction)
		if err != nil {
			return nil, err
		}
		return &layout.DirectionalEndTiling{
			Direction: dir,
			StartFrom: e.Directional.StartFrom,
			ZoneIdx:   e.Directional.ZoneIdx,
		}, nil
	case "repeating":
		if e.Repeating == nil {
			return nil, fmt.Errorf("kind: repeating requires a repeating block")
		}
		splits := make([][]layout.RepeatingSplit, len(e.Repeating.Splits))
		for i, cycle := range e.Repeating.Splits {
			converted := make([]layout.RepeatingSplit, len(cycle))
			for j, sp := range cycle {
				dir, err := parseDirection(sp.Direction)
				if err != nil {
					return nil, err
				}
				converted[j] = layout.RepeatingSplit{
					Direction:      dir,
					SplitRatio:     sp.SplitRatio,
					SplitIdxOffset: sp.SplitIdxOffset,
					Swap:           sp.Swap,
				}
			}
			splits[i] = converted
		}
		return &layout.RepeatingEndTiling{Splits: splits, ZoneIdx: e.Repeating.ZoneIdx}, nil
	default:
		return nil, fmt.Errorf("invalid end_tiling.kind %q (want directional or repeating)", e.Kind)
	}
}

func (l LayoutConfig) build() (*layout.Layout, error) {
	w, h := l.ReferenceWidth, l.ReferenceHeight
	if w <= 0 {
		w = 1920
	}
	if h <= 0 {
		h = 1080
	}
	endTiling, err := l.EndTiling.build()
	if err != nil {
		return nil, err
	}
	lay := layout.New(geometry.Zone{Left: 0, Top: 0, Right: w, Bottom: h}, endTiling)
	lay.NewZoneVec()
	return lay, nil
}

// Build converts a LayoutGroupConfig into the runtime LayoutGroup template
// bootstrap.Initialize re-projects onto each monitor.
func (g LayoutGroupConfig) Build() (*layoutgroup.LayoutGroup, error) {
	if len(g.Layouts) == 0 {
		return nil, fmt.Errorf("must have at least one layout variant")
	}
	first, err := g.Layouts[0].build()
	if err != nil {
		return nil, fmt.Errorf("layouts[0]: %w", err)
	}
	group := layoutgroup.New(g.Name, first)
	for i := 1; i < len(g.Layouts); i++ {
		variant, err := g.Layouts[i].build()
		if err != nil {
			return nil, fmt.Errorf("layouts[%d]: %w", i, err)
		}
		group.Layouts = append(group.Layouts, variant)
	}
	if g.DefaultIdx < 0 || g.DefaultIdx >= len(group.Layouts) {
		return nil, fmt.Errorf("default_idx out of range for %d layouts", len(group.Layouts))
	}
	group.DefaultIdx = g.DefaultIdx
	return group, nil
}

// Validate checks shape without building the layout engine state.
func (g LayoutGroupConfig) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(g.Layouts) == 0 {
		return fmt.Errorf("layouts must not be empty")
	}
	if g.DefaultIdx < 0 || g.DefaultIdx >= len(g.Layouts) {
		return fmt.Errorf("default_idx out of range for %d layouts", len(g.Layouts))
	}
	for i, l := range g.Layouts {
		if _, err := l.EndTiling.build(); err != nil {
			return fmt.Errorf("layouts[%d].end_tiling: %w", i, err)
		}
	}
	return nil
}

// DefaultLayoutGroupConfig is a single-variant group that grows one column
// at a time from a single full-screen window, the himewm "default" preset.
func DefaultLayoutGroupConfig() LayoutGroupConfig {
	return LayoutGroupConfig{
		Name:       "default",
		DefaultIdx: 0,
		Layouts: []LayoutConfig{
			{
				ReferenceWidth:  1920,
				ReferenceHeight: 1080,
				EndTiling: EndTilingConfig{
					Kind: "directional",
					Directional: &DirectionalEndTilingYAML{
						Direction: "vertical",
						StartFrom: 1,
						ZoneIdx:   0,
					},
				},
			},
		},
	}
}

// BuildLayoutGroups builds every configured group in order.
func BuildLayoutGroups(groups []LayoutGroupConfig) ([]*layoutgroup.LayoutGroup, error) {
	out := make([]*layoutgroup.LayoutGroup, len(groups))
	for i, g := range groups {
		built, err := g.Build()
		if err != nil {
			return nil, fmt.Errorf("layout_groups[%d]: %w", i, err)
		}
		out[i] = built
	}
	return out, nil
}
