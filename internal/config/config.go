// Package config loads the daemon's YAML configuration: tiling parameters,
// hotkey bindings, and the per-monitor layout groups that seed internal/wm.
package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/termtile/internal/hotkeys"
)

// Config holds the application configuration.
type Config struct {
	Hotkeys hotkeys.Bindings `yaml:"hotkeys"`

	WindowPadding          int    `yaml:"window_padding"`
	EdgePadding            int    `yaml:"edge_padding"`
	DisableRounding        bool   `yaml:"disable_rounding"`
	DisableUnfocusedBorder bool   `yaml:"disable_unfocused_border"`
	FocusedBorderColour    string `yaml:"focused_border_colour"`
	DefaultLayoutIdx       int    `yaml:"default_layout_idx"`

	LogLevel string `yaml:"log_level"`

	LayoutGroups []LayoutGroupConfig `yaml:"layout_groups"`
}

// ValidationError reports a problem at a specific YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the configuration used when no file exists yet,
// grounded on himewm's default Workspace/General settings.
func DefaultConfig() *Config {
	return &Config{
		Hotkeys: hotkeys.Bindings{
			FocusPrevious:        "Mod4-j",
			FocusNext:            "Mod4-k",
			SwapPrevious:         "Mod4-Shift-j",
			SwapNext:             "Mod4-Shift-k",
			VariantPrevious:      "Mod4-h",
			VariantNext:          "Mod4-l",
			LayoutPrevious:       "Mod4-Shift-h",
			LayoutNext:           "Mod4-Shift-l",
			FocusPreviousMonitor: "Mod4-u",
			FocusNextMonitor:     "Mod4-i",
			SwapPreviousMonitor:  "Mod4-Shift-u",
			SwapNextMonitor:      "Mod4-Shift-i",
			GrabWindow:           "Mod4-g",
			ReleaseWindow:        "Mod4-r",
			RefreshWorkspace:     "Mod4-F5",
			ToggleWorkspace:      "Mod4-Shift-t",
		},
		WindowPadding:       4,
		EdgePadding:         8,
		FocusedBorderColour: "#ff7a00",
		DefaultLayoutIdx:    0,
		LogLevel:            "info",
		LayoutGroups:        []LayoutGroupConfig{DefaultLayoutGroupConfig()},
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.WindowPadding < 0 {
		return &ValidationError{Path: "window_padding", Err: fmt.Errorf("must be >= 0")}
	}
	if c.EdgePadding < 0 {
		return &ValidationError{Path: "edge_padding", Err: fmt.Errorf("must be >= 0")}
	}
	if strings.TrimSpace(c.FocusedBorderColour) != "" {
		if _, err := parseHexColour(c.FocusedBorderColour); err != nil {
			return &ValidationError{Path: "focused_border_colour", Err: err}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("must be one of: debug, info, warn, error")}
	}
	if len(c.LayoutGroups) == 0 {
		return &ValidationError{Path: "layout_groups", Err: fmt.Errorf("must not be empty")}
	}
	if c.DefaultLayoutIdx < 0 || c.DefaultLayoutIdx >= len(c.LayoutGroups) {
		return &ValidationError{Path: "default_layout_idx", Err: fmt.Errorf("out of range for %d layout_groups", len(c.LayoutGroups))}
	}
	for i, g := range c.LayoutGroups {
		if err := g.Validate(); err != nil {
			return &ValidationError{Path: fmt.Sprintf("layout_groups[%d]", i), Err: err}
		}
	}
	return nil
}

func parseHexColour(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	var v uint32
	if _, err := fmt.Sscanf(s, "%06x", &v); err != nil {
		return 0, fmt.Errorf("invalid hex colour %q", s)
	}
	return v, nil
}

// BorderColour returns FocusedBorderColour parsed to the packed 0xRRGGBB
// form internal/wm.Settings carries, defaulting to 0 (black) when unset.
func (c *Config) BorderColour() uint32 {
	v, err := parseHexColour(c.FocusedBorderColour)
	if err != nil {
		return 0
	}
	return v
}
