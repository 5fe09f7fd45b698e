package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromPath_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.DefaultLayoutIdx != DefaultConfig().DefaultLayoutIdx {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoadFromPath_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window_padding: 4\nbogus_field: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}

func TestLoadFromPath_RoundTripsLayoutGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlText := `
window_padding: 2
edge_padding: 6
log_level: debug
default_layout_idx: 0
layout_groups:
  - name: wide
    default_idx: 0
    layouts:
      - reference_width: 2560
        reference_height: 1440
        end_tiling:
          kind: directional
          directional:
            direction: vertical
            start_from: 1
            zone_idx: 0
`
	if err := os.WriteFile(path, []byte(yamlText), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if len(cfg.LayoutGroups) != 1 || cfg.LayoutGroups[0].Name != "wide" {
		t.Fatalf("layout_groups did not round-trip: %+v", cfg.LayoutGroups)
	}
	groups, err := BuildLayoutGroups(cfg.LayoutGroups)
	if err != nil {
		t.Fatalf("BuildLayoutGroups: %v", err)
	}
	if len(groups) != 1 || groups[0].Layouts[0].MonitorRect.W() != 2560 {
		t.Fatalf("built layout group has unexpected reference rect: %+v", groups[0].Layouts[0].MonitorRect)
	}
}

func TestValidate_RejectsUnknownEndTilingKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayoutGroups[0].Layouts[0].EndTiling.Kind = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for an unknown end_tiling.kind")
	}
}

func TestValidate_RejectsBadBorderColour(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusedBorderColour = "not-a-colour"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for an invalid border colour")
	}
}
