package mural

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mural.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigAndApply(t *testing.T) {
	path := writeConfig(t, `
camera:
  minZoom: 0.5
  maxZoom: 4
  boundsMode: contain
  bounds:
    x: -500
    y: -500
    width: 1000
    height: 1000
grid:
  spacing: 25
  majorEvery: 4
  color: "#336699"
embed:
  buffer: 40
  maxMultiplier: 2
hit:
  bodyPx: 8
  handlePx: 14
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	c := New(testVW, testVH, WithConfig(cfg))

	cam := c.ActiveScene().Camera
	if cam.MinZoom != 0.5 || cam.MaxZoom != 4 {
		t.Errorf("zoom limits = [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}
	if cam.Mode != BoundsContain || cam.Bounds == nil {
		t.Errorf("bounds mode = %v, bounds = %v", cam.Mode, cam.Bounds)
	}
	if c.grid.Spacing != 25 || c.grid.MajorEvery != 4 {
		t.Errorf("grid = %+v", c.grid)
	}
	if c.grid.Color.R != 0x33 || c.grid.Color.G != 0x66 || c.grid.Color.B != 0x99 {
		t.Errorf("grid color = %v", c.grid.Color)
	}
	if c.limits.Buffer != 40 || c.limits.MaxMultiplier != 2 {
		t.Errorf("embed limits = %+v", c.limits)
	}
	if c.hitTolPx != 8 || c.handleTolPx != 14 {
		t.Errorf("tolerances = %v / %v", c.hitTolPx, c.handleTolPx)
	}
}

func TestConfigInvalidEntriesDegradeIndividually(t *testing.T) {
	path := writeConfig(t, `
camera:
  minZoom: 5
  maxZoom: 2
grid:
  spacing: 30
  color: "not-a-color"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	c := New(testVW, testVH, WithConfig(cfg))

	// The inverted zoom range is rejected, defaults stay.
	cam := c.ActiveScene().Camera
	if cam.MinZoom != DefaultMinZoom || cam.MaxZoom != DefaultMaxZoom {
		t.Errorf("zoom limits = [%v, %v], want defaults", cam.MinZoom, cam.MaxZoom)
	}
	// The valid spacing next to it still applies.
	if c.grid.Spacing != 30 {
		t.Errorf("spacing = %v, want 30", c.grid.Spacing)
	}
	// The bad color keeps the default.
	if c.grid.Color != DefaultGridStyle().Color {
		t.Errorf("color = %v, want default", c.grid.Color)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	path := writeConfig(t, "grid: [not, a, mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestWithZoomLimitsOption(t *testing.T) {
	c := New(testVW, testVH, WithZoomLimits(0.2, 5))
	cam := c.ActiveScene().Camera
	if cam.MinZoom != 0.2 || cam.MaxZoom != 5 {
		t.Errorf("limits = [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}

	// Invalid limits are ignored with a warning.
	c = New(testVW, testVH, WithZoomLimits(5, 0.2))
	cam = c.ActiveScene().Camera
	if cam.MinZoom != DefaultMinZoom || cam.MaxZoom != DefaultMaxZoom {
		t.Errorf("invalid limits applied: [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}
}

func TestWithBoundsOption(t *testing.T) {
	b := R(-100, -100, 200, 200)
	c := New(testVW, testVH, WithBounds(b, BoundsInside))
	cam := &c.ActiveScene().Camera
	cam.X, cam.Y = 999, 999
	cam.ApplyConstraints(testVW, testVH)
	if cam.X != 100 || cam.Y != 100 {
		t.Errorf("bounds not applied: (%v, %v)", cam.X, cam.Y)
	}
}
