package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/litescript/ls-astrolabe/internal/astro"
	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/ephem"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Accel != 2592000 {
		t.Errorf("Accel = %d, want 2592000", cfg.Accel)
	}
	if cfg.Quantize {
		t.Error("Quantize should default to false")
	}
	if cfg.Ephem() != ephem.ModeAuto {
		t.Errorf("Ephem() = %v, want auto", cfg.Ephem())
	}
	if cfg.Distances() != camera.DefaultDistances() {
		t.Errorf("Distances() = %+v, want %+v", cfg.Distances(), camera.DefaultDistances())
	}
	if math.Abs(cfg.Lens().FovY-camera.DefaultLens().FovY) > 1e-12 || cfg.Lens().ZNear != camera.DefaultLens().ZNear {
		t.Errorf("Lens() = %+v, want %+v", cfg.Lens(), camera.DefaultLens())
	}
	if cfg.LabelOffset() != camera.LabelOffset {
		t.Errorf("LabelOffset() = %+v, want %+v", cfg.LabelOffset(), camera.LabelOffset)
	}
	if cfg.FPS != 30 || cfg.LogLevel != "info" || cfg.MetricsAddr != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "astrolabe.toml", `
accel = 86400
quantize = true

[ephem]
mode = "mean"

[camera]
near = 3.5
far = 40

[label]
offset_x = 0.0
bodies = ["Earth", "Mars"]

[tui]
fps = 60
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Accel != 86400 || !cfg.Quantize {
		t.Errorf("accel/quantize = %d/%v", cfg.Accel, cfg.Quantize)
	}
	if cfg.Ephem() != ephem.ModeMean {
		t.Errorf("Ephem() = %v, want mean", cfg.Ephem())
	}
	if cfg.Distances() != (camera.Distances{Near: 3.5, Far: 40}) {
		t.Errorf("Distances() = %+v", cfg.Distances())
	}
	if cfg.LabelOffset() != (astro.Vec3f{X: 0, Y: 0.1}) {
		t.Errorf("LabelOffset() = %+v", cfg.LabelOffset())
	}
	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.FPS)
	}
	if !reflect.DeepEqual(cfg.LabelBodies, []string{"Earth", "Mars"}) {
		t.Errorf("LabelBodies = %v, want [Earth Mars]", cfg.LabelBodies)
	}
	// Untouched keys keep defaults.
	if cfg.FovDeg != 45 {
		t.Errorf("FovDeg = %v, want 45", cfg.FovDeg)
	}
}

func TestLoadNoExtensionIsTOML(t *testing.T) {
	path := writeFile(t, "astrolabe", "accel = 1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Accel != 1 {
		t.Errorf("Accel = %d, want 1", cfg.Accel)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "astrolabe.yaml", "camera:\n  far: 80\nlog:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CameraFar != 80 || cfg.LogLevel != "debug" {
		t.Errorf("far/level = %v/%q", cfg.CameraFar, cfg.LogLevel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "astrolabe.toml", "accel = 86400\n[ephem]\nmode = \"mean\"\n")
	t.Setenv("ASTROLABE_ACCEL", "3600")
	t.Setenv("ASTROLABE_EPHEM_MODE", "VSOP87")
	t.Setenv("ASTROLABE_METRICS_ADDR", ":9090")
	t.Setenv("ASTROLABE_LABEL_BODIES", "Jupiter Saturn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Accel != 3600 {
		t.Errorf("Accel = %d, want 3600 from env", cfg.Accel)
	}
	if cfg.Ephem() != ephem.ModeVSOP87 {
		t.Errorf("Ephem() = %v, want vsop87 from env", cfg.Ephem())
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
	if !reflect.DeepEqual(cfg.LabelBodies, []string{"Jupiter", "Saturn"}) {
		t.Errorf("LabelBodies = %v, want [Jupiter Saturn] from env", cfg.LabelBodies)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeFile(t, "bad.toml", "[camera]\nnear = 70\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load: err = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative accel", func(c *Config) { c.Accel = -1 }},
		{"unknown mode", func(c *Config) { c.EphemMode = "spice" }},
		{"zero near", func(c *Config) { c.CameraNear = 0 }},
		{"near beyond far", func(c *Config) { c.CameraNear, c.CameraFar = 10, 10 }},
		{"flat fov", func(c *Config) { c.FovDeg = 0 }},
		{"wide fov", func(c *Config) { c.FovDeg = 180 }},
		{"zero znear", func(c *Config) { c.ZNear = 0 }},
		{"fps low", func(c *Config) { c.FPS = 0 }},
		{"fps high", func(c *Config) { c.FPS = 121 }},
		{"nan far", func(c *Config) { c.CameraFar = math.NaN() }},
		{"unknown label body", func(c *Config) { c.LabelBodies = []string{"Earth", "Pluto"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	cfg.Accel = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero accel should be valid: %v", err)
	}
}
