// Package config loads settings from defaults, an optional config file and
// ASTROLABE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/ls-astrolabe/internal/astro"
	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/ephem"
)

// ErrInvalid is returned when a loaded setting is out of range.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix is prepended to every environment variable, with dots in the
// key replaced by underscores: ASTROLABE_CAMERA_NEAR.
const EnvPrefix = "ASTROLABE"

// FPS bounds for the terminal renderer.
const (
	MinFPS = 1
	MaxFPS = 120
)

// Config is the full application configuration.
type Config struct {
	Accel    int64
	Quantize bool

	EphemMode string
	VSOP87Dir string

	CameraNear float64
	CameraFar  float64
	FovDeg     float64
	ZNear      float64

	LabelOffsetX float64
	LabelOffsetY float64
	LabelBodies  []string // empty labels every orbiting body

	FPS         int
	LogLevel    string
	MetricsAddr string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("accel", 30*24*60*60)
	v.SetDefault("quantize", false)
	v.SetDefault("ephem.mode", "auto")
	v.SetDefault("ephem.vsop87_dir", "")
	v.SetDefault("camera.near", 5.0)
	v.SetDefault("camera.far", 60.0)
	v.SetDefault("camera.fov_deg", 45.0)
	v.SetDefault("camera.znear", 0.1)
	v.SetDefault("label.offset_x", 0.1)
	v.SetDefault("label.offset_y", 0.1)
	v.SetDefault("label.bodies", []string{})
	v.SetDefault("tui.fps", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "")
}

// Default returns the configuration with nothing overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

// Load reads the config file at path (skipped when empty) over the
// defaults, then applies environment overrides and validates the result.
// Files without an extension are parsed as TOML.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Accel:        v.GetInt64("accel"),
		Quantize:     v.GetBool("quantize"),
		EphemMode:    strings.ToLower(v.GetString("ephem.mode")),
		VSOP87Dir:    v.GetString("ephem.vsop87_dir"),
		CameraNear:   v.GetFloat64("camera.near"),
		CameraFar:    v.GetFloat64("camera.far"),
		FovDeg:       v.GetFloat64("camera.fov_deg"),
		ZNear:        v.GetFloat64("camera.znear"),
		LabelOffsetX: v.GetFloat64("label.offset_x"),
		LabelOffsetY: v.GetFloat64("label.offset_y"),
		LabelBodies:  v.GetStringSlice("label.bodies"),
		FPS:          v.GetInt("tui.fps"),
		LogLevel:     v.GetString("log.level"),
		MetricsAddr:  v.GetString("metrics.addr"),
	}
}

// Validate checks ranges and cross-field constraints.
func (c Config) Validate() error {
	switch {
	case c.Accel < 0:
		return fmt.Errorf("%w: accel %d is negative", ErrInvalid, c.Accel)
	case !ephem.ValidMode(c.EphemMode):
		return fmt.Errorf("%w: ephem.mode %q (want mean, vsop87 or auto)", ErrInvalid, c.EphemMode)
	case !(c.CameraNear > 0) || !(c.CameraFar > 0):
		return fmt.Errorf("%w: camera distances must be positive (near %v, far %v)", ErrInvalid, c.CameraNear, c.CameraFar)
	case c.CameraNear >= c.CameraFar:
		return fmt.Errorf("%w: camera.near %v must be less than camera.far %v", ErrInvalid, c.CameraNear, c.CameraFar)
	case !(c.FovDeg > 0 && c.FovDeg < 180):
		return fmt.Errorf("%w: camera.fov_deg %v outside (0, 180)", ErrInvalid, c.FovDeg)
	case !(c.ZNear > 0):
		return fmt.Errorf("%w: camera.znear %v must be positive", ErrInvalid, c.ZNear)
	case c.FPS < MinFPS || c.FPS > MaxFPS:
		return fmt.Errorf("%w: tui.fps %d outside [%d, %d]", ErrInvalid, c.FPS, MinFPS, MaxFPS)
	}
	for _, name := range c.LabelBodies {
		if _, err := ephem.ParseBody(strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("%w: label.bodies: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Distances returns the camera presets.
func (c Config) Distances() camera.Distances {
	return camera.Distances{Near: c.CameraNear, Far: c.CameraFar}
}

// Lens returns the camera lens.
func (c Config) Lens() camera.Lens {
	return camera.Lens{FovY: c.FovDeg * math.Pi / 180, ZNear: c.ZNear}
}

// LabelOffset returns the label bias in scene units.
func (c Config) LabelOffset() astro.Vec3f {
	return astro.Vec3f{X: float32(c.LabelOffsetX), Y: float32(c.LabelOffsetY)}
}

// Ephem returns the parsed ephemeris mode.
func (c Config) Ephem() ephem.Mode {
	return ephem.ParseMode(c.EphemMode)
}
