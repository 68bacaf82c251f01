package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-astrolabe/internal/astro"
	"github.com/litescript/ls-astrolabe/internal/logging"
)

// Engine maps a calendar timestamp to every catalog body's position.
//
// Computation is double precision from calendar decomposition through the
// Cartesian transform; only Positions narrows to float32 for the scene.
// The Julian day is used directly as the ephemeris time argument (ΔT is
// ignored), and dates far from J2000 are accepted without complaint.
type Engine struct {
	src Source
}

// NewEngine creates an engine over a series source.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = MeanElements{}
	}
	return &Engine{src: src}
}

// NewEngineForMode picks the source for a mode. ModeVSOP87 fails when the
// series files cannot be loaded; ModeAuto falls back to mean elements.
func NewEngineForMode(mode Mode, vsopDir string, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	switch mode {
	case ModeMean:
		return NewEngine(MeanElements{}), nil

	case ModeVSOP87:
		v, err := LoadVSOP87(vsopDir)
		if err != nil {
			return nil, fmt.Errorf("ephemeris mode %s: %w", mode, err)
		}
		logger.Info("Loaded VSOP87 series from %s", v.Dir())
		return NewEngine(v), nil

	case ModeAuto:
		if vsopDir == "" {
			logger.Debug("No VSOP87 directory configured, using mean elements")
			return NewEngine(MeanElements{}), nil
		}
		v, err := LoadVSOP87(vsopDir)
		if err != nil {
			logger.Warn("Falling back to mean elements: %v", err)
			return NewEngine(MeanElements{}), nil
		}
		logger.Info("Loaded VSOP87 series from %s", v.Dir())
		return NewEngine(v), nil

	default:
		return nil, fmt.Errorf("ephemeris mode %d: unknown", int(mode))
	}
}

// SourceName returns the name of the series in use.
func (e *Engine) SourceName() string {
	return e.src.Name()
}

// HeliocentricJD evaluates every orbiting body at a Julian day. The Sun is
// included at the origin.
func (e *Engine) HeliocentricJD(jd float64) map[BodyID]astro.Spherical {
	out := make(map[BodyID]astro.Spherical, numPlanets+1)
	for id := Mercury; id < Sun; id++ {
		lon, lat, r := e.src.Heliocentric(id, jd)
		out[id] = astro.Spherical{Lon: lon, Lat: lat, R: r}
	}
	out[Sun] = astro.Spherical{}
	return out
}

// Heliocentric evaluates every body for a calendar timestamp.
func (e *Engine) Heliocentric(t time.Time) map[BodyID]astro.Spherical {
	return e.HeliocentricJD(astro.JulianDay(t))
}

// PositionsJD returns each body's single-precision ecliptic position in AU.
func (e *Engine) PositionsJD(jd float64) map[BodyID]astro.Vec3f {
	sph := e.HeliocentricJD(jd)
	out := make(map[BodyID]astro.Vec3f, len(sph))
	for id, s := range sph {
		out[id] = s.ToCartesian().Narrow()
	}
	return out
}

// Positions returns each body's position for a calendar timestamp.
func (e *Engine) Positions(t time.Time) map[BodyID]astro.Vec3f {
	return e.PositionsJD(astro.JulianDay(t))
}
