package ephem

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/unit"
)

// VSOP87 evaluates the full VSOP87B series, heliocentric ecliptic
// coordinates referred to the J2000 equinox. The series data files
// (VSOP87B.mer ... VSOP87B.nep) are loaded once, up front.
type VSOP87 struct {
	dir     string
	planets [numPlanets]*planetposition.V87Planet
}

// LoadVSOP87 reads all eight planet files from dir.
func LoadVSOP87(dir string) (*VSOP87, error) {
	if dir == "" {
		return nil, fmt.Errorf("load VSOP87: no data directory configured")
	}
	v := &VSOP87{dir: dir}
	for i := 0; i < numPlanets; i++ {
		p, err := planetposition.LoadPlanetPath(i, dir)
		if err != nil {
			return nil, fmt.Errorf("load VSOP87 %s from %s: %w", BodyID(i), dir, err)
		}
		v.planets[i] = p
	}
	return v, nil
}

// Name implements Source.
func (v *VSOP87) Name() string {
	return "VSOP87"
}

// Dir returns the directory the series were loaded from.
func (v *VSOP87) Dir() string {
	return v.dir
}

// Heliocentric implements Source.
func (v *VSOP87) Heliocentric(id BodyID, jde float64) (lon, lat unit.Angle, r float64) {
	return v.planets[id].Position2000(jde)
}
