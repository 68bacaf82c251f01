package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/unit"
)

// MeanElements evaluates the low-precision mean orbital elements of date
// (Meeus, Table 31.A) and solves Kepler's equation for the position.
// Accuracy is on the order of arcminutes over a few centuries around
// J2000 and degrades slowly outside that range.
//
// The elements are referred to the ecliptic and equinox of date. The
// result is precessed to the J2000 ecliptic so both sources share the
// VSOP87B frame.
type MeanElements struct{}

// Name implements Source.
func (MeanElements) Name() string {
	return "mean elements"
}

// Heliocentric implements Source.
func (MeanElements) Heliocentric(id BodyID, jde float64) (lon, lat unit.Angle, r float64) {
	var el planetelements.Elements
	meanElements(id, jde, &el)

	// Mean anomaly from mean longitude and longitude of perihelion.
	M := (el.Lon - el.Peri).Mod1()
	E := kepler.Kepler3(el.Ecc, M)
	ν := kepler.True(E, el.Ecc)
	r = kepler.Radius(E, el.Ecc, el.Axis)

	// Argument of latitude, measured from the ascending node.
	u := ν + el.Peri - el.Node
	sU, cU := u.Sincos()
	sI, cI := el.Inc.Sincos()

	ofDate := coord.Ecliptic{
		Lon: el.Node + unit.Angle(math.Atan2(cI*sU, cU)),
		Lat: unit.Angle(math.Asin(sI * sU)),
	}
	var j2000 coord.Ecliptic
	precess.NewEclipticPrecessor(base.JDEToJulianYear(jde), 2000).Precess(&ofDate, &j2000)
	return j2000.Lon.Mod1(), j2000.Lat, r
}

// Earth's row of Table 31.A. Its orbit defines the ecliptic of date, so
// inclination is zero and the node is undefined; planetelements.Mean
// carries no node polynomial for it.
var (
	earthL = []float64{100.466457, 36000.7698278, .00030322, .00000002}
	earthA = []float64{1.000001018}
	earthE = []float64{.01670863, -.000042037, -.0000001267, .00000000014}
	earthP = []float64{102.937348, 1.7195366, .00045688, -.000000018}
)

func meanElements(id BodyID, jde float64, el *planetelements.Elements) {
	if id != Earth {
		planetelements.Mean(int(id), jde, el)
		return
	}
	T := base.J2000Century(jde)
	*el = planetelements.Elements{
		Lon:  unit.AngleFromDeg(base.Horner(T, earthL...)).Mod1(),
		Axis: base.Horner(T, earthA...),
		Ecc:  base.Horner(T, earthE...),
		Peri: unit.AngleFromDeg(base.Horner(T, earthP...)),
	}
}
