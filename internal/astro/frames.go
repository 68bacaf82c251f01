// Package astro provides the coordinate math shared by the ephemeris engine,
// the camera and the renderers: vectors, heliocentric spherical coordinates,
// ecliptic/equatorial rotation and Julian day conversion.
package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Narrow converts the vector to single precision for the scene.
func (v Vec3) Narrow() Vec3f {
	return Vec3f{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Vec3f is the single-precision position the scene stores per body.
type Vec3f struct {
	X, Y, Z float32
}

// Widen converts the vector back to double precision.
func (v Vec3f) Widen() Vec3 {
	return Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Add returns the single-precision sum of two vectors.
func (v Vec3f) Add(u Vec3f) Vec3f {
	return Vec3f{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Spherical is a heliocentric ecliptic position: longitude and latitude in
// radians, radius vector in AU.
type Spherical struct {
	Lon unit.Angle
	Lat unit.Angle
	R   float64
}

// ToCartesian converts to right-handed ecliptic XYZ:
//
//	x = r·cos(β)·cos(λ)
//	y = r·cos(β)·sin(λ)
//	z = r·sin(β)
func (s Spherical) ToCartesian() Vec3 {
	sB, cB := s.Lat.Sincos()
	sL, cL := s.Lon.Sincos()
	return Vec3{
		X: s.R * cB * cL,
		Y: s.R * cB * sL,
		Z: s.R * sB,
	}
}

// FromCartesian is the inverse of ToCartesian. Longitude is returned in
// [0, 2π). The origin maps to the zero value.
func FromCartesian(v Vec3) Spherical {
	r := v.Norm()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Lon: unit.Angle(math.Atan2(v.Y, v.X)).Mod1(),
		Lat: unit.Angle(math.Asin(v.Z / r)),
		R:   r,
	}
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	return FromCartesian(v).Lat.Deg()
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	return FromCartesian(v).Lon.Deg()
}

// Obliquity is the Earth's axial tilt (J2000 epoch) in radians.
const obliquityRad = 23.439291 * math.Pi / 180

// EquatorialToEcliptic converts equatorial XYZ to ecliptic XYZ.
// Input is in any units (km, AU, etc); output is in the same units.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	sinE, cosE := math.Sincos(obliquityRad)
	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// LightTimeFromAU returns the one-way light time in seconds for a
// distance in AU.
func LightTimeFromAU(au float64) float64 {
	return au * 499.005
}
