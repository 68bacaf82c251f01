package astro

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name string
		s    Spherical
		want Vec3
	}{
		{"vernal equinox direction", Spherical{Lon: 0, Lat: 0, R: 1}, Vec3{1, 0, 0}},
		{"quarter turn", Spherical{Lon: unit.AngleFromDeg(90), Lat: 0, R: 2}, Vec3{0, 2, 0}},
		{"half turn", Spherical{Lon: unit.AngleFromDeg(180), Lat: 0, R: 5.2}, Vec3{-5.2, 0, 0}},
		{"north ecliptic pole", Spherical{Lon: unit.AngleFromDeg(37), Lat: unit.AngleFromDeg(90), R: 3}, Vec3{0, 0, 3}},
		{"inclined", Spherical{Lon: unit.AngleFromDeg(45), Lat: unit.AngleFromDeg(30), R: 2}, Vec3{
			X: 2 * math.Cos(math.Pi/6) * math.Cos(math.Pi/4),
			Y: 2 * math.Cos(math.Pi/6) * math.Sin(math.Pi/4),
			Z: 1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.s.ToCartesian()
			if !scalar.EqualWithinAbs(got.X, tt.want.X, 1e-12) ||
				!scalar.EqualWithinAbs(got.Y, tt.want.Y, 1e-12) ||
				!scalar.EqualWithinAbs(got.Z, tt.want.Z, 1e-12) {
				t.Errorf("ToCartesian() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	for lonDeg := 0.0; lonDeg < 360; lonDeg += 17.5 {
		for latDeg := -80.0; latDeg <= 80; latDeg += 20 {
			for _, r := range []float64{0.387, 1, 9.537, 30.07} {
				in := Spherical{
					Lon: unit.AngleFromDeg(lonDeg),
					Lat: unit.AngleFromDeg(latDeg),
					R:   r,
				}
				out := FromCartesian(in.ToCartesian())

				if !scalar.EqualWithinAbs(out.Lon.Rad(), in.Lon.Rad(), 1e-12) {
					t.Errorf("lon %v: got %v", in.Lon.Deg(), out.Lon.Deg())
				}
				if !scalar.EqualWithinAbs(out.Lat.Rad(), in.Lat.Rad(), 1e-12) {
					t.Errorf("lat %v: got %v", in.Lat.Deg(), out.Lat.Deg())
				}
				if !scalar.EqualWithinAbs(out.R, in.R, 1e-12) {
					t.Errorf("r %v: got %v", in.R, out.R)
				}
			}
		}
	}
}

func TestFromCartesianOrigin(t *testing.T) {
	got := FromCartesian(Vec3{})
	if got != (Spherical{}) {
		t.Errorf("FromCartesian(origin) = %+v, want zero value", got)
	}
}

func TestEclipticLongitudeRange(t *testing.T) {
	tests := []struct {
		v    Vec3
		want float64
	}{
		{Vec3{1, 0, 0}, 0},
		{Vec3{0, 1, 0}, 90},
		{Vec3{-1, 0, 0}, 180},
		{Vec3{0, -1, 0}, 270},
	}

	for _, tt := range tests {
		got := EclipticLongitude(tt.v)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EclipticLongitude(%+v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestEquatorialToEcliptic(t *testing.T) {
	// The vernal equinox lies on both planes; the celestial pole tilts
	// toward the ecliptic +Y axis by the obliquity.
	eps := 23.439291 * math.Pi / 180
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"equinox", Vec3{1, 0, 0}, Vec3{1, 0, 0}},
		{"pole", Vec3{0, 0, 1}, Vec3{0, math.Sin(eps), math.Cos(eps)}},
		{"solstice", Vec3{0, 1, 0}, Vec3{0, math.Cos(eps), -math.Sin(eps)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquatorialToEcliptic(tt.in)
			if !scalar.EqualWithinAbs(got.X, tt.want.X, 1e-12) ||
				!scalar.EqualWithinAbs(got.Y, tt.want.Y, 1e-12) ||
				!scalar.EqualWithinAbs(got.Z, tt.want.Z, 1e-12) {
				t.Errorf("EquatorialToEcliptic(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLightTimeFromAU(t *testing.T) {
	if got := LightTimeFromAU(1); math.Abs(got-499.005) > 1e-9 {
		t.Errorf("LightTimeFromAU(1) = %v, want 499.005", got)
	}
	if got := LightTimeFromAU(30.07); got/60 < 250 || got/60 > 251 {
		t.Errorf("Neptune light time = %.1f min, want ~250", got/60)
	}
}

func TestNarrowWiden(t *testing.T) {
	v := Vec3{X: 1.5, Y: -0.25, Z: 30}
	if got := v.Narrow().Widen(); got != v {
		t.Errorf("Narrow().Widen() = %+v, want %+v", got, v)
	}

	sum := Vec3f{X: 1, Y: 2, Z: 3}.Add(Vec3f{X: 0.5, Y: 0.5, Z: 0})
	if sum != (Vec3f{X: 1.5, Y: 2.5, Z: 3}) {
		t.Errorf("Add = %+v", sum)
	}
}
