package astro

import (
	"math"
	"testing"
)

func TestDefaultStarCatalog_KnownStars(t *testing.T) {
	cat := DefaultStarCatalog()

	if len(cat.Stars) < 30 {
		t.Fatalf("Expected at least 30 stars, got %d", len(cat.Stars))
	}

	knownStars := map[string]struct {
		minRA, maxRA   float64
		minDec, maxDec float64
		maxMag         float64
	}{
		"Sirius":     {100, 103, -18, -15, 0},
		"Vega":       {278, 281, 37, 40, 0.5},
		"Canopus":    {94, 98, -54, -51, 0},
		"Arcturus":   {212, 215, 18, 21, 0.5},
		"Betelgeuse": {87, 90, 6, 9, 1.0},
	}

	starMap := make(map[string]Star)
	for _, s := range cat.Stars {
		starMap[s.Name] = s
	}

	for name, expected := range knownStars {
		star, found := starMap[name]
		if !found {
			t.Errorf("Expected star %s not in catalog", name)
			continue
		}
		if star.RAdeg < expected.minRA || star.RAdeg > expected.maxRA {
			t.Errorf("%s RA=%v, expected %v-%v", name, star.RAdeg, expected.minRA, expected.maxRA)
		}
		if star.DecDeg < expected.minDec || star.DecDeg > expected.maxDec {
			t.Errorf("%s Dec=%v, expected %v-%v", name, star.DecDeg, expected.minDec, expected.maxDec)
		}
		if star.Mag > expected.maxMag {
			t.Errorf("%s Mag=%v, expected < %v", name, star.Mag, expected.maxMag)
		}
	}
}

func TestDefaultStarCatalog_SortedByMagnitude(t *testing.T) {
	stars := DefaultStarCatalog().Stars
	for i := 1; i < len(stars); i++ {
		if stars[i].Mag < stars[i-1].Mag {
			t.Errorf("%s (%.2f) listed after dimmer %s (%.2f)",
				stars[i].Name, stars[i].Mag, stars[i-1].Name, stars[i-1].Mag)
		}
	}
}

func TestStarEclipticDirection(t *testing.T) {
	for _, s := range DefaultStarCatalog().Stars {
		dir := s.EclipticDirection()
		if math.Abs(dir.Norm()-1) > 1e-12 {
			t.Errorf("%s direction norm = %v, want 1", s.Name, dir.Norm())
		}
	}

	// The north equatorial pole sits at ecliptic latitude 90° - obliquity.
	pole := Star{Name: "pole", RAdeg: 0, DecDeg: 90}
	lat := EclipticLatitude(pole.EclipticDirection())
	if math.Abs(lat-(90-23.439291)) > 1e-9 {
		t.Errorf("pole ecliptic latitude = %v, want %v", lat, 90-23.439291)
	}
}
