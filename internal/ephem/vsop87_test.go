package ephem

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-astrolabe/internal/logging"
)

// vsop87Dir returns the VSOP87B data directory or skips the test.
func vsop87Dir(t *testing.T) string {
	t.Helper()
	dir := os.Getenv("VSOP87")
	if dir == "" {
		t.Skip("VSOP87 not set; skipping full-series tests")
	}
	return dir
}

func TestVSOP87MeeusExample(t *testing.T) {
	v, err := LoadVSOP87(vsop87Dir(t))
	if err != nil {
		t.Fatalf("LoadVSOP87: %v", err)
	}

	// Meeus example 32.a, J2000 frame differs from equinox of date by
	// precession (~0.1° over 7 years), so compare loosely.
	lon, lat, r := v.Heliocentric(Venus, 2448976.5)
	if math.Abs(lon.Deg()-26.11428) > 0.2 {
		t.Errorf("Venus L = %.5f°", lon.Deg())
	}
	if math.Abs(lat.Deg()-(-2.62070)) > 0.01 {
		t.Errorf("Venus B = %.5f°", lat.Deg())
	}
	if math.Abs(r-0.724603) > 1e-5 {
		t.Errorf("Venus R = %.6f", r)
	}
}

func TestVSOP87AgreesWithMeanElements(t *testing.T) {
	v, err := LoadVSOP87(vsop87Dir(t))
	if err != nil {
		t.Fatalf("LoadVSOP87: %v", err)
	}

	full := NewEngine(v).Heliocentric(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	mean := NewEngine(MeanElements{}).Heliocentric(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	for id := Mercury; id < Sun; id++ {
		// Outer planets carry large mutual perturbations in the full series.
		if d := math.Abs(full[id].Lon.Deg() - mean[id].Lon.Deg()); d > 1.5 && d < 358.5 {
			t.Errorf("%s longitude differs by %.3f°", id, d)
		}
	}
}

func TestNewEngineForModeLogsDir(t *testing.T) {
	dir := vsop87Dir(t)

	var buf bytes.Buffer
	logger := logging.New(logging.LevelInfo)
	logger.SetOutput(&buf)

	e, err := NewEngineForMode(ModeVSOP87, dir, logger)
	if err != nil {
		t.Fatalf("NewEngineForMode: %v", err)
	}
	if e.SourceName() != "VSOP87" {
		t.Errorf("source = %q, want VSOP87", e.SourceName())
	}
	if !strings.Contains(buf.String(), dir) {
		t.Errorf("log does not name %s:\n%s", dir, buf.String())
	}
}

func TestLoadVSOP87NoDir(t *testing.T) {
	if _, err := LoadVSOP87(""); err == nil {
		t.Error("LoadVSOP87(\"\") should fail")
	}
}
