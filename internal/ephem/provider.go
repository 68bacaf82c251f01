// Package ephem computes heliocentric planet positions for a calendar date.
package ephem

import (
	"github.com/soniakeys/unit"
)

// Source evaluates a planetary series for one body at a Julian ephemeris day.
type Source interface {
	// Name returns the source name for display/logging.
	Name() string

	// Heliocentric returns ecliptic longitude and latitude in radians and the
	// radius vector in AU. The central body is never passed in.
	Heliocentric(id BodyID, jde float64) (lon, lat unit.Angle, r float64)
}

// Mode represents which series source to use.
type Mode int

const (
	ModeMean   Mode = iota // Mean orbital elements, always available
	ModeVSOP87             // Full VSOP87 series from data files
	ModeAuto               // VSOP87 when data files load, else mean elements
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMean:
		return "mean"
	case ModeVSOP87:
		return "vsop87"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch s {
	case "mean":
		return ModeMean
	case "vsop87":
		return ModeVSOP87
	case "auto":
		return ModeAuto
	default:
		return ModeAuto
	}
}

// ValidMode reports whether s names a known mode.
func ValidMode(s string) bool {
	switch s {
	case "mean", "vsop87", "auto":
		return true
	}
	return false
}
