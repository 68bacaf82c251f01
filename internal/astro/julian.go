package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JulianDay converts a timestamp to a Julian Day Number on the Gregorian
// calendar. The timestamp is decomposed in UTC with no timezone offset
// into year, month and a fractional day of month that carries the hour,
// minute, second and nanosecond.
//
// Dates before 1582-10-15 are treated as proleptic Gregorian.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y, m, d := t.Date()
	return julian.CalendarGregorianToJD(y, int(m), float64(d)+DayFraction(t))
}

// DayFraction returns the elapsed fraction of the UTC day.
func DayFraction(t time.Time) float64 {
	t = t.UTC()
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return (h + min/60 + sec/3600) / 24
}

// TimeFromJulianDay converts a Julian Day back to a UTC timestamp.
func TimeFromJulianDay(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// J2000 is the Julian Day of 2000-01-01T12:00:00 TT, the standard epoch.
const J2000 = 2451545.0
