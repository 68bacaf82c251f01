package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-astrolabe/internal/astro"
)

// DefaultRate is 30 simulated days per real second.
const DefaultRate int64 = 30 * 24 * 60 * 60

// ShownDate is the simulated calendar timestamp, always UTC. The Clock is
// its only writer.
type ShownDate struct {
	t time.Time
}

// NewShownDate starts a shown date at t.
func NewShownDate(t time.Time) ShownDate {
	return ShownDate{t: t.UTC()}
}

// Time returns the shown timestamp.
func (d ShownDate) Time() time.Time {
	return d.t
}

// Format returns the date as YYYY-MM-DD.
func (d ShownDate) Format() string {
	return d.t.Format("2006-01-02")
}

// JulianDay returns the Julian day of the shown timestamp.
func (d ShownDate) JulianDay() float64 {
	return astro.JulianDay(d.t)
}

// Clock advances a ShownDate by Rate simulated seconds per real second.
//
// The scaled step is computed in integer nanoseconds, so advancing by a
// then b lands on the same date as advancing once by a+b. With Quantize
// set, the scaled sub-second remainder of every step is dropped: a real
// step shorter than 1/Rate seconds then leaves the date unchanged, and
// many small steps drift behind one large step.
type Clock struct {
	Rate     int64
	Quantize bool
}

// maxChunk is the largest whole-second step time.Time.Add accepts.
const maxChunk = int64(math.MaxInt64 / int64(time.Second))

// Advance moves the date forward by elapsed·Rate. Negative elapsed moves it
// backward. The date is unbounded in both directions.
func (c Clock) Advance(d *ShownDate, elapsed time.Duration) {
	if d == nil {
		panic("sim: Advance called without a shown date")
	}
	if c.Rate == 0 || elapsed == 0 {
		return
	}

	secs, nanos := c.scale(elapsed)
	if c.Quantize {
		nanos = 0
	}

	t := d.t
	for secs > maxChunk {
		t = t.Add(time.Duration(maxChunk) * time.Second)
		secs -= maxChunk
	}
	for secs < -maxChunk {
		t = t.Add(-time.Duration(maxChunk) * time.Second)
		secs += maxChunk
	}
	d.t = t.Add(time.Duration(secs)*time.Second + time.Duration(nanos))
}

// scale returns elapsed·Rate split into whole seconds and a nanosecond
// remainder with the same sign.
func (c Clock) scale(elapsed time.Duration) (secs, nanos int64) {
	const nsPerSec = int64(time.Second)

	whole := int64(elapsed / time.Second)
	frac := int64(elapsed % time.Second)

	rq, rr := c.Rate/nsPerSec, c.Rate%nsPerSec
	sub := frac * rr

	secs = whole*c.Rate + frac*rq + sub/nsPerSec
	nanos = sub % nsPerSec
	return secs, nanos
}

// ParseDate accepts YYYY-MM-DD, RFC 3339, or a Julian day prefixed with
// "JD" (JD2451545.0). Julian days are rounded to the millisecond.
func ParseDate(s string) (time.Time, error) {
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "JD"); ok {
		jd, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || math.IsNaN(jd) || math.IsInf(jd, 0) {
			return time.Time{}, fmt.Errorf("parse date %q: bad Julian day", s)
		}
		return astro.TimeFromJulianDay(jd).Round(time.Millisecond), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want YYYY-MM-DD, RFC3339 or JD<days>", s)
	}
	return t.UTC(), nil
}
