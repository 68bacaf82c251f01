package ephem

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBody is returned when a body name or id is not in the catalog.
var ErrUnknownBody = errors.New("unknown body")

// BodyID selects which orbital element set is used for a body. The planet
// values match the meeus planet indices.
type BodyID int

const (
	Mercury BodyID = iota
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Sun // central body, fixed at the origin

	numPlanets = int(Sun)
)

var bodyNames = [...]string{
	Mercury: "Mercury",
	Venus:   "Venus",
	Earth:   "Earth",
	Mars:    "Mars",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Uranus:  "Uranus",
	Neptune: "Neptune",
	Sun:     "Sun",
}

// String returns the body name.
func (id BodyID) String() string {
	if id < 0 || int(id) >= len(bodyNames) {
		return "unknown"
	}
	return bodyNames[id]
}

// Orbits reports whether the body has an orbit to evaluate.
func (id BodyID) Orbits() bool {
	return id >= Mercury && id < Sun
}

// ParseBody looks a body up by case-insensitive name.
func ParseBody(name string) (BodyID, error) {
	for i, n := range bodyNames {
		if strings.EqualFold(n, name) {
			return BodyID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// BodyDef is a catalog entry.
type BodyDef struct {
	ID     BodyID
	Name   string
	Radius float32 // display radius in scene units
}

// catalog is the fixed set of bodies, orbiting planets first.
var catalog = []BodyDef{
	{ID: Mercury, Name: "Mercury", Radius: 0.01},
	{ID: Venus, Name: "Venus", Radius: 0.03},
	{ID: Earth, Name: "Earth", Radius: 0.03},
	{ID: Mars, Name: "Mars", Radius: 0.01},
	{ID: Jupiter, Name: "Jupiter", Radius: 0.05},
	{ID: Saturn, Name: "Saturn", Radius: 0.05},
	{ID: Uranus, Name: "Uranus", Radius: 0.05},
	{ID: Neptune, Name: "Neptune", Radius: 0.05},
	{ID: Sun, Name: "Sun", Radius: 0.06},
}

// Catalog returns a copy of the body catalog.
func Catalog() []BodyDef {
	out := make([]BodyDef, len(catalog))
	copy(out, catalog)
	return out
}
