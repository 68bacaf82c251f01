package camera

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Activation is an edge-triggered request from the view switch.
type Activation int

const (
	ActivateNear Activation = iota
	ActivateFar
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case ActivateNear:
		return "near-activate"
	case ActivateFar:
		return "far-activate"
	default:
		return "unknown"
	}
}

func (a Activation) target() Mode {
	if a == ActivateFar {
		return Far
	}
	return Near
}

// Indicator is one button of the view switch.
type Indicator struct {
	Label  string
	Active bool
}

// ViewSwitch is the pair of mutually exclusive view buttons.
type ViewSwitch struct {
	Near Indicator
	Far  Indicator
}

// NewViewSwitch returns the switch with the near button active.
func NewViewSwitch() ViewSwitch {
	return ViewSwitch{
		Near: Indicator{Label: "Inner", Active: true},
		Far:  Indicator{Label: "Outer"},
	}
}

// ActiveMode returns the mode whose indicator is lit.
func (s ViewSwitch) ActiveMode() Mode {
	if s.Far.Active {
		return Far
	}
	return Near
}

func (s *ViewSwitch) assert(m Mode) {
	s.Near.Active = m == Near
	s.Far.Active = m == Far
}

// Distances are the camera distances for each mode.
type Distances struct {
	Near float64
	Far  float64
}

// DefaultDistances returns 5 units near and 60 units far.
func DefaultDistances() Distances {
	return Distances{Near: 5.0, Far: 60.0}
}

// ViewAxis is the direction from the origin along which the camera sits.
var ViewAxis = r3.Vec{X: 0, Y: 0, Z: 1}

// Controller is the only writer of the camera state. It switches between
// the near and far presets, keeping the camera aimed at the origin.
type Controller struct {
	dist Distances
}

// NewController creates a controller.
func NewController(d Distances) *Controller {
	return &Controller{dist: d}
}

// Distance returns the preset distance for a mode.
func (c *Controller) Distance(m Mode) float64 {
	if m == Far {
		return c.dist.Far
	}
	return c.dist.Near
}

// NewState places a camera in Near mode.
func (c *Controller) NewState(lens Lens) State {
	s := State{Lens: lens}
	c.place(&s, Near)
	return s
}

func (c *Controller) place(s *State, m Mode) {
	s.Mode = m
	s.Pose = Pose{
		Position: r3.Scale(c.Distance(m), ViewAxis),
		Target:   r3.Vec{},
		Up:       r3.Vec{X: 0, Y: 1, Z: 0},
	}
}

// Activate applies a switch event. Re-activating the current mode leaves
// the camera alone but still re-asserts the indicators. It reports whether
// the mode changed.
func (c *Controller) Activate(s *State, sw *ViewSwitch, ev Activation) bool {
	if s == nil || sw == nil {
		panic("camera: Activate called without camera state or view switch")
	}

	target := ev.target()
	changed := s.Mode != target
	if changed {
		c.place(s, target)
	}
	sw.assert(s.Mode)
	return changed
}
