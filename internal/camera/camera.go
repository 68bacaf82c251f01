// Package camera holds the single scene camera, the world-to-viewport
// projection used for label anchors, and the near/far view switch.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the camera distance preset.
type Mode int

const (
	Near Mode = iota
	Far
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Near:
		return "near"
	case Far:
		return "far"
	default:
		return "unknown"
	}
}

// ParseMode parses "near"/"inner" or "far"/"outer".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "near", "inner":
		return Near, true
	case "far", "outer":
		return Far, true
	}
	return Near, false
}

// Pose is the camera placement. Only Position changes at runtime; the
// camera always looks at Target with Up as the vertical hint.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
}

// Lens describes the perspective projection.
type Lens struct {
	FovY  float64 // vertical field of view, radians
	ZNear float64 // near plane distance
}

// DefaultLens matches a 45° vertical field of view with a 0.1 near plane.
func DefaultLens() Lens {
	return Lens{
		FovY:  math.Pi / 4,
		ZNear: 0.1,
	}
}

// State is the one camera in the scene plus its current distance mode.
type State struct {
	Pose Pose
	Lens Lens
	Mode Mode
}

// Distance returns how far the camera sits from its target.
func (s State) Distance() float64 {
	return r3.Norm(r3.Sub(s.Pose.Position, s.Pose.Target))
}

// Viewport is the render target size in pixels (or pixel-like units).
type Viewport struct {
	Width  float64
	Height float64
}

// Aspect returns width over height.
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// ScreenPoint is a viewport position: origin at the top-left corner,
// y growing downward.
type ScreenPoint struct {
	X float64
	Y float64
}
