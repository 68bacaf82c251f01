package camera

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-astrolabe/internal/astro"
)

// LabelOffset is added to a body's position before projecting its label so
// the text sits beside the sphere rather than on top of it.
var LabelOffset = astro.Vec3f{X: 0.1, Y: 0.1, Z: 0}

// viewMatrix builds a right-handed look-at matrix. It reports false for a
// degenerate pose: eye on the target, or looking along the up vector.
func viewMatrix(p Pose) (*mat.Dense, bool) {
	fwd := r3.Sub(p.Target, p.Position)
	if r3.Norm(fwd) == 0 {
		return nil, false
	}
	fwd = r3.Unit(fwd)

	side := r3.Cross(fwd, p.Up)
	if r3.Norm(side) < 1e-12 {
		return nil, false
	}
	side = r3.Unit(side)
	up := r3.Cross(side, fwd)

	return mat.NewDense(4, 4, []float64{
		side.X, side.Y, side.Z, -r3.Dot(side, p.Position),
		up.X, up.Y, up.Z, -r3.Dot(up, p.Position),
		-fwd.X, -fwd.Y, -fwd.Z, r3.Dot(fwd, p.Position),
		0, 0, 0, 1,
	}), true
}

// projectionMatrix is an infinite reverse-Z perspective: NDC depth is
// ZNear/distance, so 1 at the near plane falling toward 0 at infinity.
func projectionMatrix(l Lens, aspect float64) *mat.Dense {
	f := 1 / math.Tan(l.FovY/2)
	return mat.NewDense(4, 4, []float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, 0, l.ZNear,
		0, 0, -1, 0,
	})
}

// ViewProjection returns the combined clip-from-world matrix, or false
// when the pose, lens or viewport is degenerate.
func ViewProjection(s State, vp Viewport) (*mat.Dense, bool) {
	if !(vp.Width > 0) || !(vp.Height > 0) {
		return nil, false
	}
	if !(s.Lens.FovY > 0 && s.Lens.FovY < math.Pi) || !(s.Lens.ZNear > 0) {
		return nil, false
	}
	view, ok := viewMatrix(s.Pose)
	if !ok {
		return nil, false
	}

	var m mat.Dense
	m.Mul(projectionMatrix(s.Lens, vp.Aspect()), view)
	return &m, true
}

// ProjectWith maps a world point through a precomputed clip-from-world
// matrix into viewport coordinates. It reports false for points behind the
// camera, in front of the near plane, or when the result is not finite.
func ProjectWith(clipFromWorld mat.Matrix, vp Viewport, world astro.Vec3) (ScreenPoint, bool) {
	var clip mat.VecDense
	clip.MulVec(clipFromWorld, mat.NewVecDense(4, []float64{world.X, world.Y, world.Z, 1}))

	w := clip.AtVec(3)
	if !(w > 0) {
		return ScreenPoint{}, false
	}
	ndcX := clip.AtVec(0) / w
	ndcY := clip.AtVec(1) / w
	ndcZ := clip.AtVec(2) / w
	if ndcZ < 0 || ndcZ > 1 {
		return ScreenPoint{}, false
	}

	sp := ScreenPoint{
		X: (ndcX + 1) / 2 * vp.Width,
		Y: vp.Height - (ndcY+1)/2*vp.Height,
	}
	if math.IsNaN(sp.X) || math.IsNaN(sp.Y) || math.IsInf(sp.X, 0) || math.IsInf(sp.Y, 0) {
		return ScreenPoint{}, false
	}
	return sp, true
}

// Project maps a world point to viewport coordinates for the camera.
// The second result is false when the point cannot be projected; callers
// keep whatever they showed last.
func Project(s State, vp Viewport, world astro.Vec3) (ScreenPoint, bool) {
	m, ok := ViewProjection(s, vp)
	if !ok {
		return ScreenPoint{}, false
	}
	return ProjectWith(m, vp, world)
}

// Anchor returns the label anchor for a body: its scene position biased by
// LabelOffset, then projected.
func Anchor(s State, vp Viewport, body astro.Vec3f) (ScreenPoint, bool) {
	return Project(s, vp, body.Add(LabelOffset).Widen())
}
