// Package sim owns the simulation state and drives one tick at a time:
// view switch events, then the clock, then the ephemeris, then label
// projection.
package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-astrolabe/internal/astro"
	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/ephem"
	"github.com/litescript/ls-astrolabe/internal/logging"
)

// ErrBadLabel is returned when a label refers to a body that does not exist.
var ErrBadLabel = errors.New("label refers to unknown body")

// Body is a catalog body with its current scene position in AU.
type Body struct {
	ID       ephem.BodyID
	Name     string
	Radius   float32
	Position astro.Vec3f
}

// LabelAnchor is a body's name label. Body indexes the simulation's body
// array. Anchor is the last successful projection; Visible is false while
// the label cannot be projected.
type LabelAnchor struct {
	Body    int
	Text    string
	Anchor  camera.ScreenPoint
	Visible bool
}

// Recorder observes the tick loop. Implementations must be cheap.
type Recorder interface {
	TickObserved(d time.Duration, jd float64)
	LabelUnprojected(body string)
	ViewChanged(m camera.Mode)
}

type nopRecorder struct{}

func (nopRecorder) TickObserved(time.Duration, float64) {}
func (nopRecorder) LabelUnprojected(string)             {}
func (nopRecorder) ViewChanged(camera.Mode)             {}

// Options configures a Simulation. Zero fields take defaults.
type Options struct {
	Start       time.Time // default: now
	Clock       Clock
	Distances   camera.Distances
	Lens        camera.Lens
	LabelOffset *astro.Vec3f // default: camera.LabelOffset
	Viewport    camera.Viewport
	Labels      []int // body indices to label; default: every orbiting body
	Engine      *ephem.Engine
	Logger      *logging.Logger
	Recorder    Recorder
}

// LabelIndices resolves body names to indices for Options.Labels. An
// empty list yields nil, which labels every orbiting body.
func LabelIndices(names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	pos := make(map[ephem.BodyID]int)
	for i, def := range ephem.Catalog() {
		pos[def.ID] = i
	}

	idx := make([]int, 0, len(names))
	for _, name := range names {
		id, err := ephem.ParseBody(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", name, err)
		}
		idx = append(idx, pos[id])
	}
	return idx, nil
}

// DefaultViewport is used until the window reports its size.
var DefaultViewport = camera.Viewport{Width: 800, Height: 600}

// Simulation is the whole mutable state of the pipeline. It is not safe for
// concurrent use; the host calls Tick and Snapshot from one goroutine.
type Simulation struct {
	date   ShownDate
	clock  Clock
	engine *ephem.Engine

	ctrl   *camera.Controller
	cam    camera.State
	sw     camera.ViewSwitch
	vp     camera.Viewport
	offset astro.Vec3f

	bodies []Body
	labels []LabelAnchor

	log *logging.Logger
	rec Recorder
}

// New builds the body and label arrays, places the camera in near view and
// runs an initial ephemeris and projection pass.
func New(opts Options) (*Simulation, error) {
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.Distances == (camera.Distances{}) {
		opts.Distances = camera.DefaultDistances()
	}
	if opts.Lens == (camera.Lens{}) {
		opts.Lens = camera.DefaultLens()
	}
	if opts.Viewport == (camera.Viewport{}) {
		opts.Viewport = DefaultViewport
	}
	if opts.Engine == nil {
		opts.Engine = ephem.NewEngine(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	offset := camera.LabelOffset
	if opts.LabelOffset != nil {
		offset = *opts.LabelOffset
	}

	if opts.Distances.Near <= 0 || opts.Distances.Far <= 0 {
		return nil, fmt.Errorf("camera distances must be positive: %+v", opts.Distances)
	}

	cat := ephem.Catalog()
	bodies := make([]Body, len(cat))
	for i, def := range cat {
		bodies[i] = Body{ID: def.ID, Name: def.Name, Radius: def.Radius}
	}

	idx := opts.Labels
	if idx == nil {
		for i, b := range bodies {
			if b.ID.Orbits() {
				idx = append(idx, i)
			}
		}
	}
	labels := make([]LabelAnchor, len(idx))
	for i, bi := range idx {
		if bi < 0 || bi >= len(bodies) {
			return nil, fmt.Errorf("label %d: body index %d: %w", i, bi, ErrBadLabel)
		}
		labels[i] = LabelAnchor{Body: bi, Text: bodies[bi].Name}
	}

	ctrl := camera.NewController(opts.Distances)
	s := &Simulation{
		date:   NewShownDate(opts.Start),
		clock:  opts.Clock,
		engine: opts.Engine,
		ctrl:   ctrl,
		cam:    ctrl.NewState(opts.Lens),
		sw:     camera.NewViewSwitch(),
		vp:     opts.Viewport,
		offset: offset,
		bodies: bodies,
		labels: labels,
		log:    opts.Logger.With("component", "sim"),
		rec:    opts.Recorder,
	}

	s.updateBodies()
	s.updateLabels()
	s.log.Info("Simulation started at %s (source %s, rate %d)",
		s.date.Format(), s.engine.SourceName(), s.clock.Rate)
	return s, nil
}

// Tick runs one frame. Switch events are applied first so that label
// projection in the same tick sees the new camera pose.
func (s *Simulation) Tick(elapsed time.Duration, events ...camera.Activation) {
	if s == nil || s.ctrl == nil {
		panic("sim: Tick on a simulation without a camera")
	}
	start := time.Now()

	for _, ev := range events {
		if s.ctrl.Activate(&s.cam, &s.sw, ev) {
			s.log.Debug("View switched to %s", s.cam.Mode)
			s.rec.ViewChanged(s.cam.Mode)
		}
	}

	s.clock.Advance(&s.date, elapsed)
	s.updateBodies()
	s.updateLabels()

	s.rec.TickObserved(time.Since(start), s.date.JulianDay())
}

func (s *Simulation) updateBodies() {
	pos := s.engine.PositionsJD(s.date.JulianDay())
	for i := range s.bodies {
		p, ok := pos[s.bodies[i].ID]
		if !ok {
			panic(fmt.Sprintf("sim: ephemeris returned no position for %s", s.bodies[i].Name))
		}
		s.bodies[i].Position = p
	}
}

func (s *Simulation) updateLabels() {
	m, ok := camera.ViewProjection(s.cam, s.vp)
	for i := range s.labels {
		l := &s.labels[i]
		if l.Body < 0 || l.Body >= len(s.bodies) {
			panic(fmt.Sprintf("sim: label %q refers to body %d of %d", l.Text, l.Body, len(s.bodies)))
		}
		if !ok {
			l.Visible = false
			s.rec.LabelUnprojected(l.Text)
			continue
		}

		world := s.bodies[l.Body].Position.Add(s.offset).Widen()
		p, visible := camera.ProjectWith(m, s.vp, world)
		if !visible {
			l.Visible = false
			s.rec.LabelUnprojected(l.Text)
			continue
		}
		l.Anchor = p
		l.Visible = true
	}
}

// SetViewport updates the projection target size. Anchors refresh on the
// next tick.
func (s *Simulation) SetViewport(width, height float64) {
	s.vp = camera.Viewport{Width: width, Height: height}
}

// Date returns the shown date.
func (s *Simulation) Date() ShownDate {
	return s.date
}

// Camera returns the camera state.
func (s *Simulation) Camera() camera.State {
	return s.cam
}

// Snapshot is a copy of the simulation state for renderers and exporters.
type Snapshot struct {
	Date     ShownDate
	Source   string
	Camera   camera.State
	Switch   camera.ViewSwitch
	Viewport camera.Viewport
	Bodies   []Body
	Labels   []LabelAnchor
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	bodies := make([]Body, len(s.bodies))
	copy(bodies, s.bodies)
	labels := make([]LabelAnchor, len(s.labels))
	copy(labels, s.labels)

	return Snapshot{
		Date:     s.date,
		Source:   s.engine.SourceName(),
		Camera:   s.cam,
		Switch:   s.sw,
		Viewport: s.vp,
		Bodies:   bodies,
		Labels:   labels,
	}
}
