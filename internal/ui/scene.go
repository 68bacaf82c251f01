package ui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/mat"

	"github.com/litescript/ls-astrolabe/internal/astro"
	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/ephem"
	"github.com/litescript/ls-astrolabe/internal/sim"
)

// SceneModel draws the simulation snapshot on a character grid. The
// projector viewport is the grid with each cell counted as two pixel rows.
type SceneModel struct {
	width     int
	height    int
	snapshot  sim.Snapshot
	showStars bool
	showRings bool
}

// NewSceneModel creates a scene with the starfield and orbit rings on.
func NewSceneModel() SceneModel {
	return SceneModel{
		showStars: true,
		showRings: true,
	}
}

// SetSize updates the grid size in cells.
func (m SceneModel) SetSize(width, height int) SceneModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the snapshot being drawn.
func (m SceneModel) UpdateData(snap sim.Snapshot) SceneModel {
	m.snapshot = snap
	return m
}

// Update handles display toggles.
func (m SceneModel) Update(msg tea.Msg) (SceneModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "s":
			m.showStars = !m.showStars
		case "r":
			m.showRings = !m.showRings
		}
	}
	return m, nil
}

// ShowStars returns whether the starfield is drawn.
func (m SceneModel) ShowStars() bool {
	return m.showStars
}

// View renders the scene.
func (m SceneModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return renderGrid(m.buildGrid())
}

// grid is a character canvas addressed in projector pixels.
type grid [][]rune

func newGrid(w, h int) grid {
	g := make(grid, h)
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", w))
	}
	return g
}

// cell maps a viewport point to a grid cell.
func (g grid) cell(p camera.ScreenPoint) (x, y int, ok bool) {
	if len(g) == 0 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}
	x = int(math.Floor(p.X))
	y = int(math.Floor(p.Y / 2))
	if x < 0 || y < 0 || y >= len(g) || x >= len(g[y]) {
		return 0, 0, false
	}
	return x, y, true
}

// plot writes r at p when the cell is empty or holds a weaker glyph.
func (g grid) plot(p camera.ScreenPoint, r rune) {
	x, y, ok := g.cell(p)
	if !ok {
		return
	}
	if rank(r) >= rank(g[y][x]) {
		g[y][x] = r
	}
}

// rank orders glyphs so bodies win over labels, labels over rings and
// stars.
func rank(r rune) int {
	switch r {
	case ' ':
		return 0
	case '·', '∗':
		return 1
	case '•', '○':
		return 3
	case '☉':
		return 4
	default:
		return 2
	}
}

func (m SceneModel) buildGrid() grid {
	g := newGrid(m.width, m.height)
	snap := m.snapshot

	vp := camera.Viewport{Width: float64(m.width), Height: float64(m.height * 2)}
	clip, ok := camera.ViewProjection(snap.Camera, vp)
	if !ok {
		return g
	}

	if m.showStars {
		drawStarfield(g, clip, vp)
	}
	if m.showRings {
		drawOrbitRings(g, clip, vp, snap.Bodies)
	}

	for _, b := range snap.Bodies {
		p, ok := camera.ProjectWith(clip, vp, b.Position.Widen())
		if !ok {
			continue
		}
		g.plot(p, bodyGlyph(b))
	}

	// Anchors come from the simulation's own viewport; rescale in case the
	// window changed since the last tick.
	sx, sy := 1.0, 1.0
	if snap.Viewport.Width > 0 && snap.Viewport.Height > 0 {
		sx = vp.Width / snap.Viewport.Width
		sy = vp.Height / snap.Viewport.Height
	}
	for _, l := range snap.Labels {
		if !l.Visible {
			continue
		}
		drawLabel(g, camera.ScreenPoint{X: l.Anchor.X * sx, Y: l.Anchor.Y * sy}, l.Text)
	}
	return g
}

func drawLabel(g grid, at camera.ScreenPoint, text string) {
	x, y, ok := g.cell(at)
	if !ok {
		return
	}
	// Step off the body glyph the anchor sits on.
	for x < len(g[y]) && rank(g[y][x]) >= 3 {
		x++
	}
	for i, r := range []rune(text) {
		cx := x + i
		if cx >= len(g[y]) {
			break
		}
		if rank(g[y][cx]) <= rank(r) {
			g[y][cx] = r
		}
	}
}

func bodyGlyph(b sim.Body) rune {
	switch {
	case b.ID == ephem.Sun:
		return '☉'
	case b.Radius >= 0.05:
		return '○'
	default:
		return '•'
	}
}

// drawStarfield places the bright stars on a distant shell around the Sun
// and projects them with the scene camera.
func drawStarfield(g grid, clip mat.Matrix, vp camera.Viewport) {
	for _, star := range astro.DefaultStarCatalog().Stars {
		dir := star.EclipticDirection().Scale(astro.DefaultStarShellRadiusAU)
		p, ok := camera.ProjectWith(clip, vp, dir)
		if !ok {
			continue
		}
		g.plot(p, starGlyph(star.Mag))
	}
}

// starGlyph returns a subtle glyph based on star magnitude. The catalog
// stops at magnitude 2.0, so there are only two tiers.
func starGlyph(mag float64) rune {
	if mag <= 1.0 {
		return '∗'
	}
	return '·'
}

// drawOrbitRings traces a circle in the ecliptic plane at each planet's
// current distance from the Sun.
func drawOrbitRings(g grid, clip mat.Matrix, vp camera.Viewport, bodies []sim.Body) {
	const steps = 360
	for _, b := range bodies {
		if !b.ID.Orbits() {
			continue
		}
		pos := b.Position.Widen()
		r := math.Hypot(pos.X, pos.Y)
		if r == 0 {
			continue
		}
		for i := 0; i < steps; i++ {
			s, c := math.Sincos(2 * math.Pi * float64(i) / steps)
			p, ok := camera.ProjectWith(clip, vp, astro.Vec3{X: r * c, Y: r * s})
			if ok {
				g.plot(p, '·')
			}
		}
	}
}

func renderGrid(g grid) string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	giantStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	for _, row := range g {
		for _, ch := range row {
			var style lipgloss.Style
			switch ch {
			case ' ':
				b.WriteRune(ch)
				continue
			case '·':
				style = dimStyle
			case '∗':
				style = starStyle
			case '☉':
				style = sunStyle
			case '•':
				style = planetStyle
			case '○':
				style = giantStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}
	return b.String()
}
