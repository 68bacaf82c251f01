// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/logging"
	"github.com/litescript/ls-astrolabe/internal/sim"
	"github.com/litescript/ls-astrolabe/internal/version"
)

// Lines reserved around the scene: bordered buttons take three rows, the
// footer one.
const (
	headerLines = 3
	footerLines = 1
)

// FrameMsg drives one simulation tick.
type FrameMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	sim *sim.Simulation
	log *logging.Logger
	fps int

	width  int
	height int
	ready  bool

	lastFrame time.Time
	pending   []camera.Activation
	snapshot  sim.Snapshot
	scene     SceneModel
}

// New creates the root model around a running simulation.
func New(s *sim.Simulation, fps int, logger *logging.Logger) Model {
	if fps <= 0 {
		fps = 30
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		sim:      s,
		log:      logger.With("component", "ui"),
		fps:      fps,
		snapshot: s.Snapshot(),
		scene:    NewSceneModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "i", "1":
			m.pending = append(m.pending, camera.ActivateNear)
		case "o", "2":
			m.pending = append(m.pending, camera.ActivateFar)
		default:
			m.scene, _ = m.scene.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		rows := m.canvasRows()
		m.scene = m.scene.SetSize(msg.Width, rows)
		// Terminal cells are about twice as tall as wide.
		m.sim.SetViewport(float64(msg.Width), float64(rows*2))
		m.log.Debug("Resized to %dx%d (scene %dx%d)", msg.Width, msg.Height, msg.Width, rows)

	case FrameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.lastFrame.IsZero() {
			elapsed = now.Sub(m.lastFrame)
		}
		m.lastFrame = now

		m.sim.Tick(elapsed, m.pending...)
		m.pending = nil
		m.snapshot = m.sim.Snapshot()
		m.scene = m.scene.UpdateData(m.snapshot)
		return m, frameCmd(m.fps)
	}

	return m, nil
}

func (m Model) canvasRows() int {
	rows := m.height - headerLines - footerLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.scene.View() + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := renderTitle("ASTROLABE")
	date := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true).
		Padding(1, 2).
		Render(m.snapshot.Date.Format())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(title),
		date,
		renderButton(m.snapshot.Switch.Near),
		" ",
		renderButton(m.snapshot.Switch.Far),
	)
}

// renderButton draws a view switch button; the active one gets a white
// border, the inactive one black.
func renderButton(ind camera.Indicator) string {
	border := lipgloss.Color("0")
	fg := lipgloss.Color("244")
	if ind.Active {
		border = lipgloss.Color("15")
		fg = lipgloss.Color("15")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1).
		Render(ind.Label)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	stars := "off"
	if m.scene.ShowStars() {
		stars = "on"
	}
	status := fmt.Sprintf("  v%s | %s | %s view | stars %s", version.Version,
		m.snapshot.Source, m.snapshot.Camera.Mode, stars)
	help := "i/1: inner | o/2: outer | s: stars | q: quit"

	return dimStyle.Render(status + "  |  " + help)
}

// renderTitle renders text with the horizontal gradient.
func renderTitle(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue, purple, magenta, then pink from left to right.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Darker toward the bottom.
	f := 1.0 - yRatio*0.5
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
