package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-astrolabe/internal/astro"
)

// SnapshotExport is the JSON-serializable representation of a Snapshot.
type SnapshotExport struct {
	Date      time.Time     `json:"date"`
	JulianDay float64       `json:"julian_day"`
	Source    string        `json:"ephemeris"`
	View      string        `json:"view"`
	Camera    CameraExport  `json:"camera"`
	Bodies    []BodyExport  `json:"bodies"`
	Labels    []LabelExport `json:"labels"`
}

// CameraExport is the camera pose and viewport.
type CameraExport struct {
	Position [3]float64 `json:"position"`
	Distance float64    `json:"distance"`
	Width    float64    `json:"viewport_width"`
	Height   float64    `json:"viewport_height"`
}

// BodyExport is a body position with derived ecliptic coordinates.
type BodyExport struct {
	Name      string     `json:"name"`
	Position  [3]float32 `json:"position_au"`
	Distance  float64    `json:"distance_au"`
	Longitude float64    `json:"ecliptic_lon_deg"`
	Latitude  float64    `json:"ecliptic_lat_deg"`
	LightTime float64    `json:"light_time_min"`
}

// LabelExport is a label anchor in viewport coordinates.
type LabelExport struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Export converts the snapshot to its exportable form.
func (s Snapshot) Export() *SnapshotExport {
	pos := s.Camera.Pose.Position
	export := &SnapshotExport{
		Date:      s.Date.Time(),
		JulianDay: s.Date.JulianDay(),
		Source:    s.Source,
		View:      s.Switch.ActiveMode().String(),
		Camera: CameraExport{
			Position: [3]float64{pos.X, pos.Y, pos.Z},
			Distance: s.Camera.Distance(),
			Width:    s.Viewport.Width,
			Height:   s.Viewport.Height,
		},
	}

	for _, b := range s.Bodies {
		v := b.Position.Widen()
		export.Bodies = append(export.Bodies, BodyExport{
			Name:      b.Name,
			Position:  [3]float32{b.Position.X, b.Position.Y, b.Position.Z},
			Distance:  v.Norm(),
			Longitude: astro.EclipticLongitude(v),
			Latitude:  astro.EclipticLatitude(v),
			LightTime: astro.LightTimeFromAU(v.Norm()) / 60,
		})
	}
	for _, l := range s.Labels {
		export.Labels = append(export.Labels, LabelExport{
			Text:    l.Text,
			X:       l.Anchor.X,
			Y:       l.Anchor.Y,
			Visible: l.Visible,
		})
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Export())
}

// WriteSummaryTable writes a text table of body positions and label anchors.
func WriteSummaryTable(w io.Writer, snap Snapshot) {
	fmt.Fprintf(w, "Solar System @ %s (JD %.5f, %s, %s view)\n",
		snap.Date.Format(), snap.Date.JulianDay(), snap.Source, snap.Switch.ActiveMode())
	fmt.Fprintln(w, strings.Repeat("─", 82))

	fmt.Fprintf(w, "%-8s %10s %9s %9s %9s  %-20s\n", "Body", "Lon(°)", "Lat(°)", "R(AU)", "Light(m)", "Label")
	fmt.Fprintln(w, strings.Repeat("─", 82))

	anchors := make(map[int]LabelAnchor, len(snap.Labels))
	for _, l := range snap.Labels {
		anchors[l.Body] = l
	}

	for i, b := range snap.Bodies {
		v := b.Position.Widen()
		label := "-"
		if l, ok := anchors[i]; ok {
			if l.Visible {
				label = fmt.Sprintf("(%.1f, %.1f)", l.Anchor.X, l.Anchor.Y)
			} else {
				label = "hidden"
			}
		}
		fmt.Fprintf(w, "%-8s %10.3f %9.3f %9.4f %9.2f  %-20s\n",
			b.Name,
			astro.EclipticLongitude(v),
			astro.EclipticLatitude(v),
			v.Norm(),
			astro.LightTimeFromAU(v.Norm())/60,
			label,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies, %d labels\n", len(snap.Bodies), len(snap.Labels))
}
