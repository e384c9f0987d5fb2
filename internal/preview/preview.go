// Package preview turns a seating map into a 2D vector scene. Rendering is
// a pure function: identical input always produces an identical scene.
package preview

import (
	"fmt"

	"seatly/internal/layout"
)

// SeatStatus annotates a seat in the rendered scene.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSold      SeatStatus = "sold"
	SeatSelected  SeatStatus = "selected"
)

// Fixed status colors: green, red, blue.
var statusColors = map[SeatStatus]string{
	SeatAvailable: "#22c55e",
	SeatSold:      "#ef4444",
	SeatSelected:  "#3b82f6",
}

const (
	viewportPadding  = 40.0
	arenaAspectRatio = 16.0 / 9.0

	seatInset     = 8.0
	seatGap       = 2.0
	fallbackColor = "#9ca3af"
)

// Options controls seat annotations and colors. Every field is optional.
type Options struct {
	// SeatStatuses maps seat id to status; absent seats render as available.
	SeatStatuses map[string]SeatStatus
	// TicketColors maps ticket-type name to fill color.
	TicketColors map[string]string
	// SimplifiedSections suppresses per-seat rendering for the listed
	// section ids even when a seat grid is defined.
	SimplifiedSections map[string]bool
}

// Line is a stroke between two points, used for stage decorations.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Circle is a stroked circle, used for stage decorations.
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// StageShape is the rendered stage or field.
type StageShape struct {
	Rect    layout.Rect `json:"rect"`
	Kind    string      `json:"kind"` // "stage" or "field"
	Lines   []Line      `json:"lines,omitempty"`
	Circles []Circle    `json:"circles,omitempty"`
}

// SeatShape is one rendered seat.
type SeatShape struct {
	ID     string      `json:"id"`
	Rect   layout.Rect `json:"rect"`
	Status SeatStatus  `json:"status"`
	Color  string      `json:"color"`
}

// LabelShape is positioned text.
type LabelShape struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// SectionShape is one rendered section with its optional seat grid.
type SectionShape struct {
	ID    string      `json:"id"`
	Rect  layout.Rect `json:"rect"`
	Color string      `json:"color"`
	Label LabelShape  `json:"label"`
	Seats []SeatShape `json:"seats,omitempty"`
}

// ObjectShape is one rendered venue object.
type ObjectShape struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Rect     layout.Rect `json:"rect"`
	Label    string      `json:"label,omitempty"`
	Color    string      `json:"color,omitempty"`
	Rotation float64     `json:"rotation,omitempty"`
}

// Scene is the full vector output.
type Scene struct {
	Viewport layout.Rect    `json:"viewport"`
	Stage    StageShape     `json:"stage"`
	Sections []SectionShape `json:"sections"`
	Objects  []ObjectShape  `json:"objects"`
}

// Render produces the scene for a seating map.
func Render(m *layout.SeatingMap, opts Options) *Scene {
	scene := &Scene{
		Viewport: viewport(m),
		Stage:    renderStage(m),
		Sections: make([]SectionShape, 0, len(m.Sections)),
		Objects:  make([]ObjectShape, 0, len(m.VenueObjects)),
	}

	for i := range m.Sections {
		s := &m.Sections[i]
		shape := SectionShape{
			ID:    s.ID,
			Rect:  s.Rect(),
			Color: sectionColor(s, opts),
			Label: sectionLabel(s),
		}
		if s.Rows > 0 && s.SeatsPerRow > 0 && !opts.SimplifiedSections[s.ID] {
			shape.Seats = renderSeats(s, opts)
		}
		scene.Sections = append(scene.Sections, shape)
	}

	for i := range m.VenueObjects {
		o := &m.VenueObjects[i]
		scene.Objects = append(scene.Objects, ObjectShape{
			ID:       o.ID,
			Type:     o.Type,
			Rect:     o.Rect(),
			Label:    o.Label,
			Color:    o.Color,
			Rotation: o.Rotation,
		})
	}
	return scene
}

// viewport computes a bounding box that fits the stage, every section and
// every venue object with padding. Arena layouts get a wider minimum aspect
// ratio so the surrounding sections stay visible.
func viewport(m *layout.SeatingMap) layout.Rect {
	minX, minY := m.Stage.X, m.Stage.Y
	maxX := m.Stage.X + m.Stage.Width
	maxY := m.Stage.Y + m.Stage.Height

	extend := func(r layout.Rect) {
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.X+r.Width > maxX {
			maxX = r.X + r.Width
		}
		if r.Y+r.Height > maxY {
			maxY = r.Y + r.Height
		}
	}
	for i := range m.Sections {
		extend(m.Sections[i].Rect())
	}
	for i := range m.VenueObjects {
		extend(m.VenueObjects[i].Rect())
	}

	vp := layout.Rect{
		X:      minX - viewportPadding,
		Y:      minY - viewportPadding,
		Width:  maxX - minX + 2*viewportPadding,
		Height: maxY - minY + 2*viewportPadding,
	}
	if m.LayoutType.IsArena() && vp.Width < vp.Height*arenaAspectRatio {
		target := vp.Height * arenaAspectRatio
		vp.X -= (target - vp.Width) / 2
		vp.Width = target
	}
	return vp
}

// renderStage draws the stage with layout-specific decoration: field
// markings (midline and center circle) for the sports layouts, a plain
// rectangle otherwise.
func renderStage(m *layout.SeatingMap) StageShape {
	st := StageShape{Rect: m.Stage, Kind: "stage"}
	if !m.LayoutType.IsSports() {
		return st
	}
	st.Kind = "field"
	cx := m.Stage.X + m.Stage.Width/2
	cy := m.Stage.Y + m.Stage.Height/2
	st.Lines = []Line{{X1: cx, Y1: m.Stage.Y, X2: cx, Y2: m.Stage.Y + m.Stage.Height}}
	radius := m.Stage.Height / 6
	if m.LayoutType == layout.LayoutBasketballArena {
		radius = m.Stage.Height / 8
	}
	st.Circles = []Circle{{CX: cx, CY: cy, R: radius}}
	return st
}

func sectionColor(s *layout.Section, opts Options) string {
	if c, ok := opts.TicketColors[s.TicketType]; ok && c != "" {
		return c
	}
	return fallbackColor
}

func sectionLabel(s *layout.Section) LabelShape {
	x, y := s.LabelX, s.LabelY
	if x == 0 && y == 0 {
		x = s.X + s.Width/2
		y = s.Y + s.Height/2
	}
	return LabelShape{X: x, Y: y, Text: s.Name}
}

// renderSeats lays the section's seat grid out inside its rectangle. Seat
// ids are the section id plus row label and seat number, matching the ids
// used for status annotations.
func renderSeats(s *layout.Section, opts Options) []SeatShape {
	seatW := (s.Width - 2*seatInset - float64(s.SeatsPerRow-1)*seatGap) / float64(s.SeatsPerRow)
	seatH := (s.Height - 2*seatInset - float64(s.Rows-1)*seatGap) / float64(s.Rows)
	if seatW <= 0 || seatH <= 0 {
		return nil
	}

	seats := make([]SeatShape, 0, s.Rows*s.SeatsPerRow)
	for r := 0; r < s.Rows; r++ {
		rowLabel := rowLabelFor(r)
		for c := 0; c < s.SeatsPerRow; c++ {
			id := fmt.Sprintf("%s-%s%d", s.ID, rowLabel, c+1)
			status := SeatAvailable
			if st, ok := opts.SeatStatuses[id]; ok {
				status = st
			}
			seats = append(seats, SeatShape{
				ID: id,
				Rect: layout.Rect{
					X:      s.X + seatInset + float64(c)*(seatW+seatGap),
					Y:      s.Y + seatInset + float64(r)*(seatH+seatGap),
					Width:  seatW,
					Height: seatH,
				},
				Status: status,
				Color:  statusColors[status],
			})
		}
	}
	return seats
}

// rowLabelFor produces A..Z then AA, AB, ... for deep sections.
func rowLabelFor(row int) string {
	label := ""
	for {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
		if row < 0 {
			return label
		}
	}
}
