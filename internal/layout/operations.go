package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementKind discriminates what a selection or drag refers to.
type ElementKind string

const (
	KindSection     ElementKind = "section"
	KindVenueObject ElementKind = "venueObject"
	KindStage       ElementKind = "stage"
)

// CreateSection allocates a new section centered on the clicked point with
// the default size and seat grid, assigns the first available ticket type,
// and returns the new section's id for immediate selection.
func (m *SeatingMap) CreateSection(at Point, ticketTypeNames []string) string {
	s := Section{
		ID:          newElementID("section"),
		Name:        fmt.Sprintf("Section %d", len(m.Sections)+1),
		X:           math.Max(0, at.X-DefaultSectionWidth/2),
		Y:           math.Max(0, at.Y-DefaultSectionHeight/2),
		Width:       DefaultSectionWidth,
		Height:      DefaultSectionHeight,
		Rows:        DefaultRows,
		SeatsPerRow: DefaultSeatsPerRow,
	}
	if len(ticketTypeNames) > 0 {
		s.TicketType = ticketTypeNames[0]
	}
	s.RecomputeLabel()
	m.Sections = append(m.Sections, s)
	return s.ID
}

// SectionPatch carries attribute-panel edits. Values arrive as raw JSON
// values (numbers or strings); numeric fields that fail coercion are
// rejected individually and the previous value is retained.
type SectionPatch map[string]any

// UpdateSection merges patch into the section matching id. Unknown id is a
// no-op returning false.
func (m *SeatingMap) UpdateSection(id string, patch SectionPatch) bool {
	s := m.Section(id)
	if s == nil {
		return false
	}
	for field, raw := range patch {
		switch field {
		case "name":
			if v, ok := raw.(string); ok {
				s.Name = v
			}
		case "ticketType":
			if v, ok := raw.(string); ok {
				s.TicketType = v
			}
		case "ticketTypeId":
			if v, ok := raw.(string); ok {
				s.TicketTypeID = v
			}
		case "x":
			if v, ok := coerceFloat(raw); ok && v >= 0 {
				s.X = v
			}
		case "y":
			if v, ok := coerceFloat(raw); ok && v >= 0 {
				s.Y = v
			}
		case "width":
			if v, ok := coerceFloat(raw); ok && v > 0 {
				s.Width = v
			}
		case "height":
			if v, ok := coerceFloat(raw); ok && v > 0 {
				s.Height = v
			}
		case "rows":
			if v, ok := coerceInt(raw); ok && v >= 0 {
				s.Rows = v
			}
		case "seatsPerRow":
			if v, ok := coerceInt(raw); ok && v >= 0 {
				s.SeatsPerRow = v
			}
		case "capacity":
			if v, ok := coerceInt(raw); ok && v >= 0 {
				s.Capacity = v
			}
		case "labelX":
			if v, ok := coerceFloat(raw); ok {
				s.LabelX = v
			}
		case "labelY":
			if v, ok := coerceFloat(raw); ok {
				s.LabelY = v
			}
		}
	}
	return true
}

// DeleteSection removes the section with the given id. Returns false when no
// such section exists.
func (m *SeatingMap) DeleteSection(id string) bool {
	for i := range m.Sections {
		if m.Sections[i].ID == id {
			m.Sections = append(m.Sections[:i], m.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// objectDefault describes the default label, color and size a venue object
// of a given type is created with.
type objectDefault struct {
	label  string
	color  string
	width  float64
	height float64
}

var objectDefaults = map[string]objectDefault{
	"entrance": {label: "Entrance", color: "#4ade80", width: 80, height: 40},
	"exit":     {label: "Exit", color: "#f87171", width: 80, height: 40},
	"restroom": {label: "Restroom", color: "#60a5fa", width: 60, height: 40},
	"food":     {label: "Food", color: "#fbbf24", width: 60, height: 40},
	"drinks":   {label: "Drinks", color: "#a78bfa", width: 60, height: 40},
	"info":     {label: "Info", color: "#94a3b8", width: 50, height: 40},
}

// DefaultObjectPosition is where new venue objects appear before the user
// drags them into place.
var DefaultObjectPosition = Point{X: 50, Y: 50}

// AddVenueObject creates a venue object of the given type at a fixed default
// position and returns its id. Unknown types get a generic marker.
func (m *SeatingMap) AddVenueObject(objType string) string {
	d, ok := objectDefaults[objType]
	if !ok {
		d = objectDefault{label: objType, color: "#94a3b8", width: 60, height: 40}
	}
	o := VenueObject{
		ID:     newElementID("object"),
		Type:   objType,
		X:      DefaultObjectPosition.X,
		Y:      DefaultObjectPosition.Y,
		Width:  d.width,
		Height: d.height,
		Label:  d.label,
		Color:  d.color,
	}
	m.VenueObjects = append(m.VenueObjects, o)
	return o.ID
}

// DeleteVenueObject removes the object with the given id. Returns false when
// no such object exists.
func (m *SeatingMap) DeleteVenueObject(id string) bool {
	for i := range m.VenueObjects {
		if m.VenueObjects[i].ID == id {
			m.VenueObjects = append(m.VenueObjects[:i], m.VenueObjects[i+1:]...)
			return true
		}
	}
	return false
}

// MoveElement repositions a section, venue object or the stage during a drag.
// Coordinates are clamped to non-negative values. Overlap is not checked
// here; the arrange pass resolves it at submission time so dragging stays
// responsive.
func (m *SeatingMap) MoveElement(kind ElementKind, id string, x, y float64) bool {
	x = math.Max(0, x)
	y = math.Max(0, y)
	switch kind {
	case KindSection:
		s := m.Section(id)
		if s == nil {
			return false
		}
		s.X, s.Y = x, y
		s.RecomputeLabel()
		return true
	case KindVenueObject:
		o := m.VenueObject(id)
		if o == nil {
			return false
		}
		o.X, o.Y = x, y
		return true
	case KindStage:
		m.Stage.X, m.Stage.Y = x, y
		return true
	}
	return false
}

// coerceFloat converts attribute-panel input to a finite float64. Strings
// and json.Number values are parsed; anything non-numeric is rejected.
func coerceFloat(raw any) (float64, bool) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func coerceInt(raw any) (int, bool) {
	f, ok := coerceFloat(raw)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
