package layout

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// LayoutType identifies a venue archetype. It controls the default stage
// geometry and which arrangement strategy applies.
type LayoutType string

const (
	LayoutTheater         LayoutType = "theater"
	LayoutConcert         LayoutType = "concert"
	LayoutStadium         LayoutType = "stadium"
	LayoutFootballStadium LayoutType = "footballStadium"
	LayoutBasketballArena LayoutType = "basketballArena"
	LayoutOutdoor         LayoutType = "outdoor"
	LayoutCustom          LayoutType = "custom"
)

// ValidLayoutTypes lists every accepted layout type, in display order.
var ValidLayoutTypes = []LayoutType{
	LayoutTheater,
	LayoutConcert,
	LayoutStadium,
	LayoutFootballStadium,
	LayoutBasketballArena,
	LayoutOutdoor,
	LayoutCustom,
}

// IsValid reports whether t is a known layout type.
func (t LayoutType) IsValid() bool {
	for _, v := range ValidLayoutTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsArena reports whether sections surround the stage (field/court) instead
// of sitting in a grid below it.
func (t LayoutType) IsArena() bool {
	return t == LayoutFootballStadium || t == LayoutBasketballArena
}

// IsSports reports whether the stage represents a playing field or court.
func (t LayoutType) IsSports() bool {
	return t == LayoutStadium || t == LayoutFootballStadium || t == LayoutBasketballArena
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Intersects reports whether r and o overlap after both are inflated by
// margin on every side.
func (r Rect) Intersects(o Rect, margin float64) bool {
	return r.X-margin < o.X+o.Width+margin &&
		r.X+r.Width+margin > o.X-margin &&
		r.Y-margin < o.Y+o.Height+margin &&
		r.Y+r.Height+margin > o.Y-margin
}

// Section is a rectangular seating zone. Rows/SeatsPerRow describe the
// optional subdivision into individual seats; Capacity is the explicit
// override used when no subdivision is present.
type Section struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Rows         int     `json:"rows,omitempty"`
	SeatsPerRow  int     `json:"seatsPerRow,omitempty"`
	Capacity     int     `json:"capacity,omitempty"`
	TicketTypeID string  `json:"ticketTypeId,omitempty"`
	TicketType   string  `json:"ticketType,omitempty"`
	LabelX       float64 `json:"labelX,omitempty"`
	LabelY       float64 `json:"labelY,omitempty"`
}

// Rect returns the section's bounding rectangle.
func (s *Section) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// TotalSeats derives the section capacity. A section subdivided into rows is
// always rows x seatsPerRow; otherwise the explicit capacity applies.
func (s *Section) TotalSeats() int {
	if s.Rows > 0 && s.SeatsPerRow > 0 {
		return s.Rows * s.SeatsPerRow
	}
	return s.Capacity
}

// RecomputeLabel re-anchors the label at the section centroid.
func (s *Section) RecomputeLabel() {
	s.LabelX = s.X + s.Width/2
	s.LabelY = s.Y + s.Height/2 - labelOffset
}

// VenueObject is a decorative/informational marker. It never participates in
// overlap resolution.
type VenueObject struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Label    string  `json:"label,omitempty"`
	Color    string  `json:"color,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Rect returns the object's bounding rectangle.
func (o *VenueObject) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// SeatingMap is the full in-memory venue layout. Section order is insertion
// order and is never re-sorted.
type SeatingMap struct {
	LayoutType   LayoutType    `json:"layoutType"`
	Stage        Rect          `json:"stage"`
	Sections     []Section     `json:"sections"`
	VenueObjects []VenueObject `json:"venueObjects"`
}

const (
	// DefaultSectionWidth and DefaultSectionHeight size a freshly created
	// section before the user resizes it.
	DefaultSectionWidth  = 300.0
	DefaultSectionHeight = 150.0

	// DefaultRows and DefaultSeatsPerRow give a new section a 5x10 grid.
	DefaultRows        = 5
	DefaultSeatsPerRow = 10

	labelOffset = 10.0
)

// defaultStages maps each layout type to its default stage (or field)
// rectangle in canvas units.
var defaultStages = map[LayoutType]Rect{
	LayoutTheater:         {X: 350, Y: 50, Width: 500, Height: 120},
	LayoutConcert:         {X: 300, Y: 40, Width: 600, Height: 140},
	LayoutStadium:         {X: 250, Y: 60, Width: 700, Height: 160},
	LayoutFootballStadium: {X: 300, Y: 200, Width: 600, Height: 360},
	LayoutBasketballArena: {X: 350, Y: 220, Width: 500, Height: 280},
	LayoutOutdoor:         {X: 300, Y: 50, Width: 600, Height: 130},
	LayoutCustom:          {X: 350, Y: 60, Width: 500, Height: 120},
}

// DefaultStage returns the default stage rectangle for a layout type.
func DefaultStage(t LayoutType) Rect {
	if r, ok := defaultStages[t]; ok {
		return r
	}
	return defaultStages[LayoutCustom]
}

// NewDefault builds an empty seating map for the given layout type. Unknown
// types degrade to the custom layout rather than failing.
func NewDefault(t LayoutType) *SeatingMap {
	if !t.IsValid() {
		t = LayoutCustom
	}
	return &SeatingMap{
		LayoutType:   t,
		Stage:        DefaultStage(t),
		Sections:     []Section{},
		VenueObjects: []VenueObject{},
	}
}

// Clone returns a deep copy of the map.
func (m *SeatingMap) Clone() *SeatingMap {
	c := &SeatingMap{
		LayoutType:   m.LayoutType,
		Stage:        m.Stage,
		Sections:     make([]Section, len(m.Sections)),
		VenueObjects: make([]VenueObject, len(m.VenueObjects)),
	}
	copy(c.Sections, m.Sections)
	copy(c.VenueObjects, m.VenueObjects)
	return c
}

// Equal reports structural equality. It is the deduplication predicate for
// the designer history stack.
func (m *SeatingMap) Equal(o *SeatingMap) bool {
	if m == nil || o == nil {
		return m == o
	}
	return reflect.DeepEqual(m, o)
}

// Section returns the section with the given id, or nil.
func (m *SeatingMap) Section(id string) *Section {
	for i := range m.Sections {
		if m.Sections[i].ID == id {
			return &m.Sections[i]
		}
	}
	return nil
}

// VenueObject returns the venue object with the given id, or nil.
func (m *SeatingMap) VenueObject(id string) *VenueObject {
	for i := range m.VenueObjects {
		if m.VenueObjects[i].ID == id {
			return &m.VenueObjects[i]
		}
	}
	return nil
}

// TotalCapacity sums the derived capacity of every section.
func (m *SeatingMap) TotalCapacity() int {
	total := 0
	for i := range m.Sections {
		total += m.Sections[i].TotalSeats()
	}
	return total
}

// Validate checks the map invariants: a valid layout type, no duplicate
// section ids, and finite, non-negative geometry with positive dimensions.
func (m *SeatingMap) Validate() error {
	if !m.LayoutType.IsValid() {
		return fmt.Errorf("invalid layout type: %s", m.LayoutType)
	}
	seen := make(map[string]bool, len(m.Sections))
	for i := range m.Sections {
		s := &m.Sections[i]
		if s.ID == "" {
			return fmt.Errorf("section %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id: %s", s.ID)
		}
		seen[s.ID] = true
		if err := validRect(s.Rect()); err != nil {
			return fmt.Errorf("section %s: %w", s.ID, err)
		}
	}
	for i := range m.VenueObjects {
		o := &m.VenueObjects[i]
		if o.ID == "" {
			return fmt.Errorf("venue object %d has no id", i)
		}
		if err := validRect(o.Rect()); err != nil {
			return fmt.Errorf("venue object %s: %w", o.ID, err)
		}
	}
	return nil
}

func validRect(r Rect) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite coordinate")
		}
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("negative position (%.1f, %.1f)", r.X, r.Y)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("non-positive dimensions (%.1f x %.1f)", r.Width, r.Height)
	}
	return nil
}

// newElementID builds a unique element id from the creation timestamp plus a
// random suffix. Ids are never reused, even across delete/recreate cycles.
func newElementID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
