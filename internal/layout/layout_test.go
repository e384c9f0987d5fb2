package layout

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault_KnownTypes(t *testing.T) {
	for _, lt := range ValidLayoutTypes {
		m := NewDefault(lt)
		assert.Equal(t, lt, m.LayoutType)
		assert.Equal(t, DefaultStage(lt), m.Stage)
		assert.Empty(t, m.Sections)
		assert.Empty(t, m.VenueObjects)
	}
}

func TestNewDefault_UnknownTypeFallsBackToCustom(t *testing.T) {
	m := NewDefault("amphitheatre")
	assert.Equal(t, LayoutCustom, m.LayoutType)
	assert.Equal(t, DefaultStage(LayoutCustom), m.Stage)
}

func TestLayoutType_Classification(t *testing.T) {
	assert.True(t, LayoutFootballStadium.IsArena())
	assert.True(t, LayoutBasketballArena.IsArena())
	assert.False(t, LayoutStadium.IsArena())
	assert.False(t, LayoutTheater.IsArena())

	assert.True(t, LayoutStadium.IsSports())
	assert.True(t, LayoutFootballStadium.IsSports())
	assert.False(t, LayoutConcert.IsSports())
}

func TestSection_TotalSeats(t *testing.T) {
	s := Section{Rows: 5, SeatsPerRow: 10, Capacity: 999}
	// A defined seat grid always wins over the explicit capacity.
	assert.Equal(t, 50, s.TotalSeats())

	s = Section{Capacity: 120}
	assert.Equal(t, 120, s.TotalSeats())

	s = Section{Rows: 5}
	assert.Equal(t, 0, s.TotalSeats())
}

func TestCreateSection_CentersOnClick(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.CreateSection(Point{X: 500, Y: 300}, []string{"VIP", "General"})
	require.NotEmpty(t, id)
	require.Len(t, m.Sections, 1)

	s := m.Section(id)
	require.NotNil(t, s)
	assert.Equal(t, "Section 1", s.Name)
	assert.Equal(t, 350.0, s.X)
	assert.Equal(t, 225.0, s.Y)
	assert.Equal(t, DefaultSectionWidth, s.Width)
	assert.Equal(t, DefaultSectionHeight, s.Height)
	assert.Equal(t, DefaultRows, s.Rows)
	assert.Equal(t, DefaultSeatsPerRow, s.SeatsPerRow)
	assert.Equal(t, "VIP", s.TicketType)
	assert.Equal(t, s.X+s.Width/2, s.LabelX)
}

func TestCreateSection_ClampsToCanvas(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.CreateSection(Point{X: 10, Y: 10}, nil)
	s := m.Section(id)
	require.NotNil(t, s)
	assert.Equal(t, 0.0, s.X)
	assert.Equal(t, 0.0, s.Y)
	assert.Empty(t, s.TicketType)
}

func TestCreateSection_SequentialNamesAndUniqueIDs(t *testing.T) {
	m := NewDefault(LayoutTheater)
	a := m.CreateSection(Point{X: 400, Y: 300}, nil)
	b := m.CreateSection(Point{X: 400, Y: 300}, nil)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "Section 1", m.Sections[0].Name)
	assert.Equal(t, "Section 2", m.Sections[1].Name)
}

func TestUpdateSection_MergesPatch(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.CreateSection(Point{X: 400, Y: 300}, nil)

	ok := m.UpdateSection(id, SectionPatch{
		"name":       "Balcony",
		"ticketType": "Premium",
		"x":          120.0,
		"rows":       8,
		"width":      "250",
	})
	require.True(t, ok)

	s := m.Section(id)
	assert.Equal(t, "Balcony", s.Name)
	assert.Equal(t, "Premium", s.TicketType)
	assert.Equal(t, 120.0, s.X)
	assert.Equal(t, 8, s.Rows)
	// Numeric strings from the attribute panel are accepted.
	assert.Equal(t, 250.0, s.Width)
}

func TestUpdateSection_RejectsBadValuesIndividually(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.CreateSection(Point{X: 400, Y: 300}, nil)
	s := m.Section(id)
	prevWidth, prevRows, prevX := s.Width, s.Rows, s.X

	ok := m.UpdateSection(id, SectionPatch{
		"width": "wide",
		"rows":  2.5,
		"x":     -40.0,
		"name":  "Still Applied",
	})
	require.True(t, ok)

	s = m.Section(id)
	assert.Equal(t, prevWidth, s.Width)
	assert.Equal(t, prevRows, s.Rows)
	assert.Equal(t, prevX, s.X)
	assert.Equal(t, "Still Applied", s.Name)
}

func TestUpdateSection_UnknownID(t *testing.T) {
	m := NewDefault(LayoutTheater)
	assert.False(t, m.UpdateSection("missing", SectionPatch{"name": "x"}))
}

func TestDeleteSection(t *testing.T) {
	m := NewDefault(LayoutTheater)
	a := m.CreateSection(Point{X: 400, Y: 300}, nil)
	b := m.CreateSection(Point{X: 700, Y: 300}, nil)

	assert.True(t, m.DeleteSection(a))
	assert.Len(t, m.Sections, 1)
	assert.Equal(t, b, m.Sections[0].ID)
	assert.False(t, m.DeleteSection(a))
}

func TestAddVenueObject_KnownAndUnknownTypes(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.AddVenueObject("entrance")
	o := m.VenueObject(id)
	require.NotNil(t, o)
	assert.Equal(t, "Entrance", o.Label)
	assert.Equal(t, "#4ade80", o.Color)
	assert.Equal(t, 80.0, o.Width)
	assert.Equal(t, DefaultObjectPosition.X, o.X)

	id = m.AddVenueObject("merch-stand")
	o = m.VenueObject(id)
	require.NotNil(t, o)
	assert.Equal(t, "merch-stand", o.Label)
	assert.Equal(t, 60.0, o.Width)
}

func TestDeleteVenueObject(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.AddVenueObject("exit")
	assert.True(t, m.DeleteVenueObject(id))
	assert.False(t, m.DeleteVenueObject(id))
}

func TestMoveElement_ClampsAndRecomputesLabel(t *testing.T) {
	m := NewDefault(LayoutTheater)
	id := m.CreateSection(Point{X: 400, Y: 300}, nil)

	require.True(t, m.MoveElement(KindSection, id, -50, 80))
	s := m.Section(id)
	assert.Equal(t, 0.0, s.X)
	assert.Equal(t, 80.0, s.Y)
	assert.Equal(t, s.X+s.Width/2, s.LabelX)
	assert.Equal(t, s.Y+s.Height/2-10, s.LabelY)
}

func TestMoveElement_StageAndObject(t *testing.T) {
	m := NewDefault(LayoutTheater)
	require.True(t, m.MoveElement(KindStage, "", 100, 20))
	assert.Equal(t, 100.0, m.Stage.X)
	assert.Equal(t, 20.0, m.Stage.Y)

	id := m.AddVenueObject("info")
	require.True(t, m.MoveElement(KindVenueObject, id, 800, 10))
	o := m.VenueObject(id)
	assert.Equal(t, 800.0, o.X)

	assert.False(t, m.MoveElement(KindSection, "missing", 10, 10))
	assert.False(t, m.MoveElement("banner", "x", 10, 10))
}

func TestSeatingMap_TotalCapacity(t *testing.T) {
	m := NewDefault(LayoutTheater)
	m.Sections = []Section{
		{ID: "a", Width: 100, Height: 100, Rows: 4, SeatsPerRow: 6},
		{ID: "b", X: 200, Width: 100, Height: 100, Capacity: 80},
	}
	assert.Equal(t, 104, m.TotalCapacity())
}

func TestSeatingMap_Validate(t *testing.T) {
	m := NewDefault(LayoutTheater)
	m.CreateSection(Point{X: 400, Y: 300}, nil)
	assert.NoError(t, m.Validate())

	dup := m.Clone()
	dup.Sections = append(dup.Sections, dup.Sections[0])
	assert.ErrorContains(t, dup.Validate(), "duplicate section id")

	bad := m.Clone()
	bad.Sections[0].Width = 0
	assert.ErrorContains(t, bad.Validate(), "non-positive dimensions")

	nan := m.Clone()
	nan.Sections[0].X = math.NaN()
	assert.ErrorContains(t, nan.Validate(), "non-finite")

	unknown := m.Clone()
	unknown.LayoutType = "dome"
	assert.ErrorContains(t, unknown.Validate(), "invalid layout type")
}

func TestSeatingMap_CloneIsDeep(t *testing.T) {
	m := NewDefault(LayoutTheater)
	m.CreateSection(Point{X: 400, Y: 300}, nil)
	c := m.Clone()
	c.Sections[0].Name = "Changed"
	assert.NotEqual(t, c.Sections[0].Name, m.Sections[0].Name)
	assert.True(t, m.Equal(m.Clone()))
	assert.False(t, m.Equal(c))
}

func TestSeatingMap_JSONFieldNames(t *testing.T) {
	m := NewDefault(LayoutTheater)
	m.Sections = []Section{{
		ID: "s1", Name: "Floor", Width: 300, Height: 150,
		Rows: 5, SeatsPerRow: 10, TicketType: "General",
	}}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "layoutType")
	assert.Contains(t, decoded, "stage")
	assert.Contains(t, decoded, "venueObjects")

	sections := decoded["sections"].([]any)
	sec := sections[0].(map[string]any)
	assert.Contains(t, sec, "seatsPerRow")
	assert.Contains(t, sec, "ticketType")
}
