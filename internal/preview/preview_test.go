package preview

import (
	"testing"

	"seatly/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func theaterMap() *layout.SeatingMap {
	m := layout.NewDefault(layout.LayoutTheater)
	m.Sections = []layout.Section{
		{
			ID: "s1", Name: "Orchestra", X: 350, Y: 250, Width: 300, Height: 150,
			Rows: 2, SeatsPerRow: 3, TicketType: "VIP",
			LabelX: 500, LabelY: 315,
		},
		{
			ID: "s2", Name: "Balcony", X: 700, Y: 250, Width: 200, Height: 120,
			Capacity: 80, TicketType: "General",
		},
	}
	m.VenueObjects = []layout.VenueObject{
		{ID: "o1", Type: "entrance", X: 50, Y: 50, Width: 80, Height: 40, Label: "Entrance", Color: "#4ade80"},
	}
	return m
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	m := theaterMap()
	before := m.Clone()
	Render(m, Options{SeatStatuses: map[string]SeatStatus{"s1-A1": SeatSold}})
	assert.True(t, m.Equal(before))
}

func TestRender_SceneShape(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{})
	require.NotNil(t, scene)
	require.Len(t, scene.Sections, 2)
	require.Len(t, scene.Objects, 1)

	assert.Equal(t, "s1", scene.Sections[0].ID)
	assert.Equal(t, m.Sections[0].Rect(), scene.Sections[0].Rect)
	assert.Equal(t, "Orchestra", scene.Sections[0].Label.Text)
	assert.Equal(t, 500.0, scene.Sections[0].Label.X)

	assert.Equal(t, "o1", scene.Objects[0].ID)
	assert.Equal(t, "entrance", scene.Objects[0].Type)
	assert.Equal(t, "Entrance", scene.Objects[0].Label)
}

func TestRender_ViewportFitsEverythingWithPadding(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{})
	vp := scene.Viewport

	contains := func(r layout.Rect) {
		assert.LessOrEqual(t, vp.X, r.X)
		assert.LessOrEqual(t, vp.Y, r.Y)
		assert.GreaterOrEqual(t, vp.X+vp.Width, r.X+r.Width)
		assert.GreaterOrEqual(t, vp.Y+vp.Height, r.Y+r.Height)
	}
	contains(m.Stage)
	for i := range m.Sections {
		contains(m.Sections[i].Rect())
	}
	for i := range m.VenueObjects {
		contains(m.VenueObjects[i].Rect())
	}

	// Leftmost element is the entrance at x=50; padding is applied outside it.
	assert.Equal(t, 50.0-40.0, vp.X)
}

func TestRender_ArenaViewportKeepsWideAspect(t *testing.T) {
	m := layout.NewDefault(layout.LayoutBasketballArena)
	m.Sections = []layout.Section{
		{ID: "s1", X: 0, Y: 220, Width: 200, Height: 900, Capacity: 100, TicketType: "Lower"},
	}
	scene := Render(m, Options{})
	vp := scene.Viewport
	assert.GreaterOrEqual(t, vp.Width, vp.Height*16.0/9.0)
}

func TestRender_StageKindByLayout(t *testing.T) {
	scene := Render(layout.NewDefault(layout.LayoutTheater), Options{})
	assert.Equal(t, "stage", scene.Stage.Kind)
	assert.Empty(t, scene.Stage.Lines)
	assert.Empty(t, scene.Stage.Circles)

	scene = Render(layout.NewDefault(layout.LayoutFootballStadium), Options{})
	assert.Equal(t, "field", scene.Stage.Kind)
	require.Len(t, scene.Stage.Lines, 1)
	require.Len(t, scene.Stage.Circles, 1)
	// Midline splits the field vertically.
	field := scene.Stage.Rect
	assert.Equal(t, field.X+field.Width/2, scene.Stage.Lines[0].X1)
	assert.Equal(t, field.Height/6, scene.Stage.Circles[0].R)

	scene = Render(layout.NewDefault(layout.LayoutBasketballArena), Options{})
	require.Len(t, scene.Stage.Circles, 1)
	assert.Equal(t, scene.Stage.Rect.Height/8, scene.Stage.Circles[0].R)
}

func TestRender_SeatGridIDsAndStatuses(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{
		SeatStatuses: map[string]SeatStatus{
			"s1-A2": SeatSold,
			"s1-B1": SeatSelected,
		},
	})

	seats := scene.Sections[0].Seats
	require.Len(t, seats, 6)

	byID := make(map[string]SeatShape, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}
	require.Contains(t, byID, "s1-A1")
	require.Contains(t, byID, "s1-B3")

	assert.Equal(t, SeatAvailable, byID["s1-A1"].Status)
	assert.Equal(t, "#22c55e", byID["s1-A1"].Color)
	assert.Equal(t, SeatSold, byID["s1-A2"].Status)
	assert.Equal(t, "#ef4444", byID["s1-A2"].Color)
	assert.Equal(t, SeatSelected, byID["s1-B1"].Status)
	assert.Equal(t, "#3b82f6", byID["s1-B1"].Color)

	// Seats stay inside their section rectangle.
	sec := m.Sections[0].Rect()
	for _, seat := range seats {
		assert.GreaterOrEqual(t, seat.Rect.X, sec.X)
		assert.GreaterOrEqual(t, seat.Rect.Y, sec.Y)
		assert.LessOrEqual(t, seat.Rect.X+seat.Rect.Width, sec.X+sec.Width)
		assert.LessOrEqual(t, seat.Rect.Y+seat.Rect.Height, sec.Y+sec.Height)
	}
}

func TestRender_NoGridNoSeats(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{})
	// s2 has only an explicit capacity, so it renders as a block.
	assert.Empty(t, scene.Sections[1].Seats)
}

func TestRender_SimplifiedSectionSkipsSeats(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{SimplifiedSections: map[string]bool{"s1": true}})
	assert.Empty(t, scene.Sections[0].Seats)
}

func TestRender_TicketColors(t *testing.T) {
	m := theaterMap()
	scene := Render(m, Options{TicketColors: map[string]string{"VIP": "#8b5cf6"}})
	assert.Equal(t, "#8b5cf6", scene.Sections[0].Color)
	// No color mapped for General: fall back to the neutral fill.
	assert.Equal(t, "#9ca3af", scene.Sections[1].Color)
}

func TestRender_LabelFallsBackToCentroid(t *testing.T) {
	m := theaterMap()
	m.Sections[1].LabelX, m.Sections[1].LabelY = 0, 0
	scene := Render(m, Options{})
	s := m.Sections[1]
	assert.Equal(t, s.X+s.Width/2, scene.Sections[1].Label.X)
	assert.Equal(t, s.Y+s.Height/2, scene.Sections[1].Label.Y)
}

func TestRender_DeterministicScene(t *testing.T) {
	m := theaterMap()
	opts := Options{
		SeatStatuses: map[string]SeatStatus{"s1-A1": SeatSold},
		TicketColors: map[string]string{"VIP": "#8b5cf6"},
	}
	a := Render(m, opts)
	b := Render(m, opts)
	assert.Equal(t, a, b)
}

func TestRowLabels(t *testing.T) {
	assert.Equal(t, "A", rowLabelFor(0))
	assert.Equal(t, "Z", rowLabelFor(25))
	assert.Equal(t, "AA", rowLabelFor(26))
	assert.Equal(t, "AB", rowLabelFor(27))
	assert.Equal(t, "BA", rowLabelFor(52))
}
