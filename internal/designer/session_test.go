package designer

import (
	"context"
	"testing"

	"seatly/internal/layout"
	"seatly/internal/tickets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession("sess-1", "user-1", layout.LayoutTheater, nil)
}

// addSection drives the add-section tool once and returns the new id.
func addSection(t *testing.T, s *Session, at layout.Point) string {
	t.Helper()
	require.NoError(t, s.SetMode(ModeAddSection))
	id := s.Click(at)
	require.NotEmpty(t, id)
	return id
}

func TestNewSession_DefaultsForNilModel(t *testing.T) {
	s := newTestSession()
	m := s.Model()
	assert.Equal(t, layout.LayoutTheater, m.LayoutType)
	assert.Empty(t, m.Sections)
	assert.Equal(t, ModeSelect, s.Mode())

	_, _, mode, sel, h := s.State()
	assert.Equal(t, ModeSelect, mode)
	assert.True(t, sel.None())
	assert.Equal(t, 1, h.Length)
	assert.False(t, h.CanUndo)
}

func TestNewSession_ClonesInitialModel(t *testing.T) {
	initial := layout.NewDefault(layout.LayoutConcert)
	initial.CreateSection(layout.Point{X: 400, Y: 300}, nil)
	s := NewSession("sess-2", "user-1", layout.LayoutConcert, initial)

	initial.Sections[0].Name = "Mutated Outside"
	assert.NotEqual(t, "Mutated Outside", s.Model().Sections[0].Name)
}

func TestSession_SetMode(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetMode(ModeAddObject))
	assert.Equal(t, ModeAddObject, s.Mode())
	assert.Error(t, s.SetMode("paint"))
}

func TestSession_Click_AddSectionMode(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetMode(ModeAddSection))

	id := s.Click(layout.Point{X: 500, Y: 300})
	require.NotEmpty(t, id)

	m := s.Model()
	require.Len(t, m.Sections, 1)
	assert.Equal(t, 350.0, m.Sections[0].X)
	assert.Equal(t, 225.0, m.Sections[0].Y)

	// The tool snaps back to select and the new section is selected.
	_, _, mode, sel, h := s.State()
	assert.Equal(t, ModeSelect, mode)
	assert.Equal(t, Selection{Kind: layout.KindSection, ID: id}, sel)
	assert.Equal(t, 2, h.Length)
	assert.True(t, h.CanUndo)
}

func TestSession_Click_SelectModeIsNoop(t *testing.T) {
	s := newTestSession()
	assert.Empty(t, s.Click(layout.Point{X: 500, Y: 300}))
	assert.Empty(t, s.Model().Sections)
}

func TestSession_AddObject(t *testing.T) {
	s := newTestSession()
	id := s.AddObject("restroom")
	require.NotEmpty(t, id)

	m := s.Model()
	require.Len(t, m.VenueObjects, 1)
	assert.Equal(t, "Restroom", m.VenueObjects[0].Label)

	_, _, _, sel, _ := s.State()
	assert.Equal(t, Selection{Kind: layout.KindVenueObject, ID: id}, sel)
}

func TestSession_Select(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})

	assert.True(t, s.Select(layout.KindSection, id))
	assert.False(t, s.Select(layout.KindSection, "gone"))
	assert.False(t, s.Select(layout.KindVenueObject, "gone"))
	assert.True(t, s.Select(layout.KindStage, ""))

	assert.True(t, s.Select("", ""))
	_, _, _, sel, _ := s.State()
	assert.True(t, sel.None())
}

func TestSession_DragCommitsOnce(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})
	_, _, _, _, before := s.State()

	require.True(t, s.StartDrag(layout.KindSection, id, layout.Point{X: 100, Y: 100}, 2, layout.Point{}))
	require.True(t, s.DragMove(layout.Point{X: 140, Y: 160}))
	require.True(t, s.DragMove(layout.Point{X: 180, Y: 220}))

	// Live moves are visible but not yet in history.
	m := s.Model()
	assert.Equal(t, 250.0+40.0, m.Sections[0].X)
	assert.Equal(t, 225.0+60.0, m.Sections[0].Y)
	_, _, _, _, during := s.State()
	assert.Equal(t, before.Length, during.Length)

	require.True(t, s.EndDrag())
	_, _, _, _, after := s.State()
	assert.Equal(t, before.Length+1, after.Length)

	assert.False(t, s.EndDrag())
	assert.False(t, s.DragMove(layout.Point{X: 0, Y: 0}))
}

func TestSession_DragScalesPointerDeltaByZoom(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})

	require.True(t, s.StartDrag(layout.KindSection, id, layout.Point{X: 0, Y: 0}, 0.5, layout.Point{}))
	require.True(t, s.DragMove(layout.Point{X: 10, Y: 20}))

	m := s.Model()
	assert.Equal(t, 250.0+20.0, m.Sections[0].X)
	assert.Equal(t, 225.0+40.0, m.Sections[0].Y)
}

func TestSession_StartDrag_RequiresSelectModeAndLiveElement(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})

	require.NoError(t, s.SetMode(ModeAddSection))
	assert.False(t, s.StartDrag(layout.KindSection, id, layout.Point{}, 1, layout.Point{}))

	require.NoError(t, s.SetMode(ModeSelect))
	assert.False(t, s.StartDrag(layout.KindSection, "gone", layout.Point{}, 1, layout.Point{}))
	assert.True(t, s.StartDrag(layout.KindStage, "", layout.Point{}, 1, layout.Point{}))
}

func TestSession_ApplySectionPatch(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})

	require.True(t, s.ApplySectionPatch(id, layout.SectionPatch{"name": "Orchestra", "ticketType": "Premium"}))
	assert.False(t, s.ApplySectionPatch("gone", layout.SectionPatch{"name": "x"}))

	m := s.Model()
	assert.Equal(t, "Orchestra", m.Sections[0].Name)

	// The ticket catalog follows the committed section edit.
	c := s.Catalog()
	require.Len(t, c.Types, 1)
	assert.Equal(t, "Premium", c.Types[0].Name)
	assert.Equal(t, 50, c.Types[0].Quantity)
}

func TestSession_DeleteSection_ClearsSelection(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})
	keep := addSection(t, s, layout.Point{X: 700, Y: 300})

	require.True(t, s.Select(layout.KindSection, id))
	require.True(t, s.DeleteSection(id))
	_, _, _, sel, _ := s.State()
	assert.True(t, sel.None())

	require.True(t, s.Select(layout.KindSection, keep))
	require.True(t, s.DeleteSection(keep))
	assert.False(t, s.DeleteSection(keep))
}

func TestSession_DeleteObject(t *testing.T) {
	s := newTestSession()
	id := s.AddObject("food")
	require.True(t, s.DeleteObject(id))
	_, _, _, sel, _ := s.State()
	assert.True(t, sel.None())
	assert.False(t, s.DeleteObject(id))
}

func TestSession_UndoRedoRoundTrip(t *testing.T) {
	s := newTestSession()
	addSection(t, s, layout.Point{X: 400, Y: 300})
	addSection(t, s, layout.Point{X: 700, Y: 300})

	require.True(t, s.Undo())
	assert.Len(t, s.Model().Sections, 1)
	_, _, _, sel, _ := s.State()
	assert.True(t, sel.None())

	require.True(t, s.Undo())
	assert.Empty(t, s.Model().Sections)
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	assert.Len(t, s.Model().Sections, 2)
	assert.False(t, s.Redo())
}

func TestSession_UndoResyncsCatalog(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})
	require.True(t, s.ApplySectionPatch(id, layout.SectionPatch{"ticketType": "General"}))
	require.Len(t, s.Catalog().Types, 1)

	// Undo back past the patch: the catalog regenerates from the restored
	// sections, which carry no ticket type.
	require.True(t, s.Undo())
	assert.Empty(t, s.Catalog().Types)
}

func TestSession_Arrange(t *testing.T) {
	s := newTestSession()
	addSection(t, s, layout.Point{X: 400, Y: 300})
	addSection(t, s, layout.Point{X: 400, Y: 300})
	require.True(t, layoutHasOverlap(s.Model()))

	adjusted := s.Arrange()
	assert.True(t, adjusted)
	assert.False(t, layoutHasOverlap(s.Model()))

	// The arrangement is one undoable step.
	require.True(t, s.Undo())
	assert.True(t, layoutHasOverlap(s.Model()))

	// Arranging an already clean map reports no adjustment.
	require.True(t, s.Redo())
	assert.False(t, s.Arrange())
}

// layoutHasOverlap is a local pairwise check so the test does not depend on
// the arrange package's margin semantics.
func layoutHasOverlap(m *layout.SeatingMap) bool {
	for i := 0; i < len(m.Sections); i++ {
		for j := i + 1; j < len(m.Sections); j++ {
			if m.Sections[i].Rect().Intersects(m.Sections[j].Rect(), 0) {
				return true
			}
		}
	}
	return false
}

func TestSession_EditTicket(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})
	require.True(t, s.ApplySectionPatch(id, layout.SectionPatch{"ticketType": "VIP"}))
	_, _, _, _, before := s.State()

	price := 150.0
	require.NoError(t, s.EditTicket("VIP", tickets.EditRequest{Price: &price}))
	c := s.Catalog()
	assert.Equal(t, tickets.ModeManual, c.Mode)
	assert.Equal(t, 150.0, c.Types[0].Price)

	// Ticket edits are not part of the seating-map history.
	_, _, _, _, after := s.State()
	assert.Equal(t, before.Length, after.Length)

	assert.Error(t, s.EditTicket("Backstage", tickets.EditRequest{Price: &price}))
}

func TestSession_ResetTickets(t *testing.T) {
	s := newTestSession()
	id := addSection(t, s, layout.Point{X: 400, Y: 300})
	require.True(t, s.ApplySectionPatch(id, layout.SectionPatch{"ticketType": "VIP"}))

	price := 99.0
	require.NoError(t, s.EditTicket("VIP", tickets.EditRequest{Price: &price}))
	require.Equal(t, tickets.ModeManual, s.Catalog().Mode)

	s.ResetTickets()
	assert.Equal(t, tickets.ModeAuto, s.Catalog().Mode)
}

func TestSession_SubscriberReceivesCommits(t *testing.T) {
	s := newTestSession()
	var calls int
	var lastSections int
	s.Subscribe(func(m *layout.SeatingMap, c *tickets.Catalog) {
		calls++
		lastSections = len(m.Sections)
	})

	addSection(t, s, layout.Point{X: 400, Y: 300})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, lastSections)

	require.True(t, s.Undo())
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, lastSections)
}

func TestManager_CreateGetClose(t *testing.T) {
	m := NewManager(nil)
	s := m.Create("user-1", layout.LayoutTheater, nil)
	require.NotNil(t, s)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("missing")
	assert.ErrorContains(t, err, "session not found")

	m.Close(s.ID)
	assert.Equal(t, 0, m.Count())
	_, err = m.Get(s.ID)
	assert.Error(t, err)
}

func TestManager_DraftsUnavailableWithoutRedis(t *testing.T) {
	m := NewManager(nil)
	s := m.Create("user-1", layout.LayoutTheater, nil)

	err := m.SaveDraft(context.Background(), s)
	assert.ErrorContains(t, err, "draft storage not available")

	_, err = m.RestoreDraft(context.Background(), s.ID, "user-1")
	assert.ErrorContains(t, err, "draft storage not available")
}
