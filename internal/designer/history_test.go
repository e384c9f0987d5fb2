package designer

import (
	"testing"

	"seatly/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapWithSections(n int) *layout.SeatingMap {
	m := layout.NewDefault(layout.LayoutTheater)
	for i := 0; i < n; i++ {
		m.CreateSection(layout.Point{X: 400, Y: 300}, nil)
	}
	return m
}

func TestHistory_SeedState(t *testing.T) {
	h := NewHistory(mapWithSections(0))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistory_PushUndoRedo(t *testing.T) {
	m := mapWithSections(0)
	h := NewHistory(m)

	m.CreateSection(layout.Point{X: 400, Y: 300}, nil)
	h.Push(m)
	m.CreateSection(layout.Point{X: 700, Y: 300}, nil)
	h.Push(m)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	restored, ok := h.Undo()
	require.True(t, ok)
	assert.Len(t, restored.Sections, 1)
	assert.True(t, h.CanRedo())

	restored, ok = h.Undo()
	require.True(t, ok)
	assert.Empty(t, restored.Sections)
	assert.False(t, h.CanUndo())

	restored, ok = h.Redo()
	require.True(t, ok)
	assert.Len(t, restored.Sections, 1)

	restored, ok = h.Redo()
	require.True(t, ok)
	assert.Len(t, restored.Sections, 2)
	assert.False(t, h.CanRedo())
}

func TestHistory_DeduplicatesIdenticalPush(t *testing.T) {
	m := mapWithSections(1)
	h := NewHistory(m)

	h.Push(m.Clone())
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
}

func TestHistory_PushTruncatesRedoTail(t *testing.T) {
	m := mapWithSections(0)
	h := NewHistory(m)

	m.CreateSection(layout.Point{X: 400, Y: 300}, nil)
	h.Push(m)
	m.CreateSection(layout.Point{X: 700, Y: 300}, nil)
	h.Push(m)

	_, ok := h.Undo()
	require.True(t, ok)
	_, ok = h.Undo()
	require.True(t, ok)
	require.True(t, h.CanRedo())

	// A new branch from the past discards the redo entries.
	branch := mapWithSections(0)
	branch.AddVenueObject("entrance")
	h.Push(branch)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.False(t, h.CanRedo())

	restored, ok := h.Undo()
	require.True(t, ok)
	assert.Empty(t, restored.Sections)
	assert.Empty(t, restored.VenueObjects)
}

func TestHistory_ReturnsCopies(t *testing.T) {
	m := mapWithSections(1)
	h := NewHistory(m)
	m.CreateSection(layout.Point{X: 700, Y: 300}, nil)
	h.Push(m)

	restored, ok := h.Undo()
	require.True(t, ok)
	restored.Sections[0].Name = "Mutated"

	_, ok = h.Redo()
	require.True(t, ok)

	// Mutating the returned copy must not touch the stored snapshot.
	again, ok := h.Undo()
	require.True(t, ok)
	assert.NotEqual(t, "Mutated", again.Sections[0].Name)
}
