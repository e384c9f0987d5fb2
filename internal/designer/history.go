package designer

import "seatly/internal/layout"

// History is a linear undo stack of full seating-map snapshots plus a
// cursor. Pushes are deduplicated against the current top by structural
// equality, and redo entries beyond the cursor are discarded on a new push.
type History struct {
	snapshots []*layout.SeatingMap
	cursor    int
}

// NewHistory seeds the stack with the initial model state.
func NewHistory(initial *layout.SeatingMap) *History {
	return &History{
		snapshots: []*layout.SeatingMap{initial.Clone()},
		cursor:    0,
	}
}

// Push records a committed mutation. Identical consecutive states do not
// grow the stack.
func (h *History) Push(m *layout.SeatingMap) {
	if m.Equal(h.snapshots[h.cursor]) {
		return
	}
	h.snapshots = append(h.snapshots[:h.cursor+1], m.Clone())
	h.cursor++
}

// Undo moves the cursor back and returns a copy of the snapshot there.
// At the bottom of the stack it is a no-op.
func (h *History) Undo() (*layout.SeatingMap, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo moves the cursor forward and returns a copy of the snapshot there.
// At the top of the stack it is a no-op.
func (h *History) Redo() (*layout.SeatingMap, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

// Len returns the number of snapshots on the stack.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the current cursor index.
func (h *History) Cursor() int { return h.cursor }

// CanUndo reports whether an undo would change state.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a redo would change state.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }
