package designer

import (
	"fmt"
	"sync"
	"time"

	"seatly/internal/arrange"
	"seatly/internal/layout"
	"seatly/internal/tickets"
)

// Mode is the designer tool state. Transitions are explicit user actions;
// the only automatic one is add-section returning to select after a click.
type Mode string

const (
	ModeSelect     Mode = "select"
	ModeAddSection Mode = "add-section"
	ModeAddObject  Mode = "add-venue-object"
)

// IsValid reports whether m is a known designer mode.
func (m Mode) IsValid() bool {
	return m == ModeSelect || m == ModeAddSection || m == ModeAddObject
}

// Selection identifies the single selected element. The zero value means
// nothing is selected.
type Selection struct {
	Kind layout.ElementKind `json:"kind,omitempty"`
	ID   string             `json:"id,omitempty"`
}

// None reports whether nothing is selected.
func (s Selection) None() bool { return s.Kind == "" }

// dragState captures an in-progress drag gesture: the pointer and element
// start positions plus the zoom/pan transform active when it began. The
// state lives only between StartDrag and EndDrag, mirroring the scoped
// pointer-capture lifecycle of the editor.
type dragState struct {
	kind         layout.ElementKind
	id           string
	pointerStart layout.Point
	elementStart layout.Point
	zoom         float64
	pan          layout.Point
}

// Subscriber receives the full committed model and ticket catalog after
// every committed mutation. The session is the single owner of the model;
// subscribers get defensive copies.
type Subscriber func(m *layout.SeatingMap, c *tickets.Catalog)

// Session is a stateful editor over one seating map. All exported methods
// serialize on the session mutex, so concurrent HTTP handlers behave as a
// single mutator.
type Session struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time

	mu          sync.Mutex
	model       *layout.SeatingMap
	catalog     *tickets.Catalog
	mode        Mode
	selection   Selection
	drag        *dragState
	history     *History
	subscribers []Subscriber
	updatedAt   time.Time
}

// NewSession creates a designer session. A nil initial model is a
// recoverable degeneration: the session synthesizes a default empty map for
// the layout type instead of failing.
func NewSession(id, ownerID string, layoutType layout.LayoutType, initial *layout.SeatingMap) *Session {
	model := initial
	if model == nil {
		model = layout.NewDefault(layoutType)
	} else {
		model = model.Clone()
	}
	catalog := tickets.NewCatalog()
	catalog.SyncFromSections(model.Sections)

	now := time.Now().UTC()
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		CreatedAt: now,
		model:     model,
		catalog:   catalog,
		mode:      ModeSelect,
		history:   NewHistory(model),
		updatedAt: now,
	}
}

// Subscribe registers a commit listener.
func (s *Session) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Model returns a copy of the current model.
func (s *Session) Model() *layout.SeatingMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Clone()
}

// Catalog returns a copy of the current ticket catalog.
func (s *Session) Catalog() *tickets.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// HistoryInfo is a read-only snapshot of the undo stack shape.
type HistoryInfo struct {
	Length  int  `json:"length"`
	Cursor  int  `json:"cursor"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// State returns the pieces a client needs to mirror the session.
func (s *Session) State() (m *layout.SeatingMap, c *tickets.Catalog, mode Mode, sel Selection, h HistoryInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h = HistoryInfo{
		Length:  s.history.Len(),
		Cursor:  s.history.Cursor(),
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
	}
	return s.model.Clone(), s.catalog.Clone(), s.mode, s.selection, h
}

// UpdatedAt returns the last commit time.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SetMode switches the designer tool. An in-progress drag is dropped.
func (s *Session) SetMode(mode Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid designer mode: %s", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.drag = nil
	return nil
}

// Mode returns the current tool.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Click handles a canvas click. In add-section mode it creates a section
// centered at the point, selects it and returns to select mode. In other
// modes it is a no-op returning an empty id.
func (s *Session) Click(at layout.Point) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeAddSection {
		return ""
	}
	id := s.model.CreateSection(at, s.catalog.Names())
	s.mode = ModeSelect
	s.selection = Selection{Kind: layout.KindSection, ID: id}
	s.commitLocked()
	return id
}

// AddObject places a venue object of the given type at the default position
// and selects it. No canvas click is involved; the user drags it into place
// afterwards in select mode.
func (s *Session) AddObject(objType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.model.AddVenueObject(objType)
	s.selection = Selection{Kind: layout.KindVenueObject, ID: id}
	s.commitLocked()
	return id
}

// Select sets the selection. Selecting a since-deleted element is a no-op
// returning false; an empty kind clears the selection.
func (s *Session) Select(kind layout.ElementKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case "":
		s.selection = Selection{}
		return true
	case layout.KindStage:
		s.selection = Selection{Kind: layout.KindStage}
		return true
	case layout.KindSection:
		if s.model.Section(id) == nil {
			return false
		}
	case layout.KindVenueObject:
		if s.model.VenueObject(id) == nil {
			return false
		}
	default:
		return false
	}
	s.selection = Selection{Kind: kind, ID: id}
	return true
}

// StartDrag begins a drag gesture in select mode, capturing the pointer and
// element start positions and the active zoom/pan transform. Dragging a
// missing element is a no-op.
func (s *Session) StartDrag(kind layout.ElementKind, id string, pointer layout.Point, zoom float64, pan layout.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeSelect {
		return false
	}
	var start layout.Point
	switch kind {
	case layout.KindSection:
		sec := s.model.Section(id)
		if sec == nil {
			return false
		}
		start = layout.Point{X: sec.X, Y: sec.Y}
	case layout.KindVenueObject:
		obj := s.model.VenueObject(id)
		if obj == nil {
			return false
		}
		start = layout.Point{X: obj.X, Y: obj.Y}
	case layout.KindStage:
		start = layout.Point{X: s.model.Stage.X, Y: s.model.Stage.Y}
	default:
		return false
	}
	if zoom <= 0 {
		zoom = 1
	}
	s.drag = &dragState{
		kind:         kind,
		id:           id,
		pointerStart: pointer,
		elementStart: start,
		zoom:         zoom,
		pan:          pan,
	}
	s.selection = Selection{Kind: kind, ID: id}
	return true
}

// DragMove updates the dragged element's position live. The pointer delta
// is converted to canvas coordinates through the captured zoom transform.
// Nothing is pushed to history until the drag ends.
func (s *Session) DragMove(pointer layout.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return false
	}
	d := s.drag
	nx := d.elementStart.X + (pointer.X-d.pointerStart.X)/d.zoom
	ny := d.elementStart.Y + (pointer.Y-d.pointerStart.Y)/d.zoom
	return s.model.MoveElement(d.kind, d.id, nx, ny)
}

// EndDrag releases the gesture and commits the final model to history.
// Without an active drag it is a no-op.
func (s *Session) EndDrag() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return false
	}
	s.drag = nil
	s.commitLocked()
	return true
}

// ApplySectionPatch merges an attribute-panel edit into a section and
// commits. Unknown section ids are no-ops.
func (s *Session) ApplySectionPatch(id string, patch layout.SectionPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.model.UpdateSection(id, patch) {
		return false
	}
	s.commitLocked()
	return true
}

// DeleteSection removes a section. If it was selected the selection is
// cleared; deleting a non-selected element leaves the selection untouched.
func (s *Session) DeleteSection(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.model.DeleteSection(id) {
		return false
	}
	if s.selection.Kind == layout.KindSection && s.selection.ID == id {
		s.selection = Selection{}
	}
	s.commitLocked()
	return true
}

// DeleteObject removes a venue object, clearing the selection when it was
// the selected element.
func (s *Session) DeleteObject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.model.DeleteVenueObject(id) {
		return false
	}
	if s.selection.Kind == layout.KindVenueObject && s.selection.ID == id {
		s.selection = Selection{}
	}
	s.commitLocked()
	return true
}

// Undo steps back one history entry. A no-op at the bottom of the stack.
// The selection is cleared because the selected element may not exist in
// the restored snapshot.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.model = m
	s.selection = Selection{}
	s.drag = nil
	s.afterRestoreLocked()
	return true
}

// Redo steps forward one history entry. A no-op at the top of the stack.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.model = m
	s.selection = Selection{}
	s.drag = nil
	s.afterRestoreLocked()
	return true
}

// Arrange runs the auto-arrange pass on demand and commits the result.
// Returns whether any section was repositioned.
func (s *Session) Arrange() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	arranged := arrange.Arrange(s.model)
	adjusted := arrange.Adjusted(s.model, arranged)
	s.model = arranged
	s.commitLocked()
	return adjusted
}

// EditTicket applies a direct ticket-type edit, switching the catalog to
// manual mode. Ticket edits publish to subscribers but are not part of the
// seating-map history.
func (s *Session) EditTicket(name string, req tickets.EditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.Edit(name, req); err != nil {
		return err
	}
	s.updatedAt = time.Now().UTC()
	s.publishLocked()
	return nil
}

// ResetTickets returns the catalog to auto mode and regenerates it from the
// current sections.
func (s *Session) ResetTickets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.ResetToAuto(s.model.Sections)
	s.updatedAt = time.Now().UTC()
	s.publishLocked()
}

// commitLocked pushes the model to history, resyncs the ticket catalog and
// publishes to subscribers. Callers hold the session mutex.
func (s *Session) commitLocked() {
	s.history.Push(s.model)
	s.catalog.SyncFromSections(s.model.Sections)
	s.updatedAt = time.Now().UTC()
	s.publishLocked()
}

// afterRestoreLocked is the commit path for undo/redo: the restored state
// is already in history, so only the catalog resync and publish happen.
func (s *Session) afterRestoreLocked() {
	s.catalog.SyncFromSections(s.model.Sections)
	s.updatedAt = time.Now().UTC()
	s.publishLocked()
}

func (s *Session) publishLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	m := s.model.Clone()
	c := s.catalog.Clone()
	for _, fn := range s.subscribers {
		fn(m, c)
	}
}
