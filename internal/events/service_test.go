package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"seatly/internal/layout"
	"seatly/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu     sync.Mutex
	events map[uuid.UUID]*Event
	order  []uuid.UUID

	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[uuid.UUID]*Event)}
}

func (r *fakeRepository) Create(event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	copied := *event
	r.events[event.ID] = &copied
	r.order = append(r.order, event.ID)
	return nil
}

func (r *fakeRepository) GetByID(id uuid.UUID) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeRepository) GetAll(query EventListQuery) ([]Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []Event
	for _, id := range r.order {
		e := r.events[id]
		if query.Status != "" && string(e.Status) != query.Status {
			continue
		}
		all = append(all, *e)
	}
	total := int64(len(all))
	start := (query.Page - 1) * query.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + query.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeRepository) UpdateStatus(id uuid.UUID, status EventStatus) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	event.Status = status
	event.UpdatedAt = time.Now()
	copied := *event
	return &copied, nil
}

func (r *fakeRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeRepository) GetUpcoming(limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, id := range r.order {
		e := r.events[id]
		if e.Status == StatusPublished && e.DateTime.After(time.Now()) {
			out = append(out, *e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// recordingProducer captures published notifications.
type recordingProducer struct {
	created  []string
	adjusted []string
	statuses []string
}

func (p *recordingProducer) PublishEventCreated(_ context.Context, _ uuid.UUID, name, _ string, _ int, _ bool) error {
	p.created = append(p.created, name)
	return nil
}

func (p *recordingProducer) PublishLayoutAdjusted(_ context.Context, _ uuid.UUID, name, _ string, _ int) error {
	p.adjusted = append(p.adjusted, name)
	return nil
}

func (p *recordingProducer) PublishStatusChanged(_ context.Context, _ uuid.UUID, _, oldStatus, newStatus string) error {
	p.statuses = append(p.statuses, oldStatus+"->"+newStatus)
	return nil
}

func (p *recordingProducer) Close() error                        { return nil }
func (p *recordingProducer) HealthCheck(_ context.Context) error { return nil }

func designedMap() *layout.SeatingMap {
	m := layout.NewDefault(layout.LayoutTheater)
	m.Sections = []layout.Section{
		{ID: "s1", Name: "Front", X: 350, Y: 250, Width: 300, Height: 150, Rows: 5, SeatsPerRow: 10, TicketType: "VIP"},
		{ID: "s2", Name: "Back", X: 350, Y: 480, Width: 300, Height: 150, Capacity: 60, TicketType: "General"},
	}
	return m
}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:        "Hamlet",
		Venue:       "Grand Theater",
		DateTime:    time.Now().Add(30 * 24 * time.Hour),
		SeatingMap:  designedMap(),
		TicketTypes: []tickets.TicketType{
			{Name: "VIP", Price: 120, Quantity: 50},
			{Name: "General", Price: 45, Quantity: 60},
		},
	}
}

func TestEventService_CreateEvent_Success(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	resp, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Hamlet", resp.Name)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, 110, resp.TotalCapacity)
	require.NotNil(t, resp.SeatingMap)
	assert.Len(t, resp.SeatingMap.Sections, 2)
}

func TestEventService_CreateEvent_RunsArrangePass(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	req := validCreateRequest()
	// Overlapping sections must be repositioned, not rejected.
	req.SeatingMap.Sections[1].X = req.SeatingMap.Sections[0].X
	req.SeatingMap.Sections[1].Y = req.SeatingMap.Sections[0].Y

	producer := &recordingProducer{}
	svc.SetNotificationProducer(producer)

	resp, err := svc.CreateEvent(uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, resp.LayoutAdjusted)

	a := resp.SeatingMap.Sections[0].Rect()
	b := resp.SeatingMap.Sections[1].Rect()
	assert.False(t, a.Intersects(b, 0))

	assert.Equal(t, []string{"Hamlet"}, producer.created)
	assert.Equal(t, []string{"Hamlet"}, producer.adjusted)
}

func TestEventService_CreateEvent_ValidationFailures(t *testing.T) {
	svc := NewService(newFakeRepository())
	userID := uuid.New()

	req := validCreateRequest()
	req.Name = "ab"
	_, err := svc.CreateEvent(userID, req)
	assert.ErrorContains(t, err, "event validation failed")

	req = validCreateRequest()
	req.DateTime = time.Now().Add(-time.Hour)
	_, err = svc.CreateEvent(userID, req)
	assert.ErrorContains(t, err, "date must be in the future")

	req = validCreateRequest()
	req.SeatingMap.Sections[0].Width = -10
	_, err = svc.CreateEvent(userID, req)
	assert.ErrorContains(t, err, "seating map validation failed")

	req = validCreateRequest()
	req.TicketTypes[0].Quantity = 10
	_, err = svc.CreateEvent(userID, req)
	assert.ErrorContains(t, err, "ticket validation failed")
}

func TestEventService_GetEventByID(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	got, err := svc.GetEventByID(id)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetEventByID(uuid.New())
	require.Error(t, err)
	assert.Equal(t, "event not found", err.Error())
}

func TestEventService_GetAllEvents_Pagination(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		req := validCreateRequest()
		_, err := svc.CreateEvent(userID, req)
		require.NoError(t, err)
	}

	page, err := svc.GetAllEvents(EventListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Events, 2)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)

	// Zero values fall back to the first page of ten.
	page, err = svc.GetAllEvents(EventListQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Events, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}

func TestEventService_GetEventLayout(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)

	lay, err := svc.GetEventLayout(uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, lay.EventID)
	assert.Equal(t, "Hamlet", lay.EventName)
	assert.Equal(t, 110, lay.TotalSeats)
	require.NotNil(t, lay.SeatingMap)
	assert.Len(t, lay.SeatingMap.Sections, 2)
	assert.Len(t, lay.TicketTypes, 2)
}

func TestEventService_GetEventPreview(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)

	// No Redis client wired: the preview renders with every seat available.
	scene, err := svc.GetEventPreview(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, scene.Sections, 2)
	assert.NotEmpty(t, scene.Sections[0].Seats)

	_, err = svc.GetEventPreview(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "event not found", err.Error())
}

func TestEventService_SetSeatStatuses_RequiresStore(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	err := svc.SetSeatStatuses(context.Background(), uuid.New(), map[string]string{"s1-A1": "sold"})
	assert.ErrorContains(t, err, "seat status store not available")
}

func TestEventService_UpdateEventStatus_Transitions(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	producer := &recordingProducer{}
	svc.SetNotificationProducer(producer)

	created, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, updated.Status)
	assert.Contains(t, producer.statuses, "draft->published")

	// Published events cannot be reopened as drafts.
	_, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "draft"})
	assert.ErrorContains(t, err, "cannot transition")

	// Same-status updates are accepted without a transition check.
	updated, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, updated.Status)

	updated, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	_, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorContains(t, err, "cannot transition")

	_, err = svc.UpdateEventStatus(uuid.New(), UpdateStatusRequest{Status: "published"})
	require.Error(t, err)
	assert.Equal(t, "event not found", err.Error())
}

func TestEventService_DeleteEvent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateEvent(uuid.New(), validCreateRequest())
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "published"})
	require.NoError(t, err)

	err = svc.DeleteEvent(id)
	assert.ErrorContains(t, err, "cannot delete a published event")

	_, err = svc.UpdateEventStatus(id, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteEvent(id))

	err = svc.DeleteEvent(id)
	require.Error(t, err)
	assert.Equal(t, "event not found", err.Error())
}

func TestEventService_GetUpcomingEvents(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	userID := uuid.New()

	first, err := svc.CreateEvent(userID, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.CreateEvent(userID, validCreateRequest())
	require.NoError(t, err)

	// Only published events count as upcoming.
	_, err = svc.UpdateEventStatus(uuid.MustParse(first.ID), UpdateStatusRequest{Status: "published"})
	require.NoError(t, err)

	upcoming, err := svc.GetUpcomingEvents(5)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, first.ID, upcoming[0].ID)
}
