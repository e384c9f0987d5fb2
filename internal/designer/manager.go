package designer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"seatly/internal/layout"
	"seatly/internal/shared/constants"
	"seatly/internal/tickets"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Manager is the in-memory registry of live designer sessions, with
// Redis-backed draft persistence so an editing session can be saved and
// resumed later.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	redisClient *redis.Client
}

// NewManager creates a session manager. A nil Redis client disables drafts
// but not live sessions.
func NewManager(redisClient *redis.Client) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		redisClient: redisClient,
	}
}

// Create registers a new session for the owner. A nil initial model gets
// the default empty map for the layout type.
func (m *Manager) Create(ownerID string, layoutType layout.LayoutType, initial *layout.SeatingMap) *Session {
	s := NewSession(uuid.NewString(), ownerID, layoutType, initial)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return s, nil
}

// Close drops a live session from the registry. Saved drafts survive.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// draft is the serialized form of a saved session.
type draft struct {
	OwnerID    string             `json:"owner_id"`
	LayoutType layout.LayoutType  `json:"layout_type"`
	SeatingMap *layout.SeatingMap `json:"seating_map"`
	Catalog    *tickets.Catalog   `json:"ticket_catalog"`
}

// SaveDraft persists the session's current model and ticket catalog to
// Redis under the session id, with the draft TTL.
func (m *Manager) SaveDraft(ctx context.Context, s *Session) error {
	if m.redisClient == nil {
		return fmt.Errorf("draft storage not available")
	}
	model := s.Model()
	d := draft{
		OwnerID:    s.OwnerID,
		LayoutType: model.LayoutType,
		SeatingMap: model,
		Catalog:    s.Catalog(),
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	key := constants.BuildDesignerDraftKey(s.ID)
	if err := m.redisClient.Set(ctx, key, data, constants.TTL_DESIGNER_DRAFT).Err(); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// RestoreDraft loads a saved draft into a fresh live session. The restored
// session keeps the draft id so re-saving overwrites the same draft. The
// undo history starts over from the restored state.
func (m *Manager) RestoreDraft(ctx context.Context, draftID, ownerID string) (*Session, error) {
	if m.redisClient == nil {
		return nil, fmt.Errorf("draft storage not available")
	}
	key := constants.BuildDesignerDraftKey(draftID)
	data, err := m.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("draft not found")
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var d draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if d.OwnerID != ownerID {
		return nil, fmt.Errorf("draft not found")
	}

	s := NewSession(draftID, ownerID, d.LayoutType, d.SeatingMap)
	if d.Catalog != nil {
		s.mu.Lock()
		s.catalog = d.Catalog.Clone()
		s.mu.Unlock()
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}
