package designer

import (
	"time"

	"seatly/internal/layout"
	"seatly/internal/tickets"
)

type SessionResponse struct {
	ID          string               `json:"id"`
	Mode        Mode                 `json:"mode"`
	Selection   Selection            `json:"selection"`
	SeatingMap  *layout.SeatingMap   `json:"seating_map"`
	TicketTypes []tickets.TicketType `json:"ticket_types"`
	TicketMode  tickets.SyncMode     `json:"ticket_mode"`
	History     HistoryInfo          `json:"history"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToResponse snapshots the session for the client.
func ToResponse(s *Session) SessionResponse {
	m, c, mode, sel, h := s.State()
	return SessionResponse{
		ID:          s.ID,
		Mode:        mode,
		Selection:   sel,
		SeatingMap:  m,
		TicketTypes: c.Types,
		TicketMode:  c.Mode,
		History:     h,
		UpdatedAt:   s.UpdatedAt(),
	}
}

type MutationResponse struct {
	Applied   bool            `json:"applied"`
	ElementID string          `json:"element_id,omitempty"`
	Session   SessionResponse `json:"session"`
}

type ArrangeResponse struct {
	Adjusted bool            `json:"adjusted"`
	Session  SessionResponse `json:"session"`
}
