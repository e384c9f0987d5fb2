package events

import (
	"time"

	"seatly/internal/layout"
	"seatly/internal/tickets"
)

type EventResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Venue          string               `json:"venue"`
	DateTime       time.Time            `json:"date_time"`
	LayoutType     string               `json:"layout_type"`
	SeatingMap     *layout.SeatingMap   `json:"seating_map"`
	TicketTypes    []tickets.TicketType `json:"ticket_types"`
	TotalCapacity  int                  `json:"total_capacity"`
	LayoutAdjusted bool                 `json:"layout_adjusted"`
	Status         EventStatus          `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// LayoutResponse is the read-path shape for an event's arranged layout.
type LayoutResponse struct {
	EventID     string               `json:"event_id"`
	EventName   string               `json:"event_name"`
	LayoutType  string               `json:"layout_type"`
	SeatingMap  *layout.SeatingMap   `json:"seating_map"`
	TicketTypes []tickets.TicketType `json:"ticket_types"`
	TotalSeats  int                  `json:"total_seats"`
}
