package events

import (
	"time"

	"seatly/internal/layout"
	"seatly/internal/tickets"
)

type CreateEventRequest struct {
	Name        string               `json:"name" binding:"required,min=3,max=255" validate:"required,min=3,max=255"`
	Description string               `json:"description" binding:"max=2000" validate:"max=2000"`
	Venue       string               `json:"venue" binding:"required,min=3,max=255" validate:"required,min=3,max=255"`
	DateTime    time.Time            `json:"date_time" binding:"required" validate:"required"`
	SeatingMap  *layout.SeatingMap   `json:"seating_map" binding:"required" validate:"required"`
	TicketTypes []tickets.TicketType `json:"ticket_types" binding:"required,min=1" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published cancelled completed"`
}

type EventListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Venue  string `form:"venue"`
	Status string `form:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}

// SeatStatusRequest annotates seats for the preview read path.
type SeatStatusRequest struct {
	Statuses map[string]string `json:"statuses" binding:"required,min=1"`
}
