package events

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"seatly/internal/layout"
	"seatly/internal/tickets"

	"github.com/google/uuid"
)

// SeatingMapData embeds the seating map in the event row as JSONB.
type SeatingMapData layout.SeatingMap

func (d SeatingMapData) Value() (driver.Value, error) {
	return json.Marshal(layout.SeatingMap(d))
}

func (d *SeatingMapData) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("unsupported seating map column type %T", src)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, (*layout.SeatingMap)(d))
}

// Map returns the embedded seating map.
func (d *SeatingMapData) Map() *layout.SeatingMap {
	return (*layout.SeatingMap)(d)
}

// TicketTypesData embeds the ticket-type list in the event row as JSONB.
type TicketTypesData []tickets.TicketType

func (d TicketTypesData) Value() (driver.Value, error) {
	return json.Marshal([]tickets.TicketType(d))
}

func (d *TicketTypesData) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("unsupported ticket types column type %T", src)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, (*[]tickets.TicketType)(d))
}

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
	StatusCompleted EventStatus = "completed"
)

type Event struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string          `json:"name" gorm:"not null;size:255"`
	Description    string          `json:"description" gorm:"type:text"`
	Venue          string          `json:"venue" gorm:"not null;size:255"`
	DateTime       time.Time       `json:"date_time" gorm:"not null"`
	LayoutType     string          `json:"layout_type" gorm:"not null;size:32"`
	SeatingMap     SeatingMapData  `json:"seating_map" gorm:"type:jsonb;not null"`
	TicketTypes    TicketTypesData `json:"ticket_types" gorm:"type:jsonb;not null"`
	TotalCapacity  int             `json:"total_capacity" gorm:"not null;check:total_capacity > 0"`
	LayoutAdjusted bool            `json:"layout_adjusted" gorm:"default:false"`
	Status         EventStatus     `json:"status" gorm:"type:varchar(20);default:'draft'"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// ToResponse converts the row to its API shape.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:             e.ID.String(),
		Name:           e.Name,
		Description:    e.Description,
		Venue:          e.Venue,
		DateTime:       e.DateTime,
		LayoutType:     e.LayoutType,
		SeatingMap:     e.SeatingMap.Map(),
		TicketTypes:    e.TicketTypes,
		TotalCapacity:  e.TotalCapacity,
		LayoutAdjusted: e.LayoutAdjusted,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
