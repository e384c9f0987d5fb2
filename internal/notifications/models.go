package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEventCreated  NotificationType = "EVENT_CREATED"
	NotificationTypeLayoutChanged NotificationType = "LAYOUT_ADJUSTED"
	NotificationTypeStatusChanged NotificationType = "EVENT_STATUS_CHANGED"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusHandled NotificationStatus = "HANDLED"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// LayoutNotification is the message published whenever an event layout is
// created or changes shape. Consumers use it to keep downstream read models
// (seat inventory, booking pages) in sync.
type LayoutNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	EventID    uuid.UUID `json:"event_id"`
	EventName  string    `json:"event_name"`
	LayoutType string    `json:"layout_type"`

	TotalCapacity int  `json:"total_capacity"`
	Adjusted      bool `json:"adjusted"`

	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`

	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewLayoutNotification(notificationType NotificationType, eventID uuid.UUID, eventName, layoutType string) *LayoutNotification {
	now := time.Now()
	return &LayoutNotification{
		ID:         uuid.New(),
		Type:       notificationType,
		EventID:    eventID,
		EventName:  eventName,
		LayoutType: layoutType,
		Status:     NotificationStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (n *LayoutNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// GetPartitionKey keeps every message for an event on the same partition so
// consumers observe layout changes in order.
func (n *LayoutNotification) GetPartitionKey() string {
	return n.EventID.String()
}

func (n *LayoutNotification) MarkHandled() {
	n.Status = NotificationStatusHandled
	n.UpdatedAt = time.Now()
}

func (n *LayoutNotification) MarkFailed() {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()
}
