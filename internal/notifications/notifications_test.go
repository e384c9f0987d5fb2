package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutNotification(t *testing.T) {
	eventID := uuid.New()
	n := NewLayoutNotification(NotificationTypeEventCreated, eventID, "Hamlet", "theater")

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, NotificationTypeEventCreated, n.Type)
	assert.Equal(t, eventID, n.EventID)
	assert.Equal(t, "Hamlet", n.EventName)
	assert.Equal(t, "theater", n.LayoutType)
	assert.Equal(t, NotificationStatusPending, n.Status)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestLayoutNotification_PartitionKeyIsEventID(t *testing.T) {
	eventID := uuid.New()
	a := NewLayoutNotification(NotificationTypeEventCreated, eventID, "Hamlet", "theater")
	b := NewLayoutNotification(NotificationTypeStatusChanged, eventID, "Hamlet", "theater")
	// Same event, same partition: consumers see layout changes in order.
	assert.Equal(t, a.GetPartitionKey(), b.GetPartitionKey())
	assert.Equal(t, eventID.String(), a.GetPartitionKey())
}

func TestLayoutNotification_JSONRoundTrip(t *testing.T) {
	n := NewLayoutNotification(NotificationTypeLayoutChanged, uuid.New(), "Hamlet", "theater")
	n.TotalCapacity = 120
	n.Adjusted = true

	data, err := n.ToJSON()
	require.NoError(t, err)

	var decoded LayoutNotification
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, n.ID, decoded.ID)
	assert.Equal(t, n.EventID, decoded.EventID)
	assert.Equal(t, 120, decoded.TotalCapacity)
	assert.True(t, decoded.Adjusted)
}

func TestLayoutNotification_Lifecycle(t *testing.T) {
	n := NewLayoutNotification(NotificationTypeEventCreated, uuid.New(), "Hamlet", "theater")
	n.MarkHandled()
	assert.Equal(t, NotificationStatusHandled, n.Status)
	n.MarkFailed()
	assert.Equal(t, NotificationStatusFailed, n.Status)
}

func TestService_DisabledUsesNoopProducer(t *testing.T) {
	svc, err := NewService(&ServiceConfig{Enabled: false})
	require.NoError(t, err)

	p := svc.Producer()
	require.NotNil(t, p)

	ctx := context.Background()
	assert.NoError(t, p.PublishEventCreated(ctx, uuid.New(), "Hamlet", "theater", 100, false))
	assert.NoError(t, p.PublishLayoutAdjusted(ctx, uuid.New(), "Hamlet", "theater", 100))
	assert.NoError(t, p.PublishStatusChanged(ctx, uuid.New(), "Hamlet", "draft", "published"))
	assert.NoError(t, p.HealthCheck(ctx))

	require.NoError(t, svc.Start(ctx))
	assert.ErrorContains(t, svc.Start(ctx), "already running")
	require.NoError(t, svc.Stop())
}

func TestServiceConfigFromEnv_Defaults(t *testing.T) {
	cfg := NewServiceConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "layout-events", cfg.Topic)
	assert.Equal(t, "seatly-layout-workers", cfg.ConsumerGroupID)
	assert.Equal(t, 2, cfg.NumConsumerWorkers)
}

func TestServiceConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("LAYOUT_TOPIC", "layout-events-staging")
	t.Setenv("NUM_CONSUMER_WORKERS", "4")

	cfg := NewServiceConfigFromEnv()
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "layout-events-staging", cfg.Topic)
	assert.Equal(t, 4, cfg.NumConsumerWorkers)
}

func TestDefaultKafkaProducerConfig(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	assert.Equal(t, "layout-events", cfg.Topic)
	assert.NotEmpty(t, cfg.Brokers)
}
