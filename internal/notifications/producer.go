package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer publishes layout lifecycle notifications.
type Producer interface {
	PublishEventCreated(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int, adjusted bool) error
	PublishLayoutAdjusted(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int) error
	PublishStatusChanged(ctx context.Context, eventID uuid.UUID, eventName, oldStatus, newStatus string) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka notification producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "layout-events",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaProducer handles publishing layout notifications to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a new Kafka layout notification producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps per-event ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka layout notification producer created successfully")
	return &KafkaProducer{
		producer: producer,
		config:   config,
	}, nil
}

func (kp *KafkaProducer) PublishEventCreated(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int, adjusted bool) error {
	notification := NewLayoutNotification(NotificationTypeEventCreated, eventID, eventName, layoutType)
	notification.TotalCapacity = totalCapacity
	notification.Adjusted = adjusted
	return kp.publish(ctx, notification)
}

func (kp *KafkaProducer) PublishLayoutAdjusted(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int) error {
	notification := NewLayoutNotification(NotificationTypeLayoutChanged, eventID, eventName, layoutType)
	notification.TotalCapacity = totalCapacity
	notification.Adjusted = true
	return kp.publish(ctx, notification)
}

func (kp *KafkaProducer) PublishStatusChanged(ctx context.Context, eventID uuid.UUID, eventName, oldStatus, newStatus string) error {
	notification := NewLayoutNotification(NotificationTypeStatusChanged, eventID, eventName, "")
	notification.OldStatus = oldStatus
	notification.NewStatus = newStatus
	return kp.publish(ctx, notification)
}

func (kp *KafkaProducer) publish(ctx context.Context, notification *LayoutNotification) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: notification.CreatedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
			{Key: []byte("event_id"), Value: []byte(notification.EventID.String())},
		},
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", notification.Type, err)
	}

	log.Printf("📤 Published %s notification for event %s (partition %d, offset %d)",
		notification.Type, notification.EventID, partition, offset)
	return nil
}

func (kp *KafkaProducer) Close() error {
	if err := kp.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	log.Printf("📤 Kafka layout notification producer closed")
	return nil
}

func (kp *KafkaProducer) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		if kp.producer == nil {
			return fmt.Errorf("producer not initialized")
		}
		return nil
	}
}

// NoopProducer drops notifications. Used when Kafka is disabled so the
// events service does not need to nil-check its publisher.
type NoopProducer struct{}

func NewNoopProducer() Producer {
	return &NoopProducer{}
}

func (np *NoopProducer) PublishEventCreated(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int, adjusted bool) error {
	return nil
}

func (np *NoopProducer) PublishLayoutAdjusted(ctx context.Context, eventID uuid.UUID, eventName, layoutType string, totalCapacity int) error {
	return nil
}

func (np *NoopProducer) PublishStatusChanged(ctx context.Context, eventID uuid.UUID, eventName, oldStatus, newStatus string) error {
	return nil
}

func (np *NoopProducer) Close() error { return nil }

func (np *NoopProducer) HealthCheck(ctx context.Context) error { return nil }
