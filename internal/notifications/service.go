package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Service interface {
	Producer() Producer
	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	Enabled            bool
	KafkaBrokers       []string
	Topic              string
	ConsumerGroupID    string
	NumConsumerWorkers int
}

func NewServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		Enabled:            getEnvBool("KAFKA_ENABLED", false),
		KafkaBrokers:       strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
		Topic:              getEnvString("LAYOUT_TOPIC", "layout-events"),
		ConsumerGroupID:    getEnvString("CONSUMER_GROUP_ID", "seatly-layout-workers"),
		NumConsumerWorkers: getEnvInt("NUM_CONSUMER_WORKERS", 2),
	}
}

type layoutNotificationService struct {
	config   *ServiceConfig
	producer Producer
	consumer Consumer

	isRunning bool
	mu        sync.RWMutex
	cancel    context.CancelFunc
}

// NewService builds the layout notification service. When Kafka is disabled
// it returns a service whose producer drops messages, so the rest of the
// application wires publishers the same way in every environment.
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = NewServiceConfigFromEnv()
	}

	if !config.Enabled {
		log.Printf("📤 Kafka disabled, layout notifications will be dropped")
		return &layoutNotificationService{
			config:   config,
			producer: NewNoopProducer(),
		}, nil
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.Topic = config.Topic

	producer, err := NewKafkaProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.Topic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaConsumer(consumerConfig, nil)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return &layoutNotificationService{
		config:   config,
		producer: producer,
		consumer: consumer,
	}, nil
}

func (s *layoutNotificationService) Producer() Producer {
	return s.producer
}

func (s *layoutNotificationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if s.consumer == nil {
		s.isRunning = true
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if err := s.consumer.StartConsumers(runCtx, s.config.NumConsumerWorkers); err != nil {
		cancel()
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	log.Printf("📥 Layout notification service started with %d workers", s.config.NumConsumerWorkers)
	return nil
}

func (s *layoutNotificationService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			return fmt.Errorf("failed to stop consumer: %w", err)
		}
	}

	if err := s.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}

	s.isRunning = false
	log.Println("📥 Layout notification service stopped")
	return nil
}

func (s *layoutNotificationService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer unhealthy: %w", err)
	}

	if s.consumer != nil {
		if err := s.consumer.HealthCheck(ctx); err != nil {
			return fmt.Errorf("consumer unhealthy: %w", err)
		}
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
