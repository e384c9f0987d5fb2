package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"seatly/internal/arrange"
	"seatly/internal/notifications"
	"seatly/internal/preview"
	"seatly/internal/shared/constants"
	"seatly/internal/tickets"
	"seatly/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)
	SetNotificationProducer(producer notifications.Producer)
	SetRedisClient(client *redis.Client)

	CreateEvent(userID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(id uuid.UUID) (*EventResponse, error)
	GetAllEvents(query EventListQuery) (*PaginatedEvents, error)
	GetEventLayout(id uuid.UUID) (*LayoutResponse, error)
	GetEventPreview(ctx context.Context, id uuid.UUID) (*preview.Scene, error)
	SetSeatStatuses(ctx context.Context, id uuid.UUID, statuses map[string]string) error
	UpdateEventStatus(id uuid.UUID, req UpdateStatusRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID) error
	GetUpcomingEvents(limit int) ([]EventResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	producer     notifications.Producer
	redisClient  *redis.Client
	validate     *validator.Validate
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetNotificationProducer(producer notifications.Producer) {
	s.producer = producer
}

// SetRedisClient injects the raw Redis client used for seat status hashes.
func (s *service) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// Cache helper methods
func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) error {
	if s.cacheService == nil {
		return nil
	}

	patterns := []string{
		constants.PATTERN_INVALIDATE_EVENT_ALL,
	}

	if eventID != nil {
		patterns = append(patterns, constants.BuildEventDetailKey(eventID.String())+"*")
	}

	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			return err
		}
	}

	return nil
}

// CreateEvent persists a designed seating map as a bookable event. The
// submitted layout is validated and run through auto-arrange once more, so a
// client cannot publish overlapping sections no matter what it sends.
func (s *service) CreateEvent(userID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("event validation failed: %w", err)
	}

	if req.DateTime.Before(time.Now()) {
		return nil, errors.New("event date must be in the future")
	}

	if err := req.SeatingMap.Validate(); err != nil {
		return nil, fmt.Errorf("seating map validation failed: %w", err)
	}

	if err := tickets.Validate(req.TicketTypes, req.SeatingMap); err != nil {
		return nil, fmt.Errorf("ticket validation failed: %w", err)
	}

	arranged := arrange.Arrange(req.SeatingMap)
	adjusted := arrange.Adjusted(req.SeatingMap, arranged)

	event := &Event{
		Name:           req.Name,
		Description:    req.Description,
		Venue:          req.Venue,
		DateTime:       req.DateTime,
		LayoutType:     string(arranged.LayoutType),
		SeatingMap:     SeatingMapData(*arranged),
		TicketTypes:    TicketTypesData(req.TicketTypes),
		TotalCapacity:  arranged.TotalCapacity(),
		LayoutAdjusted: adjusted,
		Status:         StatusDraft,
		CreatedBy:      userID,
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	ctx := context.Background()
	if err := s.invalidateEventCache(ctx, nil); err != nil {
		log.Printf("Warning: failed to invalidate event caches: %v", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishEventCreated(ctx, event.ID, event.Name, event.LayoutType,
			event.TotalCapacity, adjusted); err != nil {
			log.Printf("Warning: failed to publish event.created notification: %v", err)
		}
		if adjusted {
			if err := s.producer.PublishLayoutAdjusted(ctx, event.ID, event.Name, event.LayoutType,
				event.TotalCapacity); err != nil {
				log.Printf("Warning: failed to publish layout.adjusted notification: %v", err)
			}
		}
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventByID(id uuid.UUID) (*EventResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildEventDetailKey(id.String())

	var cached EventResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := event.ToResponse()

	if err := s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL); err != nil {
		log.Printf("Warning: failed to cache event %s: %v", id, err)
	}

	return &response, nil
}

func (s *service) GetAllEvents(query EventListQuery) (*PaginatedEvents, error) {
	ctx := context.Background()

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	// Only unfiltered listings hit the cache; search results go to the DB.
	cacheable := query.Search == "" && query.Venue == ""
	cacheKey := constants.BuildEventListKey(query.Page, query.Limit, query.Status)

	if cacheable {
		var cached PaginatedEvents
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	events, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	result := &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	if cacheable {
		if err := s.setCache(ctx, cacheKey, result, constants.TTL_EVENT_LIST); err != nil {
			log.Printf("Warning: failed to cache event list: %v", err)
		}
	}

	return result, nil
}

func (s *service) GetEventLayout(id uuid.UUID) (*LayoutResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildEventLayoutKey(id.String())

	var cached LayoutResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := &LayoutResponse{
		EventID:     event.ID.String(),
		EventName:   event.Name,
		LayoutType:  event.LayoutType,
		SeatingMap:  event.SeatingMap.Map(),
		TicketTypes: event.TicketTypes,
		TotalSeats:  event.TotalCapacity,
	}

	if err := s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_LAYOUT); err != nil {
		log.Printf("Warning: failed to cache event layout %s: %v", id, err)
	}

	return response, nil
}

// GetEventPreview renders the stored layout with live seat statuses pulled
// from the Redis hash maintained by booking flows.
func (s *service) GetEventPreview(ctx context.Context, id uuid.UUID) (*preview.Scene, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	statuses, err := s.seatStatuses(ctx, id)
	if err != nil {
		log.Printf("Warning: failed to load seat statuses for event %s: %v", id, err)
		statuses = nil
	}

	ticketColors := make(map[string]string, len(event.TicketTypes))
	for _, tt := range event.TicketTypes {
		ticketColors[tt.Name] = tt.Color
	}

	seatStatuses := make(map[string]preview.SeatStatus, len(statuses))
	for seatID, status := range statuses {
		seatStatuses[seatID] = preview.SeatStatus(status)
	}

	scene := preview.Render(event.SeatingMap.Map(), preview.Options{
		SeatStatuses: seatStatuses,
		TicketColors: ticketColors,
	})

	return scene, nil
}

func (s *service) seatStatuses(ctx context.Context, eventID uuid.UUID) (map[string]string, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	key := constants.BuildSeatStatusKey(eventID.String())
	statuses, err := s.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read seat statuses: %w", err)
	}

	return statuses, nil
}

// SetSeatStatuses merges seat status annotations into the event's status hash.
func (s *service) SetSeatStatuses(ctx context.Context, id uuid.UUID, statuses map[string]string) error {
	if s.redisClient == nil {
		return errors.New("seat status store not available")
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	for seatID, status := range statuses {
		switch preview.SeatStatus(status) {
		case preview.SeatAvailable, preview.SeatSold, preview.SeatSelected:
		default:
			return fmt.Errorf("invalid seat status %q for seat %s", status, seatID)
		}
	}

	key := constants.BuildSeatStatusKey(id.String())
	fields := make(map[string]interface{}, len(statuses))
	for seatID, status := range statuses {
		fields[seatID] = status
	}

	if err := s.redisClient.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to store seat statuses: %w", err)
	}
	if err := s.redisClient.Expire(ctx, key, constants.TTL_SEAT_STATUS).Err(); err != nil {
		return fmt.Errorf("failed to set seat status TTL: %w", err)
	}

	return nil
}

var allowedStatusTransitions = map[EventStatus][]EventStatus{
	StatusDraft:     {StatusPublished, StatusCancelled},
	StatusPublished: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func (s *service) UpdateEventStatus(id uuid.UUID, req UpdateStatusRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	newStatus := EventStatus(req.Status)
	if event.Status == newStatus {
		response := event.ToResponse()
		return &response, nil
	}

	valid := false
	for _, allowed := range allowedStatusTransitions[event.Status] {
		if allowed == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition event from %s to %s", event.Status, newStatus)
	}

	oldStatus := event.Status
	updated, err := s.repo.UpdateStatus(id, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	ctx := context.Background()
	if err := s.invalidateEventCache(ctx, &id); err != nil {
		log.Printf("Warning: failed to invalidate event caches: %v", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishStatusChanged(ctx, updated.ID, updated.Name,
			string(oldStatus), string(newStatus)); err != nil {
			log.Printf("Warning: failed to publish status change notification: %v", err)
		}
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteEvent(id uuid.UUID) error {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.Status == StatusPublished {
		return errors.New("cannot delete a published event, cancel it first")
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := s.invalidateEventCache(context.Background(), &id); err != nil {
		log.Printf("Warning: failed to invalidate event caches: %v", err)
	}

	return nil
}

func (s *service) GetUpcomingEvents(limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	events, err := s.repo.GetUpcoming(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	return responses, nil
}
