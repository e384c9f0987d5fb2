package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Seatly application
// Pattern: seatly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for architectural data
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // 4 hours - for arranged layouts
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for preview scenes
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for seat statuses
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatly"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"        // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
	CACHE_KEY_EVENT_LAYOUT = CACHE_PREFIX + ":events:layout:uuid:" // + event-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_EVENT_LAYOUT = TTL_SEMI_STATIC_LONG   // 4 hours
)

// ================== DESIGNER MODULE ==================

// Designer Cache Keys
const (
	CACHE_KEY_DESIGNER_DRAFT = CACHE_PREFIX + ":designer:draft:uuid:" // + draft-id
)

// Designer Cache TTLs
const (
	// Drafts survive a week so an abandoned editing session can be resumed.
	TTL_DESIGNER_DRAFT = 7 * TTL_STATIC_LONG
)

// ================== SEATS MODULE ==================

// Seat status annotations for the preview read path. Stored as a Redis hash
// of seat-id -> status per event; seats absent from the hash are available.
const (
	CACHE_KEY_SEAT_STATUS = CACHE_PREFIX + ":seats:status:event:" // + event-id
)

const (
	TTL_SEAT_STATUS = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis KEYS command or manual invalidation)
const (
	PATTERN_INVALIDATE_EVENT_ALL = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildEventListKey constructs a paginated event-list cache key.
// Example: BuildEventListKey(1, 10, "published") -> "seatly:events:list:page:1:limit:10:status:published"
func BuildEventListKey(page, limit int, status string) string {
	if status != "" {
		return fmt.Sprintf("%s:page:%d:limit:%d:status:%s", CACHE_KEY_EVENTS_LIST, page, limit, status)
	}
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_EVENTS_LIST, page, limit)
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventLayoutKey(eventID string) string {
	return CACHE_KEY_EVENT_LAYOUT + eventID
}

func BuildDesignerDraftKey(draftID string) string {
	return CACHE_KEY_DESIGNER_DRAFT + draftID
}

func BuildSeatStatusKey(eventID string) string {
	return CACHE_KEY_SEAT_STATUS + eventID
}
