package main

import (
	"fmt"
	"log"
	"time"

	"seatly/internal/arrange"
	"seatly/internal/events"
	"seatly/internal/layout"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/tickets"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Seatly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"events",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			// Table may not exist yet on a fresh database
			fmt.Printf("   ⚠️  Could not truncate %s: %v\n", table, err)
		}
	}

	return nil
}

func (s *Seeder) SeedAll() error {
	adminID := uuid.New()

	demos := []struct {
		name        string
		description string
		venue       string
		layoutType  layout.LayoutType
		sections    int
		status      events.EventStatus
		daysAhead   int
	}{
		{"Hamlet", "Three-act theater production", "Grand Theater", layout.LayoutTheater, 4, events.StatusPublished, 14},
		{"Summer Rock Night", "Open-air rock concert", "Riverside Arena", layout.LayoutConcert, 6, events.StatusPublished, 30},
		{"City Derby", "Season opener football match", "Metropolitan Stadium", layout.LayoutFootballStadium, 8, events.StatusDraft, 45},
		{"Hoops Finals", "Basketball championship game", "Central Arena", layout.LayoutBasketballArena, 6, events.StatusDraft, 60},
	}

	for _, demo := range demos {
		event, err := s.buildEvent(adminID, demo.name, demo.description, demo.venue,
			demo.layoutType, demo.sections, demo.status, demo.daysAhead)
		if err != nil {
			return fmt.Errorf("failed to build event %s: %w", demo.name, err)
		}

		if err := s.db.PostgreSQL.Create(event).Error; err != nil {
			return fmt.Errorf("failed to insert event %s: %w", demo.name, err)
		}

		fmt.Printf("   ✅ Seeded event %q (%s, %d sections, capacity %d)\n",
			event.Name, event.LayoutType, demo.sections, event.TotalCapacity)
	}

	return nil
}

// buildEvent designs a seating map the way the interactive designer would:
// place sections, auto-arrange, then derive the ticket catalog.
func (s *Seeder) buildEvent(adminID uuid.UUID, name, description, venue string,
	layoutType layout.LayoutType, sectionCount int, status events.EventStatus, daysAhead int) (*events.Event, error) {

	m := layout.NewDefault(layoutType)

	tiers := []string{"VIP", "Premium", "General"}
	for i := 0; i < sectionCount; i++ {
		id := m.CreateSection(layout.Point{X: 400, Y: 300}, nil)
		m.UpdateSection(id, layout.SectionPatch{"ticketType": tiers[i%len(tiers)]})
	}

	catalog := tickets.NewCatalog()
	catalog.SyncFromSections(m.Sections)

	arranged := arrange.Arrange(m)
	adjusted := arrange.Adjusted(m, arranged)
	catalog.SyncFromSections(arranged.Sections)

	if err := arranged.Validate(); err != nil {
		return nil, err
	}

	// Give every ticket type a plausible price
	for i := range catalog.Types {
		catalog.Types[i].Price = float64(25 + i*15)
	}

	if err := tickets.Validate(catalog.Types, arranged); err != nil {
		return nil, err
	}

	return &events.Event{
		Name:           name,
		Description:    description,
		Venue:          venue,
		DateTime:       time.Now().AddDate(0, 0, daysAhead),
		LayoutType:     string(arranged.LayoutType),
		SeatingMap:     events.SeatingMapData(*arranged),
		TicketTypes:    events.TicketTypesData(catalog.Types),
		TotalCapacity:  arranged.TotalCapacity(),
		LayoutAdjusted: adjusted,
		Status:         status,
		CreatedBy:      adminID,
	}, nil
}
