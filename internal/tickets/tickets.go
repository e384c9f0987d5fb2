// Package tickets keeps the ticket-type list in sync with the sections of a
// seating map. The list is auto-derived until the user edits it directly;
// after that only matching-name quantities follow section changes.
package tickets

import (
	"fmt"

	"seatly/internal/layout"
)

// TicketType is a named price/quantity/color category assignable to one or
// more sections.
type TicketType struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// SyncMode tracks whether the ticket-type list is regenerated from sections
// or frozen by a manual edit. The only automatic transition is auto to
// manual; going back requires an explicit user reset.
type SyncMode string

const (
	ModeAuto   SyncMode = "auto"
	ModeManual SyncMode = "manual"
)

// defaultPalette colors newly derived ticket types in rotation.
var defaultPalette = []string{
	"#8b5cf6", "#ec4899", "#f59e0b", "#10b981", "#3b82f6", "#ef4444",
}

// Catalog is the ticket-type list plus its synchronization mode.
type Catalog struct {
	Types []TicketType `json:"types"`
	Mode  SyncMode     `json:"mode"`
}

// NewCatalog returns an empty catalog in auto mode.
func NewCatalog() *Catalog {
	return &Catalog{Types: []TicketType{}, Mode: ModeAuto}
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{Types: make([]TicketType, len(c.Types)), Mode: c.Mode}
	copy(out.Types, c.Types)
	return out
}

// Names returns the ticket-type names in list order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Types))
	for i, t := range c.Types {
		names[i] = t.Name
	}
	return names
}

// SyncFromSections reconciles the catalog with the sections of a map.
//
// In auto mode the list is regenerated from the distinct ticket-type names
// present across sections (insertion order), with quantities recomputed as
// the summed capacity per name; price, description and color survive for
// names that persist. In manual mode list membership is frozen and only
// matching-name quantities are updated.
func (c *Catalog) SyncFromSections(sections []layout.Section) {
	byName := make(map[string]int, len(sections))
	var order []string
	for i := range sections {
		name := sections[i].TicketType
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] += sections[i].TotalSeats()
	}

	if c.Mode == ModeManual {
		for i := range c.Types {
			if qty, ok := byName[c.Types[i].Name]; ok {
				c.Types[i].Quantity = qty
			}
		}
		return
	}

	prev := make(map[string]TicketType, len(c.Types))
	for _, t := range c.Types {
		prev[t.Name] = t
	}
	regenerated := make([]TicketType, 0, len(order))
	for i, name := range order {
		t := TicketType{
			Name:     name,
			Quantity: byName[name],
			Color:    defaultPalette[i%len(defaultPalette)],
		}
		if old, ok := prev[name]; ok {
			t.Price = old.Price
			t.Description = old.Description
			t.Color = old.Color
		}
		regenerated = append(regenerated, t)
	}
	c.Types = regenerated
}

// EditRequest carries a direct user edit of one ticket type. Nil fields are
// left untouched.
type EditRequest struct {
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,min=0"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Color       *string  `json:"color" binding:"omitempty,max=32"`
}

// Edit applies a direct edit to the named ticket type and switches the
// catalog to manual mode. Unknown names are rejected.
func (c *Catalog) Edit(name string, req EditRequest) error {
	for i := range c.Types {
		if c.Types[i].Name != name {
			continue
		}
		if req.Price != nil {
			c.Types[i].Price = *req.Price
		}
		if req.Quantity != nil {
			c.Types[i].Quantity = *req.Quantity
		}
		if req.Description != nil {
			c.Types[i].Description = *req.Description
		}
		if req.Color != nil {
			c.Types[i].Color = *req.Color
		}
		c.Mode = ModeManual
		return nil
	}
	return fmt.Errorf("ticket type not found: %s", name)
}

// ResetToAuto returns the catalog to auto mode and regenerates it from the
// given sections.
func (c *Catalog) ResetToAuto(sections []layout.Section) {
	c.Mode = ModeAuto
	c.SyncFromSections(sections)
}

// Validate enforces the submission-time invariants: at least one section,
// complete ticket-type fields, and total quantity equal to total section
// capacity. Failures block the submission.
func Validate(types []TicketType, m *layout.SeatingMap) error {
	if len(m.Sections) == 0 {
		return fmt.Errorf("seating map has no sections")
	}
	if len(types) == 0 {
		return fmt.Errorf("no ticket types defined")
	}
	totalQty := 0
	for i, t := range types {
		if t.Name == "" {
			return fmt.Errorf("ticket type %d has no name", i)
		}
		if t.Price < 0 {
			return fmt.Errorf("ticket type %q has negative price", t.Name)
		}
		if t.Quantity <= 0 {
			return fmt.Errorf("ticket type %q has no quantity", t.Name)
		}
		totalQty += t.Quantity
	}
	if total := m.TotalCapacity(); totalQty != total {
		return fmt.Errorf("ticket quantity total (%d) does not match section capacity total (%d)", totalQty, total)
	}
	return nil
}
