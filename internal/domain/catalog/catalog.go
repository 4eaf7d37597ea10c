package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelier/internal/domain/shared/daterange"
)

var (
	ErrPropertyNotFound = errors.New("catalog: property not found")
	ErrCategoryNotFound = errors.New("catalog: room category not found")
	ErrNegativeRate     = errors.New("catalog: base price and cost must be non-negative")
	ErrCommissionRange  = errors.New("catalog: commission must be between 0 and 100")
)

type PropertyID string

// Property is the read model for one hotel: its room categories, commission
// settings and currency. It is owned by an external CRUD workflow; this core
// only reads it.
type Property struct {
	ID         PropertyID
	Name       string
	Currency   string
	Commission float64 // property-level default rate, percent
	Categories []RoomCategory
}

// RoomCategory describes one class of physical rooms within a property.
type RoomCategory struct {
	Key         string // unique per property
	DisplayName string
	BasePrice   float64
	BaseCost    float64
	Commission  float64 // category-level override; 0 means not set
	Calendar    Calendar
}

// CalendarException overrides price and cost for a single night. A price or
// cost of exactly zero marks the night unavailable.
type CalendarException struct {
	Date  time.Time
	Price float64
	Cost  float64
}

// Calendar indexes exceptions by calendar day so per-night lookups stay O(1)
// regardless of calendar size.
type Calendar map[string]CalendarException

// BuildCalendar indexes a list of exceptions by day. A later exception for the
// same day replaces an earlier one; the store guarantees at most one per
// (category, date) pair.
func BuildCalendar(exceptions []CalendarException) Calendar {
	cal := make(Calendar, len(exceptions))
	for _, exc := range exceptions {
		exc.Date = daterange.Day(exc.Date)
		cal[daterange.Key(exc.Date)] = exc
	}
	return cal
}

// On returns the exception for the given day, if any.
func (c Calendar) On(date time.Time) (CalendarException, bool) {
	exc, ok := c[daterange.Key(date)]
	return exc, ok
}

// Category finds a room category by key, case-insensitively.
func (p *Property) Category(key string) (*RoomCategory, error) {
	for i := range p.Categories {
		if strings.EqualFold(p.Categories[i].Key, key) {
			return &p.Categories[i], nil
		}
	}
	return nil, ErrCategoryNotFound
}

// Validate checks the invariants the pricing core relies on.
func (c *RoomCategory) Validate() error {
	if c.BasePrice < 0 || c.BaseCost < 0 {
		return ErrNegativeRate
	}
	if c.Commission < 0 || c.Commission > 100 {
		return ErrCommissionRange
	}
	return nil
}

// Repository loads property definitions from the external store.
type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
}
