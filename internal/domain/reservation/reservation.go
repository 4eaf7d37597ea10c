package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/shared/daterange"
)

var ErrReservationNotFound = errors.New("reservation: not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusCheckedIn Status = "checked_in"
)

// CountsTowardInventory reports whether a reservation in this status consumes
// rooms. Cancelled and no-show stays release their rooms.
func (s Status) CountsTowardInventory() bool {
	switch s {
	case StatusCancelled, StatusNoShow:
		return false
	default:
		return true
	}
}

// Pick is one (raw category label, unit count) line requested within a
// reservation. Labels are free-form and normalized only at aggregation time.
type Pick struct {
	RawLabel string
	Units    int
}

// Reservation is the read model this core aggregates over. It is created and
// mutated exclusively by the booking workflow; nothing here writes it.
type Reservation struct {
	ID            string
	PropertyID    catalog.PropertyID
	Stay          daterange.DateRange
	Status        Status
	AssignedRooms []string
	Picks         []Pick
}

// Assigned reports whether at least one physical room identifier is set.
func (r *Reservation) Assigned() bool {
	for _, id := range r.AssignedRooms {
		if strings.TrimSpace(id) != "" {
			return true
		}
	}
	return false
}

// Repository queries reservations from the external store. Implementations own
// retry and timeout policy; the core propagates their failures as-is.
type Repository interface {
	// ActiveOnDate returns reservations of the property whose stay covers the
	// given day (checkin <= d < checkout) and whose status counts toward
	// inventory.
	ActiveOnDate(ctx context.Context, property catalog.PropertyID, date time.Time) ([]Reservation, error)

	// OverlappingRange returns reservations of the property whose stay
	// intersects the window, regardless of status.
	OverlappingRange(ctx context.Context, property catalog.PropertyID, window daterange.DateRange) ([]Reservation, error)

	// ByCategoryLabel returns reservations of the property holding at least
	// one pick whose raw label equals the given one, ignoring stay dates.
	ByCategoryLabel(ctx context.Context, property catalog.PropertyID, rawLabel string) ([]Reservation, error)
}
