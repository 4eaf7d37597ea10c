package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/category"
	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/shared/daterange"
)

// DefaultRollingDays is the length of a rolling availability window when the
// caller does not ask for one.
const DefaultRollingDays = 50

// StockProvider returns the total physical room count per canonical category
// for a property. Stock is independent of dates.
type StockProvider interface {
	Counts(ctx context.Context, property catalog.PropertyID) (map[string]int, error)
}

// DailyAvailability reconciles one (date, canonical category) cell: raw stock
// minus unassigned holds minus assigned occupancy. Available may go negative
// under overbooking; it is surfaced, not clamped, so consumers can detect it.
type DailyAvailability struct {
	Date      time.Time
	Category  string
	Total     int
	Reserved  int
	Occupied  int
	Available int
}

// OccupancySummary is a dateless reserved/occupied/available split for one
// canonical category.
type OccupancySummary struct {
	Category  string
	Total     int
	Reserved  int
	Occupied  int
	Available int
}

// Reconciler aggregates stock, unassigned holds and assigned occupancy across
// date windows. It holds no state of its own; every call goes back to the
// external store.
type Reconciler struct {
	Stock        StockProvider
	Reservations reservation.Repository
}

// Summarize reconciles availability for every day of the window, one row per
// (date, canonical category) with known stock, sorted by date then category.
func (r *Reconciler) Summarize(ctx context.Context, property catalog.PropertyID, window daterange.DateRange) ([]DailyAvailability, error) {
	counts, err := r.Stock.Counts(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch stock: %w", err)
	}

	out := make([]DailyAvailability, 0, window.Nights()*len(counts))
	for _, date := range window.Dates() {
		rows, err := r.reconcileDate(ctx, property, date, counts)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// SummarizeRolling reconciles a fixed-length window of consecutive days
// starting at the day of start. Days <= 0 selects DefaultRollingDays. Dates
// are reconciled concurrently; each produces an independent slice and the
// merged result is sorted before being returned.
func (r *Reconciler) SummarizeRolling(ctx context.Context, property catalog.PropertyID, start time.Time, days int) ([]DailyAvailability, error) {
	if days <= 0 {
		days = DefaultRollingDays
	}
	counts, err := r.Stock.Counts(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch stock: %w", err)
	}

	dates := daterange.Window(start, days)
	perDate := make([][]DailyAvailability, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	for i, date := range dates {
		g.Go(func() error {
			rows, err := r.reconcileDate(gctx, property, date, counts)
			if err != nil {
				return err
			}
			perDate[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]DailyAvailability, 0, len(dates)*len(counts))
	for _, rows := range perDate {
		out = append(out, rows...)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *Reconciler) reconcileDate(ctx context.Context, property catalog.PropertyID, date time.Time, counts map[string]int) ([]DailyAvailability, error) {
	active, err := r.Reservations.ActiveOnDate(ctx, property, date)
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch reservations for %s: %w", daterange.Key(date), err)
	}

	reserved := map[string]int{}
	occupied := map[string]int{}
	for i := range active {
		res := &active[i]
		target := reserved
		if res.Assigned() {
			target = occupied
		}
		for _, pick := range res.Picks {
			target[category.Normalize(pick.RawLabel)] += pick.Units
		}
	}

	rows := make([]DailyAvailability, 0, len(counts))
	for cat, total := range counts {
		rows = append(rows, DailyAvailability{
			Date:      date,
			Category:  cat,
			Total:     total,
			Reserved:  reserved[cat],
			Occupied:  occupied[cat],
			Available: total - reserved[cat] - occupied[cat],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// SplitWindow aggregates one window into a per-category split where confirmed
// reservations with picked but unassigned rooms count as reserved, while any
// reservation holding assigned rooms counts as occupied regardless of status.
func (r *Reconciler) SplitWindow(ctx context.Context, property catalog.PropertyID, window daterange.DateRange) ([]OccupancySummary, error) {
	counts, err := r.Stock.Counts(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch stock: %w", err)
	}
	overlapping, err := r.Reservations.OverlappingRange(ctx, property, window)
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch overlapping reservations: %w", err)
	}

	reserved := map[string]int{}
	occupied := map[string]int{}
	for i := range overlapping {
		res := &overlapping[i]
		switch {
		case res.Assigned():
			for _, pick := range res.Picks {
				occupied[category.Normalize(pick.RawLabel)] += pick.Units
			}
		case res.Status == reservation.StatusConfirmed:
			for _, pick := range res.Picks {
				reserved[category.Normalize(pick.RawLabel)] += pick.Units
			}
		}
	}

	return summarize(counts, reserved, occupied), nil
}

// SnapshotByLabel is a quick current-state split for a single room type,
// matched by raw label equality rather than calendar overlap.
func (r *Reconciler) SnapshotByLabel(ctx context.Context, property catalog.PropertyID, rawLabel string) (OccupancySummary, error) {
	counts, err := r.Stock.Counts(ctx, property)
	if err != nil {
		return OccupancySummary{}, fmt.Errorf("inventory: fetch stock: %w", err)
	}
	matches, err := r.Reservations.ByCategoryLabel(ctx, property, rawLabel)
	if err != nil {
		return OccupancySummary{}, fmt.Errorf("inventory: fetch reservations by label: %w", err)
	}

	canonical := category.Normalize(rawLabel)
	sum := OccupancySummary{Category: canonical, Total: counts[canonical]}
	for i := range matches {
		res := &matches[i]
		if !res.Status.CountsTowardInventory() {
			continue
		}
		for _, pick := range res.Picks {
			if category.Normalize(pick.RawLabel) != canonical {
				continue
			}
			if res.Assigned() {
				sum.Occupied += pick.Units
			} else {
				sum.Reserved += pick.Units
			}
		}
	}
	sum.Available = sum.Total - sum.Reserved - sum.Occupied
	return sum, nil
}

func summarize(counts, reserved, occupied map[string]int) []OccupancySummary {
	out := make([]OccupancySummary, 0, len(counts))
	for cat, total := range counts {
		out = append(out, OccupancySummary{
			Category:  cat,
			Total:     total,
			Reserved:  reserved[cat],
			Occupied:  occupied[cat],
			Available: total - reserved[cat] - occupied[cat],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
