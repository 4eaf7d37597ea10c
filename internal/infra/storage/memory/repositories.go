package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"hotelier/internal/app/drafts"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/shared/daterange"
)

// PropertyRepository is an in-memory property store for demos and tests.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[catalog.PropertyID]*catalog.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[catalog.PropertyID]*catalog.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id catalog.PropertyID) (*catalog.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return nil, catalog.ErrPropertyNotFound
	}
	return property, nil
}

func (r *PropertyRepository) Put(property *catalog.Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[property.ID] = property
}

// ReservationRepository keeps reservations in a slice and answers the overlap
// queries with linear scans. Good enough for fixtures; the mongo adapter owns
// the real query plans.
type ReservationRepository struct {
	mu    sync.RWMutex
	items []reservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Put(res reservation.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, res)
}

func (r *ReservationRepository) ActiveOnDate(ctx context.Context, property catalog.PropertyID, date time.Time) ([]reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []reservation.Reservation
	for _, res := range r.items {
		if res.PropertyID != property || !res.Status.CountsTowardInventory() {
			continue
		}
		if res.Stay.Contains(date) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepository) OverlappingRange(ctx context.Context, property catalog.PropertyID, window daterange.DateRange) ([]reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []reservation.Reservation
	for _, res := range r.items {
		if res.PropertyID != property {
			continue
		}
		if res.Stay.CheckIn.Before(window.CheckOut) && res.Stay.CheckOut.After(window.CheckIn) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepository) ByCategoryLabel(ctx context.Context, property catalog.PropertyID, rawLabel string) ([]reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []reservation.Reservation
	for _, res := range r.items {
		if res.PropertyID != property {
			continue
		}
		for _, pick := range res.Picks {
			if strings.EqualFold(pick.RawLabel, rawLabel) {
				out = append(out, res)
				break
			}
		}
	}
	return out, nil
}

// StockStore serves room counts per canonical category.
type StockStore struct {
	mu     sync.RWMutex
	counts map[catalog.PropertyID]map[string]int
}

func NewStockStore() *StockStore {
	return &StockStore{counts: make(map[catalog.PropertyID]map[string]int)}
}

func (s *StockStore) Set(property catalog.PropertyID, counts map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := make(map[string]int, len(counts))
	for k, v := range counts {
		cloned[k] = v
	}
	s.counts[property] = cloned
}

func (s *StockStore) Counts(ctx context.Context, property catalog.PropertyID) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.counts[property]))
	for k, v := range s.counts[property] {
		out[k] = v
	}
	return out, nil
}

// DraftRepository collects saved drafts.
type DraftRepository struct {
	mu    sync.Mutex
	items []drafts.Draft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{}
}

func (r *DraftRepository) Save(ctx context.Context, d *drafts.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *d)
	return nil
}

func (r *DraftRepository) All() []drafts.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]drafts.Draft(nil), r.items...)
}
