package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/app/dto"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/shared/daterange"
)

var (
	ErrQuoteUnavailable = errors.New("drafts: cannot draft an unavailable quote")
	ErrGuestRequired    = errors.New("drafts: guest name is required")
)

// Guest carries the customer metadata attached to a draft.
type Guest struct {
	Name  string
	Email string
	Phone string
}

// PickLine is the single room-pick line of a draft: the category, how many
// units, and the nightly breakdown the quote produced for it.
type PickLine struct {
	CategoryKey string            `json:"category_key"`
	Count       int               `json:"count"`
	Nightly     []dto.NightlyLine `json:"nightly"`
	ChosenPrice float64           `json:"chosen_price"`
}

// Draft is the flat persistable record a quote is shaped into. It is handed
// to the booking workflow; no lifecycle beyond creation lives here.
type Draft struct {
	ID                  string
	ReferenceCode       string
	PropertyID          string
	GuestName           string
	GuestEmail          string
	GuestPhone          string
	CheckIn             time.Time
	CheckOut            time.Time
	Nights              int
	Pick                PickLine
	TotalWithCommission float64
	HotelPayout         float64
	Currency            string
	CreatedAt           time.Time
}

// Repository persists draft records.
type Repository interface {
	Save(ctx context.Context, d *Draft) error
}

// Recorder announces created drafts. The outbox worker drains what it records.
type Recorder interface {
	Record(ctx context.Context, name string, aggregateID string, payload any) error
}

// FromQuote shapes an available quote into a draft record. Field mapping and
// decimal formatting only; every figure comes from the quote as computed.
func FromQuote(q pricing.Quote, guest Guest, now time.Time) (Draft, error) {
	if !q.Available {
		return Draft{}, ErrQuoteUnavailable
	}
	if strings.TrimSpace(guest.Name) == "" {
		return Draft{}, ErrGuestRequired
	}

	mapped := dto.MapQuote(q)
	id := uuid.NewString()
	return Draft{
		ID:            id,
		ReferenceCode: referenceCode(id, now),
		PropertyID:    string(q.PropertyID),
		GuestName:     strings.TrimSpace(guest.Name),
		GuestEmail:    strings.TrimSpace(guest.Email),
		GuestPhone:    strings.TrimSpace(guest.Phone),
		CheckIn:       q.Stay.CheckIn,
		CheckOut:      q.Stay.CheckOut,
		Nights:        q.NightsCount,
		Pick: PickLine{
			CategoryKey: q.CategoryKey,
			Count:       1,
			Nightly:     mapped.Nights,
			ChosenPrice: q.TotalWithCommission,
		},
		TotalWithCommission: q.TotalWithCommission,
		HotelPayout:         q.TotalWithoutCommission,
		Currency:            q.Currency,
		CreatedAt:           now.UTC(),
	}, nil
}

// CreateQuery asks for a draft of one category over a stay window.
type CreateQuery struct {
	PropertyID  string
	CategoryKey string
	CheckIn     time.Time
	CheckOut    time.Time
	Guest       Guest
}

// Service adapts quotes into drafts, persists them and records a
// draft.created event for the outbox.
type Service struct {
	Properties catalog.Repository
	Engine     pricing.Engine
	Drafts     Repository
	Events     Recorder
}

// CreateFromStay quotes the stay and persists the resulting draft. An
// unavailable quote yields ErrQuoteUnavailable; callers inspect the quote
// separately when they need the reason.
func (s *Service) CreateFromStay(ctx context.Context, query CreateQuery) (Draft, error) {
	property, err := s.Properties.ByID(ctx, catalog.PropertyID(query.PropertyID))
	if err != nil {
		return Draft{}, fmt.Errorf("drafts: load property: %w", err)
	}
	quote := s.Engine.Quote(property, query.CategoryKey, daterange.New(query.CheckIn, query.CheckOut))
	return s.Create(ctx, quote, query.Guest, time.Now().UTC())
}

func (s *Service) Create(ctx context.Context, q pricing.Quote, guest Guest, now time.Time) (Draft, error) {
	draft, err := FromQuote(q, guest, now)
	if err != nil {
		return Draft{}, err
	}
	if err := s.Drafts.Save(ctx, &draft); err != nil {
		return Draft{}, fmt.Errorf("drafts: save: %w", err)
	}
	if s.Events != nil {
		payload := map[string]any{
			"draft_id":       draft.ID,
			"reference_code": draft.ReferenceCode,
			"property_id":    draft.PropertyID,
			"category_key":   draft.Pick.CategoryKey,
			"check_in":       daterange.Key(draft.CheckIn),
			"check_out":      daterange.Key(draft.CheckOut),
			"total":          draft.TotalWithCommission,
			"currency":       draft.Currency,
		}
		if err := s.Events.Record(ctx, "draft.created", draft.ID, payload); err != nil {
			return Draft{}, fmt.Errorf("drafts: record event: %w", err)
		}
	}
	return draft, nil
}

func referenceCode(id string, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(short) > 6 {
		short = short[:6]
	}
	return fmt.Sprintf("DR-%s-%s", now.UTC().Format("20060102"), short)
}
