package drafts_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/app/drafts"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/infra/outbox"
	"hotelier/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedProperty(repo *memory.PropertyRepository) {
	repo.Put(&catalog.Property{
		ID:         "hotel-1",
		Name:       "Seaside",
		Currency:   "EUR",
		Commission: 10,
		Categories: []catalog.RoomCategory{
			{Key: "doubleRooms", DisplayName: "Double", BasePrice: 100, BaseCost: 50},
		},
	})
}

func TestFromQuote(t *testing.T) {
	var engine pricing.Engine
	properties := memory.NewPropertyRepository()
	seedProperty(properties)
	property, err := properties.ByID(context.Background(), "hotel-1")
	require.NoError(t, err)

	stay := daterange.New(day(2024, 7, 1), day(2024, 7, 3))
	quote := engine.Quote(property, "doubleRooms", stay)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	draft, err := drafts.FromQuote(quote, drafts.Guest{Name: "  Ada Lovelace ", Email: "ada@example.com"}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, draft.ID)
	assert.True(t, strings.HasPrefix(draft.ReferenceCode, "DR-20240615-"), draft.ReferenceCode)
	assert.Len(t, draft.ReferenceCode, len("DR-20240615-")+6)
	assert.Equal(t, "hotel-1", draft.PropertyID)
	assert.Equal(t, "Ada Lovelace", draft.GuestName)
	assert.Equal(t, day(2024, 7, 1), draft.CheckIn)
	assert.Equal(t, day(2024, 7, 3), draft.CheckOut)
	assert.Equal(t, 2, draft.Nights)
	assert.Equal(t, "doubleRooms", draft.Pick.CategoryKey)
	assert.Equal(t, 1, draft.Pick.Count)
	require.Len(t, draft.Pick.Nightly, 2)
	assert.InDelta(t, 210.0, draft.TotalWithCommission, 1e-9)
	assert.InDelta(t, 200.0, draft.HotelPayout, 1e-9)
	assert.Equal(t, "EUR", draft.Currency)
	assert.Equal(t, now, draft.CreatedAt)
}

func TestFromQuoteRejectsUnavailable(t *testing.T) {
	quote := pricing.Quote{Available: false, Reason: pricing.ReasonBlockedByCalendar}
	_, err := drafts.FromQuote(quote, drafts.Guest{Name: "Ada"}, time.Now())
	assert.ErrorIs(t, err, drafts.ErrQuoteUnavailable)
}

func TestFromQuoteRequiresGuestName(t *testing.T) {
	quote := pricing.Quote{Available: true}
	_, err := drafts.FromQuote(quote, drafts.Guest{Name: "   "}, time.Now())
	assert.ErrorIs(t, err, drafts.ErrGuestRequired)
}

func TestServiceCreateFromStay(t *testing.T) {
	properties := memory.NewPropertyRepository()
	seedProperty(properties)
	store := memory.NewDraftRepository()
	events := memory.NewOutboxStore()

	svc := &drafts.Service{
		Properties: properties,
		Drafts:     store,
		Events:     outbox.Recorder{Store: events},
	}

	draft, err := svc.CreateFromStay(context.Background(), drafts.CreateQuery{
		PropertyID:  "hotel-1",
		CategoryKey: "doubleRooms",
		CheckIn:     day(2024, 7, 1),
		CheckOut:    day(2024, 7, 3),
		Guest:       drafts.Guest{Name: "Ada Lovelace"},
	})
	require.NoError(t, err)

	saved := store.All()
	require.Len(t, saved, 1)
	assert.Equal(t, draft.ID, saved[0].ID)
	assert.Equal(t, 1, events.Pending(), "draft.created lands in the outbox")
}

func TestServiceCreateFromStayUnknownProperty(t *testing.T) {
	svc := &drafts.Service{
		Properties: memory.NewPropertyRepository(),
		Drafts:     memory.NewDraftRepository(),
	}

	_, err := svc.CreateFromStay(context.Background(), drafts.CreateQuery{
		PropertyID:  "nope",
		CategoryKey: "doubleRooms",
		CheckIn:     day(2024, 7, 1),
		CheckOut:    day(2024, 7, 3),
		Guest:       drafts.Guest{Name: "Ada"},
	})
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestServiceCreateBlockedQuote(t *testing.T) {
	properties := memory.NewPropertyRepository()
	property := &catalog.Property{
		ID:       "hotel-2",
		Currency: "EUR",
		Categories: []catalog.RoomCategory{
			{
				Key:       "doubleRooms",
				BasePrice: 100,
				BaseCost:  50,
				Calendar: catalog.BuildCalendar([]catalog.CalendarException{
					{Date: day(2024, 7, 2), Price: 0, Cost: 50},
				}),
			},
		},
	}
	properties.Put(property)
	store := memory.NewDraftRepository()

	svc := &drafts.Service{Properties: properties, Drafts: store}

	_, err := svc.CreateFromStay(context.Background(), drafts.CreateQuery{
		PropertyID:  "hotel-2",
		CategoryKey: "doubleRooms",
		CheckIn:     day(2024, 7, 1),
		CheckOut:    day(2024, 7, 3),
		Guest:       drafts.Guest{Name: "Ada"},
	})
	assert.ErrorIs(t, err, drafts.ErrQuoteUnavailable)
	assert.Empty(t, store.All(), "nothing is persisted for a blocked stay")
}
