package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testProperty() *catalog.Property {
	return &catalog.Property{
		ID:         "hotel-1",
		Name:       "Seaside",
		Currency:   "EUR",
		Commission: 10,
		Categories: []catalog.RoomCategory{
			{
				Key:         "doubleRooms",
				DisplayName: "Double",
				BasePrice:   100,
				BaseCost:    50,
			},
			{
				Key:         "suite",
				DisplayName: "Suite",
				BasePrice:   300,
				BaseCost:    120,
				Commission:  20,
			},
		},
	}
}

func TestQuoteTwoNights(t *testing.T) {
	var engine Engine
	property := testProperty()
	stay := daterange.New(day(2024, 1, 1), day(2024, 1, 3))

	q := engine.Quote(property, "doubleRooms", stay)

	require.True(t, q.Available)
	assert.Equal(t, catalog.PropertyID("hotel-1"), q.PropertyID)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, 2, q.NightsCount)
	require.Len(t, q.Nights, 2)

	for i, line := range q.Nights {
		assert.Equal(t, day(2024, 1, 1+i), line.Date)
		assert.InDelta(t, 100.0, line.Price, 1e-9)
		assert.InDelta(t, 50.0, line.Cost, 1e-9)
		assert.InDelta(t, 10.0, line.CommissionRate, 1e-9)
		assert.InDelta(t, 105.0, line.TotalWithCommission, 1e-9)
		assert.InDelta(t, 100.0, line.TotalWithoutCommission, 1e-9)
	}
	assert.InDelta(t, 210.0, q.TotalWithCommission, 1e-9)
	assert.InDelta(t, 200.0, q.TotalWithoutCommission, 1e-9)
}

func TestQuoteCalendarExceptionOverridesBaseRates(t *testing.T) {
	var engine Engine
	property := testProperty()
	property.Categories[0].Calendar = catalog.BuildCalendar([]catalog.CalendarException{
		{Date: day(2024, 1, 2), Price: 150, Cost: 70},
	})
	stay := daterange.New(day(2024, 1, 1), day(2024, 1, 3))

	q := engine.Quote(property, "doubleRooms", stay)

	require.True(t, q.Available)
	require.Len(t, q.Nights, 2)
	assert.InDelta(t, 100.0, q.Nights[0].Price, 1e-9)
	assert.InDelta(t, 150.0, q.Nights[1].Price, 1e-9)
	assert.InDelta(t, 70.0, q.Nights[1].Cost, 1e-9)
	assert.InDelta(t, 157.0, q.Nights[1].TotalWithCommission, 1e-9)
	assert.InDelta(t, 262.0, q.TotalWithCommission, 1e-9)
	assert.InDelta(t, 250.0, q.TotalWithoutCommission, 1e-9)
}

func TestQuoteBlockedByCalendar(t *testing.T) {
	tests := []struct {
		name string
		exc  catalog.CalendarException
	}{
		{"zero price", catalog.CalendarException{Date: day(2024, 1, 2), Price: 0, Cost: 70}},
		{"zero cost", catalog.CalendarException{Date: day(2024, 1, 2), Price: 150, Cost: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var engine Engine
			property := testProperty()
			property.Categories[0].Calendar = catalog.BuildCalendar([]catalog.CalendarException{tt.exc})
			stay := daterange.New(day(2024, 1, 1), day(2024, 1, 4))

			q := engine.Quote(property, "doubleRooms", stay)

			assert.False(t, q.Available)
			assert.Equal(t, ReasonBlockedByCalendar, q.Reason)
			require.NotNil(t, q.BlockedDate)
			assert.Equal(t, day(2024, 1, 2), *q.BlockedDate)
			assert.Empty(t, q.Nights, "nights before the block are discarded")
			assert.Zero(t, q.TotalWithCommission)
		})
	}
}

func TestQuoteRoomNotFound(t *testing.T) {
	var engine Engine
	q := engine.Quote(testProperty(), "penthouse", daterange.New(day(2024, 1, 1), day(2024, 1, 3)))

	assert.False(t, q.Available)
	assert.Equal(t, ReasonRoomNotFound, q.Reason)
	assert.Nil(t, q.BlockedDate)
	assert.Empty(t, q.Nights)
}

func TestQuoteCategoryKeyIsCaseInsensitive(t *testing.T) {
	var engine Engine
	q := engine.Quote(testProperty(), "DOUBLEROOMS", daterange.New(day(2024, 1, 1), day(2024, 1, 2)))
	assert.True(t, q.Available)
}

func TestQuoteSameDayStayPricesOneNight(t *testing.T) {
	var engine Engine
	q := engine.Quote(testProperty(), "doubleRooms", daterange.New(day(2024, 1, 1), day(2024, 1, 1)))

	require.True(t, q.Available)
	assert.Equal(t, 1, q.NightsCount)
	assert.InDelta(t, 105.0, q.TotalWithCommission, 1e-9)
}

func TestResolveCommission(t *testing.T) {
	tests := []struct {
		name     string
		category float64
		property float64
		want     float64
	}{
		{"category override wins", 20, 10, 20},
		{"zero override falls back to property", 0, 15, 15},
		{"property default", 0, 10, 10},
		{"fallback when nothing configured", 0, 0, FallbackCommission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := &catalog.RoomCategory{Key: "doubleRooms", Commission: tt.category}
			property := &catalog.Property{Commission: tt.property}
			assert.InDelta(t, tt.want, ResolveCommission(cat, property), 1e-9)
		})
	}
}

// The aggregate totals round the unrounded sum, each line rounds on its own.
// With a nightly total landing on a half cent the two disagree and that
// discrepancy is part of the contract.
func TestQuoteAggregateRoundsUnroundedSum(t *testing.T) {
	var engine Engine
	property := &catalog.Property{
		ID:         "hotel-2",
		Currency:   "EUR",
		Commission: 10,
		Categories: []catalog.RoomCategory{
			{Key: "doubleRooms", BasePrice: 100, BaseCost: 1.25},
		},
	}
	stay := daterange.New(day(2024, 1, 1), day(2024, 1, 4))

	q := engine.Quote(property, "doubleRooms", stay)

	require.True(t, q.Available)
	require.Len(t, q.Nights, 3)

	// each night is 100.125, rounded half away to 100.13
	var roundedSum float64
	for _, line := range q.Nights {
		assert.InDelta(t, 100.13, line.TotalWithCommission, 1e-9)
		roundedSum += line.TotalWithCommission
	}
	assert.InDelta(t, 300.39, roundedSum, 1e-6)
	assert.InDelta(t, 300.38, q.TotalWithCommission, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 1.23, Round2(1.234), 1e-9)
	assert.InDelta(t, 1.24, Round2(1.236), 1e-9)
	assert.InDelta(t, 0.13, Round2(0.125), 1e-9)
	assert.InDelta(t, -0.13, Round2(-0.125), 1e-9, "half rounds away from zero")
	assert.InDelta(t, 100.0, Round2(100), 1e-9)
}
