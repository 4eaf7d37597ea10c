package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPropertyCategory(t *testing.T) {
	p := &Property{
		Categories: []RoomCategory{
			{Key: "doubleRooms"},
			{Key: "suite"},
		},
	}

	cat, err := p.Category("doubleRooms")
	require.NoError(t, err)
	assert.Equal(t, "doubleRooms", cat.Key)

	cat, err = p.Category("SUITE")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, "suite", cat.Key)

	_, err = p.Category("penthouse")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestBuildCalendar(t *testing.T) {
	cal := BuildCalendar([]CalendarException{
		{Date: time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), Price: 120, Cost: 60},
		{Date: day(2024, 3, 5), Price: 150, Cost: 70},
	})

	exc, ok := cal.On(day(2024, 3, 5))
	require.True(t, ok, "exception dates are truncated to calendar days")
	assert.InDelta(t, 150.0, exc.Price, 1e-9, "the later exception for a day wins")

	_, ok = cal.On(day(2024, 3, 6))
	assert.False(t, ok)
}

func TestRoomCategoryValidate(t *testing.T) {
	tests := []struct {
		name    string
		cat     RoomCategory
		wantErr error
	}{
		{"valid", RoomCategory{BasePrice: 100, BaseCost: 50, Commission: 15}, nil},
		{"zero rates allowed", RoomCategory{}, nil},
		{"negative price", RoomCategory{BasePrice: -1}, ErrNegativeRate},
		{"negative cost", RoomCategory{BaseCost: -1}, ErrNegativeRate},
		{"commission above range", RoomCategory{Commission: 101}, ErrCommissionRange},
		{"commission below range", RoomCategory{Commission: -1}, ErrCommissionRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
