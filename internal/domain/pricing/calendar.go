package pricing

import (
	"time"

	"hotelier/internal/domain/catalog"
)

// ResolveNight returns the effective guest price and hotel cost for one night
// of a category: the calendar exception for that exact day when present,
// otherwise the category defaults. Pure lookup, no failure modes.
func ResolveNight(cat *catalog.RoomCategory, date time.Time) (price, cost float64) {
	if exc, ok := cat.Calendar.On(date); ok {
		return exc.Price, exc.Cost
	}
	return cat.BasePrice, cat.BaseCost
}
