package pricing

import (
	"math"
	"time"

	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/shared/daterange"
)

// Reasons a stay can come back unavailable. Unavailability is a normal
// negative result, not an error.
const (
	ReasonBlockedByCalendar = "blocked_by_calendar"
	ReasonRoomNotFound      = "room_not_found"
)

// NightlyLine is one computed night within a quote. Values are rounded to two
// decimals independently of the aggregate totals; see Quote.
type NightlyLine struct {
	Date                   time.Time
	Price                  float64 // guest price, pre-commission
	Cost                   float64 // hotel cost basis
	CommissionRate         float64
	TotalWithCommission    float64
	TotalWithoutCommission float64
}

// Quote is the aggregate pricing result for one (property, category, stay).
//
// TotalWithCommission is the two-decimal rounding of the sum of the unrounded
// nightly totals, while each NightlyLine is rounded on its own. Summing the
// rounded lines does not always reproduce the rounded sum; callers must not
// assume it does.
type Quote struct {
	PropertyID             catalog.PropertyID
	CategoryKey            string
	Stay                   daterange.DateRange
	Currency               string
	Nights                 []NightlyLine
	NightsCount            int
	TotalWithCommission    float64
	TotalWithoutCommission float64 // hotel payout

	Available   bool
	Reason      string     // set when Available is false
	BlockedDate *time.Time // first blocking date for blocked_by_calendar
}

// Engine walks a stay night by night, resolving calendar exceptions and the
// effective commission rate, and detects calendar blocking.
type Engine struct{}

// Quote prices a stay for one room category of a property.
//
// A resolved price or cost of exactly zero blocks the whole stay: the result
// carries only the reason and the first blocking date, and the nights computed
// before it are discarded. An unknown category key short-circuits to
// room_not_found before any date work.
func (Engine) Quote(property *catalog.Property, categoryKey string, stay daterange.DateRange) Quote {
	q := Quote{
		PropertyID:  property.ID,
		CategoryKey: categoryKey,
		Stay:        stay,
		Currency:    property.Currency,
	}

	cat, err := property.Category(categoryKey)
	if err != nil {
		q.Reason = ReasonRoomNotFound
		return q
	}

	rate := ResolveCommission(cat, property)

	var sumWith, sumWithout float64
	lines := make([]NightlyLine, 0, stay.Nights())
	for _, date := range stay.Dates() {
		price, cost := ResolveNight(cat, date)
		if price == 0 || cost == 0 {
			blocked := date
			q.Reason = ReasonBlockedByCalendar
			q.BlockedDate = &blocked
			q.Nights = nil
			return q
		}

		withCommission := price + cost*(rate/100)
		sumWith += withCommission
		sumWithout += price
		lines = append(lines, NightlyLine{
			Date:                   date,
			Price:                  price,
			Cost:                   cost,
			CommissionRate:         rate,
			TotalWithCommission:    Round2(withCommission),
			TotalWithoutCommission: Round2(price),
		})
	}

	q.Available = true
	q.Nights = lines
	q.NightsCount = len(lines)
	q.TotalWithCommission = Round2(sumWith)
	q.TotalWithoutCommission = Round2(sumWithout)
	return q
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
