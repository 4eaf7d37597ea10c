package dto

import (
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/shared/daterange"
)

type NightlyLine struct {
	Date                   string  `json:"date"`
	Price                  float64 `json:"price"`
	Cost                   float64 `json:"cost"`
	CommissionRate         float64 `json:"commission_rate"`
	TotalWithCommission    float64 `json:"total_with_commission"`
	TotalWithoutCommission float64 `json:"total_without_commission"`
}

type Quote struct {
	PropertyID             string        `json:"property_id"`
	CategoryKey            string        `json:"category_key"`
	Currency               string        `json:"currency,omitempty"`
	CheckIn                string        `json:"check_in"`
	CheckOut               string        `json:"check_out"`
	Nights                 []NightlyLine `json:"nights,omitempty"`
	NightsCount            int           `json:"nights_count"`
	TotalWithCommission    float64       `json:"total_with_commission"`
	TotalWithoutCommission float64       `json:"total_without_commission"`
	Available              bool          `json:"available"`
	Reason                 string        `json:"reason,omitempty"`
	BlockedDate            string        `json:"blocked_date,omitempty"`
}

func MapQuote(q pricing.Quote) Quote {
	out := Quote{
		PropertyID:             string(q.PropertyID),
		CategoryKey:            q.CategoryKey,
		Currency:               q.Currency,
		CheckIn:                daterange.Key(q.Stay.CheckIn),
		CheckOut:               daterange.Key(q.Stay.CheckOut),
		NightsCount:            q.NightsCount,
		TotalWithCommission:    q.TotalWithCommission,
		TotalWithoutCommission: q.TotalWithoutCommission,
		Available:              q.Available,
		Reason:                 q.Reason,
	}
	if q.BlockedDate != nil {
		out.BlockedDate = daterange.Key(*q.BlockedDate)
	}
	for _, n := range q.Nights {
		out.Nights = append(out.Nights, NightlyLine{
			Date:                   daterange.Key(n.Date),
			Price:                  n.Price,
			Cost:                   n.Cost,
			CommissionRate:         n.CommissionRate,
			TotalWithCommission:    n.TotalWithCommission,
			TotalWithoutCommission: n.TotalWithoutCommission,
		})
	}
	return out
}
