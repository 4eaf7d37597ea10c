package dto

import (
	"hotelier/internal/domain/inventory"
	"hotelier/internal/domain/shared/daterange"
)

type DailyAvailability struct {
	Date      string `json:"date"`
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

type OccupancySummary struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

func MapDailyAvailability(rows []inventory.DailyAvailability) []DailyAvailability {
	out := make([]DailyAvailability, 0, len(rows))
	for _, row := range rows {
		out = append(out, DailyAvailability{
			Date:      daterange.Key(row.Date),
			Category:  row.Category,
			Total:     row.Total,
			Reserved:  row.Reserved,
			Occupied:  row.Occupied,
			Available: row.Available,
		})
	}
	return out
}

func MapOccupancySummaries(rows []inventory.OccupancySummary) []OccupancySummary {
	out := make([]OccupancySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OccupancySummary(row))
	}
	return out
}
