package pricing

import "hotelier/internal/domain/catalog"

// FallbackCommission applies when neither the category nor the property
// configures a rate.
const FallbackCommission = 10.0

// ResolveCommission returns the effective commission rate for a category
// within its property.
//
// A category-level rate of exactly zero means "not set" and falls through to
// the property default: zero is never an intentionally configured commission.
func ResolveCommission(cat *catalog.RoomCategory, property *catalog.Property) float64 {
	if cat != nil && cat.Commission > 0 {
		return cat.Commission
	}
	if property != nil && property.Commission > 0 {
		return property.Commission
	}
	return FallbackCommission
}
