package quotes

import (
	"context"
	"fmt"
	"time"

	"hotelier/internal/app/dto"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/shared/daterange"
)

// QuoteQuery asks for nightly pricing of one category over a stay window.
type QuoteQuery struct {
	PropertyID  string
	CategoryKey string
	CheckIn     time.Time
	CheckOut    time.Time
}

// Handler loads the property definition and runs the nightly quote engine.
type Handler struct {
	Properties catalog.Repository
	Engine     pricing.Engine
}

func (h *Handler) Handle(ctx context.Context, query QuoteQuery) (dto.Quote, error) {
	property, err := h.Properties.ByID(ctx, catalog.PropertyID(query.PropertyID))
	if err != nil {
		return dto.Quote{}, fmt.Errorf("quotes: load property: %w", err)
	}
	stay := daterange.New(query.CheckIn, query.CheckOut)
	return dto.MapQuote(h.Engine.Quote(property, query.CategoryKey, stay)), nil
}
