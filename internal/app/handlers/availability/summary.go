package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"hotelier/internal/app/dto"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/inventory"
	"hotelier/internal/domain/shared/daterange"
)

var ErrArchiverUnavailable = errors.New("availability: report archiver not configured")

// Archiver stores a serialized report and returns where it can be fetched.
type Archiver interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type WindowQuery struct {
	PropertyID string
	From       time.Time
	To         time.Time
}

type RollingQuery struct {
	PropertyID string
	Start      time.Time
	Days       int
}

// Handler exposes the inventory reconciler's report shapes to transport
// callers and optionally archives rolling snapshots.
type Handler struct {
	Reconciler *inventory.Reconciler
	Archiver   Archiver
}

// Window reconciles availability for an explicit date range.
func (h *Handler) Window(ctx context.Context, query WindowQuery) ([]dto.DailyAvailability, error) {
	rows, err := h.Reconciler.Summarize(ctx, catalog.PropertyID(query.PropertyID), daterange.New(query.From, query.To))
	if err != nil {
		return nil, err
	}
	return dto.MapDailyAvailability(rows), nil
}

// Rolling reconciles a forward-looking window of consecutive days.
func (h *Handler) Rolling(ctx context.Context, query RollingQuery) ([]dto.DailyAvailability, error) {
	rows, err := h.Reconciler.SummarizeRolling(ctx, catalog.PropertyID(query.PropertyID), query.Start, query.Days)
	if err != nil {
		return nil, err
	}
	return dto.MapDailyAvailability(rows), nil
}

// Split returns the reserved/occupied/available partition for one window.
func (h *Handler) Split(ctx context.Context, query WindowQuery) ([]dto.OccupancySummary, error) {
	rows, err := h.Reconciler.SplitWindow(ctx, catalog.PropertyID(query.PropertyID), daterange.New(query.From, query.To))
	if err != nil {
		return nil, err
	}
	return dto.MapOccupancySummaries(rows), nil
}

// Snapshot returns the current-state split for a single room-type label.
func (h *Handler) Snapshot(ctx context.Context, propertyID, rawLabel string) (dto.OccupancySummary, error) {
	row, err := h.Reconciler.SnapshotByLabel(ctx, catalog.PropertyID(propertyID), rawLabel)
	if err != nil {
		return dto.OccupancySummary{}, err
	}
	return dto.OccupancySummary(row), nil
}

// Export reconciles a rolling window and archives it as a JSON report,
// returning the report URL.
func (h *Handler) Export(ctx context.Context, query RollingQuery) (string, error) {
	if h.Archiver == nil {
		return "", ErrArchiverUnavailable
	}
	rows, err := h.Rolling(ctx, query)
	if err != nil {
		return "", err
	}
	report := struct {
		PropertyID  string                  `json:"property_id"`
		GeneratedAt string                  `json:"generated_at"`
		Days        []dto.DailyAvailability `json:"days"`
	}{
		PropertyID:  query.PropertyID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Days:        rows,
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("availability: encode report: %w", err)
	}
	key := fmt.Sprintf("availability/%s/%s.json", query.PropertyID, daterange.Key(query.Start))
	return h.Archiver.Upload(ctx, key, bytes.NewReader(payload), "application/json")
}
