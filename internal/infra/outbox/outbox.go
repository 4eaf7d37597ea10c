package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventDocument is one pending event awaiting delivery.
type EventDocument struct {
	ID         string
	Name       string
	Aggregate  string
	Payload    []byte
	Headers    map[string]string
	OccurredAt time.Time
	Attempts   int
}

// Store holds pending events until the worker drains them.
type Store interface {
	Append(ctx context.Context, doc EventDocument) error
	Claim(ctx context.Context, workerID string) (*EventDocument, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error
}

// Recorder turns application events into stored outbox documents. It
// satisfies the drafts.Recorder port.
type Recorder struct {
	Store Store
}

func (r Recorder) Record(ctx context.Context, name string, aggregateID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("outbox: encode %s payload: %w", name, err)
	}
	return r.Store.Append(ctx, EventDocument{
		ID:         uuid.NewString(),
		Name:       name,
		Aggregate:  aggregateID,
		Payload:    body,
		OccurredAt: time.Now().UTC(),
	})
}
