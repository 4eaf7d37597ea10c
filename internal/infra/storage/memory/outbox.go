package memory

import (
	"context"
	"sync"
	"time"

	"hotelier/internal/infra/outbox"
)

// OutboxStore keeps pending events in memory until the worker drains them.
type OutboxStore struct {
	mu      sync.Mutex
	pending []outbox.EventDocument
	claimed map[string]outbox.EventDocument
	retryAt map[string]time.Time
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{
		claimed: make(map[string]outbox.EventDocument),
		retryAt: make(map[string]time.Time),
	}
}

func (s *OutboxStore) Append(ctx context.Context, doc outbox.EventDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, doc)
	return nil
}

// Claim hands out the oldest deliverable event, if any.
func (s *OutboxStore) Claim(ctx context.Context, workerID string) (*outbox.EventDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for i, doc := range s.pending {
		if at, ok := s.retryAt[doc.ID]; ok && now.Before(at) {
			continue
		}
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.claimed[doc.ID] = doc
		claimed := doc
		return &claimed, nil
	}
	return nil, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claimed, id)
	delete(s.retryAt, id)
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.claimed[id]
	if !ok {
		return nil
	}
	delete(s.claimed, id)
	doc.Attempts++
	s.retryAt[id] = retryAt
	s.pending = append(s.pending, doc)
	return nil
}

// Pending reports how many events still await delivery.
func (s *OutboxStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

var _ outbox.Store = (*OutboxStore)(nil)
