package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	pending []EventDocument
	sent    []string
	failed  []string
	retryAt []time.Time
}

func (s *fakeStore) Append(_ context.Context, doc EventDocument) error {
	s.pending = append(s.pending, doc)
	return nil
}

func (s *fakeStore) Claim(context.Context, string) (*EventDocument, error) {
	if len(s.pending) == 0 {
		return nil, nil
	}
	doc := s.pending[0]
	s.pending = s.pending[1:]
	return &doc, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id string) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id string, retryAt time.Time, _ string) error {
	s.failed = append(s.failed, id)
	s.retryAt = append(s.retryAt, retryAt)
	return nil
}

type fakeProducer struct {
	topics   []string
	keys     []string
	payloads [][]byte
	headers  []map[string]string
	err      error
}

func (p *fakeProducer) Publish(_ context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	p.headers = append(p.headers, headers)
	return nil
}

func pendingEvent() EventDocument {
	return EventDocument{
		ID:         "evt-1",
		Name:       "draft.created",
		Aggregate:  "draft-42",
		Payload:    []byte(`{"draft_id":"draft-42","total":210}`),
		OccurredAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestProcessOncePublishesCloudEvent(t *testing.T) {
	store := &fakeStore{pending: []EventDocument{pendingEvent()}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, ID: "w-1"}

	require.NoError(t, w.processOnce(context.Background()))

	require.Len(t, producer.topics, 1)
	assert.Equal(t, "draft.events.v1", producer.topics[0])
	assert.Equal(t, "draft-42", producer.keys[0])
	assert.Equal(t, []string{"evt-1"}, store.sent)
	assert.Empty(t, store.failed)

	var evt map[string]any
	require.NoError(t, json.Unmarshal(producer.payloads[0], &evt))
	assert.Equal(t, "1.0", evt["specversion"])
	assert.Equal(t, "draft.created.v1", evt["type"])
	assert.Equal(t, "app://hotelier", evt["source"])
	data, ok := evt["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "draft-42", data["draft_id"])
	assert.Equal(t, "application/cloudevents+json", producer.headers[0]["content-type"])
}

func TestProcessOnceTopicPrefix(t *testing.T) {
	store := &fakeStore{pending: []EventDocument{pendingEvent()}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, TopicPrefix: "stage."}

	require.NoError(t, w.processOnce(context.Background()))
	require.Len(t, producer.topics, 1)
	assert.Equal(t, "stage.draft.events.v1", producer.topics[0])
}

func TestProcessOnceReschedulesOnPublishFailure(t *testing.T) {
	store := &fakeStore{pending: []EventDocument{pendingEvent()}}
	producer := &fakeProducer{err: errors.New("broker unreachable")}
	w := &Worker{Store: store, Producer: producer, Backoff: []time.Duration{time.Minute}}

	before := time.Now()
	require.NoError(t, w.processOnce(context.Background()), "publish failures are rescheduled, not fatal")

	assert.Empty(t, store.sent)
	require.Equal(t, []string{"evt-1"}, store.failed)
	assert.WithinDuration(t, before.Add(time.Minute), store.retryAt[0], 5*time.Second)
}

func TestProcessOnceMalformedPayload(t *testing.T) {
	doc := pendingEvent()
	doc.Payload = []byte("not json")
	store := &fakeStore{pending: []EventDocument{doc}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer}

	require.NoError(t, w.processOnce(context.Background()))
	assert.Empty(t, producer.topics)
	assert.Equal(t, []string{"evt-1"}, store.failed)
}

func TestProcessOnceEmptyStore(t *testing.T) {
	store := &fakeStore{}
	w := &Worker{Store: store, Producer: &fakeProducer{}}
	require.NoError(t, w.processOnce(context.Background()))
}

func TestRunRequiresDependencies(t *testing.T) {
	w := &Worker{}
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}

func TestRecorderAppendsDocument(t *testing.T) {
	store := &fakeStore{}
	r := Recorder{Store: store}

	err := r.Record(context.Background(), "draft.created", "draft-42", map[string]any{"total": 210.0})
	require.NoError(t, err)

	require.Len(t, store.pending, 1)
	doc := store.pending[0]
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "draft.created", doc.Name)
	assert.Equal(t, "draft-42", doc.Aggregate)
	assert.JSONEq(t, `{"total":210}`, string(doc.Payload))
}
