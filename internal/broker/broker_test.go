package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisherWritesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "portal.leads", logger: logger.NewNop()}

	event := NewEvent("lead.captured", map[string]string{"email": "a@example.com"})
	require.NoError(t, p.Publish(context.Background(), "page-1", event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "page-1", string(w.msgs[0].Key))

	var got struct {
		EventID   string            `json:"event_id"`
		EventType string            `json:"event_type"`
		Payload   map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, "lead.captured", got.EventType)
	assert.Equal(t, "a@example.com", got.Payload["email"])
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker unreachable")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}, topic: "portal.leads", logger: logger.NewNop()}

	err := p.Publish(context.Background(), "k", NewEvent("lead.captured", nil))
	assert.ErrorIs(t, err, boom)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "k", NewEvent("x", nil)))
	assert.NoError(t, p.Close())
}

func TestWriterFlushesImmediately(t *testing.T) {
	w := newWriter([]string{"localhost:9092"}, "portal.leads")
	defer w.Close()

	assert.Equal(t, "portal.leads", w.Topic)
	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.False(t, w.Async)
}
