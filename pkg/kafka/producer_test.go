package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord(t *testing.T) {
	ts := time.Date(2024, 3, 28, 19, 30, 0, 0, time.UTC)
	record := toRecord(&Message{
		Topic:     "ticket-events",
		Key:       []byte("ticket-1"),
		Value:     []byte(`{"status":"pending"}`),
		Headers:   map[string]string{"event_type": "ticket.created"},
		Timestamp: ts,
	})

	assert.Equal(t, "ticket-events", record.Topic)
	assert.Equal(t, []byte("ticket-1"), record.Key)
	assert.Equal(t, ts, record.Timestamp)
	require.Len(t, record.Headers, 1)
	assert.Equal(t, "event_type", record.Headers[0].Key)
	assert.Equal(t, []byte("ticket.created"), record.Headers[0].Value)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(context.Background(), &ProducerConfig{})
	assert.Error(t, err)

	_, err = NewProducer(context.Background(), nil)
	assert.Error(t, err)
}
