package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/pkg/kafka"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"go.uber.org/zap"
)

// Ticket lifecycle event types
const (
	EventTicketCreated       = "ticket.created"
	EventTicketUpdated       = "ticket.updated"
	EventTicketStatusChanged = "ticket.status_changed"
	EventTicketDeleted       = "ticket.deleted"
)

// TicketEvent is published after a ticket change has been stored
type TicketEvent struct {
	EventID        string              `json:"event_id"`
	Type           string              `json:"type"`
	TicketID       string              `json:"ticket_id"`
	UserID         string              `json:"user_id"`
	ActorID        string              `json:"actor_id"`
	PreviousStatus string              `json:"previous_status,omitempty"`
	Ticket         *dto.TicketResponse `json:"ticket,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

// NewTicketEvent builds an event for t
func NewTicketEvent(eventType string, t *domain.Ticket, actorID string) *TicketEvent {
	return &TicketEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		TicketID:   t.ID,
		UserID:     t.UserID,
		ActorID:    actorID,
		Ticket:     dto.NewTicketResponse(t),
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher delivers ticket lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event *TicketEvent) error
	Close()
}

// MessageProducer is the slice of pkg/kafka the publisher needs
type MessageProducer interface {
	Produce(ctx context.Context, msg *kafka.Message) error
	Close()
}

// KafkaEventPublisher publishes events keyed by ticket id, so every event
// of one ticket lands on the same partition in order.
type KafkaEventPublisher struct {
	producer MessageProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaEventPublisher creates a new KafkaEventPublisher
func NewKafkaEventPublisher(producer MessageProducer, topic string, log *logger.Logger) *KafkaEventPublisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &KafkaEventPublisher{producer: producer, topic: topic, log: log}
}

// Publish serializes and produces event
func (p *KafkaEventPublisher) Publish(ctx context.Context, event *TicketEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = p.producer.Produce(ctx, &kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.TicketID),
		Value: value,
		Headers: map[string]string{
			"event_type": event.Type,
			"event_id":   event.EventID,
		},
		Timestamp: event.OccurredAt,
	})
	if err != nil {
		p.log.WithContext(ctx).Error("failed to publish ticket event",
			zap.String("event_type", event.Type),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err),
		)
	}
	return err
}

// Close flushes and closes the producer
func (p *KafkaEventPublisher) Close() {
	p.producer.Close()
}

// NoOpEventPublisher drops every event; used when Kafka is disabled
type NoOpEventPublisher struct{}

func (NoOpEventPublisher) Publish(ctx context.Context, event *TicketEvent) error { return nil }
func (NoOpEventPublisher) Close()                                                {}
