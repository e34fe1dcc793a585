package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher exports change-feed events to a topic keyed by user id
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger coreport.Logger
}

var _ messaging.ChangeFeedPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates an async publisher for the given brokers and topic
func NewKafkaPublisher(brokers []string, topic string, logger coreport.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, topic: topic, logger: logger}
}

// Publish writes the event as JSON
func (p *KafkaPublisher) Publish(ctx context.Context, event entity.FeedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode feed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to send Kafka message", map[string]any{
			"topic":   p.topic,
			"user_id": event.UserID,
			"error":   err.Error(),
		})
		return err
	}

	p.logger.Debug("Kafka message sent", map[string]any{
		"topic":   p.topic,
		"user_id": event.UserID,
		"type":    string(event.Type),
	})
	return nil
}

// Close flushes pending messages
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", map[string]any{"error": err.Error()})
		return err
	}
	p.logger.Info("Kafka writer closed", nil)
	return nil
}
