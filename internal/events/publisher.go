// Package events publishes search events for downstream analytics.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pageza/mealfinder/backend/internal/logging"
)

// SearchEvent describes one completed recipe search.
type SearchEvent struct {
	SessionID   string    `json:"session_id"`
	Seq         uint64    `json:"seq"`
	Term        string    `json:"term"`
	Outcome     string    `json:"outcome"`
	ResultCount int       `json:"result_count"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Stale       bool      `json:"stale"`
	DurationMS  int64     `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher delivers search events.
type Publisher interface {
	Publish(ctx context.Context, event SearchEvent) error
	Close() error
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SearchEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by session so that a
// session's events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(newWriter(brokers, topic))
}

// newWriter builds a synchronous writer so that WriteMessages reports
// delivery errors to the caller.
func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           2 * time.Second,
		MaxAttempts:            3,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		logger: logging.WithComponent("search-events"),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event SearchEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal search event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Time:  event.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish search event: %w", err)
	}
	p.logger.Debug("search event published", "session_id", event.SessionID, "seq", event.Seq)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
