// Package events publishes settlement events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nsqio/go-nsq"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/models"
)

// Publisher emits an event after a transaction reaches a terminal state.
type Publisher interface {
	PublishSettlement(ctx context.Context, event models.WebhookEvent) error
	Stop()
}

// producer is the subset of *nsq.Producer we use.
type producer interface {
	Publish(topic string, body []byte) error
	Stop()
}

// NSQPublisher publishes JSON-encoded events to a single NSQ topic.
type NSQPublisher struct {
	producer producer
	logger   *slog.Logger
	topic    string
}

// NewNSQPublisher connects to nsqd and verifies it is reachable.
func NewNSQPublisher(cfg config.NSQConfig, logger *slog.Logger) (*NSQPublisher, error) {
	p, err := nsq.NewProducer(cfg.Address, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := p.Ping(); err != nil {
		p.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon at %s: %w", cfg.Address, err)
	}

	return newNSQPublisher(p, cfg.Topic, logger), nil
}

func newNSQPublisher(p producer, topic string, logger *slog.Logger) *NSQPublisher {
	return &NSQPublisher{producer: p, topic: topic, logger: logger}
}

// PublishSettlement sends the event to the configured topic
func (p *NSQPublisher) PublishSettlement(_ context.Context, event models.WebhookEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.producer.Publish(p.topic, body); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	p.logger.Debug("published settlement event",
		"topic", p.topic,
		"event", event.Event,
		"transaction_request_id", event.Data.TransactionRequestID,
	)
	return nil
}

// Stop gracefully stops the producer
func (p *NSQPublisher) Stop() {
	p.producer.Stop()
}

// NoopPublisher is used when no NSQ daemon is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSettlement(context.Context, models.WebhookEvent) error { return nil }

func (NoopPublisher) Stop() {}
