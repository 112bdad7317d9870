// Package jetstream publishes broadcast events to NATS JetStream.
package jetstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// Config holds the JetStream publisher configuration
type Config struct {
	URL string
	// SubjectPrefix prefixes the per-type event subjects
	SubjectPrefix string
}

// Publisher publishes broadcast events to a JetStream subject per event type
type Publisher struct {
	conn    adapter.NatsConn
	js      adapter.JetStream
	subject string
}

// NewPublisher connects to NATS and creates an event publisher
func NewPublisher(njs adapter.NatsJetStream, cfg Config) (*Publisher, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "hs.lockups"
	}

	conn, js, err := njs.Connect(cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Publisher{conn: conn, js: js, subject: cfg.SubjectPrefix}, nil
}

// PublishEvent publishes one broadcast event
func (p *Publisher) PublishEvent(ctx context.Context, event domain.BroadcastEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	subject := fmt.Sprintf("%s.%s", p.subject, event.Type)
	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	return nil
}

// Close releases the broker connection
func (p *Publisher) Close() {
	p.conn.Close()
}
