// Package messaging defines the cross-instance event publishing contract.
// The in-process ring buffer is instance-local; publishing to a broker is
// the optional path for other instances to observe lockup events.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/events"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
)

// Publisher publishes broadcast events to an external broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes one broadcast event
	PublishEvent(ctx context.Context, event domain.BroadcastEvent) error

	// Close releases the broker connection
	Close()
}

// Relay forwards broadcaster events to the publisher until the context is
// cancelled. Publish failures are logged and skipped: the broker feed is
// best effort and must not stall local subscribers.
func Relay(ctx context.Context, broadcaster *events.Broadcaster, publisher Publisher) {
	eventCh, cancel := broadcaster.Subscribe()
	defer cancel()

	logger.Info("Event relay started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event relay stopped")
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := publisher.PublishEvent(ctx, event); err != nil {
				logger.Warn("Failed to publish event to broker",
					zap.Error(err),
					zap.String("event_id", event.ID))
			}
		}
	}
}
