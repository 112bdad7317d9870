// Package notify dispatches push notifications with write-once dedup.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/price"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

// DefaultMinSupporterUSD is the minimum USD-equivalent stake for a
// supporter notification
const DefaultMinSupporterUSD = 10.0

// Notifier sends lockup lifecycle notifications
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// StakeExpired notifies an identity that one of its lockups unlocked
	StakeExpired(ctx context.Context, fid uint64, lockupID uint64) error

	// SupporterAdded notifies a cast creator about a new supporter stake.
	// The notification is suppressed when the stake's USD value is below
	// the configured threshold; a price-feed failure values it at 0, so
	// the gate fails closed.
	SupporterAdded(ctx context.Context, fid uint64, lockupID uint64, amount *big.Int) error
}

// Config holds notifier configuration
type Config struct {
	// AppURL is the link opened when a notification is tapped
	AppURL string
	// MinSupporterUSD gates supporter notifications
	MinSupporterUSD float64
}

type pushNotifier struct {
	store  store.Store
	http   adapter.HTTPClient
	price  price.Client
	clock  adapter.Clock
	config Config
}

// NewNotifier creates a push notifier
func NewNotifier(st store.Store, httpClient adapter.HTTPClient, priceClient price.Client, clock adapter.Clock, cfg Config) Notifier {
	if cfg.MinSupporterUSD <= 0 {
		cfg.MinSupporterUSD = DefaultMinSupporterUSD
	}
	return &pushNotifier{
		store:  st,
		http:   httpClient,
		price:  priceClient,
		clock:  clock,
		config: cfg,
	}
}

// pushRequest is the delivery channel's request shape
type pushRequest struct {
	NotificationID string   `json:"notificationId"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	TargetURL      string   `json:"targetUrl"`
	Tokens         []string `json:"tokens"`
}

// pushResponse is the delivery channel's response shape
type pushResponse struct {
	Result struct {
		SuccessfulTokens []string `json:"successfulTokens"`
		InvalidTokens    []string `json:"invalidTokens"`
	} `json:"result"`
}

// StakeExpired notifies an identity that one of its lockups unlocked
func (n *pushNotifier) StakeExpired(ctx context.Context, fid uint64, lockupID uint64) error {
	return n.dispatch(ctx, domain.NotificationStakeExpired, fid, strconv.FormatUint(lockupID, 10),
		"Your stake expired",
		"One of your higher stakes has unlocked. Lock it up again to stay on the leaderboard.")
}

// SupporterAdded notifies a cast creator about a new supporter stake
func (n *pushNotifier) SupporterAdded(ctx context.Context, fid uint64, lockupID uint64, amount *big.Int) error {
	usd := leaderboard.TokensToUSD(amount, n.price.TokenUSD(ctx))
	if usd < n.config.MinSupporterUSD {
		logger.Debug("supporter stake below notification threshold",
			zap.Uint64("fid", fid),
			zap.Uint64("lockup_id", lockupID),
			zap.Float64("usd", usd))
		return nil
	}

	return n.dispatch(ctx, domain.NotificationSupporterAdded, fid, strconv.FormatUint(lockupID, 10),
		"New supporter",
		fmt.Sprintf("Someone staked $%.2f on your cast.", usd))
}

// dispatch checks the dedup ledger, sends to every enabled token and then
// records the send. Send and record are not atomic: a crash in between can
// repeat the notification on the next trigger.
func (n *pushNotifier) dispatch(ctx context.Context, notificationType domain.NotificationType, fid uint64, referenceID, title, body string) error {
	sent, err := n.store.HasNotification(ctx, notificationType, fid, referenceID)
	if err != nil {
		return fmt.Errorf("failed to check notification ledger: %w", err)
	}
	if sent {
		return nil
	}

	tokens, err := n.store.EnabledTokens(ctx, fid)
	if err != nil {
		return fmt.Errorf("failed to load tokens for fid %d: %w", fid, err)
	}
	if len(tokens) == 0 {
		logger.Debug("no enabled tokens, skipping notification",
			zap.Uint64("fid", fid),
			zap.String("type", string(notificationType)))
		return nil
	}

	// Tokens may be registered against different delivery endpoints
	byEndpoint := make(map[string][]string)
	for _, token := range tokens {
		byEndpoint[token.TargetURL] = append(byEndpoint[token.TargetURL], token.Token)
	}

	var invalid []string
	for endpoint, endpointTokens := range byEndpoint {
		payload, err := json.Marshal(pushRequest{
			NotificationID: uuid.NewString(),
			Title:          title,
			Body:           body,
			TargetURL:      n.config.AppURL,
			Tokens:         endpointTokens,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal push request: %w", err)
		}

		respBody, err := n.http.Post(ctx, endpoint, "application/json", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("push delivery failed: %w", err)
		}

		var resp pushResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return fmt.Errorf("failed to decode push response: %w", err)
		}
		invalid = append(invalid, resp.Result.InvalidTokens...)
	}

	if len(invalid) > 0 {
		// Self-healing: dead tokens are disabled, not retried
		if err := n.store.DisableTokens(ctx, invalid); err != nil {
			logger.Warn("failed to disable invalid tokens", zap.Error(err), zap.Int("count", len(invalid)))
		}
	}

	record := schema.NotificationRecord{
		ID:          uuid.NewString(),
		Type:        string(notificationType),
		FID:         fid,
		ReferenceID: referenceID,
		CreatedAt:   n.clock.Now(),
	}
	if err := n.store.RecordNotification(ctx, record); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	logger.Info("Notification sent",
		zap.String("type", string(notificationType)),
		zap.Uint64("fid", fid),
		zap.String("reference_id", referenceID))

	return nil
}
