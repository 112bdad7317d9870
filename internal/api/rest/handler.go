package rest

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/events"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/pipeline"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
	"github.com/higher-steaks/hs-leaderboard/internal/webhook"
)

// SignatureHeader carries the lockup webhook signature
const SignatureHeader = "X-Lockup-Signature"

// defaultLeaderboardLimit bounds unpaginated leaderboard reads
const defaultLeaderboardLimit = 100

// Refresher triggers one leaderboard refresh cycle
type Refresher interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
}

// Handler implements the REST endpoints
type Handler struct {
	store          store.Store
	refresher      Refresher
	broadcaster    *events.Broadcaster
	clock          adapter.Clock
	webhookSecrets []string
	refreshing     atomic.Bool
}

// NewHandler creates a REST handler
func NewHandler(st store.Store, refresher Refresher, broadcaster *events.Broadcaster, clock adapter.Clock, webhookSecrets []string) *Handler {
	return &Handler{
		store:          st,
		refresher:      refresher,
		broadcaster:    broadcaster,
		clock:          clock,
		webhookSecrets: webhookSecrets,
	}
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// GetLeaderboard returns the materialized leaderboard
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", defaultLeaderboardLimit)
	if err != nil {
		respondBadRequest(c, "Invalid limit parameter", err.Error())
		return
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		respondBadRequest(c, "Invalid offset parameter", err.Error())
		return
	}

	entries, err := h.store.GetLeaderboard(c.Request.Context(), limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to load leaderboard")
		return
	}

	now := h.clock.Now()
	items := make([]leaderboardItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardItem{
			LeaderboardEntry: entry,
			WeightedScore:    leaderboard.WeightedScore(entry, now),
		})
	}

	c.JSON(200, gin.H{
		"entries": items,
		"count":   len(items),
	})
}

// leaderboardItem is a leaderboard row with its read-time weighted score
type leaderboardItem struct {
	schema.LeaderboardEntry
	WeightedScore float64 `json:"weighted_score"`
}

// RefreshLeaderboard runs one refresh cycle. Only one refresh runs at a
// time; a concurrent request gets a conflict instead of a second cycle.
func (h *Handler) RefreshLeaderboard(c *gin.Context) {
	if !h.refreshing.CompareAndSwap(false, true) {
		respondConflict(c, "Refresh already in progress")
		return
	}
	defer h.refreshing.Store(false)

	summary, err := h.refresher.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			respondWithError(c, 500, errCodeInternalError, "Aggregation produced a duplicate identity", err.Error())
			return
		}
		respondInternalError(c, err, "Refresh cycle failed")
		return
	}

	c.JSON(200, summary)
}

// LockupWebhook ingests a signed lockup lifecycle event
func (h *Handler) LockupWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Failed to read request body", err.Error())
		return
	}

	sigHeader := c.GetHeader(SignatureHeader)
	if err := webhook.Verify(sigHeader, c.Request.Header, body, h.webhookSecrets, h.clock.Now()); err != nil {
		logger.Warn("Rejected lockup webhook",
			zap.Error(err),
			zap.String("client_ip", c.ClientIP()))
		respondUnauthorized(c, "Signature verification failed", err.Error())
		return
	}

	eventType, data, err := events.Normalize(body)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedEvent) {
			respondBadRequest(c, "Unrecognized event type", err.Error())
			return
		}
		respondBadRequest(c, "Malformed event payload", err.Error())
		return
	}

	event := h.broadcaster.Publish(eventType, data)

	c.JSON(200, gin.H{"event_id": event.ID})
}

// GetLatestEvent returns the most recent broadcast event
func (h *Handler) GetLatestEvent(c *gin.Context) {
	event, ok := h.broadcaster.Latest()
	if !ok {
		respondNotFound(c, "No events yet")
		return
	}

	c.JSON(200, event)
}

// miniappEvent is the miniapp lifecycle webhook payload
type miniappEvent struct {
	Event               string `json:"event" binding:"required"`
	FID                 uint64 `json:"fid" binding:"required"`
	NotificationDetails *struct {
		URL   string `json:"url"`
		Token string `json:"token"`
	} `json:"notificationDetails"`
}

// MiniappWebhook maintains the notification token table from miniapp
// lifecycle events
func (h *Handler) MiniappWebhook(c *gin.Context) {
	var payload miniappEvent
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}

	ctx := c.Request.Context()

	switch payload.Event {
	case "frame_added", "notifications_enabled":
		if payload.NotificationDetails == nil || payload.NotificationDetails.Token == "" {
			respondBadRequest(c, "Missing notification details")
			return
		}
		now := h.clock.Now()
		token := schema.NotificationToken{
			Token:     payload.NotificationDetails.Token,
			FID:       payload.FID,
			TargetURL: payload.NotificationDetails.URL,
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := h.store.UpsertToken(ctx, token); err != nil {
			respondInternalError(c, err, "Failed to register token", zap.Uint64("fid", payload.FID))
			return
		}

	case "frame_removed", "notifications_disabled":
		if err := h.store.DisableTokensForFID(ctx, payload.FID); err != nil {
			respondInternalError(c, err, "Failed to disable tokens", zap.Uint64("fid", payload.FID))
			return
		}

	default:
		respondBadRequest(c, "Unknown miniapp event", payload.Event)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return value, nil
}
