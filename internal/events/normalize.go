package events

import (
	"encoding/json"
	"fmt"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// webhookEnvelope is the tagged union wrapper of incoming lockup events
type webhookEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type lockupCreatedPayload struct {
	LockupID   uint64 `json:"lockup_id"`
	Receiver   string `json:"receiver"`
	Amount     string `json:"amount"`
	LockTime   int64  `json:"lock_time"`
	UnlockTime int64  `json:"unlock_time"`
	Title      string `json:"title"`
	CastHash   string `json:"cast_hash"`
}

type unlockPayload struct {
	LockupID uint64 `json:"lockup_id"`
	Receiver string `json:"receiver"`
}

type transferPayload struct {
	LockupID uint64 `json:"lockup_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// Normalize decodes a webhook body into one of the canonical event shapes.
// An unknown type tag returns ErrUnrecognizedEvent so the caller can reject
// the delivery without retrying it.
func Normalize(body []byte) (domain.BroadcastEventType, domain.EventData, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", domain.EventData{}, fmt.Errorf("malformed event body: %w", err)
	}

	switch domain.BroadcastEventType(envelope.Type) {
	case domain.EventTypeLockupCreated:
		var p lockupCreatedPayload
		if err := json.Unmarshal(envelope.Data, &p); err != nil {
			return "", domain.EventData{}, fmt.Errorf("malformed lockup_created data: %w", err)
		}
		return domain.EventTypeLockupCreated, domain.EventData{
			LockupID:   p.LockupID,
			Receiver:   p.Receiver,
			Amount:     p.Amount,
			UnlockTime: p.UnlockTime,
			Title:      p.Title,
			CastHash:   p.CastHash,
		}, nil

	case domain.EventTypeUnlock:
		var p unlockPayload
		if err := json.Unmarshal(envelope.Data, &p); err != nil {
			return "", domain.EventData{}, fmt.Errorf("malformed unlock data: %w", err)
		}
		return domain.EventTypeUnlock, domain.EventData{
			LockupID: p.LockupID,
			Receiver: p.Receiver,
		}, nil

	case domain.EventTypeTransfer:
		var p transferPayload
		if err := json.Unmarshal(envelope.Data, &p); err != nil {
			return "", domain.EventData{}, fmt.Errorf("malformed transfer data: %w", err)
		}
		return domain.EventTypeTransfer, domain.EventData{
			LockupID: p.LockupID,
			From:     p.From,
			To:       p.To,
		}, nil

	default:
		return "", domain.EventData{}, fmt.Errorf("event type %q: %w", envelope.Type, domain.ErrUnrecognizedEvent)
	}
}
