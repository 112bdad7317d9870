package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CastState represents the lifecycle state of a leaderboard cast
type CastState string

const (
	CastStateInvalid CastState = "invalid"
	CastStateValid   CastState = "valid"
	CastStateHigher  CastState = "higher"
	CastStateExpired CastState = "expired"
)

// BroadcastEventType is the type of a lockup lifecycle event
type BroadcastEventType string

const (
	EventTypeLockupCreated BroadcastEventType = "lockup_created"
	EventTypeUnlock        BroadcastEventType = "unlock"
	EventTypeTransfer      BroadcastEventType = "transfer"
)

// NotificationType identifies the kind of push notification for dedup purposes
type NotificationType string

const (
	NotificationStakeExpired   NotificationType = "stake_expired"
	NotificationSupporterAdded NotificationType = "supporter_added"
)

// LockupPosition is a read-only snapshot of a single on-chain lock,
// tied to the block it was read at. Only the unlocked flag ever changes
// on chain, and only false -> true.
type LockupPosition struct {
	LockupID   uint64         `json:"lockup_id"`
	Token      common.Address `json:"token"`
	IsFungible bool           `json:"is_fungible"`
	LockTime   int64          `json:"lock_time"`
	UnlockTime int64          `json:"unlock_time"`
	Unlocked   bool           `json:"unlocked"`
	Amount     *big.Int       `json:"amount"`
	Receiver   common.Address `json:"receiver"`
	Title      string         `json:"title"`
}

// Identity is a social-graph account with its verified wallet addresses.
// Identities are external and read-only to this system.
type Identity struct {
	FID               uint64   `json:"fid"`
	Username          string   `json:"username"`
	DisplayName       string   `json:"display_name"`
	PfpURL            string   `json:"pfp_url"`
	VerifiedAddresses []string `json:"verified_addresses"`
}

// Cast is a social post as returned by the social-graph client
type Cast struct {
	Hash      string    `json:"hash"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	ChannelID string    `json:"channel_id"`
}

// IdentityStake aggregates the on-chain position of one identity across
// all of its verified wallets.
type IdentityStake struct {
	Identity  Identity
	Total     *big.Int
	Addresses []string
	Positions []LockupPosition
}

// Candidate is an identity that qualified for this cycle's leaderboard:
// a non-zero aggregate stake plus a qualifying cast.
type Candidate struct {
	Identity    Identity
	Total       *big.Int
	Cast        Cast
	Description string
	Positions   []LockupPosition
}

// SupporterPosition is a lockup backing someone else's cast, attributed to
// the supporting identity.
type SupporterPosition struct {
	Position LockupPosition
	FID      uint64
	PfpURL   string
}

// BroadcastEvent is a normalized lockup lifecycle event held in the
// in-memory ring buffer. Process-lifetime only, never persisted.
type BroadcastEvent struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Type      BroadcastEventType `json:"type"`
	Data      EventData          `json:"data"`
}

// EventData is the payload union for broadcast events. Exactly the fields
// relevant to the event type are populated.
type EventData struct {
	LockupID   uint64 `json:"lockup_id"`
	Receiver   string `json:"receiver,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Amount     string `json:"amount,omitempty"`
	UnlockTime int64  `json:"unlock_time,omitempty"`
	Title      string `json:"title,omitempty"`
	CastHash   string `json:"cast_hash,omitempty"`
}
