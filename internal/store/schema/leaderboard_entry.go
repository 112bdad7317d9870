// Package schema defines the persisted row types of the leaderboard store.
package schema

import (
	"time"

	"gorm.io/datatypes"
)

// CasterStake holds the creator's own lockup positions as parallel arrays.
// All arrays have equal length; index i describes one position.
type CasterStake struct {
	LockupIDs   []uint64 `json:"lockup_ids"`
	Amounts     []string `json:"amounts"`
	UnlockTimes []int64  `json:"unlock_times"`
	Unlocked    []bool   `json:"unlocked"`
	LockTimes   []int64  `json:"lock_times"`
}

// SupporterStake holds third-party lockup positions backing a cast as
// parallel arrays. All arrays have equal length; index i describes one
// position.
type SupporterStake struct {
	LockupIDs   []uint64 `json:"lockup_ids"`
	Amounts     []string `json:"amounts"`
	FIDs        []uint64 `json:"fids"`
	PfpURLs     []string `json:"pfp_urls"`
	UnlockTimes []int64  `json:"unlock_times"`
	Unlocked    []bool   `json:"unlocked"`
	LockTimes   []int64  `json:"lock_times"`
}

// LeaderboardEntry is one materialized leaderboard row, keyed by the
// qualifying cast. Ranking fields are owned by the materializer; event
// reconciliation only ever touches the stake columns.
type LeaderboardEntry struct {
	CastHash           string                               `gorm:"column:cast_hash;primaryKey" json:"cast_hash"`
	CreatorFID         uint64                               `gorm:"column:creator_fid;index" json:"creator_fid"`
	CreatorUsername    string                               `gorm:"column:creator_username" json:"creator_username"`
	CreatorDisplayName string                               `gorm:"column:creator_display_name" json:"creator_display_name"`
	CreatorPfpURL      string                               `gorm:"column:creator_pfp_url" json:"creator_pfp_url"`
	CastText           string                               `gorm:"column:cast_text" json:"cast_text"`
	Description        string                               `gorm:"column:description" json:"description"`
	CastTimestamp      time.Time                            `gorm:"column:cast_timestamp" json:"cast_timestamp"`
	TotalHigherStaked  string                               `gorm:"column:total_higher_staked" json:"total_higher_staked"`
	USDValue           float64                              `gorm:"column:usd_value" json:"usd_value"`
	Rank               int                                  `gorm:"column:rank;index" json:"rank"`
	CasterStake        datatypes.JSONType[CasterStake]      `gorm:"column:caster_stake;type:jsonb" json:"caster_stake"`
	SupporterStake     datatypes.JSONType[SupporterStake]   `gorm:"column:supporter_stake;type:jsonb" json:"supporter_stake"`
	CastState          string                               `gorm:"column:cast_state;index" json:"cast_state"`
	CreatedAt          time.Time                            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time                            `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm default
func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
