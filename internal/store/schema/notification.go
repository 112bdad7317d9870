package schema

import "time"

// NotificationRecord is the write-once dedup ledger for push notifications.
// The unique index on (type, fid, reference_id) is what prevents a repeat
// send for the same trigger.
type NotificationRecord struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Type        string    `gorm:"column:type;uniqueIndex:idx_notification_dedup" json:"type"`
	FID         uint64    `gorm:"column:fid;uniqueIndex:idx_notification_dedup" json:"fid"`
	ReferenceID string    `gorm:"column:reference_id;uniqueIndex:idx_notification_dedup" json:"reference_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the gorm default
func (NotificationRecord) TableName() string {
	return "notification_records"
}

// NotificationToken is a per-identity push delivery token registered by the
// miniapp. Invalid tokens are disabled rather than deleted so a later
// re-registration can simply flip them back on.
type NotificationToken struct {
	Token     string    `gorm:"column:token;primaryKey" json:"token"`
	FID       uint64    `gorm:"column:fid;index" json:"fid"`
	TargetURL string    `gorm:"column:target_url" json:"target_url"`
	Enabled   bool      `gorm:"column:enabled" json:"enabled"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm default
func (NotificationToken) TableName() string {
	return "notification_tokens"
}
