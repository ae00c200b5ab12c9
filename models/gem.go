package models

import "time"

// GemDirection is the sign of a ledger entry.
type GemDirection string

const (
	GemEarn  GemDirection = "earn"
	GemSpend GemDirection = "spend"
)

// GemTransaction is one append-only audit row for the gem ledger. The
// authoritative balance lives on ProgressionState; this table exists so
// every earn/spend is reconstructible. Amount is always positive — the
// direction carries the sign.
type GemTransaction struct {
	ID             string       `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string       `gorm:"index;not null" json:"external_user_id"`
	Direction      GemDirection `gorm:"type:varchar(8);not null" json:"direction"`
	Amount         int          `gorm:"not null" json:"amount"`
	Reason         string       `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}
