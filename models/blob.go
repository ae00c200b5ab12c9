package models

import "time"

// ProgressionBlob is the Postgres row backing the namespaced key-value
// store: one JSON document per (user, namespace).
type ProgressionBlob struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_user_namespace;not null" json:"external_user_id"`
	Namespace      string    `gorm:"uniqueIndex:idx_user_namespace;not null" json:"namespace"`
	Data           []byte    `gorm:"type:jsonb" json:"data"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
