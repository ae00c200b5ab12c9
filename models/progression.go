package models

import "time"

// Priority mirrors the task priorities used by the surrounding task app.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ProgressionState is the per-user level/XP/currency snapshot, persisted as
// a blob under the "progression" namespace. CurrentXP counts toward the
// next level only and resets on level-up; TotalXPEarned is monotonic.
type ProgressionState struct {
	Level         int             `json:"level"`
	CurrentXP     int             `json:"currentXP"`
	TotalXPEarned int             `json:"totalXPEarned"`
	MindGems      int             `json:"mindGems"`
	UnlockedItems map[string]bool `json:"unlockedItems"`

	LastLevelUpAt *time.Time `json:"lastLevelUpAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewProgressionState returns the documented defaults for a fresh account
// (also substituted when a persisted blob is missing or corrupt).
func NewProgressionState() *ProgressionState {
	return &ProgressionState{
		Level:         1,
		UnlockedItems: make(map[string]bool),
	}
}

// InitMaps ensures map fields are non-nil after deserialization.
func (p *ProgressionState) InitMaps() {
	if p.UnlockedItems == nil {
		p.UnlockedItems = make(map[string]bool)
	}
}

// Normalize clamps fields that may arrive malformed from storage back into
// their documented domains.
func (p *ProgressionState) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Level > MaxLevel {
		p.Level = MaxLevel
	}
	if p.CurrentXP < 0 {
		p.CurrentXP = 0
	}
	if p.TotalXPEarned < 0 {
		p.TotalXPEarned = 0
	}
	if p.MindGems < 0 {
		p.MindGems = 0
	}
	p.InitMaps()
}

// LevelUpEvent records a single level gained during an XP application,
// including the rewards attached to that level.
type LevelUpEvent struct {
	NewLevel      int      `json:"new_level"`
	NewTier       string   `json:"new_tier"`
	TierChanged   bool     `json:"tier_changed"`
	GemsAwarded   int      `json:"gems_awarded"`
	ItemsUnlocked []string `json:"items_unlocked,omitempty"`
}
