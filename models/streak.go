package models

import "time"

// StreakState is the per-user streak snapshot, persisted under the
// "streak_protection" namespace. BestStreak >= CurrentStreak always.
// StreakBrokenAt and StreakValueAtBreak are set together when a break is
// recorded and cleared together exactly once — when a repair succeeds or
// the repair window lapses.
type StreakState struct {
	CurrentStreak        int        `json:"currentStreak"`
	BestStreak           int        `json:"bestStreak"`
	LastLoginDate        *time.Time `json:"lastLoginDate,omitempty"`
	LastStreakRewardDate *time.Time `json:"lastStreakRewardDate,omitempty"`

	EquippedFreezeCharges int `json:"equippedFreezeCharges"`

	StreakBrokenAt     *time.Time `json:"streakBrokenAt,omitempty"`
	StreakValueAtBreak *int       `json:"streakValueAtBreak,omitempty"`
}

// NewStreakState returns the documented defaults for a fresh account.
func NewStreakState() *StreakState {
	return &StreakState{}
}

// Normalize clamps malformed persisted values back into their domains.
// maxFreezes is the configured freeze cap.
func (s *StreakState) Normalize(maxFreezes int) {
	if s.CurrentStreak < 0 {
		s.CurrentStreak = 0
	}
	if s.BestStreak < s.CurrentStreak {
		s.BestStreak = s.CurrentStreak
	}
	if s.EquippedFreezeCharges < 0 {
		s.EquippedFreezeCharges = 0
	}
	if s.EquippedFreezeCharges > maxFreezes {
		s.EquippedFreezeCharges = maxFreezes
	}
	// A break value without a break timestamp (or vice versa) is garbage.
	if (s.StreakBrokenAt == nil) != (s.StreakValueAtBreak == nil) {
		s.StreakBrokenAt = nil
		s.StreakValueAtBreak = nil
	}
}

// RepairOffer is a view derived from StreakState, never stored. It exists
// only while now is within the repair window after the recorded break.
type RepairOffer struct {
	StreakValue int           `json:"streak_value"`
	Cost        int           `json:"cost"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Remaining   time.Duration `json:"remaining_ns"`
}
