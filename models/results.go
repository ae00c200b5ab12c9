package models

// Result bundles returned by the progression facade. Engine failures are
// typed errors, never embedded in these structs; the structs only describe
// successful (or no-op) outcomes for the UI to render.

// TaskCompletionResult summarizes one ProcessTaskCompletion call.
type TaskCompletionResult struct {
	XPGained             int            `json:"xp_gained"`
	LevelUps             []LevelUpEvent `json:"level_ups"`
	GemsGained           int            `json:"gems_gained"`
	UnlockedAchievements []Achievement  `json:"unlocked_achievements"`
	Level                int            `json:"level"`
	CurrentXP            int            `json:"current_xp"`
	MindGems             int            `json:"mind_gems"`
}

// DailyLoginResult summarizes one ProcessDailyLogin call. GrantedToday is
// false when the day's reward was already claimed — a no-op, not an error.
type DailyLoginResult struct {
	GrantedToday    bool   `json:"granted_today"`
	GemsEarned      int    `json:"gems_earned"`
	StreakBonusGems int    `json:"streak_bonus_gems"`
	NewStreak       int    `json:"new_streak"`
	Protected       bool   `json:"protected"`
	FreezeUsed      bool   `json:"freeze_used"`
	StreakBroken    bool   `json:"streak_broken"`
	Message         string `json:"message"`
}

// PurchaseResult summarizes a successful shop purchase.
type PurchaseResult struct {
	Item       ShopItem `json:"item"`
	NewBalance int      `json:"new_balance"`
	// FreezeCharges is populated when the purchased item was a streak
	// freeze and reflects the new equipped count.
	FreezeCharges int `json:"freeze_charges,omitempty"`
}

// RepairResult summarizes a successful streak repair.
type RepairResult struct {
	RestoredStreak int `json:"restored_streak"`
	CostPaid       int `json:"cost_paid"`
	NewBalance     int `json:"new_balance"`
}

// Summary is the read-only progression overview for the UI header.
type Summary struct {
	Level                 int          `json:"level"`
	CurrentXP             int          `json:"current_xp"`
	XPToNextLevel         int          `json:"xp_to_next_level"`
	TotalXPEarned         int          `json:"total_xp_earned"`
	Tier                  TierBand     `json:"tier"`
	MindGems              int          `json:"mind_gems"`
	CurrentStreak         int          `json:"current_streak"`
	BestStreak            int          `json:"best_streak"`
	FreezeCharges         int          `json:"freeze_charges"`
	RepairOffer           *RepairOffer `json:"repair_offer,omitempty"`
	AchievementsCompleted int          `json:"achievements_completed"`
	AchievementsTotal     int          `json:"achievements_total"`
	UnlockedItems         []string     `json:"unlocked_items"`
}
