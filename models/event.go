package models

import "time"

// EventType names the notification kinds the engine publishes.
type EventType string

const (
	EventLevelUp             EventType = "level_up"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventDailyReward         EventType = "daily_reward"
	EventStreakProtected     EventType = "streak_protected"
	EventStreakBroken        EventType = "streak_broken"
	EventStreakRepaired      EventType = "streak_repaired"
	EventStreakAtRisk        EventType = "streak_at_risk"
	EventRepairOfferExpired  EventType = "repair_offer_expired"
)

// Event is one notification pushed to the sink. Display and animation are
// the UI's problem; the engine only emits.
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	ExternalUserID string    `json:"external_user_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
