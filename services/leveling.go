package services

import (
	"time"

	"progression-service/models"

	log "github.com/sirupsen/logrus"
)

// XP curve: the delta required to advance from level-1 to level is
// BaseLevelXP + (level-1)*LevelXPStep. Not a cumulative total.
const (
	BaseLevelXP = 200
	LevelXPStep = 50
)

// XPToReachLevel returns the XP delta required to advance from level-1 to
// level. Levels at or below 1 cost nothing.
func XPToReachLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return BaseLevelXP + (level-1)*LevelXPStep
}

// TierOf returns the tier band containing level. Falls back to the lowest
// band — the table is a total partition, so the fallback should never
// trigger outside of a table edit gone wrong.
func TierOf(level int) models.TierBand {
	for _, band := range models.TierTable {
		if level >= band.MinLevel && level <= band.MaxLevel {
			return band
		}
	}
	return models.TierTable[0]
}

// LevelReward is the reward set attached to gaining one level.
type LevelReward struct {
	Gems  int
	Items []string
}

// RewardsFor returns the reward for reaching level: the tier-scaled base
// gem amount, plus the one-time tier-entry bonus and crest on the first
// level of a new tier.
func RewardsFor(level int) LevelReward {
	reward := LevelReward{Gems: TierOf(level).GemReward}
	if bonus, ok := models.TierEntryBonuses[level]; ok {
		reward.Gems += bonus
	}
	if crest, ok := models.TierCrestItems[level]; ok {
		reward.Items = append(reward.Items, crest)
	}
	return reward
}

// LevelingService cascades XP deltas through level-ups. It never fails:
// deltas are non-negative by caller contract, and the loop is bounded by
// MaxLevel.
type LevelingService struct {
	Gems *GemLedger
}

// NewLevelingService creates the orchestrator.
func NewLevelingService(gems *GemLedger) *LevelingService {
	return &LevelingService{Gems: gems}
}

// ApplyXP adds delta XP to state, cascading through as many level-ups as
// the delta covers. Gems from all gained levels are credited in one ledger
// call; crest items are merged into unlockedItems. Applying a delta in one
// call or as any ordered partition of smaller deltas yields the same final
// state.
func (s *LevelingService) ApplyXP(externalUserID string, state *models.ProgressionState, delta int, now time.Time) []models.LevelUpEvent {
	if delta <= 0 {
		return nil
	}
	state.InitMaps()
	state.CurrentXP += delta
	state.TotalXPEarned += delta

	var events []models.LevelUpEvent
	gems := 0
	prevTier := TierOf(state.Level)

	for state.Level < models.MaxLevel {
		need := XPToReachLevel(state.Level + 1)
		if need <= 0 || state.CurrentXP < need {
			break
		}
		state.Level++
		state.CurrentXP -= need
		state.LastLevelUpAt = &now

		tier := TierOf(state.Level)
		reward := RewardsFor(state.Level)
		gems += reward.Gems
		for _, item := range reward.Items {
			state.UnlockedItems[item] = true
		}

		events = append(events, models.LevelUpEvent{
			NewLevel:      state.Level,
			NewTier:       tier.ID,
			TierChanged:   tier.ID != prevTier.ID,
			GemsAwarded:   reward.Gems,
			ItemsUnlocked: reward.Items,
		})
		prevTier = tier
	}

	// Past the cap, surplus XP has nowhere to go.
	if state.Level >= models.MaxLevel && state.CurrentXP > XPToReachLevel(models.MaxLevel) {
		state.CurrentXP = XPToReachLevel(models.MaxLevel)
	}

	if gems > 0 {
		s.Gems.Earn(externalUserID, state, gems, "level_up")
	}
	if len(events) > 0 {
		log.WithFields(log.Fields{
			"user_id": externalUserID,
			"level":   state.Level,
			"tier":    TierOf(state.Level).ID,
			"levels":  len(events),
			"gems":    gems,
		}).Info("level up")
	}
	return events
}
