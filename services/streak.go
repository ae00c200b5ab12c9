package services

import (
	"errors"
	"time"

	"progression-service/config"
	"progression-service/models"

	log "github.com/sirupsen/logrus"
)

// ErrMaxFreezesReached is returned when equipping a freeze beyond the cap.
var ErrMaxFreezesReached = errors.New("maximum freeze charges equipped")

// ErrNoValidOffer is returned when repairing with no break on record or
// after the repair window has lapsed.
var ErrNoValidOffer = errors.New("no valid repair offer")

// StreakService implements streak freezes and the time-boxed repair offer.
// A streak's conceptual state is derived from StreakState fields, never
// stored as an enum: active (no break recorded), broken-within-window
// (break recorded, offer still computable), expired (break recorded, window
// lapsed). Offer expiry is evaluated lazily by wall-clock comparison.
type StreakService struct {
	Gems *GemLedger
	Econ *config.Economy
}

// NewStreakService creates the streak protection engine.
func NewStreakService(gems *GemLedger, econ *config.Economy) *StreakService {
	return &StreakService{Gems: gems, Econ: econ}
}

// RepairWindow is how long a repair offer stays open after a break.
func (s *StreakService) RepairWindow() time.Duration {
	return time.Duration(s.Econ.RepairWindowHours) * time.Hour
}

// Equip adds one freeze charge, capped at the configured maximum.
func (s *StreakService) Equip(state *models.StreakState) error {
	if state.EquippedFreezeCharges >= s.Econ.MaxFreezes {
		return ErrMaxFreezesReached
	}
	state.EquippedFreezeCharges++
	return nil
}

// ConsumeIfAvailable burns one freeze charge if any is equipped and reports
// whether it did. The caller leaves the streak value untouched on true —
// frozen, neither incremented nor reset.
func (s *StreakService) ConsumeIfAvailable(state *models.StreakState) bool {
	if state.EquippedFreezeCharges <= 0 {
		return false
	}
	state.EquippedFreezeCharges--
	return true
}

// MarkBroken records a break at now, remembering the lost streak value for
// the repair offer. Only called when no freeze was available or used.
func (s *StreakService) MarkBroken(externalUserID string, state *models.StreakState, now time.Time) {
	lost := state.CurrentStreak
	state.StreakBrokenAt = &now
	state.StreakValueAtBreak = &lost
	log.WithFields(log.Fields{"user_id": externalUserID, "lost_streak": lost}).Info("streak broken")
}

// GetRepairOffer computes the current repair offer, or nil when no break is
// recorded or the window has lapsed.
func (s *StreakService) GetRepairOffer(state *models.StreakState, now time.Time) *models.RepairOffer {
	if state.StreakBrokenAt == nil || state.StreakValueAtBreak == nil {
		return nil
	}
	expiresAt := state.StreakBrokenAt.Add(s.RepairWindow())
	if !now.Before(expiresAt) {
		return nil
	}
	value := *state.StreakValueAtBreak
	return &models.RepairOffer{
		StreakValue: value,
		Cost:        s.Econ.RepairBaseCost + s.Econ.RepairCostPerStreakDay*value,
		ExpiresAt:   expiresAt,
		Remaining:   expiresAt.Sub(now),
	}
}

// ClearExpiredBreak drops break bookkeeping once the window has lapsed.
// Returns true when stale state was cleared. The maintenance sweep calls
// this; correctness never depends on it because GetRepairOffer re-checks
// the window on every call.
func (s *StreakService) ClearExpiredBreak(state *models.StreakState, now time.Time) bool {
	if state.StreakBrokenAt == nil {
		return false
	}
	if now.Before(state.StreakBrokenAt.Add(s.RepairWindow())) {
		return false
	}
	state.StreakBrokenAt = nil
	state.StreakValueAtBreak = nil
	return true
}

// Repair restores the broken streak's prior value for the offered gem cost.
// Single use per break: success clears the break bookkeeping, so a second
// call fails with ErrNoValidOffer. The spend happens before the restore;
// on ErrInsufficientFunds nothing changes and the offer stays open.
func (s *StreakService) Repair(externalUserID string, prog *models.ProgressionState, state *models.StreakState, now time.Time) (*models.RepairResult, error) {
	offer := s.GetRepairOffer(state, now)
	if offer == nil {
		// Tidy stale bookkeeping on the way out.
		s.ClearExpiredBreak(state, now)
		return nil, ErrNoValidOffer
	}

	balance, err := s.Gems.Spend(externalUserID, prog, offer.Cost, "streak_repair")
	if err != nil {
		return nil, err
	}

	state.CurrentStreak = offer.StreakValue
	if state.BestStreak < state.CurrentStreak {
		state.BestStreak = state.CurrentStreak
	}
	state.StreakBrokenAt = nil
	state.StreakValueAtBreak = nil

	log.WithFields(log.Fields{
		"user_id": externalUserID,
		"streak":  state.CurrentStreak,
		"cost":    offer.Cost,
	}).Info("streak repaired")

	return &models.RepairResult{
		RestoredStreak: state.CurrentStreak,
		CostPaid:       offer.Cost,
		NewBalance:     balance,
	}, nil
}
