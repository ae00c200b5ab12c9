package services

import (
	"time"

	"progression-service/config"
	"progression-service/models"

	log "github.com/sirupsen/logrus"
)

// DailyLoginService is the idempotent per-calendar-day entry point that
// advances, protects, or breaks the streak and grants the daily and
// periodic gem rewards. The idempotency key is the calendar date of the
// last login — time of day is ignored.
type DailyLoginService struct {
	Streak *StreakService
	Gems   *GemLedger
	Econ   *config.Economy
}

// NewDailyLoginService creates the daily login engine.
func NewDailyLoginService(streak *StreakService, gems *GemLedger, econ *config.Economy) *DailyLoginService {
	return &DailyLoginService{Streak: streak, Gems: gems, Econ: econ}
}

// Claim processes today's login against the streak transition table:
//
//	no prior login        -> streak = 1, daily reward
//	same day              -> no-op ("already claimed")
//	next day, goal met    -> streak + 1, daily reward, 7-day bonus check
//	next day, goal missed -> freeze if available (streak frozen), else break
//	gap of 2+ days        -> break, no grace
//
// "Goal met" is "at least one task completed yesterday". A break resets
// the streak to 1 — today's login still counts as day one. The daily gem
// reward is granted on every first login of a calendar day regardless of
// which row fired.
func (s *DailyLoginService) Claim(externalUserID string, prog *models.ProgressionState, st *models.StreakState, dl *models.DailyLoginState, now time.Time) *models.DailyLoginResult {
	today := models.DateOf(now)

	if st.LastLoginDate != nil && models.SameCalendarDay(*st.LastLoginDate, now) {
		return &models.DailyLoginResult{
			GrantedToday: false,
			NewStreak:    st.CurrentStreak,
			Message:      "Daily reward already claimed today",
		}
	}

	res := &models.DailyLoginResult{GrantedToday: true}
	advanced := false

	switch {
	case st.LastLoginDate == nil:
		st.CurrentStreak = 1
		advanced = true
		res.Message = "Welcome! Your streak begins today"

	case models.DaysBetween(*st.LastLoginDate, now) == 1:
		yesterday := today.AddDate(0, 0, -1)
		if dl.GoalMetOn(yesterday) {
			st.CurrentStreak++
			advanced = true
			res.Message = "Streak continued"
		} else if s.Streak.ConsumeIfAvailable(st) {
			// Frozen: preserved, not incremented.
			res.Protected = true
			res.FreezeUsed = true
			res.Message = "A streak freeze protected your streak"
		} else {
			s.Streak.MarkBroken(externalUserID, st, now)
			st.CurrentStreak = 1
			res.StreakBroken = true
			res.Message = "Your streak was broken"
		}

	default: // gap of 2+ days, no grace
		s.Streak.MarkBroken(externalUserID, st, now)
		st.CurrentStreak = 1
		res.StreakBroken = true
		res.Message = "Your streak was broken"
	}

	if st.BestStreak < st.CurrentStreak {
		st.BestStreak = st.CurrentStreak
	}
	st.LastLoginDate = &today
	res.NewStreak = st.CurrentStreak

	res.GemsEarned = s.Econ.DailyLoginGems
	s.Gems.Earn(externalUserID, prog, res.GemsEarned, "daily_login")

	// Only a claim that advanced the streak can earn the periodic bonus; a
	// frozen day keeps the count but adds no consecutive day.
	if advanced && s.streakBonusDue(st, today) {
		res.StreakBonusGems = s.Econ.StreakBonusGems
		s.Gems.Earn(externalUserID, prog, res.StreakBonusGems, "streak_bonus")
		st.LastStreakRewardDate = &today
	}

	log.WithFields(log.Fields{
		"user_id":   externalUserID,
		"streak":    st.CurrentStreak,
		"gems":      res.GemsEarned + res.StreakBonusGems,
		"protected": res.Protected,
		"broken":    res.StreakBroken,
	}).Info("daily login processed")

	return res
}

// streakBonusDue fires every StreakBonusEvery consecutive days, at most
// once per calendar day (lastStreakRewardDate dedupe).
func (s *DailyLoginService) streakBonusDue(st *models.StreakState, today time.Time) bool {
	if s.Econ.StreakBonusEvery <= 0 || st.CurrentStreak <= 0 {
		return false
	}
	if st.CurrentStreak%s.Econ.StreakBonusEvery != 0 {
		return false
	}
	return st.LastStreakRewardDate == nil || !models.SameCalendarDay(*st.LastStreakRewardDate, today)
}
