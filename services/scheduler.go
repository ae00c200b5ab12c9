package services

import (
	"time"

	"progression-service/models"
	"progression-service/store"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// streakRiskHourUTC: past this hour, a user who logged in yesterday but not
// yet today gets a streak-at-risk nudge.
const streakRiskHourUTC = 18

// StartMaintenanceScheduler runs the hourly housekeeping sweep: clears
// repair offers whose window has lapsed and nudges users whose streak is
// about to break. The sweep is advisory — offer expiry is always
// re-evaluated lazily on read, so a missed run never changes semantics.
func (f *ProgressionFacade) StartMaintenanceScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(f.runMaintenanceSweep),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Info("maintenance scheduler started (hourly sweep)")
	return sched, nil
}

func (f *ProgressionFacade) runMaintenanceSweep() {
	lister, ok := f.Store.(store.Lister)
	if !ok {
		return
	}
	users, err := lister.Users()
	if err != nil {
		log.WithError(err).Warn("[sweep] failed to list users")
		return
	}

	now := f.Now().UTC()
	expired, nudged := 0, 0
	for _, userID := range users {
		mu := f.lock(userID)
		mu.Lock()

		st := f.loadStreak(userID)
		if f.Streak.ClearExpiredBreak(st, now) {
			if err := f.saveAll(userID, nil, st, nil, nil); err != nil {
				log.WithError(err).WithField("user_id", userID).Warn("[sweep] failed to save streak state")
			} else {
				expired++
				f.publish(userID, models.EventRepairOfferExpired, "Repair offer expired",
					"The window to restore your streak has closed")
			}
		} else if f.streakAtRisk(st, now) {
			nudged++
			f.publish(userID, models.EventStreakAtRisk, "Streak at risk",
				"Log in before midnight to keep your streak alive")
		}

		mu.Unlock()
	}

	if expired > 0 || nudged > 0 {
		log.WithFields(log.Fields{"expired_offers": expired, "at_risk": nudged}).
			Info("[sweep] maintenance pass done")
	}
}

// streakAtRisk: an active streak, last login yesterday, no login today, and
// the day is running out.
func (f *ProgressionFacade) streakAtRisk(st *models.StreakState, now time.Time) bool {
	if st.CurrentStreak == 0 || st.LastLoginDate == nil {
		return false
	}
	if models.SameCalendarDay(*st.LastLoginDate, now) {
		return false
	}
	return models.DaysBetween(*st.LastLoginDate, now) == 1 && now.Hour() >= streakRiskHourUTC
}
