package models

import "time"

// dailyActivityRetentionDays bounds the per-day completion map so the blob
// does not grow without limit. The streak rule only ever looks one day
// back; the daily-burst achievement looks at single days in isolation.
const dailyActivityRetentionDays = 30

// DailyLoginState tracks per-calendar-day activity, persisted under the
// "daily_login" namespace. CompletionsByDay counts completed tasks per UTC
// day and backs both the "goal met yesterday" streak rule and the
// daily-burst achievement.
type DailyLoginState struct {
	CompletionsByDay map[string]int `json:"completionsByDay"`
}

// NewDailyLoginState returns the documented defaults for a fresh account.
func NewDailyLoginState() *DailyLoginState {
	return &DailyLoginState{CompletionsByDay: make(map[string]int)}
}

// InitMaps ensures map fields are non-nil after deserialization.
func (d *DailyLoginState) InitMaps() {
	if d.CompletionsByDay == nil {
		d.CompletionsByDay = make(map[string]int)
	}
}

// RecordCompletion counts one completed task on the given day and prunes
// entries older than the retention horizon.
func (d *DailyLoginState) RecordCompletion(day time.Time) {
	d.InitMaps()
	d.CompletionsByDay[DayKey(day)]++
	d.prune(day)
}

// CompletionsOn returns the completed-task count for the given day.
func (d *DailyLoginState) CompletionsOn(day time.Time) int {
	d.InitMaps()
	return d.CompletionsByDay[DayKey(day)]
}

// GoalMetOn reports whether the daily activity goal was met on the given
// day. The goal is currently "at least one task completed" — see the open
// question recorded in DESIGN.md about the unused points-goal concept.
func (d *DailyLoginState) GoalMetOn(day time.Time) bool {
	return d.CompletionsOn(day) >= 1
}

// MaxCompletionsInOneDay returns the highest single-day completion count
// on record.
func (d *DailyLoginState) MaxCompletionsInOneDay() int {
	d.InitMaps()
	max := 0
	for _, n := range d.CompletionsByDay {
		if n > max {
			max = n
		}
	}
	return max
}

func (d *DailyLoginState) prune(now time.Time) {
	horizon := DateOf(now).AddDate(0, 0, -dailyActivityRetentionDays)
	for key := range d.CompletionsByDay {
		day, err := time.Parse("2006-01-02", key)
		if err != nil || day.Before(horizon) {
			delete(d.CompletionsByDay, key)
		}
	}
}
