package models

import "time"

// TaskSnapshot is the read-only view of one task, pulled from the task
// service for threshold evaluation. The engine never mutates tasks.
type TaskSnapshot struct {
	ID          string    `json:"id"`
	ListID      string    `json:"list_id"`
	IsCompleted bool      `json:"is_completed"`
	UpdatedAt   time.Time `json:"updated_at"`
	Priority    Priority  `json:"priority"`
}

// ListSnapshot is the read-only view of one task list.
type ListSnapshot struct {
	ID string `json:"id"`
}

// ActivitySnapshot bundles the task/list state the achievement engine
// evaluates against.
type ActivitySnapshot struct {
	Tasks []TaskSnapshot `json:"tasks"`
	Lists []ListSnapshot `json:"lists"`
}

// CompletedTasks counts completed tasks in the snapshot.
func (a ActivitySnapshot) CompletedTasks() int {
	n := 0
	for _, t := range a.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// PerfectLists counts non-empty lists whose tasks are all completed.
func (a ActivitySnapshot) PerfectLists() int {
	total := make(map[string]int)
	done := make(map[string]int)
	for _, t := range a.Tasks {
		total[t.ListID]++
		if t.IsCompleted {
			done[t.ListID]++
		}
	}
	n := 0
	for _, list := range a.Lists {
		if total[list.ID] > 0 && done[list.ID] == total[list.ID] {
			n++
		}
	}
	return n
}

// MaxCompletionsInOneDay returns the highest number of tasks completed on
// a single UTC calendar day, judged by each completed task's UpdatedAt.
func (a ActivitySnapshot) MaxCompletionsInOneDay() int {
	perDay := make(map[string]int)
	for _, t := range a.Tasks {
		if t.IsCompleted {
			perDay[DayKey(t.UpdatedAt)]++
		}
	}
	max := 0
	for _, n := range perDay {
		if n > max {
			max = n
		}
	}
	return max
}
