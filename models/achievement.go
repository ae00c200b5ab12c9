package models

import "time"

// AchievementCategory groups achievements in the UI by difficulty.
type AchievementCategory string

const (
	CategoryBeginner     AchievementCategory = "beginner"
	CategoryIntermediate AchievementCategory = "intermediate"
	CategoryAdvanced     AchievementCategory = "advanced"
	CategoryLegendary    AchievementCategory = "legendary"
)

// RequirementKind names the activity counter an achievement is checked
// against.
type RequirementKind string

const (
	RequireTasksCompleted RequirementKind = "tasks_completed"
	RequireListsCreated   RequirementKind = "lists_created"
	RequireStreakDays     RequirementKind = "streak_days"
	RequirePerfectLists   RequirementKind = "perfect_lists"
	RequireDailyBurst     RequirementKind = "daily_burst"
)

// AchievementDef is one immutable catalog entry. Per-user completion and
// progress live in AchievementState, never on the definition, so the one
// catalog is safely shared across users.
type AchievementDef struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Kind        RequirementKind     `json:"requirement_kind"`
	Target      int                 `json:"requirement_target"`
	RewardXP    int                 `json:"reward_xp"`
	RewardGems  int                 `json:"reward_gems"`
}

// AchievementCatalog is the fixed achievement set.
var AchievementCatalog = []AchievementDef{

	// ── Beginner ──
	{ID: "first-task", Name: "First Step", Description: "Complete your first task",
		Category: CategoryBeginner, Kind: RequireTasksCompleted, Target: 1, RewardXP: 50, RewardGems: 25},
	{ID: "list-maker", Name: "List Maker", Description: "Create your first list",
		Category: CategoryBeginner, Kind: RequireListsCreated, Target: 1, RewardXP: 50, RewardGems: 25},
	{ID: "task-apprentice", Name: "Task Apprentice", Description: "Complete 10 tasks",
		Category: CategoryBeginner, Kind: RequireTasksCompleted, Target: 10, RewardXP: 100, RewardGems: 50},
	{ID: "streak-starter", Name: "Streak Starter", Description: "Keep a 3-day streak",
		Category: CategoryBeginner, Kind: RequireStreakDays, Target: 3, RewardXP: 75, RewardGems: 40},
	{ID: "clean-slate", Name: "Clean Slate", Description: "Finish every task in a list",
		Category: CategoryBeginner, Kind: RequirePerfectLists, Target: 1, RewardXP: 100, RewardGems: 50},

	// ── Intermediate ──
	{ID: "task-journeyman", Name: "Task Journeyman", Description: "Complete 50 tasks",
		Category: CategoryIntermediate, Kind: RequireTasksCompleted, Target: 50, RewardXP: 250, RewardGems: 100},
	{ID: "list-architect", Name: "List Architect", Description: "Create 5 lists",
		Category: CategoryIntermediate, Kind: RequireListsCreated, Target: 5, RewardXP: 150, RewardGems: 75},
	{ID: "week-warrior", Name: "Week Warrior", Description: "Keep a 7-day streak",
		Category: CategoryIntermediate, Kind: RequireStreakDays, Target: 7, RewardXP: 200, RewardGems: 100},
	{ID: "daily-dynamo", Name: "Daily Dynamo", Description: "Complete 10 tasks in a single day",
		Category: CategoryIntermediate, Kind: RequireDailyBurst, Target: 10, RewardXP: 250, RewardGems: 125},

	// ── Advanced ──
	{ID: "task-centurion", Name: "Task Centurion", Description: "Complete 100 tasks",
		Category: CategoryAdvanced, Kind: RequireTasksCompleted, Target: 100, RewardXP: 500, RewardGems: 250},
	{ID: "list-curator", Name: "List Curator", Description: "Create 15 lists",
		Category: CategoryAdvanced, Kind: RequireListsCreated, Target: 15, RewardXP: 400, RewardGems: 200},
	{ID: "streak-sentinel", Name: "Streak Sentinel", Description: "Keep a 30-day streak",
		Category: CategoryAdvanced, Kind: RequireStreakDays, Target: 30, RewardXP: 600, RewardGems: 300},
	{ID: "perfectionist", Name: "Perfectionist", Description: "Finish every task in 5 different lists",
		Category: CategoryAdvanced, Kind: RequirePerfectLists, Target: 5, RewardXP: 500, RewardGems: 250},

	// ── Legendary ──
	{ID: "task-legend", Name: "Task Legend", Description: "Complete 500 tasks",
		Category: CategoryLegendary, Kind: RequireTasksCompleted, Target: 500, RewardXP: 1500, RewardGems: 750},
	{ID: "streak-immortal", Name: "Streak Immortal", Description: "Keep a 100-day streak",
		Category: CategoryLegendary, Kind: RequireStreakDays, Target: 100, RewardXP: 2000, RewardGems: 1000},
	{ID: "grand-completionist", Name: "Grand Completionist", Description: "Complete 1000 tasks",
		Category: CategoryLegendary, Kind: RequireTasksCompleted, Target: 1000, RewardXP: 3000, RewardGems: 1500},
}

// AchievementState is the mutable per-user side of the catalog join,
// persisted under the "achievements" namespace. Completed maps achievement
// ID to unlock time; entries are only ever added. Progress maps ID to the
// highest observed counter value, clamped to the target and monotone.
type AchievementState struct {
	Completed map[string]time.Time `json:"completed"`
	Progress  map[string]int       `json:"progress"`
}

// NewAchievementState returns the documented defaults for a fresh account.
func NewAchievementState() *AchievementState {
	return &AchievementState{
		Completed: make(map[string]time.Time),
		Progress:  make(map[string]int),
	}
}

// InitMaps ensures map fields are non-nil after deserialization.
func (a *AchievementState) InitMaps() {
	if a.Completed == nil {
		a.Completed = make(map[string]time.Time)
	}
	if a.Progress == nil {
		a.Progress = make(map[string]int)
	}
}

// Achievement is the API view: a catalog definition joined with the user's
// completion flag and partial progress.
type Achievement struct {
	AchievementDef
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Progress    int        `json:"progress_current"`
}
