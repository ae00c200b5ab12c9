package services

import (
	"time"

	"progression-service/models"

	log "github.com/sirupsen/logrus"
)

// AchievementInput carries the activity counters one evaluation pass is
// checked against.
type AchievementInput struct {
	TasksCompleted   int
	ListsCreated     int
	StreakDays       int
	PerfectLists     int
	MaxTasksInOneDay int
}

// BuildAchievementInput derives counters from a task/list snapshot plus the
// streak and daily-login state.
func BuildAchievementInput(activity models.ActivitySnapshot, st *models.StreakState, dl *models.DailyLoginState) AchievementInput {
	burst := activity.MaxCompletionsInOneDay()
	if n := dl.MaxCompletionsInOneDay(); n > burst {
		burst = n
	}
	streak := st.CurrentStreak
	if st.BestStreak > streak {
		streak = st.BestStreak
	}
	return AchievementInput{
		TasksCompleted:   activity.CompletedTasks(),
		ListsCreated:     len(activity.Lists),
		StreakDays:       streak,
		PerfectLists:     activity.PerfectLists(),
		MaxTasksInOneDay: burst,
	}
}

func (in AchievementInput) counterFor(kind models.RequirementKind) int {
	switch kind {
	case models.RequireTasksCompleted:
		return in.TasksCompleted
	case models.RequireListsCreated:
		return in.ListsCreated
	case models.RequireStreakDays:
		return in.StreakDays
	case models.RequirePerfectLists:
		return in.PerfectLists
	case models.RequireDailyBurst:
		return in.MaxTasksInOneDay
	}
	return 0
}

// AchievementService evaluates the immutable catalog against per-user
// state. Completion flips false→true at most once; progress is monotone
// and clamped to the target. Rewards route through the leveling
// orchestrator (XP, which may cascade level-ups) and the gem ledger.
type AchievementService struct {
	Leveling *LevelingService
	Gems     *GemLedger
	catalog  []models.AchievementDef
}

// NewAchievementService creates the engine over the fixed catalog.
func NewAchievementService(leveling *LevelingService, gems *GemLedger) *AchievementService {
	return &AchievementService{
		Leveling: leveling,
		Gems:     gems,
		catalog:  models.AchievementCatalog,
	}
}

// Catalog returns a copy of the achievement definitions.
func (s *AchievementService) Catalog() []models.AchievementDef {
	out := make([]models.AchievementDef, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Evaluate runs one pass over the catalog. Newly satisfied achievements are
// completed, stamped, and rewarded; in-flight ones get their progress
// advanced. Re-running against unchanged or overlapping data never re-fires
// a completed achievement and never decreases progress.
func (s *AchievementService) Evaluate(externalUserID string, prog *models.ProgressionState, ast *models.AchievementState, in AchievementInput, now time.Time) ([]models.Achievement, []models.LevelUpEvent) {
	ast.InitMaps()

	var unlocked []models.Achievement
	var levelUps []models.LevelUpEvent

	for _, def := range s.catalog {
		current := in.counterFor(def.Kind)
		if current > def.Target {
			current = def.Target
		}
		if current > ast.Progress[def.ID] {
			ast.Progress[def.ID] = current
		}

		if _, done := ast.Completed[def.ID]; done {
			continue
		}
		if ast.Progress[def.ID] < def.Target {
			continue
		}

		ast.Completed[def.ID] = now
		unlocked = append(unlocked, s.view(def, ast))

		if def.RewardGems > 0 {
			s.Gems.Earn(externalUserID, prog, def.RewardGems, "achievement_"+def.ID)
		}
		if def.RewardXP > 0 {
			levelUps = append(levelUps, s.Leveling.ApplyXP(externalUserID, prog, def.RewardXP, now)...)
		}

		log.WithFields(log.Fields{
			"user_id":     externalUserID,
			"achievement": def.ID,
			"category":    def.Category,
		}).Info("achievement unlocked")
	}

	return unlocked, levelUps
}

// All returns the catalog joined with the user's completion and progress.
func (s *AchievementService) All(ast *models.AchievementState) []models.Achievement {
	ast.InitMaps()
	out := make([]models.Achievement, 0, len(s.catalog))
	for _, def := range s.catalog {
		out = append(out, s.view(def, ast))
	}
	return out
}

// CompletedCount returns how many catalog entries the user has completed.
func (s *AchievementService) CompletedCount(ast *models.AchievementState) int {
	ast.InitMaps()
	n := 0
	for _, def := range s.catalog {
		if _, done := ast.Completed[def.ID]; done {
			n++
		}
	}
	return n
}

func (s *AchievementService) view(def models.AchievementDef, ast *models.AchievementState) models.Achievement {
	a := models.Achievement{AchievementDef: def, Progress: ast.Progress[def.ID]}
	if ts, done := ast.Completed[def.ID]; done {
		a.IsCompleted = true
		t := ts
		a.CompletedAt = &t
		a.Progress = def.Target
	}
	return a
}
