package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"progression-service/config"
	"progression-service/models"
	"progression-service/store"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownItem is returned when purchasing an item not in the catalog.
var ErrUnknownItem = errors.New("unknown shop item")

// ErrItemOwned is returned when re-purchasing a non-consumable cosmetic.
var ErrItemOwned = errors.New("item already owned")

// ProgressionFacade is the orchestration surface the rest of the app
// consumes. Each entry point loads the user's snapshots, runs the relevant
// engines, persists, and publishes notifications. A per-user mutex makes
// every read-modify-write one atomic transaction: a level-up cascade, its
// gem credit, and any achievement flips are observed together or not at
// all.
type ProgressionFacade struct {
	Store        store.Store
	Gems         *GemLedger
	Leveling     *LevelingService
	Streak       *StreakService
	DailyLogin   *DailyLoginService
	Achievements *AchievementService
	Notifier     *Notifier
	Econ         *config.Economy

	// Now is the clock source, overridable in tests.
	Now func() time.Time

	locks sync.Map // userID -> *sync.Mutex

	dirtyMu sync.Mutex
	dirty   map[string]bool // users with unsaved-to-archive changes
}

// NewProgressionFacade wires the engines over a store.
func NewProgressionFacade(st store.Store, recorder TransactionRecorder, notifier *Notifier, econ *config.Economy) *ProgressionFacade {
	gems := NewGemLedger(recorder)
	leveling := NewLevelingService(gems)
	streak := NewStreakService(gems, econ)
	return &ProgressionFacade{
		Store:        st,
		Gems:         gems,
		Leveling:     leveling,
		Streak:       streak,
		DailyLogin:   NewDailyLoginService(streak, gems, econ),
		Achievements: NewAchievementService(leveling, gems),
		Notifier:     notifier,
		Econ:         econ,
		Now:          time.Now,
		dirty:        make(map[string]bool),
	}
}

func (f *ProgressionFacade) lock(userID string) *sync.Mutex {
	mu, _ := f.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (f *ProgressionFacade) markDirty(userID string) {
	f.dirtyMu.Lock()
	f.dirty[userID] = true
	f.dirtyMu.Unlock()
}

// DrainDirty returns and clears the set of users changed since the last
// drain. The archive worker consumes it.
func (f *ProgressionFacade) DrainDirty() []string {
	f.dirtyMu.Lock()
	defer f.dirtyMu.Unlock()
	out := make([]string, 0, len(f.dirty))
	for user := range f.dirty {
		out = append(out, user)
	}
	f.dirty = make(map[string]bool)
	return out
}

// xpForTask computes the XP delta for a completed task from the configured
// priority weights and the on-time bonus.
func (f *ProgressionFacade) xpForTask(priority models.Priority, isOnTime bool) int {
	xp := 0
	switch priority {
	case models.PriorityLow:
		xp = f.Econ.TaskXPLow
	case models.PriorityHigh:
		xp = f.Econ.TaskXPHigh
	case models.PriorityUrgent:
		xp = f.Econ.TaskXPUrgent
	default:
		xp = f.Econ.TaskXPMedium
	}
	if isOnTime {
		xp += f.Econ.OnTimeBonusXP
	}
	return xp
}

// ProcessTaskCompletion applies one task completion: XP (with level-up
// cascade), the per-day activity counter behind the streak goal, and an
// achievement pass over the provided activity snapshot.
func (f *ProgressionFacade) ProcessTaskCompletion(userID string, priority models.Priority, isOnTime bool, activity models.ActivitySnapshot) (*models.TaskCompletionResult, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := f.Now().UTC()
	prog := f.loadProgression(userID)
	st := f.loadStreak(userID)
	ast := f.loadAchievements(userID)
	dl := f.loadDailyLogin(userID)

	gemsBefore := prog.MindGems
	delta := f.xpForTask(priority, isOnTime)
	levelUps := f.Leveling.ApplyXP(userID, prog, delta, now)
	dl.RecordCompletion(now)

	input := BuildAchievementInput(activity, st, dl)
	unlocked, rewardLevelUps := f.Achievements.Evaluate(userID, prog, ast, input, now)
	levelUps = append(levelUps, rewardLevelUps...)

	if err := f.saveAll(userID, prog, st, ast, dl); err != nil {
		return nil, err
	}

	for _, lu := range levelUps {
		f.publish(userID, models.EventLevelUp, "Level up!",
			fmt.Sprintf("You reached level %d (%s)", lu.NewLevel, lu.NewTier))
	}
	for _, a := range unlocked {
		f.publish(userID, models.EventAchievementUnlocked, "Achievement unlocked!", a.Name)
	}

	return &models.TaskCompletionResult{
		XPGained:             delta,
		LevelUps:             levelUps,
		GemsGained:           prog.MindGems - gemsBefore,
		UnlockedAchievements: unlocked,
		Level:                prog.Level,
		CurrentXP:            prog.CurrentXP,
		MindGems:             prog.MindGems,
	}, nil
}

// ProcessDailyLogin runs the idempotent daily claim and a follow-up
// achievement pass so streak milestones unlock on the day they are reached.
func (f *ProgressionFacade) ProcessDailyLogin(userID string) (*models.DailyLoginResult, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := f.Now().UTC()
	prog := f.loadProgression(userID)
	st := f.loadStreak(userID)
	ast := f.loadAchievements(userID)
	dl := f.loadDailyLogin(userID)

	res := f.DailyLogin.Claim(userID, prog, st, dl, now)

	var unlocked []models.Achievement
	var levelUps []models.LevelUpEvent
	if res.GrantedToday {
		// No task snapshot here: only the streak and burst counters move,
		// and recorded progress on the other families never regresses.
		input := BuildAchievementInput(models.ActivitySnapshot{}, st, dl)
		unlocked, levelUps = f.Achievements.Evaluate(userID, prog, ast, input, now)

		if err := f.saveAll(userID, prog, st, ast, dl); err != nil {
			return nil, err
		}
	}

	if res.GrantedToday {
		f.publish(userID, models.EventDailyReward, "Daily reward",
			fmt.Sprintf("You earned %d gems", res.GemsEarned+res.StreakBonusGems))
	}
	if res.Protected {
		f.publish(userID, models.EventStreakProtected, "Streak protected",
			"A freeze saved your streak")
	}
	if res.StreakBroken {
		msg := "Your streak was broken"
		if offer := f.Streak.GetRepairOffer(st, now); offer != nil {
			msg = fmt.Sprintf("Repair it for %d gems within 48 hours", offer.Cost)
		}
		f.publish(userID, models.EventStreakBroken, "Streak broken", msg)
	}
	for _, lu := range levelUps {
		f.publish(userID, models.EventLevelUp, "Level up!",
			fmt.Sprintf("You reached level %d (%s)", lu.NewLevel, lu.NewTier))
	}
	for _, a := range unlocked {
		f.publish(userID, models.EventAchievementUnlocked, "Achievement unlocked!", a.Name)
	}

	return res, nil
}

// PurchaseItem spends gems on a catalog item. Streak freezes equip a
// charge (checked against the cap before any spend); cosmetics land in
// unlockedItems and can be bought once.
func (f *ProgressionFacade) PurchaseItem(userID, itemID string) (*models.PurchaseResult, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	item, ok := models.ItemByID(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}

	prog := f.loadProgression(userID)
	st := f.loadStreak(userID)

	if item.Kind == models.ItemKindConsumable {
		// Cap check precedes the spend so nothing needs refunding.
		if st.EquippedFreezeCharges >= f.Econ.MaxFreezes {
			return nil, ErrMaxFreezesReached
		}
	} else if prog.UnlockedItems[item.ID] {
		return nil, fmt.Errorf("%w: %s", ErrItemOwned, itemID)
	}

	balance, err := f.Gems.Spend(userID, prog, item.Cost, "shop_"+item.ID)
	if err != nil {
		return nil, err
	}

	res := &models.PurchaseResult{Item: item, NewBalance: balance}
	if item.Kind == models.ItemKindConsumable {
		if err := f.Streak.Equip(st); err != nil {
			// Unreachable given the pre-check, but never swallow it.
			return nil, err
		}
		res.FreezeCharges = st.EquippedFreezeCharges
	} else {
		prog.UnlockedItems[item.ID] = true
	}

	if err := f.saveAll(userID, prog, st, nil, nil); err != nil {
		return nil, err
	}
	return res, nil
}

// RepairStreak consumes the current repair offer, if one is still open.
func (f *ProgressionFacade) RepairStreak(userID string) (*models.RepairResult, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := f.Now().UTC()
	prog := f.loadProgression(userID)
	st := f.loadStreak(userID)

	res, err := f.Streak.Repair(userID, prog, st, now)
	if err != nil {
		// An expired offer clears bookkeeping; persist that tidy-up.
		if errors.Is(err, ErrNoValidOffer) {
			_ = f.saveAll(userID, nil, st, nil, nil)
		}
		return nil, err
	}

	if err := f.saveAll(userID, prog, st, nil, nil); err != nil {
		return nil, err
	}
	f.publish(userID, models.EventStreakRepaired, "Streak repaired",
		fmt.Sprintf("Your %d-day streak is back", res.RestoredStreak))
	return res, nil
}

// GetSummary returns the read-only progression overview.
func (f *ProgressionFacade) GetSummary(userID string) (*models.Summary, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := f.Now().UTC()
	prog := f.loadProgression(userID)
	st := f.loadStreak(userID)
	ast := f.loadAchievements(userID)

	items := make([]string, 0, len(prog.UnlockedItems))
	for id := range prog.UnlockedItems {
		items = append(items, id)
	}

	return &models.Summary{
		Level:                 prog.Level,
		CurrentXP:             prog.CurrentXP,
		XPToNextLevel:         XPToReachLevel(prog.Level + 1),
		TotalXPEarned:         prog.TotalXPEarned,
		Tier:                  TierOf(prog.Level),
		MindGems:              prog.MindGems,
		CurrentStreak:         st.CurrentStreak,
		BestStreak:            st.BestStreak,
		FreezeCharges:         st.EquippedFreezeCharges,
		RepairOffer:           f.Streak.GetRepairOffer(st, now),
		AchievementsCompleted: f.Achievements.CompletedCount(ast),
		AchievementsTotal:     len(f.Achievements.Catalog()),
		UnlockedItems:         items,
	}, nil
}

// ListAchievements returns the full catalog joined with the user's state.
func (f *ProgressionFacade) ListAchievements(userID string) ([]models.Achievement, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()
	return f.Achievements.All(f.loadAchievements(userID)), nil
}

// GrantXP is the admin entry point for manual XP grants.
func (f *ProgressionFacade) GrantXP(userID string, xp int, reason string) (*models.TaskCompletionResult, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	if xp <= 0 {
		return nil, fmt.Errorf("xp grant must be positive, got %d", xp)
	}
	now := f.Now().UTC()
	prog := f.loadProgression(userID)
	gemsBefore := prog.MindGems
	levelUps := f.Leveling.ApplyXP(userID, prog, xp, now)
	if err := f.saveAll(userID, prog, nil, nil, nil); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": userID, "xp": xp, "reason": reason}).Info("admin XP grant")
	return &models.TaskCompletionResult{
		XPGained:   xp,
		LevelUps:   levelUps,
		GemsGained: prog.MindGems - gemsBefore,
		Level:      prog.Level,
		CurrentXP:  prog.CurrentXP,
		MindGems:   prog.MindGems,
	}, nil
}

// ResetProgression wipes a user back to defaults across every namespace.
// Admin/test operation — the engines themselves never delete state.
func (f *ProgressionFacade) ResetProgression(userID string) error {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	for _, ns := range []string{
		store.NamespaceProgression,
		store.NamespaceStreakProtection,
		store.NamespaceAchievements,
		store.NamespaceDailyLogin,
	} {
		if err := f.Store.Delete(userID, ns); err != nil {
			return fmt.Errorf("resetting %s: %w", ns, err)
		}
	}
	f.markDirty(userID)
	return nil
}

// Snapshot serializes every namespace for one user, for the archive export.
func (f *ProgressionFacade) Snapshot(userID string) (map[string]json.RawMessage, error) {
	mu := f.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	out := make(map[string]json.RawMessage)
	for _, ns := range []string{
		store.NamespaceProgression,
		store.NamespaceStreakProtection,
		store.NamespaceAchievements,
		store.NamespaceDailyLogin,
	} {
		data, err := f.Store.Load(userID, ns)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[ns] = json.RawMessage(data)
	}
	return out, nil
}

// --- persistence helpers -------------------------------------------------

// Malformed or missing blobs degrade to documented defaults: this is local,
// non-critical game state, so availability wins over strict integrity.

func (f *ProgressionFacade) loadProgression(userID string) *models.ProgressionState {
	state := models.NewProgressionState()
	f.loadInto(userID, store.NamespaceProgression, state)
	state.Normalize()
	return state
}

func (f *ProgressionFacade) loadStreak(userID string) *models.StreakState {
	state := models.NewStreakState()
	f.loadInto(userID, store.NamespaceStreakProtection, state)
	state.Normalize(f.Econ.MaxFreezes)
	return state
}

func (f *ProgressionFacade) loadAchievements(userID string) *models.AchievementState {
	state := models.NewAchievementState()
	f.loadInto(userID, store.NamespaceAchievements, state)
	state.InitMaps()
	return state
}

func (f *ProgressionFacade) loadDailyLogin(userID string) *models.DailyLoginState {
	state := models.NewDailyLoginState()
	f.loadInto(userID, store.NamespaceDailyLogin, state)
	state.InitMaps()
	return state
}

func (f *ProgressionFacade) loadInto(userID, namespace string, target interface{}) {
	data, err := f.Store.Load(userID, namespace)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"user_id": userID, "namespace": namespace}).
			Warn("failed to load state, using defaults")
		return
	}
	if err := json.Unmarshal(data, target); err != nil {
		log.WithError(err).WithFields(log.Fields{"user_id": userID, "namespace": namespace}).
			Warn("corrupt persisted state, using defaults")
	}
}

// saveAll persists whichever snapshots are non-nil.
func (f *ProgressionFacade) saveAll(userID string, prog *models.ProgressionState, st *models.StreakState, ast *models.AchievementState, dl *models.DailyLoginState) error {
	if prog != nil {
		prog.UpdatedAt = f.Now().UTC()
		if err := f.save(userID, store.NamespaceProgression, prog); err != nil {
			return err
		}
	}
	if st != nil {
		if err := f.save(userID, store.NamespaceStreakProtection, st); err != nil {
			return err
		}
	}
	if ast != nil {
		if err := f.save(userID, store.NamespaceAchievements, ast); err != nil {
			return err
		}
	}
	if dl != nil {
		if err := f.save(userID, store.NamespaceDailyLogin, dl); err != nil {
			return err
		}
	}
	f.markDirty(userID)
	return nil
}

func (f *ProgressionFacade) save(userID, namespace string, state interface{}) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", namespace, err)
	}
	if err := f.Store.Save(userID, namespace, data); err != nil {
		return fmt.Errorf("persisting %s: %w", namespace, err)
	}
	return nil
}

func (f *ProgressionFacade) publish(userID string, typ models.EventType, title, message string) {
	if f.Notifier == nil {
		return
	}
	f.Notifier.Publish(models.Event{
		Type:           typ,
		ExternalUserID: userID,
		Title:          title,
		Message:        message,
	})
}
