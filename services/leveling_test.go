package services

import (
	"testing"
	"time"

	"progression-service/models"
)

func TestXPToReachLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 250},
		{3, 300},
		{10, 650},
		{50, 2650},
		{100, 5150},
	}
	for _, tc := range tests {
		if got := XPToReachLevel(tc.level); got != tc.want {
			t.Errorf("XPToReachLevel(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestTierOf(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "bronze"},
		{9, "bronze"},
		{10, "silver"},
		{24, "silver"},
		{25, "gold"},
		{49, "gold"},
		{50, "platinum"},
		{74, "platinum"},
		{75, "diamond"},
		{100, "diamond"},
	}
	for _, tc := range tests {
		if got := TierOf(tc.level); got.ID != tc.want {
			t.Errorf("TierOf(%d) = %q, want %q", tc.level, got.ID, tc.want)
		}
	}
}

func TestRewardsForTierEntry(t *testing.T) {
	// Level 10 enters Silver: band reward 150 + entry bonus 500, plus the
	// silver crest.
	r := RewardsFor(10)
	if r.Gems != 650 {
		t.Errorf("RewardsFor(10).Gems = %d, want 650", r.Gems)
	}
	if len(r.Items) != 1 || r.Items[0] != "silver-crest" {
		t.Errorf("RewardsFor(10).Items = %v, want [silver-crest]", r.Items)
	}

	// Level 11 is a plain Silver level.
	r = RewardsFor(11)
	if r.Gems != 150 || len(r.Items) != 0 {
		t.Errorf("RewardsFor(11) = %+v, want gems 150 and no items", r)
	}
}

func TestApplyXPSingleLevelUp(t *testing.T) {
	svc := NewLevelingService(NewGemLedger(nil))
	state := models.NewProgressionState()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := svc.ApplyXP("u1", state, 260, now)

	if len(events) != 1 {
		t.Fatalf("expected 1 level-up event, got %d", len(events))
	}
	if state.Level != 2 {
		t.Errorf("Level = %d, want 2", state.Level)
	}
	if state.CurrentXP != 10 {
		t.Errorf("CurrentXP = %d, want 10", state.CurrentXP)
	}
	if state.TotalXPEarned != 260 {
		t.Errorf("TotalXPEarned = %d, want 260", state.TotalXPEarned)
	}
	if state.MindGems != 100 {
		t.Errorf("MindGems = %d, want 100 (bronze level reward)", state.MindGems)
	}
	if events[0].NewLevel != 2 || events[0].TierChanged {
		t.Errorf("event = %+v, want NewLevel 2 within bronze", events[0])
	}
	if state.LastLevelUpAt == nil || !state.LastLevelUpAt.Equal(now) {
		t.Errorf("LastLevelUpAt = %v, want %v", state.LastLevelUpAt, now)
	}
}

func TestApplyXPCascade(t *testing.T) {
	svc := NewLevelingService(NewGemLedger(nil))
	state := models.NewProgressionState()
	now := time.Now().UTC()

	// 250 + 300 = 550 to reach level 3; 600 leaves 50 over.
	events := svc.ApplyXP("u1", state, 600, now)

	if len(events) != 2 {
		t.Fatalf("expected 2 level-up events, got %d", len(events))
	}
	if state.Level != 3 {
		t.Errorf("Level = %d, want 3", state.Level)
	}
	if state.CurrentXP != 50 {
		t.Errorf("CurrentXP = %d, want 50", state.CurrentXP)
	}
	if state.MindGems != 200 {
		t.Errorf("MindGems = %d, want 200 (two bronze levels)", state.MindGems)
	}
}

func TestApplyXPTierCrossing(t *testing.T) {
	svc := NewLevelingService(NewGemLedger(nil))
	state := models.NewProgressionState()
	state.Level = 9
	now := time.Now().UTC()

	events := svc.ApplyXP("u1", state, XPToReachLevel(10), now)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	evt := events[0]
	if !evt.TierChanged || evt.NewTier != "silver" {
		t.Errorf("event = %+v, want tier change into silver", evt)
	}
	if evt.GemsAwarded != 650 {
		t.Errorf("GemsAwarded = %d, want 650", evt.GemsAwarded)
	}
	if !state.UnlockedItems["silver-crest"] {
		t.Error("silver-crest not unlocked on entering silver")
	}
}

func TestApplyXPDecompositionInvariance(t *testing.T) {
	now := time.Now().UTC()

	apply := func(deltas []int) *models.ProgressionState {
		svc := NewLevelingService(NewGemLedger(nil))
		state := models.NewProgressionState()
		for _, d := range deltas {
			svc.ApplyXP("u1", state, d, now)
		}
		return state
	}

	whole := apply([]int{900})
	for _, parts := range [][]int{
		{450, 450},
		{300, 300, 300},
		{1, 899},
		{899, 1},
	} {
		got := apply(parts)
		if got.Level != whole.Level || got.CurrentXP != whole.CurrentXP ||
			got.TotalXPEarned != whole.TotalXPEarned || got.MindGems != whole.MindGems {
			t.Errorf("partition %v: level=%d xp=%d total=%d gems=%d, want level=%d xp=%d total=%d gems=%d",
				parts, got.Level, got.CurrentXP, got.TotalXPEarned, got.MindGems,
				whole.Level, whole.CurrentXP, whole.TotalXPEarned, whole.MindGems)
		}
	}
}

func TestApplyXPMaxLevelCap(t *testing.T) {
	svc := NewLevelingService(NewGemLedger(nil))
	state := models.NewProgressionState()
	state.Level = models.MaxLevel
	now := time.Now().UTC()

	events := svc.ApplyXP("u1", state, 1_000_000, now)

	if len(events) != 0 {
		t.Fatalf("expected no events at cap, got %d", len(events))
	}
	if state.Level != models.MaxLevel {
		t.Errorf("Level = %d, want %d", state.Level, models.MaxLevel)
	}
	if state.CurrentXP > XPToReachLevel(models.MaxLevel) {
		t.Errorf("surplus XP not clamped: CurrentXP = %d", state.CurrentXP)
	}
	if state.TotalXPEarned != 1_000_000 {
		t.Errorf("TotalXPEarned = %d, want 1000000 (monotonic even at cap)", state.TotalXPEarned)
	}
}

func TestApplyXPNonPositiveDelta(t *testing.T) {
	svc := NewLevelingService(NewGemLedger(nil))
	state := models.NewProgressionState()
	now := time.Now().UTC()

	for _, delta := range []int{0, -50} {
		events := svc.ApplyXP("u1", state, delta, now)
		if len(events) != 0 || state.CurrentXP != 0 || state.TotalXPEarned != 0 {
			t.Errorf("delta %d mutated state: %+v", delta, state)
		}
	}
}
