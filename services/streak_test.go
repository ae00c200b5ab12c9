package services

import (
	"errors"
	"testing"
	"time"

	"progression-service/config"
	"progression-service/models"
)

func newStreakService() *StreakService {
	return NewStreakService(NewGemLedger(nil), config.DefaultEconomy())
}

func TestEquipFreezeCap(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()

	if err := svc.Equip(st); err != nil {
		t.Fatalf("first equip: %v", err)
	}
	if err := svc.Equip(st); err != nil {
		t.Fatalf("second equip: %v", err)
	}
	if st.EquippedFreezeCharges != 2 {
		t.Errorf("charges = %d, want 2", st.EquippedFreezeCharges)
	}
	if err := svc.Equip(st); !errors.Is(err, ErrMaxFreezesReached) {
		t.Errorf("third equip err = %v, want ErrMaxFreezesReached", err)
	}
	if st.EquippedFreezeCharges != 2 {
		t.Errorf("charges = %d after rejected equip, want 2", st.EquippedFreezeCharges)
	}
}

func TestConsumeIfAvailable(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()

	if svc.ConsumeIfAvailable(st) {
		t.Error("consumed a freeze with none equipped")
	}

	st.EquippedFreezeCharges = 1
	if !svc.ConsumeIfAvailable(st) {
		t.Error("failed to consume an equipped freeze")
	}
	if st.EquippedFreezeCharges != 0 {
		t.Errorf("charges = %d, want 0", st.EquippedFreezeCharges)
	}
	if svc.ConsumeIfAvailable(st) {
		t.Error("consumed a second freeze from an empty slot")
	}
}

func TestRepairOfferCost(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	brokenAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	st.CurrentStreak = 12
	svc.MarkBroken("u1", st, brokenAt)

	offer := svc.GetRepairOffer(st, brokenAt.Add(time.Hour))
	if offer == nil {
		t.Fatal("expected an open offer one hour after the break")
	}
	if offer.StreakValue != 12 {
		t.Errorf("StreakValue = %d, want 12", offer.StreakValue)
	}
	// 500 base + 10 per lost streak day.
	if offer.Cost != 620 {
		t.Errorf("Cost = %d, want 620", offer.Cost)
	}
	if want := brokenAt.Add(48 * time.Hour); !offer.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", offer.ExpiresAt, want)
	}
}

func TestRepairOfferWindowBoundary(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	brokenAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st.CurrentStreak = 5
	svc.MarkBroken("u1", st, brokenAt)

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"just inside", brokenAt.Add(48*time.Hour - time.Minute), true},
		{"exactly at expiry", brokenAt.Add(48 * time.Hour), false},
		{"past expiry", brokenAt.Add(48*time.Hour + time.Minute), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.GetRepairOffer(st, tc.at)
			if (got != nil) != tc.open {
				t.Errorf("offer at %v: got %v, want open=%v", tc.at, got, tc.open)
			}
		})
	}
}

func TestRepairRestoresStreak(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	prog := models.NewProgressionState()
	prog.MindGems = 1000
	brokenAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	st.CurrentStreak = 12
	st.BestStreak = 12
	svc.MarkBroken("u1", st, brokenAt)
	st.CurrentStreak = 1 // reset happens after MarkBroken on a break

	res, err := svc.Repair("u1", prog, st, brokenAt.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if res.RestoredStreak != 12 || st.CurrentStreak != 12 {
		t.Errorf("restored streak = %d/%d, want 12", res.RestoredStreak, st.CurrentStreak)
	}
	if res.CostPaid != 620 || prog.MindGems != 380 {
		t.Errorf("cost = %d balance = %d, want 620 and 380", res.CostPaid, prog.MindGems)
	}
	if st.StreakBrokenAt != nil || st.StreakValueAtBreak != nil {
		t.Error("break bookkeeping not cleared after repair")
	}

	// Single use: the same break can not be repaired twice.
	if _, err := svc.Repair("u1", prog, st, brokenAt.Add(3*time.Hour)); !errors.Is(err, ErrNoValidOffer) {
		t.Errorf("second repair err = %v, want ErrNoValidOffer", err)
	}
}

func TestRepairInsufficientFundsKeepsOffer(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	prog := models.NewProgressionState()
	prog.MindGems = 100
	brokenAt := time.Now().UTC()

	st.CurrentStreak = 12
	svc.MarkBroken("u1", st, brokenAt)
	st.CurrentStreak = 1

	_, err := svc.Repair("u1", prog, st, brokenAt.Add(time.Hour))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if prog.MindGems != 100 {
		t.Errorf("balance = %d, want 100 untouched", prog.MindGems)
	}
	if svc.GetRepairOffer(st, brokenAt.Add(2*time.Hour)) == nil {
		t.Error("offer gone after a failed spend; it should stay open")
	}
}

func TestRepairExpiredOfferClearsBookkeeping(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	prog := models.NewProgressionState()
	prog.MindGems = 10000
	brokenAt := time.Now().UTC().Add(-72 * time.Hour)

	st.CurrentStreak = 8
	svc.MarkBroken("u1", st, brokenAt)
	st.CurrentStreak = 1

	_, err := svc.Repair("u1", prog, st, time.Now().UTC())
	if !errors.Is(err, ErrNoValidOffer) {
		t.Fatalf("err = %v, want ErrNoValidOffer", err)
	}
	if st.StreakBrokenAt != nil || st.StreakValueAtBreak != nil {
		t.Error("expired break bookkeeping not tidied")
	}
	if prog.MindGems != 10000 {
		t.Errorf("balance = %d, want 10000 untouched", prog.MindGems)
	}
}

func TestClearExpiredBreak(t *testing.T) {
	svc := newStreakService()
	st := models.NewStreakState()
	brokenAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st.CurrentStreak = 4
	svc.MarkBroken("u1", st, brokenAt)

	if svc.ClearExpiredBreak(st, brokenAt.Add(time.Hour)) {
		t.Error("cleared a break still inside the window")
	}
	if !svc.ClearExpiredBreak(st, brokenAt.Add(49*time.Hour)) {
		t.Error("did not clear an expired break")
	}
	if svc.ClearExpiredBreak(st, brokenAt.Add(50*time.Hour)) {
		t.Error("reported clearing with nothing on record")
	}
}
