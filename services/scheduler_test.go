package services

import (
	"testing"
	"time"

	"progression-service/config"
	"progression-service/models"
	"progression-service/store"
)

func TestMaintenanceSweepClearsExpiredOffers(t *testing.T) {
	f, _ := newTestFacade(t)

	var events []models.Event
	unsub := f.Notifier.Subscribe(func(e models.Event) { events = append(events, e) })
	defer unsub()

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.Now = func() time.Time { return clock }

	f.ProcessDailyLogin("u1")
	clock = clock.AddDate(0, 0, 3)
	f.ProcessDailyLogin("u1") // break, opens a repair offer

	// Inside the window the sweep must leave the offer alone.
	clock = clock.Add(time.Hour)
	f.runMaintenanceSweep()
	sum, _ := f.GetSummary("u1")
	if sum.RepairOffer == nil {
		t.Fatal("sweep cleared an offer still inside the window")
	}

	clock = clock.Add(48 * time.Hour)
	f.runMaintenanceSweep()
	sum, _ = f.GetSummary("u1")
	if sum.RepairOffer != nil {
		t.Errorf("offer survived the post-window sweep: %+v", sum.RepairOffer)
	}

	found := false
	for _, e := range events {
		if e.Type == models.EventRepairOfferExpired && e.ExternalUserID == "u1" {
			found = true
		}
	}
	if !found {
		t.Error("no repair_offer_expired event published")
	}
}

func TestMaintenanceSweepNudgesStreakAtRisk(t *testing.T) {
	f, _ := newTestFacade(t)

	var events []models.Event
	unsub := f.Notifier.Subscribe(func(e models.Event) { events = append(events, e) })
	defer unsub()

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.Now = func() time.Time { return clock }
	f.ProcessDailyLogin("u1")

	// Next day, morning: too early for a nudge.
	clock = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f.runMaintenanceSweep()
	if countType(events, models.EventStreakAtRisk) != 0 {
		t.Error("nudged before the risk hour")
	}

	// Same day, evening: the streak is at risk.
	clock = time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	f.runMaintenanceSweep()
	if countType(events, models.EventStreakAtRisk) != 1 {
		t.Errorf("expected exactly one nudge, events = %v", events)
	}

	// After today's login the nudge stops.
	f.ProcessDailyLogin("u1")
	f.runMaintenanceSweep()
	if countType(events, models.EventStreakAtRisk) != 1 {
		t.Error("nudged after the user already logged in today")
	}
}

func countType(events []models.Event, typ models.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestSweepSkipsStoresWithoutListing(t *testing.T) {
	// A Store that can not enumerate users makes the sweep a silent no-op.
	f := NewProgressionFacade(noListStore{store.NewMemoryStore()}, nil, NewNotifier(), config.DefaultEconomy())
	f.runMaintenanceSweep()
}

// noListStore hides the Lister implementation of the wrapped MemoryStore.
type noListStore struct {
	inner store.Store
}

func (s noListStore) Load(userID, ns string) ([]byte, error) { return s.inner.Load(userID, ns) }

func (s noListStore) Save(userID, ns string, data []byte) error {
	return s.inner.Save(userID, ns, data)
}

func (s noListStore) Delete(userID, ns string) error { return s.inner.Delete(userID, ns) }
