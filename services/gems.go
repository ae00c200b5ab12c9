package services

import (
	"errors"
	"time"

	"progression-service/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrInsufficientFunds is returned when a spend exceeds the balance. The
// balance is left untouched — no partial debit is ever observable.
var ErrInsufficientFunds = errors.New("insufficient mind gems")

// TransactionRecorder receives one audit entry per successful ledger
// mutation. Production wires the gorm-backed log; tests use an in-memory
// slice or nil.
type TransactionRecorder interface {
	Record(tx models.GemTransaction) error
}

// GemLedger performs all gem balance arithmetic. It is the only code that
// writes ProgressionState.MindGems.
type GemLedger struct {
	Recorder TransactionRecorder // optional
}

// NewGemLedger creates a ledger. recorder may be nil to skip auditing.
func NewGemLedger(recorder TransactionRecorder) *GemLedger {
	return &GemLedger{Recorder: recorder}
}

// Earn credits amount gems and returns the new balance. A negative amount
// is a defensive no-op, not an error — callers compute amounts from static
// tables and a negative here means a table bug, which must not corrupt the
// balance.
func (g *GemLedger) Earn(externalUserID string, state *models.ProgressionState, amount int, reason string) int {
	if amount < 0 {
		log.WithFields(log.Fields{"user_id": externalUserID, "amount": amount, "reason": reason}).
			Warn("ignoring negative gem earn")
		return state.MindGems
	}
	if amount == 0 {
		return state.MindGems
	}
	state.MindGems += amount
	g.record(externalUserID, models.GemEarn, amount, reason)
	log.WithFields(log.Fields{"user_id": externalUserID, "amount": amount, "balance": state.MindGems, "reason": reason}).
		Debug("gems earned")
	return state.MindGems
}

// Spend debits amount gems. The check and the debit are a single step on
// the in-memory snapshot, so no intermediate negative balance exists.
func (g *GemLedger) Spend(externalUserID string, state *models.ProgressionState, amount int, reason string) (int, error) {
	if amount < 0 {
		log.WithFields(log.Fields{"user_id": externalUserID, "amount": amount, "reason": reason}).
			Warn("ignoring negative gem spend")
		return state.MindGems, nil
	}
	if amount > state.MindGems {
		return state.MindGems, ErrInsufficientFunds
	}
	state.MindGems -= amount
	g.record(externalUserID, models.GemSpend, amount, reason)
	log.WithFields(log.Fields{"user_id": externalUserID, "amount": amount, "balance": state.MindGems, "reason": reason}).
		Debug("gems spent")
	return state.MindGems, nil
}

func (g *GemLedger) record(externalUserID string, direction models.GemDirection, amount int, reason string) {
	if g.Recorder == nil {
		return
	}
	tx := models.GemTransaction{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Direction:      direction,
		Amount:         amount,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := g.Recorder.Record(tx); err != nil {
		// The audit trail is best-effort; the balance mutation stands.
		log.WithError(err).WithField("user_id", externalUserID).Warn("failed to record gem transaction")
	}
}
