package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry kinds.
const (
	KindIncome  = "INCOME"
	KindExpense = "EXPENSE"
)

// Entry statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Divisions partition entries for filtering only.
const (
	DivisionOffice   = "Office"
	DivisionPersonal = "Personal"
)

// Entry represents a single income or expense record.
//
// Amount is always strictly positive; the sign of the movement is derived
// from Kind. A deleted entry is a tombstone: it keeps its data but is
// excluded from every read path.
type Entry struct {
	ID          string
	OwnerID     string
	Kind        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Division    string
	AccountID   string
	Notes       string
	Status      string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Deleted     bool
	DeletedAt   *time.Time
}

// Validate validates a new entry.
func (e *Entry) Validate() error {
	if e.Kind != KindIncome && e.Kind != KindExpense {
		return ErrInvalidKind
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Editable reports whether the entry may still be modified at now.
// Deletion is not gated by the window; only updates are.
func (e *Entry) Editable(now time.Time, window time.Duration) bool {
	return !e.Deleted && now.Sub(e.CreatedAt) < window
}
