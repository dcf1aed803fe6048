package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a completed money movement between two accounts of the
// same owner. Transfers are write-once: created complete or not at all.
type Transfer struct {
	ID            string
	OwnerID       string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	Reference     string
	Status        string
	OccurredAt    time.Time
	CreatedAt     time.Time
}

// Validate validates a transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
