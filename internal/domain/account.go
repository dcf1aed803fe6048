package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types.
const (
	AccountTypeSavings    = "SAVINGS"
	AccountTypeChecking   = "CHECKING"
	AccountTypeInvestment = "INVESTMENT"
)

// Account represents a monetary account owned by a single user.
type Account struct {
	ID             string
	OwnerID        string
	Name           string
	Type           string
	BankName       string
	AccountNumber  string
	Currency       string
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	Version        int64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate validates a new account.
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrInvalidAccountName
	}
	if a.Balance.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}

// CanDebit checks whether the account holds at least amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
