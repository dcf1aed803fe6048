package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodReport summarizes entries inside a time window.
type PeriodReport struct {
	Start        time.Time
	End          time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
	Count        int
	Entries      []*Entry
}

// CategoryReport maps categories to accumulated totals over the full
// undeleted history, split by entry kind.
type CategoryReport struct {
	Expenses     map[string]decimal.Decimal
	Incomes      map[string]decimal.Decimal
	TotalExpense decimal.Decimal
	TotalIncome  decimal.Decimal
}
