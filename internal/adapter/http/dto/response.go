package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
)

// Envelope is the standard response wrapper for every API endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	BankName       string          `json:"bank_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	Currency       string          `json:"currency"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		BankName:       a.BankName,
		AccountNumber:  a.AccountNumber,
		Currency:       a.Currency,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Division    string          `json:"division,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Status      string          `json:"status"`
	OccurredAt  time.Time       `json:"transaction_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Kind:        e.Kind,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Division:    e.Division,
		AccountID:   e.AccountID,
		Notes:       e.Notes,
		Status:      e.Status,
		OccurredAt:  e.OccurredAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	OccurredAt    time.Time       `json:"transfer_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Description:   t.Description,
		Reference:     t.Reference,
		Status:        t.Status,
		OccurredAt:    t.OccurredAt,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// PeriodReportResponse represents a period summary in API responses.
type PeriodReportResponse struct {
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
	NetBalance   decimal.Decimal  `json:"net_balance"`
	Count        int              `json:"transaction_count"`
	Entries      []*EntryResponse `json:"data"`
}

// PeriodReportFromDomain converts a domain period report to a response.
func PeriodReportFromDomain(r *domain.PeriodReport) *PeriodReportResponse {
	return &PeriodReportResponse{
		StartDate:    r.Start,
		EndDate:      r.End,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetBalance:   r.Net,
		Count:        r.Count,
		Entries:      EntriesFromDomain(r.Entries),
	}
}

// CategoryReportResponse represents category totals in API responses.
type CategoryReportResponse struct {
	CategoryExpenses map[string]decimal.Decimal `json:"category_expenses"`
	CategoryIncomes  map[string]decimal.Decimal `json:"category_incomes"`
	TotalExpense     decimal.Decimal            `json:"total_expense"`
	TotalIncome      decimal.Decimal            `json:"total_income"`
}

// CategoryReportFromDomain converts a domain category report to a response.
func CategoryReportFromDomain(r *domain.CategoryReport) *CategoryReportResponse {
	return &CategoryReportResponse{
		CategoryExpenses: r.Expenses,
		CategoryIncomes:  r.Incomes,
		TotalExpense:     r.TotalExpense,
		TotalIncome:      r.TotalIncome,
	}
}

// TotalBalanceResponse represents the summed balance of active accounts.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
}
