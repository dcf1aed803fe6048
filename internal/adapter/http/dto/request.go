package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:          r.Name,
		Type:          r.Type,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		Currency:      r.Currency,
		Balance:       r.Balance,
	}
}

// UpdateAccountRequest represents an owner edit of account metadata.
type UpdateAccountRequest struct {
	Name          string           `json:"name"`
	BankName      string           `json:"bank_name"`
	AccountNumber string           `json:"account_number"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:          r.Name,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		Balance:       r.Balance,
	}
}

// CreateEntryRequest represents a request to record an income or expense.
type CreateEntryRequest struct {
	Kind        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Division    string          `json:"division"`
	AccountID   string          `json:"account_id"`
	Notes       string          `json:"notes"`
	OccurredAt  time.Time       `json:"transaction_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Kind:        r.Kind,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Division:    r.Division,
		AccountID:   r.AccountID,
		Notes:       r.Notes,
		OccurredAt:  r.OccurredAt,
	}
}

// UpdateEntryRequest represents an edit of an entry inside its window.
type UpdateEntryRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Division    string          `json:"division"`
	Notes       string          `json:"notes"`
	OccurredAt  time.Time       `json:"transaction_date"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput() usecase.UpdateEntryInput {
	return usecase.UpdateEntryInput{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Division:    r.Division,
		Notes:       r.Notes,
		OccurredAt:  r.OccurredAt,
	}
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OccurredAt    *time.Time      `json:"transfer_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
		OccurredAt:    r.OccurredAt,
	}
}
