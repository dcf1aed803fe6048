package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountName = errors.New("account name is required")
	ErrNegativeBalance    = errors.New("balance cannot be negative")

	// Entry errors
	ErrEntryNotFound     = errors.New("transaction not found")
	ErrInvalidKind       = errors.New("type must be INCOME or EXPENSE")
	ErrEditWindowExpired = errors.New("transaction can no longer be edited")

	// Transfer errors
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInsufficientFunds = errors.New("insufficient balance in source account")

	// Shared errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrConflict      = errors.New("concurrent modification, try again")
)
