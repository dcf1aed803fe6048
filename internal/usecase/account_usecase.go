package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic. AdjustBalance is the only
// path that mutates balances during normal operation; transfers go through
// it as well.
type AccountUseCase struct {
	accountRepo AccountRepository
	locks       *LockManager
	retrier     *Retrier
	idGen       IDGenerator
	clock       Clock
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. Metrics may be nil.
func NewAccountUseCase(accountRepo AccountRepository, locks *LockManager, idGen IDGenerator, clock Clock, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		locks:       locks,
		retrier:     NewRetrier(),
		idGen:       idGen,
		clock:       clock,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name          string
	Type          string
	BankName      string
	AccountNumber string
	Currency      string
	Balance       decimal.Decimal
}

// CreateAccount creates a new active account. The opening balance must not
// be negative and is also recorded as the initial balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, ownerID string, input CreateAccountInput) (*domain.Account, error) {
	now := uc.clock.Now()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		OwnerID:        ownerID,
		Name:           input.Name,
		Type:           input.Type,
		BankName:       input.BankName,
		AccountNumber:  input.AccountNumber,
		Currency:       input.Currency,
		Balance:        input.Balance,
		InitialBalance: input.Balance,
		Version:        0,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account scoped to its owner.
func (uc *AccountUseCase) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByOwnerAndID(ctx, ownerID, id)
}

// ListAccounts lists all accounts of an owner.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, ownerID)
}

// ListActiveAccounts lists the owner's active accounts.
func (uc *AccountUseCase) ListActiveAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListActiveByOwner(ctx, ownerID)
}

// UpdateAccountInput represents an owner edit of account metadata. A nil
// Balance leaves the balance untouched; a non-nil one is an explicit
// override.
type UpdateAccountInput struct {
	Name          string
	BankName      string
	AccountNumber string
	Balance       *decimal.Decimal
}

// UpdateAccount updates account metadata and optionally overrides the
// balance. The write is guarded by the account lock and version so it cannot
// interleave with a concurrent transfer.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, ownerID, id string, input UpdateAccountInput) (*domain.Account, error) {
	release, err := uc.locks.Acquire(ctx, DefaultLockTimeout, id)
	if err != nil {
		return nil, err
	}
	defer release()

	account, err := uc.accountRepo.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		account.Name = input.Name
	}
	if input.BankName != "" {
		account.BankName = input.BankName
	}
	if input.AccountNumber != "" {
		account.AccountNumber = input.AccountNumber
	}
	if input.Balance != nil {
		if input.Balance.IsNegative() {
			return nil, domain.ErrNegativeBalance
		}
		account.Balance = *input.Balance
	}
	account.UpdatedAt = uc.clock.Now()

	if err := uc.accountRepo.Update(ctx, account, account.Version); err != nil {
		return nil, err
	}
	account.Version++

	return account, nil
}

// DeactivateAccount soft-deactivates an account. Accounts are never hard
// deleted.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, ownerID, id string) error {
	release, err := uc.locks.Acquire(ctx, DefaultLockTimeout, id)
	if err != nil {
		return err
	}
	defer release()

	account, err := uc.accountRepo.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	account.Active = false
	account.UpdatedAt = uc.clock.Now()

	if err := uc.accountRepo.Update(ctx, account, account.Version); err != nil {
		return err
	}

	return nil
}

// AdjustBalance applies delta to the account balance as one indivisible
// read-modify-write. It holds the account lock for the duration and writes
// through a version check, retrying a bounded number of times before
// surfacing domain.ErrConflict.
func (uc *AccountUseCase) AdjustBalance(ctx context.Context, ownerID, id string, delta decimal.Decimal) (*domain.Account, error) {
	release, err := uc.locks.Acquire(ctx, DefaultLockTimeout, id)
	if err != nil {
		return nil, err
	}
	defer release()

	return uc.adjustLocked(ctx, ownerID, id, delta)
}

// adjustLocked performs the versioned balance write. The caller must hold
// the account lock.
func (uc *AccountUseCase) adjustLocked(ctx context.Context, ownerID, id string, delta decimal.Decimal) (*domain.Account, error) {
	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		account, err = uc.accountRepo.GetByOwnerAndID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		newBalance := account.Balance.Add(delta)
		now := uc.clock.Now()

		err = uc.accountRepo.UpdateBalance(ctx, ownerID, id, newBalance, account.Version, now)
		if err != nil {
			return err
		}

		account.Balance = newBalance
		account.Version++
		account.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// TotalBalance sums the balances of the owner's active accounts.
func (uc *AccountUseCase) TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	accounts, err := uc.accountRepo.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return total, nil
}
