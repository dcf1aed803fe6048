package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
)

// AccountRepository is an in-memory implementation of
// usecase.AccountRepository. Every conditional update runs under the store
// mutex, so the version check and the write are one step.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create stores a new account.
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *account
	r.accounts[account.ID] = &stored

	return nil
}

// GetByOwnerAndID returns the account if it exists and belongs to ownerID.
func (r *AccountRepository) GetByOwnerAndID(_ context.Context, ownerID, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.accounts[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, domain.ErrAccountNotFound
	}

	account := *stored

	return &account, nil
}

// ListByOwner returns all accounts of an owner, creation time ascending.
func (r *AccountRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Account, error) {
	return r.list(ownerID, false), nil
}

// ListActiveByOwner returns the owner's active accounts.
func (r *AccountRepository) ListActiveByOwner(_ context.Context, ownerID string) ([]*domain.Account, error) {
	return r.list(ownerID, true), nil
}

func (r *AccountRepository) list(ownerID string, activeOnly bool) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0)
	for _, stored := range r.accounts {
		if stored.OwnerID != ownerID {
			continue
		}
		if activeOnly && !stored.Active {
			continue
		}

		account := *stored
		accounts = append(accounts, &account)
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	return accounts
}

// Update overwrites account fields if the stored version still matches.
func (r *AccountRepository) Update(_ context.Context, account *domain.Account, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok || stored.OwnerID != account.OwnerID {
		return domain.ErrAccountNotFound
	}

	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}

	updated := *account
	updated.Version = expectedVersion + 1
	r.accounts[account.ID] = &updated

	return nil
}

// UpdateBalance writes the balance if the stored version still matches,
// bumping the version.
func (r *AccountRepository) UpdateBalance(_ context.Context, ownerID, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[id]
	if !ok || stored.OwnerID != ownerID {
		return domain.ErrAccountNotFound
	}

	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}

	stored.Balance = balance
	stored.Version++
	stored.UpdatedAt = updatedAt

	return nil
}
