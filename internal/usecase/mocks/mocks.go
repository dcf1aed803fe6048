package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Each method delegates to its Func field when set; otherwise a map-backed
// default keeps enough state for happy-path tests.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByOwnerAndIDFunc   func(ctx context.Context, ownerID, id string) (*domain.Account, error)
	ListByOwnerFunc       func(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListActiveByOwnerFunc func(ctx context.Context, ownerID string) ([]*domain.Account, error)
	UpdateFunc            func(ctx context.Context, account *domain.Account, expectedVersion int64) error
	UpdateBalanceFunc     func(ctx context.Context, ownerID, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	if m.GetByOwnerAndIDFunc != nil {
		return m.GetByOwnerAndIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.OwnerID == ownerID {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return m.list(ownerID, false), nil
}

func (m *MockAccountRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if m.ListActiveByOwnerFunc != nil {
		return m.ListActiveByOwnerFunc(ctx, ownerID)
	}
	return m.list(ownerID, true), nil
}

func (m *MockAccountRepository) list(ownerID string, activeOnly bool) []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.OwnerID != ownerID {
			continue
		}
		if activeOnly && !acc.Active {
			continue
		}
		cp := *acc
		accounts = append(accounts, &cp)
	}
	return accounts
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account, expectedVersion int64) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account, expectedVersion)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.ID]
	if !ok || stored.OwnerID != account.OwnerID {
		return domain.ErrAccountNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	cp := *account
	cp.Version = expectedVersion + 1
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, ownerID, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, ownerID, id, balance, expectedVersion, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[id]
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

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc           func(ctx context.Context, entry *domain.Entry) error
	FindByIDFunc         func(ctx context.Context, id string) (*domain.Entry, error)
	FindByOwnerFunc      func(ctx context.Context, ownerID string, filter usecase.EntryFilter) ([]*domain.Entry, error)
	UpdateIfEditableFunc func(ctx context.Context, entry *domain.Entry, cutoff time.Time) error
	MarkDeletedFunc      func(ctx context.Context, ownerID, id string, deletedAt time.Time) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) FindByOwner(ctx context.Context, ownerID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.OwnerID != ownerID || e.Deleted {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Division != "" && e.Division != filter.Division {
			continue
		}
		if filter.From != nil && e.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.OccurredAt.After(*filter.To) {
			continue
		}
		cp := *e
		entries = append(entries, &cp)
	}
	return entries, nil
}

func (m *MockEntryRepository) UpdateIfEditable(ctx context.Context, entry *domain.Entry, cutoff time.Time) error {
	if m.UpdateIfEditableFunc != nil {
		return m.UpdateIfEditableFunc(ctx, entry, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.entries[entry.ID]
	if !ok || stored.Deleted {
		return domain.ErrEntryNotFound
	}
	if stored.OwnerID != entry.OwnerID {
		return domain.ErrUnauthorized
	}
	if !stored.CreatedAt.After(cutoff) {
		return domain.ErrEditWindowExpired
	}
	cp := *entry
	cp.CreatedAt = stored.CreatedAt
	m.entries[entry.ID] = &cp
	return nil
}

func (m *MockEntryRepository) MarkDeleted(ctx context.Context, ownerID, id string, deletedAt time.Time) error {
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, ownerID, id, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.entries[id]
	if !ok || stored.Deleted {
		return domain.ErrEntryNotFound
	}
	if stored.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}
	stored.Deleted = true
	stored.DeletedAt = &deletedAt
	return nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc                  func(ctx context.Context, transfer *domain.Transfer) error
	ListByOwnerFunc             func(ctx context.Context, ownerID string) ([]*domain.Transfer, error)
	ListByAccountFunc           func(ctx context.Context, accountID string) ([]*domain.Transfer, error)
	ListByOwnerAndDateRangeFunc func(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *transfer
	m.transfers[transfer.ID] = &cp
	return nil
}

func (m *MockTransferRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transfer, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return m.collect(func(t *domain.Transfer) bool { return t.OwnerID == ownerID }), nil
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	return m.collect(func(t *domain.Transfer) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	}), nil
}

func (m *MockTransferRepository) ListByOwnerAndDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error) {
	if m.ListByOwnerAndDateRangeFunc != nil {
		return m.ListByOwnerAndDateRangeFunc(ctx, ownerID, from, to)
	}
	return m.collect(func(t *domain.Transfer) bool {
		return t.OwnerID == ownerID && !t.OccurredAt.Before(from) && !t.OccurredAt.After(to)
	}), nil
}

func (m *MockTransferRepository) collect(keep func(*domain.Transfer) bool) []*domain.Transfer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if keep(t) {
			cp := *t
			transfers = append(transfers, &cp)
		}
	}
	return transfers
}

// MockIDGenerator returns IDs from a fixed sequence, falling back to a
// counter-derived value when exhausted.
type MockIDGenerator struct {
	mu  sync.Mutex
	ids []string
	n   int

	GenerateFunc func() string
}

func NewMockIDGenerator(ids ...string) *MockIDGenerator {
	return &MockIDGenerator{ids: ids}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	if m.n <= len(m.ids) {
		return m.ids[m.n-1]
	}
	return fmt.Sprintf("id-%04d", m.n)
}

// MockClock returns a settable fixed time.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
