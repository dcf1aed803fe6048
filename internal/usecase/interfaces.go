package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
)

// EntryFilter narrows entry listings. Zero-valued fields are ignored.
// Deleted entries are excluded by every implementation regardless of filter.
type EntryFilter struct {
	Kind     string
	Category string
	Division string
	From     *time.Time
	To       *time.Time
}

// AccountRepository defines data access for accounts.
//
// All operations are plain CRUD scoped by owner; UpdateBalance and Update are
// conditional on the account version so that concurrent writers cannot
// silently overwrite each other.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByOwnerAndID(ctx context.Context, ownerID, id string) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	// Update persists metadata and balance-override edits. Fails with
	// domain.ErrConflict when expectedVersion no longer matches.
	Update(ctx context.Context, account *domain.Account, expectedVersion int64) error
	// UpdateBalance writes a new balance if the stored version still equals
	// expectedVersion, bumping the version. Fails with domain.ErrConflict on
	// version mismatch and domain.ErrAccountNotFound if the row vanished.
	UpdateBalance(ctx context.Context, ownerID, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	// FindByID returns the entry regardless of owner or tombstone state;
	// ownership and deletion policy live in the use case.
	FindByID(ctx context.Context, id string) (*domain.Entry, error)
	// FindByOwner returns undeleted entries matching the filter, ordered by
	// creation time ascending.
	FindByOwner(ctx context.Context, ownerID string, filter EntryFilter) ([]*domain.Entry, error)
	// UpdateIfEditable applies the update only when the stored entry is not
	// deleted and was created strictly after cutoff. The check and the write
	// are one atomic step. Fails with domain.ErrEditWindowExpired when the
	// window has closed, domain.ErrEntryNotFound when absent or deleted, and
	// domain.ErrUnauthorized on owner mismatch.
	UpdateIfEditable(ctx context.Context, entry *domain.Entry, cutoff time.Time) error
	// MarkDeleted sets the tombstone. Permitted at any time; terminal.
	MarkDeleted(ctx context.Context, ownerID, id string, deletedAt time.Time) error
}

// TransferRepository defines data access for transfers. Transfers are
// write-once; there is no update operation.
type TransferRepository interface {
	Create(ctx context.Context, transfer *domain.Transfer) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transfer, error)
	// ListByAccount returns the union of outgoing and incoming transfers for
	// the account, de-duplicated, ordered by creation time ascending.
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transfer, error)
	ListByOwnerAndDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error)
}

// IDGenerator generates unique entity IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator generates opaque transfer reference tokens.
type ReferenceGenerator interface {
	Generate() string
}

// Clock abstracts time.Now for edit-window and timestamp tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
