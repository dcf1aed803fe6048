package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/infrastructure/metrics"
)

// LedgerUseCase handles income/expense entries: creation, filtered reads,
// the bounded edit window and soft deletion.
type LedgerUseCase struct {
	entryRepo  EntryRepository
	idGen      IDGenerator
	clock      Clock
	editWindow time.Duration
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. Metrics may be nil.
func NewLedgerUseCase(entryRepo EntryRepository, idGen IDGenerator, clock Clock, editWindow time.Duration, m *metrics.Metrics) *LedgerUseCase {
	if editWindow <= 0 {
		editWindow = DefaultEditWindow
	}

	return &LedgerUseCase{
		entryRepo:  entryRepo,
		idGen:      idGen,
		clock:      clock,
		editWindow: editWindow,
		metrics:    m,
	}
}

// CreateEntryInput represents input for creating an entry.
type CreateEntryInput struct {
	Kind        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Division    string
	AccountID   string
	Notes       string
	OccurredAt  time.Time
}

// CreateEntry records a new income or expense entry.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, ownerID string, input CreateEntryInput) (*domain.Entry, error) {
	now := uc.clock.Now()

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	entry := &domain.Entry{
		ID:          uc.idGen.Generate(),
		OwnerID:     ownerID,
		Kind:        input.Kind,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Division:    input.Division,
		AccountID:   input.AccountID,
		Notes:       input.Notes,
		Status:      domain.StatusCompleted,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
		Deleted:     false,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return entry, nil
}

// GetEntry retrieves an entry by ID. A tombstoned entry is reported as not
// found; an entry owned by someone else reveals its existence with
// domain.ErrUnauthorized, matching the caller-facing contract.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.OwnerID != ownerID {
		return nil, domain.ErrUnauthorized
	}

	if entry.Deleted {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}

// ListEntries lists the owner's undeleted entries matching the filter,
// ordered by creation time ascending.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, ownerID string, filter EntryFilter) ([]*domain.Entry, error) {
	return uc.entryRepo.FindByOwner(ctx, ownerID, filter)
}

// UpdateEntryInput represents an owner edit of an entry.
type UpdateEntryInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Division    string
	Notes       string
	OccurredAt  time.Time
}

// UpdateEntry modifies an entry while its edit window is still open. The
// window check and the write happen as one conditional repository update, so
// an edit racing the deadline cannot slip through after it.
func (uc *LedgerUseCase) UpdateEntry(ctx context.Context, ownerID, id string, input UpdateEntryInput) (*domain.Entry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()

	entry := &domain.Entry{
		ID:          id,
		OwnerID:     ownerID,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Division:    input.Division,
		Notes:       input.Notes,
		OccurredAt:  input.OccurredAt,
		UpdatedAt:   now,
	}

	// Entries created at or before the cutoff are locked.
	cutoff := now.Add(-uc.editWindow)

	if err := uc.entryRepo.UpdateIfEditable(ctx, entry, cutoff); err != nil {
		return nil, err
	}

	return uc.entryRepo.FindByID(ctx, id)
}

// DeleteEntry soft-deletes an entry. Deletion is unconditional and terminal:
// it succeeds even after the edit window has closed, and the tombstone is
// excluded from every read path afterwards.
func (uc *LedgerUseCase) DeleteEntry(ctx context.Context, ownerID, id string) error {
	if err := uc.entryRepo.MarkDeleted(ctx, ownerID, id, uc.clock.Now()); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// EditWindow returns the configured edit window.
func (uc *LedgerUseCase) EditWindow() time.Duration {
	return uc.editWindow
}
