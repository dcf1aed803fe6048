package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/infrastructure/metrics"
)

// TransferUseCase atomically moves funds between two accounts owned by the
// same caller. The debit, the credit and the transfer record behave as one
// unit: locks on both accounts are taken in ascending ID order before any
// mutation, and a failure after the debit re-credits the source account.
type TransferUseCase struct {
	accounts     *AccountUseCase
	transferRepo TransferRepository
	locks        *LockManager
	idGen        IDGenerator
	refGen       ReferenceGenerator
	clock        Clock
	metrics      *metrics.Metrics
	lockTimeout  time.Duration
}

// NewTransferUseCase creates a new TransferUseCase. Metrics may be nil.
func NewTransferUseCase(
	accounts *AccountUseCase,
	transferRepo TransferRepository,
	locks *LockManager,
	idGen IDGenerator,
	refGen ReferenceGenerator,
	clock Clock,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		accounts:     accounts,
		transferRepo: transferRepo,
		locks:        locks,
		idGen:        idGen,
		refGen:       refGen,
		clock:        clock,
		metrics:      m,
		lockTimeout:  DefaultLockTimeout,
	}
}

// SetLockTimeout overrides how long a transfer waits for its account locks.
// Non-positive values are ignored.
func (uc *TransferUseCase) SetLockTimeout(d time.Duration) {
	if d > 0 {
		uc.lockTimeout = d
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	OccurredAt    *time.Time
}

// CreateTransfer moves Amount from one account to another. No state is
// mutated on any rejection path.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, ownerID string, input CreateTransferInput) (*domain.Transfer, error) {
	now := uc.clock.Now()

	occurredAt := now
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		OwnerID:       ownerID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Description:   input.Description,
		Reference:     uc.refGen.Generate(),
		Status:        domain.StatusCompleted,
		OccurredAt:    occurredAt,
		CreatedAt:     now,
	}

	if err := transfer.Validate(); err != nil {
		uc.countError(err)
		return nil, err
	}

	// Both account locks, ascending ID order, bounded wait.
	release, err := uc.locks.Acquire(ctx, uc.lockTimeout, input.FromAccountID, input.ToAccountID)
	if err != nil {
		uc.countError(err)
		return nil, err
	}
	defer release()

	from, err := uc.accounts.GetAccount(ctx, ownerID, input.FromAccountID)
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	if _, err := uc.accounts.GetAccount(ctx, ownerID, input.ToAccountID); err != nil {
		uc.countError(err)
		return nil, err
	}

	if !from.CanDebit(input.Amount) {
		uc.countError(domain.ErrInsufficientFunds)
		return nil, domain.ErrInsufficientFunds
	}

	if _, err := uc.accounts.adjustLocked(ctx, ownerID, input.FromAccountID, input.Amount.Neg()); err != nil {
		uc.countError(err)
		return nil, err
	}

	if _, err := uc.accounts.adjustLocked(ctx, ownerID, input.ToAccountID, input.Amount); err != nil {
		uc.compensate(ctx, ownerID, input.FromAccountID, input.Amount)
		uc.countError(err)

		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, transfer); err != nil {
		uc.compensate(ctx, ownerID, input.ToAccountID, input.Amount.Neg())
		uc.compensate(ctx, ownerID, input.FromAccountID, input.Amount)
		uc.countError(err)

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
	}

	return transfer, nil
}

// compensate undoes a balance mutation after a later step in the transfer
// failed. The caller still holds both account locks.
func (uc *TransferUseCase) compensate(ctx context.Context, ownerID, accountID string, delta decimal.Decimal) {
	if _, err := uc.accounts.adjustLocked(ctx, ownerID, accountID, delta); err != nil {
		log.Error().
			Err(err).
			Str("account_id", accountID).
			Msg("failed to compensate balance after aborted transfer")
	}
}

func (uc *TransferUseCase) countError(err error) {
	if uc.metrics != nil {
		uc.metrics.TransferErrors.WithLabelValues(err.Error()).Inc()
	}
}

// ListTransfersByUser lists the owner's transfers, creation time ascending.
func (uc *TransferUseCase) ListTransfersByUser(ctx context.Context, ownerID string) ([]*domain.Transfer, error) {
	return uc.transferRepo.ListByOwner(ctx, ownerID)
}

// ListTransfersByAccount lists transfers touching the account on either
// side, de-duplicated.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, accountID string) ([]*domain.Transfer, error) {
	return uc.transferRepo.ListByAccount(ctx, accountID)
}

// ListTransfersByDateRange lists the owner's transfers inside [from, to].
func (uc *TransferUseCase) ListTransfersByDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error) {
	return uc.transferRepo.ListByOwnerAndDateRange(ctx, ownerID, from, to)
}
