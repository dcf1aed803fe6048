package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneymanager/internal/domain"
)

// TransferRepository implements usecase.TransferRepository on PostgreSQL.
// Transfers are write-once; there are no UPDATE statements here.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `id, owner_id, from_account_id, to_account_id, amount,
	description, reference, status, occurred_at, created_at`

// Create creates a new transfer record.
func (r *TransferRepository) Create(ctx context.Context, transfer *domain.Transfer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		transfer.ID, transfer.OwnerID, transfer.FromAccountID, transfer.ToAccountID,
		decimalToNumeric(transfer.Amount), transfer.Description, transfer.Reference,
		transfer.Status, timeToPgTimestamptz(transfer.OccurredAt),
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// ListByOwner lists the owner's transfers, creation time ascending.
func (r *TransferRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transfer, error) {
	return r.listQuery(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
}

// ListByAccount lists transfers where the account is either side. A single
// OR predicate returns each row once, so the union is de-duplicated.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transfer, error) {
	return r.listQuery(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at, id`,
		accountID,
	)
}

// ListByOwnerAndDateRange lists the owner's transfers inside [from, to].
func (r *TransferRepository) ListByOwnerAndDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error) {
	return r.listQuery(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE owner_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY created_at, id`,
		ownerID, timeToPgTimestamptz(from), timeToPgTimestamptz(to),
	)
}

func (r *TransferRepository) listQuery(ctx context.Context, query string, args ...any) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]*domain.Transfer, 0)
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer   domain.Transfer
		amount     pgtype.Numeric
		occurredAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&transfer.ID, &transfer.OwnerID, &transfer.FromAccountID, &transfer.ToAccountID,
		&amount, &transfer.Description, &transfer.Reference, &transfer.Status,
		&occurredAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.OccurredAt = occurredAt.Time
	transfer.CreatedAt = createdAt.Time

	return &transfer, nil
}
