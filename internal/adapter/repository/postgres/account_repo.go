package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
)

// AccountRepository implements usecase.AccountRepository on PostgreSQL.
// Balance writes are guarded by the version column; the WHERE clause makes
// the compare and the write one statement.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, owner_id, name, type, bank_name, account_number, currency,
	balance, initial_balance, version, active, created_at, updated_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		account.ID, account.OwnerID, account.Name, account.Type,
		account.BankName, account.AccountNumber, account.Currency,
		decimalToNumeric(account.Balance), decimalToNumeric(account.InitialBalance),
		account.Version, account.Active,
		timeToPgTimestamptz(account.CreatedAt), timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByOwnerAndID retrieves an account scoped to its owner.
func (r *AccountRepository) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// ListByOwner lists all accounts of an owner, creation time ascending.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return r.listQuery(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at, id`,
		ownerID,
	)
}

// ListActiveByOwner lists the owner's active accounts.
func (r *AccountRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return r.listQuery(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1 AND active
		ORDER BY created_at, id`,
		ownerID,
	)
}

func (r *AccountRepository) listQuery(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update persists metadata and balance-override edits through a version
// check.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account, expectedVersion int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $3, bank_name = $4, account_number = $5, balance = $6,
			active = $7, version = version + 1, updated_at = $8
		WHERE id = $1 AND owner_id = $2 AND version = $9`,
		account.ID, account.OwnerID, account.Name, account.BankName,
		account.AccountNumber, decimalToNumeric(account.Balance),
		account.Active, timeToPgTimestamptz(account.UpdatedAt), expectedVersion,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, account.OwnerID, account.ID)
	}

	return nil
}

// UpdateBalance writes a new balance if the stored version still matches.
func (r *AccountRepository) UpdateBalance(ctx context.Context, ownerID, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET balance = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND owner_id = $2 AND version = $5`,
		id, ownerID, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt), expectedVersion,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, ownerID, id)
	}

	return nil
}

// classifyMiss distinguishes a vanished account from a version conflict
// after a conditional update touched zero rows.
func (r *AccountRepository) classifyMiss(ctx context.Context, ownerID, id string) error {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1 AND owner_id = $2)`,
		id, ownerID,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrAccountNotFound
	}

	return domain.ErrConflict
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account            domain.Account
		balance, initial   pgtype.Numeric
		createdAt, updated pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID, &account.OwnerID, &account.Name, &account.Type,
		&account.BankName, &account.AccountNumber, &account.Currency,
		&balance, &initial, &account.Version, &account.Active,
		&createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.InitialBalance = numericToDecimal(initial)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updated.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
