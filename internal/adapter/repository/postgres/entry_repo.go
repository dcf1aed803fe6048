package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository on PostgreSQL. Deleted
// entries are filtered out in SQL on every list path, and the edit-window
// check rides in the UPDATE's WHERE clause so check and write are one
// statement.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, owner_id, kind, description, amount, category, division,
	account_id, notes, status, occurred_at, created_at, updated_at, is_deleted, deleted_at`

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		entry.ID, entry.OwnerID, entry.Kind, entry.Description,
		decimalToNumeric(entry.Amount), entry.Category, entry.Division,
		entry.AccountID, entry.Notes, entry.Status,
		timeToPgTimestamptz(entry.OccurredAt), timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt), entry.Deleted, nullableTime(entry.DeletedAt),
	)

	return err
}

// FindByID returns the entry regardless of owner or tombstone state.
func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM transactions
		WHERE id = $1`,
		id,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// FindByOwner returns undeleted entries matching the filter, creation time
// ascending.
func (r *EntryRepository) FindByOwner(ctx context.Context, ownerID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM transactions
		WHERE owner_id = $1 AND NOT is_deleted`
	args := []any{ownerID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Division != "" {
		args = append(args, filter.Division)
		query += fmt.Sprintf(" AND division = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, timeToPgTimestamptz(*filter.From))
		query += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, timeToPgTimestamptz(*filter.To))
		query += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	query += " ORDER BY created_at, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateIfEditable applies the update only when the row is alive and was
// created strictly after cutoff.
func (r *EntryRepository) UpdateIfEditable(ctx context.Context, entry *domain.Entry, cutoff time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET description = $3, amount = $4, category = $5, division = $6,
			notes = $7,
			occurred_at = CASE WHEN $8::timestamptz IS NULL THEN occurred_at ELSE $8 END,
			updated_at = $9
		WHERE id = $1 AND owner_id = $2 AND NOT is_deleted AND created_at > $10`,
		entry.ID, entry.OwnerID, entry.Description,
		decimalToNumeric(entry.Amount), entry.Category, entry.Division,
		entry.Notes, nullableZeroTime(entry.OccurredAt),
		timeToPgTimestamptz(entry.UpdatedAt), timeToPgTimestamptz(cutoff),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, entry.OwnerID, entry.ID)
	}

	return nil
}

// MarkDeleted sets the tombstone. Works at any age; terminal.
func (r *EntryRepository) MarkDeleted(ctx context.Context, ownerID, id string, deletedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET is_deleted = true, deleted_at = $3, updated_at = $3
		WHERE id = $1 AND owner_id = $2 AND NOT is_deleted`,
		id, ownerID, timeToPgTimestamptz(deletedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, ownerID, id)
	}

	return nil
}

// classifyMiss explains why a conditional update touched zero rows.
func (r *EntryRepository) classifyMiss(ctx context.Context, ownerID, id string) error {
	var (
		storedOwner string
		deleted     bool
	)

	err := r.pool.QueryRow(ctx, `
		SELECT owner_id, is_deleted FROM transactions WHERE id = $1`,
		id,
	).Scan(&storedOwner, &deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEntryNotFound
		}

		return err
	}

	if storedOwner != ownerID {
		return domain.ErrUnauthorized
	}

	if deleted {
		return domain.ErrEntryNotFound
	}

	return domain.ErrEditWindowExpired
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry              domain.Entry
		amount             pgtype.Numeric
		occurredAt         pgtype.Timestamptz
		createdAt, updated pgtype.Timestamptz
		deletedAt          pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID, &entry.OwnerID, &entry.Kind, &entry.Description,
		&amount, &entry.Category, &entry.Division,
		&entry.AccountID, &entry.Notes, &entry.Status,
		&occurredAt, &createdAt, &updated, &entry.Deleted, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.OccurredAt = occurredAt.Time
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updated.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		entry.DeletedAt = &t
	}

	return &entry, nil
}

func nullableTime(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func nullableZeroTime(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: t, Valid: true}
}
