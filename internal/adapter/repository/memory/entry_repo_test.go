package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

func seedEntry(t *testing.T, repo *EntryRepository, id, owner, kind, category string, occurredAt time.Time) *domain.Entry {
	t.Helper()

	entry := &domain.Entry{
		ID:         id,
		OwnerID:    owner,
		Kind:       kind,
		Amount:     decimal.NewFromInt(10),
		Category:   category,
		Status:     domain.StatusCompleted,
		OccurredAt: occurredAt,
		CreatedAt:  occurredAt,
		UpdatedAt:  occurredAt,
	}
	require.NoError(t, repo.Create(context.Background(), entry))

	return entry
}

func TestEntryRepository_FindByOwner_ExcludesDeleted(t *testing.T) {
	repo := NewEntryRepository()
	now := time.Now().UTC()

	seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)
	seedEntry(t, repo, "txn-2", "user-1", domain.KindExpense, "Dining", now)
	require.NoError(t, repo.MarkDeleted(context.Background(), "user-1", "txn-2", now))

	entries, err := repo.FindByOwner(context.Background(), "user-1", usecase.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "txn-1", entries[0].ID)

	// FindByID still sees the tombstone; policy sits in the use case.
	tombstone, err := repo.FindByID(context.Background(), "txn-2")
	require.NoError(t, err)
	require.True(t, tombstone.Deleted)
	require.NotNil(t, tombstone.DeletedAt)
}

func TestEntryRepository_FindByOwner_DateRangeInclusive(t *testing.T) {
	repo := NewEntryRepository()

	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 30, 23, 59, 59, 0, time.UTC)

	seedEntry(t, repo, "txn-start", "user-1", domain.KindExpense, "A", from)
	seedEntry(t, repo, "txn-end", "user-1", domain.KindExpense, "B", to)
	seedEntry(t, repo, "txn-before", "user-1", domain.KindExpense, "C", from.Add(-time.Second))
	seedEntry(t, repo, "txn-after", "user-1", domain.KindExpense, "D", to.Add(time.Second))

	entries, err := repo.FindByOwner(context.Background(), "user-1", usecase.EntryFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestEntryRepository_UpdateIfEditable(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		setup       func(t *testing.T, repo *EntryRepository)
		entry       *domain.Entry
		cutoff      time.Time
		expectedErr error
	}{
		{
			name: "inside window",
			setup: func(t *testing.T, repo *EntryRepository) {
				seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)
			},
			entry:  &domain.Entry{ID: "txn-1", OwnerID: "user-1", Amount: decimal.NewFromInt(25), Category: "Dining", UpdatedAt: now},
			cutoff: now.Add(-time.Hour),
		},
		{
			name: "created exactly at cutoff is locked",
			setup: func(t *testing.T, repo *EntryRepository) {
				seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)
			},
			entry:       &domain.Entry{ID: "txn-1", OwnerID: "user-1", Amount: decimal.NewFromInt(25)},
			cutoff:      now,
			expectedErr: domain.ErrEditWindowExpired,
		},
		{
			name:        "missing entry",
			setup:       func(t *testing.T, repo *EntryRepository) {},
			entry:       &domain.Entry{ID: "ghost", OwnerID: "user-1", Amount: decimal.NewFromInt(25)},
			cutoff:      now.Add(-time.Hour),
			expectedErr: domain.ErrEntryNotFound,
		},
		{
			name: "foreign owner",
			setup: func(t *testing.T, repo *EntryRepository) {
				seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)
			},
			entry:       &domain.Entry{ID: "txn-1", OwnerID: "user-2", Amount: decimal.NewFromInt(25)},
			cutoff:      now.Add(-time.Hour),
			expectedErr: domain.ErrUnauthorized,
		},
		{
			name: "deleted entry",
			setup: func(t *testing.T, repo *EntryRepository) {
				seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)
				require.NoError(t, repo.MarkDeleted(context.Background(), "user-1", "txn-1", now))
			},
			entry:       &domain.Entry{ID: "txn-1", OwnerID: "user-1", Amount: decimal.NewFromInt(25)},
			cutoff:      now.Add(-time.Hour),
			expectedErr: domain.ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewEntryRepository()
			tt.setup(t, repo)

			err := repo.UpdateIfEditable(context.Background(), tt.entry, tt.cutoff)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)

			got, err := repo.FindByID(context.Background(), tt.entry.ID)
			require.NoError(t, err)
			require.True(t, got.Amount.Equal(decimal.NewFromInt(25)))
			require.Equal(t, "Dining", got.Category)
		})
	}
}

func TestEntryRepository_UpdateIfEditable_KeepsOccurredAtWhenZero(t *testing.T) {
	repo := NewEntryRepository()
	occurred := time.Date(2025, time.April, 10, 8, 0, 0, 0, time.UTC)
	seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", occurred)

	err := repo.UpdateIfEditable(context.Background(), &domain.Entry{
		ID:      "txn-1",
		OwnerID: "user-1",
		Amount:  decimal.NewFromInt(25),
	}, occurred.Add(-time.Hour))
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), "txn-1")
	require.NoError(t, err)
	require.True(t, got.OccurredAt.Equal(occurred))
}

func TestEntryRepository_MarkDeleted_Terminal(t *testing.T) {
	repo := NewEntryRepository()
	now := time.Now().UTC()
	seedEntry(t, repo, "txn-1", "user-1", domain.KindExpense, "Groceries", now)

	require.ErrorIs(t, repo.MarkDeleted(context.Background(), "user-2", "txn-1", now), domain.ErrUnauthorized)
	require.NoError(t, repo.MarkDeleted(context.Background(), "user-1", "txn-1", now))
	require.ErrorIs(t, repo.MarkDeleted(context.Background(), "user-1", "txn-1", now), domain.ErrEntryNotFound)
}
