package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/moneymanager/internal/domain"
)

// TransferRepository is an in-memory implementation of
// usecase.TransferRepository. Transfers are write-once.
type TransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer
}

// NewTransferRepository creates an empty in-memory transfer store.
func NewTransferRepository() *TransferRepository {
	return &TransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

// Create stores a new transfer record.
func (r *TransferRepository) Create(_ context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *transfer
	r.transfers[transfer.ID] = &stored

	return nil
}

// ListByOwner returns the owner's transfers, creation time ascending.
func (r *TransferRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Transfer, error) {
	return r.collect(func(t *domain.Transfer) bool {
		return t.OwnerID == ownerID
	}), nil
}

// ListByAccount returns transfers where the account is either side. The map
// iteration visits each transfer once, so the union is de-duplicated.
func (r *TransferRepository) ListByAccount(_ context.Context, accountID string) ([]*domain.Transfer, error) {
	return r.collect(func(t *domain.Transfer) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	}), nil
}

// ListByOwnerAndDateRange returns the owner's transfers with an occurrence
// time inside [from, to].
func (r *TransferRepository) ListByOwnerAndDateRange(_ context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error) {
	return r.collect(func(t *domain.Transfer) bool {
		return t.OwnerID == ownerID && !t.OccurredAt.Before(from) && !t.OccurredAt.After(to)
	}), nil
}

func (r *TransferRepository) collect(keep func(*domain.Transfer) bool) []*domain.Transfer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transfers := make([]*domain.Transfer, 0)
	for _, stored := range r.transfers {
		if !keep(stored) {
			continue
		}

		transfer := *stored
		transfers = append(transfers, &transfer)
	}

	sort.Slice(transfers, func(i, j int) bool {
		if transfers[i].CreatedAt.Equal(transfers[j].CreatedAt) {
			return transfers[i].ID < transfers[j].ID
		}
		return transfers[i].CreatedAt.Before(transfers[j].CreatedAt)
	})

	return transfers
}
