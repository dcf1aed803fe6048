package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// EntryRepository is an in-memory implementation of usecase.EntryRepository.
// The tombstone filter is applied at this boundary so no caller can observe
// a deleted entry through a list, and UpdateIfEditable combines the
// edit-window check with the write under one mutex hold.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
}

// NewEntryRepository creates an empty in-memory entry store.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

// Create stores a new entry.
func (r *EntryRepository) Create(_ context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	r.entries[entry.ID] = &stored

	return nil
}

// FindByID returns the entry regardless of owner or tombstone state.
func (r *EntryRepository) FindByID(_ context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}

	entry := *stored

	return &entry, nil
}

// FindByOwner returns undeleted entries matching the filter, creation time
// ascending.
func (r *EntryRepository) FindByOwner(_ context.Context, ownerID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*domain.Entry, 0)
	for _, stored := range r.entries {
		if stored.OwnerID != ownerID || stored.Deleted {
			continue
		}
		if !matches(stored, filter) {
			continue
		}

		entry := *stored
		entries = append(entries, &entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}

func matches(entry *domain.Entry, filter usecase.EntryFilter) bool {
	if filter.Kind != "" && entry.Kind != filter.Kind {
		return false
	}
	if filter.Category != "" && entry.Category != filter.Category {
		return false
	}
	if filter.Division != "" && entry.Division != filter.Division {
		return false
	}
	if filter.From != nil && entry.OccurredAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && entry.OccurredAt.After(*filter.To) {
		return false
	}

	return true
}

// UpdateIfEditable applies the update only while the stored entry is alive
// and was created strictly after cutoff.
func (r *EntryRepository) UpdateIfEditable(_ context.Context, entry *domain.Entry, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok {
		return domain.ErrEntryNotFound
	}

	if stored.OwnerID != entry.OwnerID {
		return domain.ErrUnauthorized
	}

	if stored.Deleted {
		return domain.ErrEntryNotFound
	}

	if !stored.CreatedAt.After(cutoff) {
		return domain.ErrEditWindowExpired
	}

	stored.Description = entry.Description
	stored.Amount = entry.Amount
	stored.Category = entry.Category
	stored.Division = entry.Division
	stored.Notes = entry.Notes
	if !entry.OccurredAt.IsZero() {
		stored.OccurredAt = entry.OccurredAt
	}
	stored.UpdatedAt = entry.UpdatedAt

	return nil
}

// MarkDeleted sets the tombstone. Works at any age; terminal.
func (r *EntryRepository) MarkDeleted(_ context.Context, ownerID, id string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}

	if stored.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}

	if stored.Deleted {
		return domain.ErrEntryNotFound
	}

	at := deletedAt
	stored.Deleted = true
	stored.DeletedAt = &at
	stored.UpdatedAt = deletedAt

	return nil
}
