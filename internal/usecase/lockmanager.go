package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/moneymanager/internal/domain"
)

// LockManager hands out exclusive per-account locks. Multi-account
// operations acquire their locks in ascending key order (DEADLOCK
// PREVENTION), and every acquisition is bounded by a timeout so a contended
// operation fails with domain.ErrConflict instead of blocking forever.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLockManager creates a new LockManager.
func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[string]chan struct{}),
	}
}

func (m *LockManager) lockChan(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		m.locks[key] = ch
	}

	return ch
}

// Acquire takes the locks for all keys, sorted ascending, within timeout.
// It returns a release function, or domain.ErrConflict if any lock could not
// be acquired in time. On failure nothing stays held.
func (m *LockManager) Acquire(ctx context.Context, timeout time.Duration, keys ...string) (func(), error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, key := range sorted {
		ch := m.lockChan(key)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-deadline.C:
			release()
			return nil, domain.ErrConflict
		case <-ctx.Done():
			release()
			return nil, domain.ErrConflict
		}
	}

	return release, nil
}
