package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/moneymanager/internal/domain"
)

func TestRetrier_SucceedsFirstTry(t *testing.T) {
	r := NewRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetrier_RetriesConflict(t *testing.T) {
	r := NewRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return domain.ErrConflict
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetrier_ExhaustionSurfacesConflict(t *testing.T) {
	r := NewRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return domain.ErrConflict
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict after exhaustion, got %v", err)
	}
	if calls != maxBalanceRetries+1 {
		t.Errorf("expected %d calls, got %d", maxBalanceRetries+1, calls)
	}
}

func TestRetrier_OtherErrorsArePermanent(t *testing.T) {
	r := NewRetrier()

	bang := errors.New("disk on fire")
	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return bang
	})
	if !errors.Is(err, bang) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retry of a permanent error, got %d calls", calls)
	}
}

func TestRetrier_CanceledContextStopsRetrying(t *testing.T) {
	r := NewRetrier()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := r.Retry(ctx, func() error {
		calls++
		cancel()
		return domain.ErrConflict
	})
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if calls != 1 {
		t.Errorf("expected retrying to stop after cancel, got %d calls", calls)
	}
}
