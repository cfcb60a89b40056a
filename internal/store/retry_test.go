package store

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetryReturnsNilOnSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := WithRetry(context.Background(), 5, func(ctx context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryRetriesConflicts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 5, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryExhaustsBudget(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 4, func(ctx context.Context) error {
		calls++
		return ErrConflict
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausting retries, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestWithRetryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, 5, func(ctx context.Context) error {
		return ErrConflict
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithRetryClampsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 0, func(ctx context.Context) error {
		calls++
		return ErrConflict
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call with clamped budget, got %d", calls)
	}
}
