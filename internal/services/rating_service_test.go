package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/store"
)

func newRatingFixture(t *testing.T) (*RatingService, *store.MemStore, uuid.UUID) {
	t.Helper()
	m := store.NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID, Name: "Test Hotel"})
	return NewRatingService(m, nil), m, hotelID
}

func assertAggregate(t *testing.T, m *store.MemStore, hotelID uuid.UUID, wantAvg float64, wantCount int) {
	t.Helper()
	h, ok := m.Hotel(hotelID)
	if !ok {
		t.Fatal("hotel not found")
	}
	if math.Abs(h.AvgRating-wantAvg) > 1e-9 || h.ReviewCount != wantCount {
		t.Fatalf("aggregate = (%v, %d), want (%v, %d)", h.AvgRating, h.ReviewCount, wantAvg, wantCount)
	}
}

func TestUpsertReviewLifecycle(t *testing.T) {
	svc, m, hotelID := newRatingFixture(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	// First review sets the average outright.
	if _, err := svc.UpsertReview(ctx, hotelID, alice, 4, "nice stay"); err != nil {
		t.Fatalf("alice rates 4: %v", err)
	}
	assertAggregate(t, m, hotelID, 4, 1)

	// Second customer pulls the average down.
	if _, err := svc.UpsertReview(ctx, hotelID, bob, 2, "noisy"); err != nil {
		t.Fatalf("bob rates 2: %v", err)
	}
	assertAggregate(t, m, hotelID, 3, 2)

	// Editing replaces the old rating without changing the count.
	if _, err := svc.UpsertReview(ctx, hotelID, alice, 5, "even better"); err != nil {
		t.Fatalf("alice edits to 5: %v", err)
	}
	assertAggregate(t, m, hotelID, 3.5, 2)

	if got := len(m.Reviews(hotelID)); got != 2 {
		t.Errorf("expected 2 stored reviews, got %d", got)
	}

	// Deleting bob's review leaves alice's alone.
	if err := svc.DeleteReview(ctx, hotelID, bob); err != nil {
		t.Fatalf("delete bob: %v", err)
	}
	assertAggregate(t, m, hotelID, 5, 1)

	// Deleting the last review resets the aggregate.
	if err := svc.DeleteReview(ctx, hotelID, alice); err != nil {
		t.Fatalf("delete alice: %v", err)
	}
	assertAggregate(t, m, hotelID, 0, 0)
}

func TestUpsertReviewRejectsBadRating(t *testing.T) {
	svc, _, hotelID := newRatingFixture(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.UpsertReview(ctx, hotelID, uuid.New(), rating, ""); err == nil {
			t.Errorf("rating %d accepted, want error", rating)
		}
	}
}

func TestUpsertReviewMissingHotel(t *testing.T) {
	svc := NewRatingService(store.NewMemStore(), nil)

	_, err := svc.UpsertReview(context.Background(), uuid.New(), uuid.New(), 3, "")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReviewMissingReview(t *testing.T) {
	svc, _, hotelID := newRatingFixture(t)

	err := svc.DeleteReview(context.Background(), hotelID, uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertReviewRetriesConflicts(t *testing.T) {
	svc, m, hotelID := newRatingFixture(t)
	m.ForceConflicts(2)

	if _, err := svc.UpsertReview(context.Background(), hotelID, uuid.New(), 4, ""); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	assertAggregate(t, m, hotelID, 4, 1)
}

func TestUpsertReviewGivesUpAfterBudget(t *testing.T) {
	svc, m, hotelID := newRatingFixture(t)
	m.ForceConflicts(store.DefaultMaxAttempts)

	_, err := svc.UpsertReview(context.Background(), hotelID, uuid.New(), 4, "")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausted budget, got %v", err)
	}
}

// The aggregate must always equal the mean of the stored reviews, whatever
// the order of upserts and deletes.
func TestAggregateMatchesStoredReviews(t *testing.T) {
	svc, m, hotelID := newRatingFixture(t)
	ctx := context.Background()

	customers := make([]uuid.UUID, 5)
	for i := range customers {
		customers[i] = uuid.New()
	}

	steps := []struct {
		customer int
		rating   int // 0 means delete
	}{
		{0, 5}, {1, 3}, {2, 1}, {0, 2}, {3, 4},
		{1, 0}, {4, 5}, {2, 0}, {2, 3}, {0, 0},
	}

	for i, s := range steps {
		var err error
		if s.rating == 0 {
			err = svc.DeleteReview(ctx, hotelID, customers[s.customer])
		} else {
			_, err = svc.UpsertReview(ctx, hotelID, customers[s.customer], s.rating, "")
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		reviews := m.Reviews(hotelID)
		var sum float64
		for _, r := range reviews {
			sum += float64(r.Rating)
		}
		wantAvg := 0.0
		if len(reviews) > 0 {
			wantAvg = sum / float64(len(reviews))
		}
		assertAggregate(t, m, hotelID, wantAvg, len(reviews))
	}
}
