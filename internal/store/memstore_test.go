package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
)

func TestMemStoreCommitsBufferedWrites(t *testing.T) {
	m := NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	err := m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		if _, err := tx.GetHotel(ctx, hotelID); err != nil {
			return err
		}
		return tx.UpdateHotelRating(ctx, hotelID, 4.5, 2)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	h, ok := m.Hotel(hotelID)
	if !ok {
		t.Fatal("hotel disappeared")
	}
	if h.AvgRating != 4.5 || h.ReviewCount != 2 {
		t.Errorf("got avg=%v count=%d, want avg=4.5 count=2", h.AvgRating, h.ReviewCount)
	}
}

func TestMemStoreFailedBodyLeavesNoWrites(t *testing.T) {
	m := NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID, AvgRating: 3, ReviewCount: 1})

	boom := errors.New("boom")
	err := m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		if err := tx.UpdateHotelRating(ctx, hotelID, 1, 1); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	h, _ := m.Hotel(hotelID)
	if h.AvgRating != 3 || h.ReviewCount != 1 {
		t.Errorf("writes leaked from aborted transaction: avg=%v count=%d", h.AvgRating, h.ReviewCount)
	}
}

func TestMemStoreDetectsInterleavedWrite(t *testing.T) {
	m := NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	err := m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		if _, err := tx.GetHotel(ctx, hotelID); err != nil {
			return err
		}
		// Another writer touches the hotel between our read and commit.
		m.SeedHotel(models.Hotel{ID: hotelID, ReviewCount: 7})
		return tx.UpdateHotelRating(ctx, hotelID, 5, 1)
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	h, _ := m.Hotel(hotelID)
	if h.ReviewCount != 7 {
		t.Errorf("conflicting transaction overwrote the interleaved write: count=%d", h.ReviewCount)
	}
}

func TestMemStoreMissingDocuments(t *testing.T) {
	m := NewMemStore()

	err := m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		_, err := tx.GetHotel(ctx, uuid.New())
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing hotel: expected ErrNotFound, got %v", err)
	}

	err = m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		_, err := tx.GetReview(ctx, uuid.New(), uuid.New())
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing review: expected ErrNotFound, got %v", err)
	}

	err = m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		_, err := tx.GetRoom(ctx, uuid.New())
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing room: expected ErrNotFound, got %v", err)
	}
}

func TestMemStoreForcedConflicts(t *testing.T) {
	m := NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})
	m.ForceConflicts(2)

	run := func() error {
		return m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
			if _, err := tx.GetHotel(ctx, hotelID); err != nil {
				return err
			}
			return tx.UpdateHotelRating(ctx, hotelID, 1, 1)
		})
	}

	if err := run(); !errors.Is(err, ErrConflict) {
		t.Fatalf("first commit: expected forced conflict, got %v", err)
	}
	if err := run(); !errors.Is(err, ErrConflict) {
		t.Fatalf("second commit: expected forced conflict, got %v", err)
	}
	if err := run(); err != nil {
		t.Fatalf("third commit should succeed, got %v", err)
	}
}

func TestMemStoreReviewRoundTrip(t *testing.T) {
	m := NewMemStore()
	hotelID := uuid.New()
	customerID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	err := m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.PutReview(ctx, &models.Review{HotelID: hotelID, CustomerID: customerID, Rating: 4})
	})
	if err != nil {
		t.Fatalf("put review: %v", err)
	}

	err = m.RunTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		r, err := tx.GetReview(ctx, hotelID, customerID)
		if err != nil {
			return err
		}
		if r.Rating != 4 {
			t.Errorf("got rating %d, want 4", r.Rating)
		}
		return tx.DeleteReview(ctx, hotelID, customerID)
	})
	if err != nil {
		t.Fatalf("get/delete review: %v", err)
	}

	if got := len(m.Reviews(hotelID)); got != 0 {
		t.Errorf("expected no reviews after delete, got %d", got)
	}
}
