package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/store"
)

// RatingService owns every review mutation. A hotel's avg_rating and
// review_count are never recomputed by scanning the reviews collection; each
// mutation reconstructs the running total from the stored aggregate and
// adjusts it inside the same transaction that writes the review.
type RatingService struct {
	store       store.Store
	cache       *cache.Cache
	maxAttempts int
}

func NewRatingService(st store.Store, c *cache.Cache) *RatingService {
	return &RatingService{
		store:       st,
		cache:       c,
		maxAttempts: store.DefaultMaxAttempts,
	}
}

// UpsertReview creates the customer's review of the hotel, or replaces it if
// one already exists, keeping the hotel's aggregate in step. The whole
// read-compute-write runs in one transaction and is retried on conflict.
func (rs *RatingService) UpsertReview(ctx context.Context, hotelID, customerID uuid.UUID, rating int, comment string) (*models.Review, error) {
	review := &models.Review{
		HotelID:    hotelID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
	}
	review.Sanitize()
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}

	err := store.WithRetry(ctx, rs.maxAttempts, func(ctx context.Context) error {
		return rs.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
			hotel, err := tx.GetHotel(ctx, hotelID)
			if err != nil {
				return err
			}

			currentTotal := hotel.AvgRating * float64(hotel.ReviewCount)
			newCount := hotel.ReviewCount

			now := time.Now()
			existing, err := tx.GetReview(ctx, hotelID, customerID)
			switch {
			case err == nil:
				// Edit: swap the old rating out of the total.
				currentTotal += float64(rating) - float64(existing.Rating)
				review.CreatedAt = existing.CreatedAt
			case errors.Is(err, store.ErrNotFound):
				currentTotal += float64(rating)
				newCount++
				review.CreatedAt = now
			default:
				return err
			}
			review.UpdatedAt = now

			if err := tx.PutReview(ctx, review); err != nil {
				return err
			}
			return tx.UpdateHotelRating(ctx, hotelID, currentTotal/float64(newCount), newCount)
		})
	})
	if err != nil {
		return nil, err
	}

	rs.invalidate(ctx, hotelID)
	return review, nil
}

// DeleteReview removes the customer's review and deducts its rating from the
// hotel's aggregate. Deleting the last review resets the aggregate to (0, 0).
func (rs *RatingService) DeleteReview(ctx context.Context, hotelID, customerID uuid.UUID) error {
	if hotelID == uuid.Nil || customerID == uuid.Nil {
		return fmt.Errorf("invalid hotel or customer ID")
	}

	err := store.WithRetry(ctx, rs.maxAttempts, func(ctx context.Context) error {
		return rs.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
			hotel, err := tx.GetHotel(ctx, hotelID)
			if err != nil {
				return err
			}

			existing, err := tx.GetReview(ctx, hotelID, customerID)
			if err != nil {
				return err
			}

			var avg float64
			var count int
			if hotel.ReviewCount <= 1 {
				avg, count = 0, 0
			} else {
				total := hotel.AvgRating*float64(hotel.ReviewCount) - float64(existing.Rating)
				count = hotel.ReviewCount - 1
				avg = total / float64(count)
			}

			if err := tx.DeleteReview(ctx, hotelID, customerID); err != nil {
				return err
			}
			return tx.UpdateHotelRating(ctx, hotelID, avg, count)
		})
	})
	if err != nil {
		return err
	}

	rs.invalidate(ctx, hotelID)
	return nil
}

func (rs *RatingService) invalidate(ctx context.Context, hotelID uuid.UUID) {
	if rs.cache == nil {
		return
	}
	rs.cache.Del(ctx, cache.HotelKey(hotelID), cache.HotelReviewsKey(hotelID))
}
