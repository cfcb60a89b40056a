package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/models"
)

// ReviewService serves the review read paths. Mutations live on the
// RatingService so every write keeps the hotel aggregate in step.
type ReviewService struct {
	reviewsRepo models.ReviewsRepo
	cache       *cache.Cache
}

func NewReviewService(reviewsRepo models.ReviewsRepo, c *cache.Cache) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		cache:       c,
	}
}

func (rs *ReviewService) ListReviewsByHotel(ctx context.Context, hotelID uuid.UUID, offset, limit int) ([]*models.Review, int, error) {
	if hotelID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid hotel ID")
	}
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return rs.reviewsRepo.ListReviewsByHotel(ctx, hotelID, offset, limit)
}

func (rs *ReviewService) ListReviewsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Review, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("invalid customer ID")
	}
	return rs.reviewsRepo.ListReviewsByCustomer(ctx, customerID)
}
