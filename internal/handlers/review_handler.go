package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

// UpsertReview lets a customer rate a hotel. PUT semantics: a repeat call by
// the same customer replaces their earlier review.
func UpsertReview(r *services.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var req struct {
			Rating  int    `json:"rating" binding:"required,min=1,max=5"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, err := r.UpsertReview(c.Request.Context(), hotelID, customerID, req.Rating, req.Comment)
		if err != nil {
			c.JSON(statusFromError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(review, "Review saved successfully"))
	}
}

// DeleteOwnReview removes the caller's review of the hotel.
func DeleteOwnReview(r *services.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		if err := r.DeleteReview(c.Request.Context(), hotelID, customerID); err != nil {
			c.JSON(statusFromError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "review deleted successfully"))
	}
}

// ModerateReview lets an admin remove any customer's review, adjusting the
// hotel's aggregate the same way a self-delete would.
func ModerateReview(r *services.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		customerID, ok := parseIDParam(c, "customer_id")
		if !ok {
			return
		}

		if err := r.DeleteReview(c.Request.Context(), hotelID, customerID); err != nil {
			c.JSON(statusFromError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "review removed"))
	}
}

func ListReviewsByHotel(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		reviews, total, err := r.ListReviewsByHotel(c.Request.Context(), hotelID, offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(reviews, page, limit, total))
	}
}

func ListOwnReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		reviews, err := r.ListReviewsByCustomer(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}
