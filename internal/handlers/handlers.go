package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/helpers"
	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/store"
)

// claimsFrom pulls the authenticated user's claims set by AuthMiddleware.
func claimsFrom(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := v.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}

// callerID parses the user ID out of the claims, replying 400 on failure.
func callerID(c *gin.Context, claims *helpers.EnhancedClaims) (uuid.UUID, bool) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return uuid.Nil, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	limitStr := c.DefaultQuery("limit", "10")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offset, limit, true
}

// statusFromError maps store errors to HTTP statuses: missing documents are
// 404, exhausted conflict retries and short stock are 409, an unreachable
// store is 503.
func statusFromError(err error) int {
	var insufficient *store.InsufficientInventoryError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
