package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func RequestWithdrawal(w *services.WithdrawalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		ownerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var req struct {
			Amount float64 `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := w.RequestWithdrawal(c.Request.Context(), ownerID, req.Amount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Withdrawal requested"))
	}
}

func ListOwnWithdrawals(w *services.WithdrawalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		ownerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		withdrawals, err := w.ListWithdrawalsByOwner(c.Request.Context(), ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(withdrawals, ""))
	}
}

func ListAllWithdrawals(w *services.WithdrawalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.WithdrawalStatus(c.Query("status"))

		withdrawals, err := w.ListWithdrawals(c.Request.Context(), status)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(withdrawals, ""))
	}
}

// ProcessWithdrawal lets an admin approve or deny a pending request. A request
// already decided comes back 409.
func ProcessWithdrawal(w *services.WithdrawalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		withdrawalID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			Status models.WithdrawalStatus `json:"status" binding:"required,oneof=approved denied"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		applied, err := w.ProcessWithdrawal(c.Request.Context(), withdrawalID, req.Status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if !applied {
			c.JSON(http.StatusConflict, models.ErrorResponse("withdrawal is not pending"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "withdrawal processed"))
	}
}
