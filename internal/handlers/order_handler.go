package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func GetOrder(o *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		userID, ok := callerID(c, claims)
		if !ok {
			return
		}

		order, err := o.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("order not found"))
			return
		}

		if order.CustomerID != userID && order.OwnerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(order, ""))
	}
}

// ListOwnOrders returns the caller's orders: their purchases as a customer,
// or the orders placed against their hotels when called by an owner.
func ListOwnOrders(o *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		userID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var (
			orders []*models.Order
			total  int
			err    error
		)
		if claims.IsHotelOwner() && c.Query("as") == "owner" {
			orders, total, err = o.ListOrdersByOwner(c.Request.Context(), userID, offset, limit)
		} else {
			orders, total, err = o.ListOrdersByCustomer(c.Request.Context(), userID, offset, limit)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(orders, page, limit, total))
	}
}

// UpdateOrderStatus applies a status transition. Owners complete or cancel
// orders on their hotels; customers may only cancel their own.
func UpdateOrderStatus(o *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		userID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var req struct {
			Status models.OrderStatus `json:"status" binding:"required,oneof=confirmed completed cancelled"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		order, err := o.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("order not found"))
			return
		}

		isOwner := order.OwnerID == userID
		isCustomer := order.CustomerID == userID
		switch {
		case claims.IsAdmin():
		case isOwner:
		case isCustomer && req.Status == models.OrderStatusCancelled:
		default:
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		updated, err := o.UpdateStatus(c.Request.Context(), orderID, req.Status)
		if err != nil {
			c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("order not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Order status updated"))
	}
}
