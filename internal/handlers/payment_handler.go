package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/payments"
	"github.com/kwame-owusu/staybay/internal/services"
)

type checkoutRequest struct {
	HotelID uuid.UUID `json:"hotel_id" binding:"required"`
	Items   []struct {
		Kind     models.ItemKind `json:"kind" binding:"required,oneof=room food"`
		RefID    uuid.UUID       `json:"ref_id" binding:"required"`
		Quantity int             `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// CreateCheckoutSession prices the cart server-side and opens a Stripe
// session for it. Quantities are only reserved once payment completes.
func CreateCheckoutSession(ck *payments.Checkout, h *services.HotelService, r *services.RoomService, f *services.FoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), req.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}

		conf := &models.OrderConfirmation{
			CustomerID: customerID,
			HotelID:    hotel.ID,
			OwnerID:    hotel.OwnerID,
		}

		for _, item := range req.Items {
			switch item.Kind {
			case models.ItemKindRoom:
				room, err := r.GetRoomByID(c.Request.Context(), item.RefID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
					return
				}
				if room == nil || room.HotelID != hotel.ID {
					c.JSON(http.StatusNotFound, models.ErrorResponse("room not found in this hotel"))
					return
				}
				if !room.IsAvailable || room.Quantity < item.Quantity {
					c.JSON(http.StatusConflict, models.ErrorResponse("room is not available in the requested quantity"))
					return
				}
				conf.Items = append(conf.Items, models.OrderItem{
					Kind:      models.ItemKindRoom,
					RefID:     room.ID,
					Name:      room.Name,
					Quantity:  item.Quantity,
					UnitPrice: room.Price,
				})
				conf.Total += room.Price * float64(item.Quantity)
			case models.ItemKindFood:
				food, err := f.GetFoodByID(c.Request.Context(), item.RefID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
					return
				}
				if food == nil || food.HotelID != hotel.ID {
					c.JSON(http.StatusNotFound, models.ErrorResponse("food item not found in this hotel"))
					return
				}
				if !food.IsAvailable {
					c.JSON(http.StatusConflict, models.ErrorResponse("food item is not available"))
					return
				}
				conf.Items = append(conf.Items, models.OrderItem{
					Kind:      models.ItemKindFood,
					RefID:     food.ID,
					Name:      food.Name,
					Quantity:  item.Quantity,
					UnitPrice: food.Price,
				})
				conf.Total += food.Price * float64(item.Quantity)
			}
		}

		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			frontendURL = "http://localhost:3000"
		}

		session, err := ck.CreateSession(c.Request.Context(), conf,
			frontendURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			frontendURL+"/checkout/cancel",
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"session_id":   session.ID,
			"checkout_url": session.URL,
		}, "Checkout session created"))
	}
}

// StripeWebhook records paid checkouts. Redeliveries return 200 without side
// effects. Decrement failures after the order is stored still return 200 so
// Stripe stops retrying; the order is flagged for reconciliation instead.
func StripeWebhook(ck *payments.Checkout, o *services.OrderService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("failed to read webhook payload"))
			return
		}

		conf, handled, err := ck.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logger.Error("Webhook rejected", "error", err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if !handled {
			c.JSON(http.StatusOK, models.SuccessResponse(nil, "event ignored"))
			return
		}

		order, err := o.HandleOrderConfirmed(c.Request.Context(), conf)
		if err != nil && order == nil {
			logger.Error("Order confirmation failed", "session_id", conf.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if err != nil {
			logger.Error("Order stored but inventory decrement failed",
				"order_id", order.ID,
				"session_id", conf.SessionID,
				"error", err,
			)
			c.JSON(http.StatusOK, models.SuccessResponse(order, "order recorded; inventory reconciliation required"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(order, "order recorded"))
	}
}
