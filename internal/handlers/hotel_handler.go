package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func CreateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		ownerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var hotel models.Hotel
		if err := c.ShouldBindJSON(&hotel); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := h.CreateHotel(c.Request.Context(), &hotel, ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Hotel created successfully"))
	}
}

func ListHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		hotels, total, err := h.ListHotels(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(hotels, page, limit, total))
	}
}

func GetHotelByID(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(hotel, ""))
	}
}

func ListHotelsByOwner(h *services.HotelService) gin.HandlerFunc {
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

		ownerID, ok := parseIDParam(c, "owner_id")
		if !ok {
			return
		}

		if ownerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("unauthorized access"))
			return
		}

		hotels, total, err := h.ListHotelsByOwner(c.Request.Context(), ownerID, offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(hotels, page, limit, total))
	}
}

func UpdateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
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

		var fields map[string]any
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		existing, err := h.GetHotelByID(c.Request.Context(), hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}
		if existing.OwnerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only update your own hotels"))
			return
		}

		updated, err := h.UpdateHotel(c.Request.Context(), hotelID, fields)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Hotel updated successfully"))
	}
}

func DeleteHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
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

		existing, err := h.GetHotelByID(c.Request.Context(), hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}
		if existing.OwnerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only delete your own hotels"))
			return
		}

		if err := h.DeleteHotel(c.Request.Context(), hotelID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "hotel deleted successfully"))
	}
}
