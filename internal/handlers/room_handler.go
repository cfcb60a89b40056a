package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func CreateRoom(r *services.RoomService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		userID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var room models.Room
		if err := c.ShouldBindJSON(&room); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), room.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}
		if hotel.OwnerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only add rooms to your own hotels"))
			return
		}

		created, err := r.CreateRoom(c.Request.Context(), &room)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Room created successfully"))
	}
}

func GetRoomByID(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		room, err := r.GetRoomByID(c.Request.Context(), roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("room not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(room, ""))
	}
}

func ListRoomsByHotel(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		rooms, err := r.ListRoomsByHotel(c.Request.Context(), hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(rooms, ""))
	}
}

func UpdateRoom(r *services.RoomService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := parseIDParam(c, "id")
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

		room, err := r.GetRoomByID(c.Request.Context(), roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("room not found"))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), room.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil || (hotel.OwnerID != userID && !claims.IsAdmin()) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only update rooms in your own hotels"))
			return
		}

		updated, err := r.UpdateRoom(c.Request.Context(), roomID, fields)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("room not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Room updated successfully"))
	}
}

func DeleteRoom(r *services.RoomService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := parseIDParam(c, "id")
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

		room, err := r.GetRoomByID(c.Request.Context(), roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("room not found"))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), room.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil || (hotel.OwnerID != userID && !claims.IsAdmin()) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only delete rooms in your own hotels"))
			return
		}

		if err := r.DeleteRoom(c.Request.Context(), roomID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "room deleted successfully"))
	}
}
