package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func CreateFood(f *services.FoodService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		userID, ok := callerID(c, claims)
		if !ok {
			return
		}

		var food models.Food
		if err := c.ShouldBindJSON(&food); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), food.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("hotel not found"))
			return
		}
		if hotel.OwnerID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only add menu items to your own hotels"))
			return
		}

		created, err := f.CreateFood(c.Request.Context(), &food)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Food item created successfully"))
	}
}

func GetFoodByID(f *services.FoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		foodID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		food, err := f.GetFoodByID(c.Request.Context(), foodID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if food == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("food item not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(food, ""))
	}
}

func ListFoodsByHotel(f *services.FoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		foods, err := f.ListFoodsByHotel(c.Request.Context(), hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(foods, ""))
	}
}

func UpdateFood(f *services.FoodService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		foodID, ok := parseIDParam(c, "id")
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

		food, err := f.GetFoodByID(c.Request.Context(), foodID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if food == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("food item not found"))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), food.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil || (hotel.OwnerID != userID && !claims.IsAdmin()) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only update menu items in your own hotels"))
			return
		}

		updated, err := f.UpdateFood(c.Request.Context(), foodID, fields)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("food item not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Food item updated successfully"))
	}
}

func DeleteFood(f *services.FoodService, h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		foodID, ok := parseIDParam(c, "id")
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

		food, err := f.GetFoodByID(c.Request.Context(), foodID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if food == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("food item not found"))
			return
		}

		hotel, err := h.GetHotelByID(c.Request.Context(), food.HotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if hotel == nil || (hotel.OwnerID != userID && !claims.IsAdmin()) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only delete menu items in your own hotels"))
			return
		}

		if err := f.DeleteFood(c.Request.Context(), foodID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "food item deleted successfully"))
	}
}
