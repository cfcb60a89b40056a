package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
)

func AddToFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		hotelID, ok := parseIDParam(c, "hotel_id")
		if !ok {
			return
		}

		fav, err := f.AddToFavourites(c.Request.Context(), customerID, hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(fav, "Hotel added to favourites"))
	}
}

func RemoveFromFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		hotelID, ok := parseIDParam(c, "hotel_id")
		if !ok {
			return
		}

		if err := f.RemoveFromFavourites(c.Request.Context(), customerID, hotelID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Hotel removed from favourites"))
	}
}

func GetFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		customerID, ok := callerID(c, claims)
		if !ok {
			return
		}

		fav, err := f.GetFavouritesByCustomer(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(fav, ""))
	}
}
