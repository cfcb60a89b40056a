package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
)

type FavouriteService struct {
	favouritesRepo models.FavouriteRepo
	hotelsRepo     models.HotelsRepo
}

func NewFavouriteService(favouritesRepo models.FavouriteRepo, hotelsRepo models.HotelsRepo) *FavouriteService {
	return &FavouriteService{
		favouritesRepo: favouritesRepo,
		hotelsRepo:     hotelsRepo,
	}
}

func (fs *FavouriteService) AddToFavourites(ctx context.Context, customerID, hotelID uuid.UUID) (*models.Favourite, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("invalid customer ID")
	}
	if hotelID == uuid.Nil {
		return nil, fmt.Errorf("invalid hotel ID")
	}

	hotel, err := fs.hotelsRepo.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, fmt.Errorf("hotel not found")
	}

	return fs.favouritesRepo.AddToFavourites(ctx, customerID, hotelID)
}

func (fs *FavouriteService) RemoveFromFavourites(ctx context.Context, customerID, hotelID uuid.UUID) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("invalid customer ID")
	}
	if hotelID == uuid.Nil {
		return fmt.Errorf("invalid hotel ID")
	}

	return fs.favouritesRepo.RemoveFromFavourites(ctx, customerID, hotelID)
}

func (fs *FavouriteService) GetFavouritesByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Favourite, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("invalid customer ID")
	}

	return fs.favouritesRepo.GetFavouritesByCustomer(ctx, customerID)
}
