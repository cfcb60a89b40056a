package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/helpers"
	"github.com/kwame-owusu/staybay/internal/models"
)

type FoodService struct {
	foodsRepo  models.FoodsRepo
	hotelsRepo models.HotelsRepo
	cld        *cloudinary.Cloudinary
	cache      *cache.Cache
}

func NewFoodService(foodsRepo models.FoodsRepo, hotelsRepo models.HotelsRepo, cld *cloudinary.Cloudinary, c *cache.Cache) *FoodService {
	return &FoodService{
		foodsRepo:  foodsRepo,
		hotelsRepo: hotelsRepo,
		cld:        cld,
		cache:      c,
	}
}

func (fs *FoodService) CreateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	if err := models.Validate.Struct(food); err != nil {
		return nil, fmt.Errorf("invalid food data provided: %v", err)
	}

	hotel, err := fs.hotelsRepo.GetHotelByID(ctx, food.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, fmt.Errorf("hotel not found")
	}

	now := time.Now()
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	food.CreatedAt = now
	food.UpdatedAt = now

	if food.Image != "" && fs.cld != nil {
		urls, _, err := helpers.UploadImages(ctx, fs.cld, []string{food.Image}, helpers.FoodFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %v", err)
		}
		if len(urls) > 0 {
			food.Image = urls[0]
		}
	}

	created, err := fs.foodsRepo.CreateFood(ctx, food)
	if err != nil {
		return nil, err
	}

	fs.invalidate(ctx, food.HotelID)
	return created, nil
}

func (fs *FoodService) GetFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid food ID")
	}
	return fs.foodsRepo.GetFoodByID(ctx, id)
}

func (fs *FoodService) ListFoodsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*models.Food, error) {
	if hotelID == uuid.Nil {
		return nil, fmt.Errorf("invalid hotel ID")
	}

	key := cache.HotelFoodsKey(hotelID)
	if fs.cache != nil {
		var cached []*models.Food
		if hit, err := fs.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	foods, err := fs.foodsRepo.ListFoodsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if fs.cache != nil {
		fs.cache.Set(ctx, key, foods, cache.DefaultTTL)
	}
	return foods, nil
}

func (fs *FoodService) UpdateFood(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Food, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid food ID")
	}

	updated, err := fs.foodsRepo.UpdateFood(ctx, id, fields)
	if err != nil || updated == nil {
		return updated, err
	}

	fs.invalidate(ctx, updated.HotelID)
	return updated, nil
}

func (fs *FoodService) DeleteFood(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid food ID")
	}

	food, err := fs.foodsRepo.GetFoodByID(ctx, id)
	if err != nil {
		return err
	}
	if food == nil {
		return fmt.Errorf("food item not found")
	}

	if err := fs.foodsRepo.DeleteFood(ctx, id); err != nil {
		return err
	}

	fs.invalidate(ctx, food.HotelID)
	return nil
}

func (fs *FoodService) invalidate(ctx context.Context, hotelID uuid.UUID) {
	if fs.cache == nil {
		return
	}
	fs.cache.Del(ctx, cache.HotelFoodsKey(hotelID))
}
