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

type HotelService struct {
	hotelsRepo models.HotelsRepo
	cld        *cloudinary.Cloudinary
	cache      *cache.Cache
}

func NewHotelService(hotelsRepo models.HotelsRepo, cld *cloudinary.Cloudinary, c *cache.Cache) *HotelService {
	return &HotelService{
		hotelsRepo: hotelsRepo,
		cld:        cld,
		cache:      c,
	}
}

func (hs *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel, ownerID uuid.UUID) (*models.Hotel, error) {
	if err := models.Validate.Struct(hotel); err != nil {
		return nil, fmt.Errorf("invalid hotel data provided: %v", err)
	}

	now := time.Now()
	if hotel.ID == uuid.Nil {
		hotel.ID = uuid.New()
	}
	hotel.OwnerID = ownerID
	hotel.AvgRating = 0
	hotel.ReviewCount = 0
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	var uploadedPublicIDs []string
	if len(hotel.Images) > 0 && hs.cld != nil {
		uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		urls, publicIDs, err := helpers.UploadImages(uploadCtx, hs.cld, hotel.Images, helpers.HotelFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload images: %v", err)
		}
		hotel.Images = urls
		uploadedPublicIDs = publicIDs
	}

	created, err := hs.hotelsRepo.CreateHotel(ctx, hotel)
	if err != nil {
		if len(uploadedPublicIDs) > 0 {
			helpers.DeleteImages(ctx, hs.cld, uploadedPublicIDs)
		}
		return nil, err
	}

	return created, nil
}

func (hs *HotelService) GetHotelByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid hotel ID")
	}

	key := cache.HotelKey(id)
	if hs.cache != nil {
		var cached models.Hotel
		if hit, err := hs.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	hotel, err := hs.hotelsRepo.GetHotelByID(ctx, id)
	if err != nil || hotel == nil {
		return hotel, err
	}

	if hs.cache != nil {
		hs.cache.Set(ctx, key, hotel, cache.DefaultTTL)
	}
	return hotel, nil
}

func (hs *HotelService) ListHotels(ctx context.Context, offset, limit int) ([]*models.Hotel, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return hs.hotelsRepo.ListHotels(ctx, offset, limit)
}

func (hs *HotelService) ListHotelsByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.Hotel, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if ownerID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid owner ID")
	}
	return hs.hotelsRepo.ListHotelsByOwner(ctx, ownerID, offset, limit)
}

// UpdateHotel applies owner edits. The repo strips the rating aggregate and
// identity fields so owner updates can never touch them.
func (hs *HotelService) UpdateHotel(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Hotel, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid hotel ID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updated, err := hs.hotelsRepo.UpdateHotel(ctx, id, fields)
	if err != nil || updated == nil {
		return updated, err
	}

	if hs.cache != nil {
		hs.cache.Del(ctx, cache.HotelKey(id))
	}
	return updated, nil
}

func (hs *HotelService) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid hotel ID")
	}

	if err := hs.hotelsRepo.DeleteHotel(ctx, id); err != nil {
		return err
	}

	if hs.cache != nil {
		hs.cache.Del(ctx,
			cache.HotelKey(id),
			cache.HotelReviewsKey(id),
			cache.HotelRoomsKey(id),
			cache.HotelFoodsKey(id),
		)
	}
	return nil
}
