package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/models"
)

// RoomService handles owner CRUD on rooms. Quantity decrements triggered by
// paid orders never go through here; they belong to the InventoryService.
type RoomService struct {
	roomsRepo  models.RoomsRepo
	hotelsRepo models.HotelsRepo
	cache      *cache.Cache
}

func NewRoomService(roomsRepo models.RoomsRepo, hotelsRepo models.HotelsRepo, c *cache.Cache) *RoomService {
	return &RoomService{
		roomsRepo:  roomsRepo,
		hotelsRepo: hotelsRepo,
		cache:      c,
	}
}

func (rs *RoomService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := models.Validate.Struct(room); err != nil {
		return nil, fmt.Errorf("invalid room data provided: %v", err)
	}

	hotel, err := rs.hotelsRepo.GetHotelByID(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, fmt.Errorf("hotel not found")
	}

	now := time.Now()
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	room.CreatedAt = now
	room.UpdatedAt = now

	created, err := rs.roomsRepo.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}

	rs.invalidate(ctx, room.HotelID)
	return created, nil
}

func (rs *RoomService) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid room ID")
	}
	return rs.roomsRepo.GetRoomByID(ctx, id)
}

func (rs *RoomService) ListRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*models.Room, error) {
	if hotelID == uuid.Nil {
		return nil, fmt.Errorf("invalid hotel ID")
	}

	key := cache.HotelRoomsKey(hotelID)
	if rs.cache != nil {
		var cached []*models.Room
		if hit, err := rs.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rooms, err := rs.roomsRepo.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if rs.cache != nil {
		rs.cache.Set(ctx, key, rooms, cache.DefaultTTL)
	}
	return rooms, nil
}

func (rs *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Room, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid room ID")
	}

	updated, err := rs.roomsRepo.UpdateRoom(ctx, id, fields)
	if err != nil || updated == nil {
		return updated, err
	}

	rs.invalidate(ctx, updated.HotelID)
	return updated, nil
}

func (rs *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid room ID")
	}

	room, err := rs.roomsRepo.GetRoomByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room not found")
	}

	if err := rs.roomsRepo.DeleteRoom(ctx, id); err != nil {
		return err
	}

	rs.invalidate(ctx, room.HotelID)
	return nil
}

func (rs *RoomService) invalidate(ctx context.Context, hotelID uuid.UUID) {
	if rs.cache == nil {
		return
	}
	rs.cache.Del(ctx, cache.HotelRoomsKey(hotelID))
}
