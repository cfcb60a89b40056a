package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/store"
)

// InventoryService guards room quantities. A decrement reads the room inside
// a transaction, rejects the request if stock is short, and otherwise applies
// a conditional decrement; the quantity can never go below zero, under any
// interleaving.
type InventoryService struct {
	store       store.Store
	cache       *cache.Cache
	maxAttempts int
}

func NewInventoryService(st store.Store, c *cache.Cache) *InventoryService {
	return &InventoryService{
		store:       st,
		cache:       c,
		maxAttempts: store.DefaultMaxAttempts,
	}
}

// DecrementRoomQuantity takes amount units of the room's stock, failing with
// InsufficientInventoryError when fewer than amount remain. Conflicting
// concurrent decrements are retried; each retry re-reads the quantity.
func (is *InventoryService) DecrementRoomQuantity(ctx context.Context, roomID uuid.UUID, amount int) error {
	if roomID == uuid.Nil {
		return fmt.Errorf("invalid room ID")
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	var hotelID uuid.UUID
	err := store.WithRetry(ctx, is.maxAttempts, func(ctx context.Context) error {
		return is.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
			room, err := tx.GetRoom(ctx, roomID)
			if err != nil {
				return err
			}
			hotelID = room.HotelID

			if room.Quantity < amount {
				return &store.InsufficientInventoryError{
					Requested: amount,
					Available: room.Quantity,
				}
			}
			return tx.DecrementRoomQuantity(ctx, roomID, amount)
		})
	})
	if err != nil {
		return err
	}

	if is.cache != nil && hotelID != uuid.Nil {
		is.cache.Del(ctx, cache.HotelRoomsKey(hotelID))
	}
	return nil
}
