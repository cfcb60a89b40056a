package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/store"
)

func newInventoryFixture(t *testing.T, quantity int) (*InventoryService, *store.MemStore, uuid.UUID) {
	t.Helper()
	m := store.NewMemStore()
	roomID := uuid.New()
	m.SeedRoom(models.Room{ID: roomID, HotelID: uuid.New(), Quantity: quantity})
	return NewInventoryService(m, nil), m, roomID
}

func TestDecrementRoomQuantity(t *testing.T) {
	svc, m, roomID := newInventoryFixture(t, 3)
	ctx := context.Background()

	if err := svc.DecrementRoomQuantity(ctx, roomID, 2); err != nil {
		t.Fatalf("decrement by 2: %v", err)
	}
	if r, _ := m.Room(roomID); r.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", r.Quantity)
	}

	// Asking for more than remains fails and reports both numbers.
	err := svc.DecrementRoomQuantity(ctx, roomID, 2)
	var insufficient *store.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if insufficient.Requested != 2 || insufficient.Available != 1 {
		t.Errorf("got requested=%d available=%d, want 2 and 1", insufficient.Requested, insufficient.Available)
	}
	if r, _ := m.Room(roomID); r.Quantity != 1 {
		t.Errorf("failed decrement changed quantity to %d", r.Quantity)
	}

	// The last unit can still be taken.
	if err := svc.DecrementRoomQuantity(ctx, roomID, 1); err != nil {
		t.Fatalf("decrement last unit: %v", err)
	}
	if r, _ := m.Room(roomID); r.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", r.Quantity)
	}

	// And nothing more.
	if err := svc.DecrementRoomQuantity(ctx, roomID, 1); !errors.As(err, &insufficient) {
		t.Errorf("expected InsufficientInventoryError at zero stock, got %v", err)
	}
}

func TestDecrementRoomQuantityValidation(t *testing.T) {
	svc, _, roomID := newInventoryFixture(t, 1)
	ctx := context.Background()

	if err := svc.DecrementRoomQuantity(ctx, uuid.Nil, 1); err == nil {
		t.Error("nil room ID accepted")
	}
	if err := svc.DecrementRoomQuantity(ctx, roomID, 0); err == nil {
		t.Error("zero amount accepted")
	}
	if err := svc.DecrementRoomQuantity(ctx, roomID, -2); err == nil {
		t.Error("negative amount accepted")
	}
}

func TestDecrementRoomQuantityMissingRoom(t *testing.T) {
	svc := NewInventoryService(store.NewMemStore(), nil)

	err := svc.DecrementRoomQuantity(context.Background(), uuid.New(), 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Concurrent decrements against limited stock must hand out exactly the
// available units and never drive the quantity negative.
func TestDecrementRoomQuantityConcurrent(t *testing.T) {
	const stock = 10
	const workers = 25

	svc, m, roomID := newInventoryFixture(t, stock)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.DecrementRoomQuantity(ctx, roomID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	r, _ := m.Room(roomID)
	if r.Quantity < 0 {
		t.Fatalf("quantity went negative: %d", r.Quantity)
	}
	if succeeded+r.Quantity != stock {
		t.Errorf("units lost or duplicated: %d succeeded, %d remaining, stock was %d",
			succeeded, r.Quantity, stock)
	}
}
