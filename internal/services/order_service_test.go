package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/store"
)

// fakeOrdersRepo keeps orders in a map keyed by session ID, mirroring the
// unique index the real collection enforces.
type fakeOrdersRepo struct {
	bySession map[string]*models.Order
	inserts   int
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{bySession: make(map[string]*models.Order)}
}

func (f *fakeOrdersRepo) InsertOrder(ctx context.Context, order *models.Order) (bool, *models.Order, error) {
	if existing, ok := f.bySession[order.SessionID]; ok {
		return false, existing, nil
	}
	f.inserts++
	f.bySession[order.SessionID] = order
	return true, order, nil
}

func (f *fakeOrdersRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	for _, o := range f.bySession {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrdersRepo) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]*models.Order, int, error) {
	var out []*models.Order
	for _, o := range f.bySession {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrdersRepo) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.Order, int, error) {
	var out []*models.Order
	for _, o := range f.bySession {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrdersRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	for _, o := range f.bySession {
		if o.ID == id && o.Status == from {
			o.Status = to
			return true, nil
		}
	}
	return false, nil
}

func newOrderFixture(t *testing.T, roomQuantity int) (*OrderService, *fakeOrdersRepo, *store.MemStore, uuid.UUID) {
	t.Helper()
	m := store.NewMemStore()
	roomID := uuid.New()
	m.SeedRoom(models.Room{ID: roomID, HotelID: uuid.New(), Quantity: roomQuantity})

	repo := newFakeOrdersRepo()
	svc := NewOrderService(repo, NewInventoryService(m, nil))
	return svc, repo, m, roomID
}

func confirmationFor(roomID uuid.UUID, quantity int) *models.OrderConfirmation {
	return &models.OrderConfirmation{
		SessionID:  "cs_test_123",
		CustomerID: uuid.New(),
		HotelID:    uuid.New(),
		OwnerID:    uuid.New(),
		Items: []models.OrderItem{
			{Kind: models.ItemKindRoom, RefID: roomID, Name: "Deluxe", Quantity: quantity, UnitPrice: 100},
			{Kind: models.ItemKindFood, RefID: uuid.New(), Name: "Jollof", Quantity: 2, UnitPrice: 15},
		},
		Total: 100*float64(quantity) + 30,
	}
}

func TestHandleOrderConfirmed(t *testing.T) {
	svc, repo, m, roomID := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.HandleOrderConfirmed(ctx, confirmationFor(roomID, 2))
	if err != nil {
		t.Fatalf("confirm order: %v", err)
	}
	if order.Status != models.OrderStatusConfirmed {
		t.Errorf("status = %s, want confirmed", order.Status)
	}
	if repo.inserts != 1 {
		t.Errorf("inserts = %d, want 1", repo.inserts)
	}

	// Only the room item touches inventory.
	if r, _ := m.Room(roomID); r.Quantity != 3 {
		t.Errorf("room quantity = %d, want 3", r.Quantity)
	}
}

func TestHandleOrderConfirmedRedelivery(t *testing.T) {
	svc, repo, m, roomID := newOrderFixture(t, 5)
	ctx := context.Background()

	first, err := svc.HandleOrderConfirmed(ctx, confirmationFor(roomID, 2))
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}

	// Same session again: same order back, no second decrement.
	second, err := svc.HandleOrderConfirmed(ctx, confirmationFor(roomID, 2))
	if err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("redelivery produced a different order: %s vs %s", second.ID, first.ID)
	}
	if repo.inserts != 1 {
		t.Errorf("inserts = %d, want 1", repo.inserts)
	}
	if r, _ := m.Room(roomID); r.Quantity != 3 {
		t.Errorf("room quantity = %d after redelivery, want 3", r.Quantity)
	}
}

func TestHandleOrderConfirmedPartialFailure(t *testing.T) {
	svc, repo, m, roomID := newOrderFixture(t, 1)
	ctx := context.Background()

	// Requesting 2 of a room with 1 left: order is stored, decrement fails.
	order, err := svc.HandleOrderConfirmed(ctx, confirmationFor(roomID, 2))
	if err == nil {
		t.Fatal("expected decrement failure to surface")
	}
	if order == nil {
		t.Fatal("order should be stored despite the failed decrement")
	}
	if len(repo.bySession) != 1 {
		t.Errorf("order not persisted")
	}
	if r, _ := m.Room(roomID); r.Quantity != 1 {
		t.Errorf("failed decrement changed quantity to %d", r.Quantity)
	}
}

func TestHandleOrderConfirmedValidation(t *testing.T) {
	svc, _, _, roomID := newOrderFixture(t, 1)
	ctx := context.Background()

	conf := confirmationFor(roomID, 1)
	conf.SessionID = ""
	if _, err := svc.HandleOrderConfirmed(ctx, conf); err == nil {
		t.Error("missing session ID accepted")
	}

	conf = confirmationFor(roomID, 1)
	conf.Items = nil
	if _, err := svc.HandleOrderConfirmed(ctx, conf); err == nil {
		t.Error("empty items accepted")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _, _, roomID := newOrderFixture(t, 5)
	ctx := context.Background()

	order, err := svc.HandleOrderConfirmed(ctx, confirmationFor(roomID, 1))
	if err != nil {
		t.Fatalf("confirm order: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if updated.Status != models.OrderStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}

	// A completed order cannot be cancelled.
	if _, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); err == nil {
		t.Error("cancel after completion accepted")
	}
}
