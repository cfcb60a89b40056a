package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
)

// OrderService records paid checkouts and drives the room decrements they
// imply. Orders are keyed by the payment session so webhook redeliveries are
// absorbed without double-charging inventory.
type OrderService struct {
	ordersRepo models.OrdersRepo
	inventory  *InventoryService
}

func NewOrderService(ordersRepo models.OrdersRepo, inventory *InventoryService) *OrderService {
	return &OrderService{
		ordersRepo: ordersRepo,
		inventory:  inventory,
	}
}

// HandleOrderConfirmed persists the order for a completed checkout session
// and decrements stock for each room item. If the session was already
// processed the stored order is returned and nothing is decremented again.
//
// Room decrements are applied per item, not atomically across the order: a
// failed item does not roll back the others. Failures are joined and returned
// alongside the stored order so the caller can flag the order for
// reconciliation.
func (os *OrderService) HandleOrderConfirmed(ctx context.Context, conf *models.OrderConfirmation) (*models.Order, error) {
	if conf.SessionID == "" {
		return nil, fmt.Errorf("missing session ID")
	}
	if len(conf.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}
	for _, item := range conf.Items {
		if err := models.Validate.Struct(item); err != nil {
			return nil, fmt.Errorf("invalid order item: %v", err)
		}
	}

	now := time.Now()
	order := &models.Order{
		ID:         uuid.New(),
		SessionID:  conf.SessionID,
		CustomerID: conf.CustomerID,
		HotelID:    conf.HotelID,
		OwnerID:    conf.OwnerID,
		Items:      conf.Items,
		Total:      conf.Total,
		Status:     models.OrderStatusConfirmed,
		OrderDate:  now,
		UpdatedAt:  now,
	}

	created, stored, err := os.ordersRepo.InsertOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	if !created {
		return stored, nil
	}

	var decrementErrs []error
	for _, item := range order.Items {
		if item.Kind != models.ItemKindRoom {
			continue
		}
		if err := os.inventory.DecrementRoomQuantity(ctx, item.RefID, item.Quantity); err != nil {
			decrementErrs = append(decrementErrs, fmt.Errorf("room %s: %w", item.RefID, err))
		}
	}

	return order, errors.Join(decrementErrs...)
}

func (os *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid order ID")
	}
	return os.ordersRepo.GetOrderByID(ctx, id)
}

func (os *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]*models.Order, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if customerID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid customer ID")
	}
	return os.ordersRepo.ListOrdersByCustomer(ctx, customerID, offset, limit)
}

func (os *OrderService) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.Order, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if ownerID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid owner ID")
	}
	return os.ordersRepo.ListOrdersByOwner(ctx, ownerID, offset, limit)
}

// UpdateStatus applies one legal transition; anything else is rejected.
// confirmed -> completed|cancelled, pending -> confirmed|cancelled.
func (os *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid order ID")
	}

	var from models.OrderStatus
	switch to {
	case models.OrderStatusConfirmed:
		from = models.OrderStatusPending
	case models.OrderStatusCompleted:
		from = models.OrderStatusConfirmed
	case models.OrderStatusCancelled:
		current, err := os.ordersRepo.GetOrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, nil
		}
		if current.Status != models.OrderStatusPending && current.Status != models.OrderStatusConfirmed {
			return nil, fmt.Errorf("order cannot be cancelled from status %s", current.Status)
		}
		from = current.Status
	default:
		return nil, fmt.Errorf("unsupported target status: %s", to)
	}

	applied, err := os.ordersRepo.UpdateOrderStatus(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("order is not in status %s", from)
	}
	return os.ordersRepo.GetOrderByID(ctx, id)
}
