package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OrderColName = "orders"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type ItemKind string

const (
	ItemKindRoom ItemKind = "room"
	ItemKindFood ItemKind = "food"
)

type OrderItem struct {
	Kind      ItemKind  `bson:"kind" json:"kind" validate:"required,oneof=room food"`
	RefID     uuid.UUID `bson:"ref_id" json:"ref_id" validate:"required"`
	Name      string    `bson:"name" json:"name"`
	Quantity  int       `bson:"quantity" json:"quantity" validate:"required,min=1"`
	UnitPrice float64   `bson:"unit_price" json:"unit_price" validate:"gte=0"`
}

// Order is created once per successful payment and immutable afterwards
// except for status transitions. SessionID is the payment session that
// produced it and doubles as the idempotency key for webhook redelivery.
type Order struct {
	ID         uuid.UUID   `bson:"id" json:"id"`
	SessionID  string      `bson:"session_id" json:"session_id"`
	CustomerID uuid.UUID   `bson:"customer_id" json:"customer_id"`
	HotelID    uuid.UUID   `bson:"hotel_id" json:"hotel_id"`
	OwnerID    uuid.UUID   `bson:"owner_id" json:"owner_id"`
	Items      []OrderItem `bson:"items" json:"items"`
	Total      float64     `bson:"total" json:"total"`
	Status     OrderStatus `bson:"status" json:"status"`
	OrderDate  time.Time   `bson:"order_date" json:"order_date"`
	UpdatedAt  time.Time   `bson:"updated_at" json:"updated_at"`
}

// OrderConfirmation is the payload the payment webhook delivers when a
// checkout completes. It may arrive more than once for the same session.
type OrderConfirmation struct {
	SessionID  string      `json:"session_id"`
	CustomerID uuid.UUID   `json:"customer_id"`
	HotelID    uuid.UUID   `json:"hotel_id"`
	OwnerID    uuid.UUID   `json:"owner_id"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
}

type OrdersRepo interface {
	// InsertOrder stores the order unless one with the same session already
	// exists; in that case it reports created=false and returns the existing
	// order so redeliveries are no-ops.
	InsertOrder(ctx context.Context, order *Order) (created bool, existing *Order, err error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]*Order, int, error)
	ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) (bool, error)
}

func (mdb *MongodbRepo) InsertOrder(ctx context.Context, order *Order) (bool, *Order, error) {
	col, err := mdb.GetCollection(ctx, OrderColName)
	if err != nil {
		return false, nil, fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		var existing Order
		if ferr := col.FindOne(ctx, bson.M{"session_id": order.SessionID}).Decode(&existing); ferr != nil {
			return false, nil, fmt.Errorf("failed to load existing order: %v", ferr)
		}
		return false, &existing, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to insert order: %v", err)
	}
	return true, order, nil
}

func (mdb *MongodbRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	col, err := mdb.GetCollection(ctx, OrderColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var order Order
	err = col.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %v", err)
	}
	return &order, nil
}

func (mdb *MongodbRepo) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]*Order, int, error) {
	return mdb.listOrders(ctx, bson.M{"customer_id": customerID}, offset, limit)
}

func (mdb *MongodbRepo) ListOrdersByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Order, int, error) {
	return mdb.listOrders(ctx, bson.M{"owner_id": ownerID}, offset, limit)
}

func (mdb *MongodbRepo) listOrders(ctx context.Context, filter bson.M, offset, limit int) ([]*Order, int, error) {
	col, err := mdb.GetCollection(ctx, OrderColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "order_date", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %v", err)
	}
	defer cursor.Close(ctx)

	var orders []*Order
	for cursor.Next(ctx) {
		var order Order
		if err := cursor.Decode(&order); err != nil {
			return nil, 0, fmt.Errorf("error decoding order: %v", err)
		}
		orders = append(orders, &order)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return orders, int(total), nil
}

// UpdateOrderStatus transitions the order only if it is currently in the
// expected state; returns false when the transition did not apply.
func (mdb *MongodbRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) (bool, error) {
	col, err := mdb.GetCollection(ctx, OrderColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %v", err)
	}
	return res.ModifiedCount > 0, nil
}
