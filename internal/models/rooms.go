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

const RoomColName = "rooms"

// Room carries the bookable inventory. Quantity is only ever decremented by
// the inventory guard; owner CRUD may set it but never below zero.
type Room struct {
	ID          uuid.UUID `bson:"id" json:"id"`
	HotelID     uuid.UUID `bson:"hotel_id" json:"hotel_id" validate:"required"`
	Name        string    `bson:"name" json:"name" validate:"required"`
	Quantity    int       `bson:"quantity" json:"quantity" validate:"min=0"`
	Price       float64   `bson:"price" json:"price" validate:"gte=0"`
	Capacity    int       `bson:"capacity" json:"capacity" validate:"gte=0"`
	IsAvailable bool      `bson:"is_available" json:"is_available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type RoomsRepo interface {
	CreateRoom(ctx context.Context, room *Room) (*Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

func (mdb *MongodbRepo) CreateRoom(ctx context.Context, room *Room) (*Room, error) {
	col, err := mdb.GetCollection(ctx, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to insert room: %v", err)
	}
	return room, nil
}

func (mdb *MongodbRepo) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	col, err := mdb.GetCollection(ctx, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var room Room
	err = col.FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %v", err)
	}
	return &room, nil
}

func (mdb *MongodbRepo) ListRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Room, error) {
	col, err := mdb.GetCollection(ctx, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"hotel_id": hotelID})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %v", err)
	}
	defer cursor.Close(ctx)

	var rooms []*Room
	for cursor.Next(ctx) {
		var room Room
		if err := cursor.Decode(&room); err != nil {
			return nil, fmt.Errorf("error decoding room: %v", err)
		}
		rooms = append(rooms, &room)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return rooms, nil
}

func (mdb *MongodbRepo) UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*Room, error) {
	col, err := mdb.GetCollection(ctx, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	delete(fields, "id")
	delete(fields, "hotel_id")
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if q, ok := fields["quantity"]; ok {
		if qty, ok := q.(int); ok && qty < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}
	}
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Room
	err = col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, RoomColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete room: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("room not found")
	}
	return nil
}
