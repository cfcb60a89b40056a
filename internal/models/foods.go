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

const FoodColName = "foods"

// Food is a menu item offered by a hotel. Food has no inventory counter;
// only rooms go through the inventory guard.
type Food struct {
	ID          uuid.UUID `bson:"id" json:"id"`
	HotelID     uuid.UUID `bson:"hotel_id" json:"hotel_id" validate:"required"`
	Name        string    `bson:"name" json:"name" validate:"required"`
	Price       float64   `bson:"price" json:"price" validate:"gte=0"`
	Category    string    `bson:"category" json:"category,omitempty"`
	Image       string    `bson:"image" json:"image,omitempty"`
	IsAvailable bool      `bson:"is_available" json:"is_available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type FoodsRepo interface {
	CreateFood(ctx context.Context, food *Food) (*Food, error)
	GetFoodByID(ctx context.Context, id uuid.UUID) (*Food, error)
	ListFoodsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Food, error)
	UpdateFood(ctx context.Context, id uuid.UUID, fields map[string]any) (*Food, error)
	DeleteFood(ctx context.Context, id uuid.UUID) error
}

func (mdb *MongodbRepo) CreateFood(ctx context.Context, food *Food) (*Food, error) {
	col, err := mdb.GetCollection(ctx, FoodColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, food); err != nil {
		return nil, fmt.Errorf("failed to insert food item: %v", err)
	}
	return food, nil
}

func (mdb *MongodbRepo) GetFoodByID(ctx context.Context, id uuid.UUID) (*Food, error) {
	col, err := mdb.GetCollection(ctx, FoodColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var food Food
	err = col.FindOne(ctx, bson.M{"id": id}).Decode(&food)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %v", err)
	}
	return &food, nil
}

func (mdb *MongodbRepo) ListFoodsByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Food, error) {
	col, err := mdb.GetCollection(ctx, FoodColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"hotel_id": hotelID})
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %v", err)
	}
	defer cursor.Close(ctx)

	var foods []*Food
	for cursor.Next(ctx) {
		var food Food
		if err := cursor.Decode(&food); err != nil {
			return nil, fmt.Errorf("error decoding food item: %v", err)
		}
		foods = append(foods, &food)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return foods, nil
}

func (mdb *MongodbRepo) UpdateFood(ctx context.Context, id uuid.UUID, fields map[string]any) (*Food, error) {
	col, err := mdb.GetCollection(ctx, FoodColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	delete(fields, "id")
	delete(fields, "hotel_id")
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Food
	err = col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update food item: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteFood(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, FoodColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete food item: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("food item not found")
	}
	return nil
}
