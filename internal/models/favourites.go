package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const FavouriteColName = "favourites"

type FavouriteItem struct {
	HotelID uuid.UUID `bson:"hotel_id" json:"hotel_id"`
	AddedAt time.Time `bson:"added_at" json:"added_at"`
}

// Favourite holds a customer's saved hotels as a map keyed by hotel id, one
// document per customer.
type Favourite struct {
	ID         primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	CustomerID uuid.UUID                `bson:"customer_id" json:"customer_id" validate:"required"`
	Items      map[string]FavouriteItem `bson:"items" json:"items"`
	CreatedAt  time.Time                `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt  time.Time                `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type FavouriteRepo interface {
	AddToFavourites(ctx context.Context, customerID, hotelID uuid.UUID) (*Favourite, error)
	RemoveFromFavourites(ctx context.Context, customerID, hotelID uuid.UUID) error
	GetFavouritesByCustomer(ctx context.Context, customerID uuid.UUID) (*Favourite, error)
}

func (mdb *MongodbRepo) AddToFavourites(ctx context.Context, customerID, hotelID uuid.UUID) (*Favourite, error) {
	col, err := mdb.GetCollection(ctx, FavouriteColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	filter := bson.M{"customer_id": customerID}
	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", hotelID): FavouriteItem{
				HotelID: hotelID,
				AddedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"customer_id": customerID,
			"created_at":  now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Favourite
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting favourite: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) RemoveFromFavourites(ctx context.Context, customerID, hotelID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, FavouriteColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"customer_id": customerID}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", hotelID): "",
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	_, err = col.UpdateOne(ctx, filter, update)
	return err
}

func (mdb *MongodbRepo) GetFavouritesByCustomer(ctx context.Context, customerID uuid.UUID) (*Favourite, error) {
	col, err := mdb.GetCollection(ctx, FavouriteColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var fav Favourite
	err = col.FindOne(ctx, bson.M{"customer_id": customerID}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding favourites: %v", err)
	}
	return &fav, nil
}
