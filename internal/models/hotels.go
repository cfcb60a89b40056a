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

const HotelColName = "hotels"

// Hotel is the aggregate root for ratings. AvgRating and ReviewCount are
// mutated only inside the rating-ledger transaction, never through this repo.
type Hotel struct {
	ID          uuid.UUID `bson:"id" json:"id"`
	OwnerID     uuid.UUID `bson:"owner_id" json:"owner_id" validate:"required"`
	Name        string    `bson:"name" json:"name" validate:"required"`
	Description string    `bson:"description" json:"description,omitempty"`
	Location    string    `bson:"location" json:"location,omitempty"`
	Images      []string  `bson:"images" json:"images,omitempty"`
	AvgRating   float64   `bson:"avg_rating" json:"avg_rating"`
	ReviewCount int       `bson:"review_count" json:"review_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type HotelsRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	ListHotels(ctx context.Context, offset, limit int) ([]*Hotel, int, error)
	ListHotelsByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Hotel, int, error)
	UpdateHotel(ctx context.Context, id uuid.UUID, fields map[string]any) (*Hotel, error)
	DeleteHotel(ctx context.Context, id uuid.UUID) error
}

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %v", err)
	}
	return hotel, nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var hotel Hotel
	err = col.FindOne(ctx, bson.M{"id": id}).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %v", err)
	}
	return &hotel, nil
}

func (mdb *MongodbRepo) ListHotels(ctx context.Context, offset, limit int) ([]*Hotel, int, error) {
	return mdb.listHotels(ctx, bson.M{}, offset, limit)
}

func (mdb *MongodbRepo) ListHotelsByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Hotel, int, error) {
	return mdb.listHotels(ctx, bson.M{"owner_id": ownerID}, offset, limit)
}

func (mdb *MongodbRepo) listHotels(ctx context.Context, filter bson.M, offset, limit int) ([]*Hotel, int, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hotels: %v", err)
	}
	defer cursor.Close(ctx)

	var hotels []*Hotel
	for cursor.Next(ctx) {
		var hotel Hotel
		if err := cursor.Decode(&hotel); err != nil {
			return nil, 0, fmt.Errorf("error decoding hotel: %v", err)
		}
		hotels = append(hotels, &hotel)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return hotels, int(total), nil
}

// UpdateHotel applies a partial update. Rating fields are stripped here so no
// CRUD path can bypass the rating ledger.
func (mdb *MongodbRepo) UpdateHotel(ctx context.Context, id uuid.UUID, fields map[string]any) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	delete(fields, "avg_rating")
	delete(fields, "review_count")
	delete(fields, "id")
	delete(fields, "owner_id")
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Hotel
	err = col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update hotel: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("hotel not found")
	}
	return nil
}
