package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewColName = "reviews"

// Review is identified by its customer within a hotel: one review per
// (hotel, customer) pair. A second submission by the same customer edits the
// existing review instead of creating a new one.
type Review struct {
	HotelID    uuid.UUID `bson:"hotel_id" json:"hotel_id"`
	CustomerID uuid.UUID `bson:"customer_id" json:"customer_id"`
	Rating     int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

func (r Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.HotelID == uuid.Nil {
		return fmt.Errorf("invalid hotel ID")
	}
	if r.CustomerID == uuid.Nil {
		return fmt.Errorf("invalid customer ID")
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// ReviewsRepo covers the read paths only. Review mutations go through the
// rating ledger so the hotel's aggregate fields stay consistent.
type ReviewsRepo interface {
	ListReviewsByHotel(ctx context.Context, hotelID uuid.UUID, offset, limit int) ([]*Review, int, error)
	ListReviewsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Review, error)
}

func (mdb *MongodbRepo) ListReviewsByHotel(ctx context.Context, hotelID uuid.UUID, offset, limit int) ([]*Review, int, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"hotel_id": hotelID}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, 0, fmt.Errorf("error decoding review: %v", err)
		}
		reviews = append(reviews, &review)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, int(total), nil
}

func (mdb *MongodbRepo) ListReviewsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("error decoding review: %v", err)
		}
		reviews = append(reviews, &review)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, nil
}
