package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kwame-owusu/staybay/internal/models"
)

// MongoStore implements Store on a MongoDB replica set using sessions. Each
// RunTransaction call is a single attempt; the server aborts conflicting
// commits, which we map to ErrConflict so WithRetry can re-run the whole
// read-compute-write sequence.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, dbName: dbName}
}

func (ms *MongoStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if ms.client == nil {
		return ErrUnavailable
	}

	sess, err := ms.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(); err != nil {
			return mapTxnError(err)
		}

		tx := &mongoTx{db: ms.client.Database(ms.dbName)}
		if err := fn(sc, tx); err != nil {
			_ = sess.AbortTransaction(sc)
			return err
		}

		if err := sess.CommitTransaction(sc); err != nil {
			return mapTxnError(err)
		}
		return nil
	})
}

// mapTxnError translates the driver's transient transaction labels into the
// retryable ErrConflict sentinel.
func mapTxnError(err error) error {
	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		if srvErr.HasErrorLabel("TransientTransactionError") ||
			srvErr.HasErrorLabel("UnknownTransactionCommitResult") {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}

type mongoTx struct {
	db *mongo.Database
}

func (t *mongoTx) GetHotel(ctx context.Context, hotelID uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	err := t.db.Collection(models.HotelColName).
		FindOne(ctx, bson.M{"id": hotelID}).
		Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hotel: %w", err)
	}
	return &hotel, nil
}

func (t *mongoTx) UpdateHotelRating(ctx context.Context, hotelID uuid.UUID, avgRating float64, reviewCount int) error {
	res, err := t.db.Collection(models.HotelColName).UpdateOne(ctx,
		bson.M{"id": hotelID},
		bson.M{"$set": bson.M{
			"avg_rating":   avgRating,
			"review_count": reviewCount,
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTx) GetReview(ctx context.Context, hotelID, customerID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := t.db.Collection(models.ReviewColName).
		FindOne(ctx, bson.M{"hotel_id": hotelID, "customer_id": customerID}).
		Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read review: %w", err)
	}
	return &review, nil
}

func (t *mongoTx) PutReview(ctx context.Context, review *models.Review) error {
	_, err := t.db.Collection(models.ReviewColName).ReplaceOne(ctx,
		bson.M{"hotel_id": review.HotelID, "customer_id": review.CustomerID},
		review, options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write review: %w", err)
	}
	return nil
}

func (t *mongoTx) DeleteReview(ctx context.Context, hotelID, customerID uuid.UUID) error {
	res, err := t.db.Collection(models.ReviewColName).
		DeleteOne(ctx, bson.M{"hotel_id": hotelID, "customer_id": customerID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTx) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := t.db.Collection(models.RoomColName).
		FindOne(ctx, bson.M{"id": roomID}).
		Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read room: %w", err)
	}
	return &room, nil
}

// DecrementRoomQuantity applies an atomic $inc by -amount, guarded so an
// interleaved decrement cannot push quantity negative. A non-match after the
// transactional read means the document moved under us; retry.
func (t *mongoTx) DecrementRoomQuantity(ctx context.Context, roomID uuid.UUID, amount int) error {
	res, err := t.db.Collection(models.RoomColName).UpdateOne(ctx,
		bson.M{"id": roomID, "quantity": bson.M{"$gte": amount}},
		bson.M{
			"$inc": bson.M{"quantity": -amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement room quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}
