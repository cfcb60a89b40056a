package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WithdrawalColName = "withdrawals"

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusDenied   WithdrawalStatus = "denied"
)

// Withdrawal is an owner's payout request. A single-field state machine:
// pending -> approved|denied, decided by an admin.
type Withdrawal struct {
	ID            uuid.UUID        `bson:"id" json:"id"`
	OwnerID       uuid.UUID        `bson:"owner_id" json:"owner_id" validate:"required"`
	Amount        float64          `bson:"amount" json:"amount" validate:"required,gt=0"`
	Status        WithdrawalStatus `bson:"status" json:"status"`
	RequestDate   time.Time        `bson:"request_date" json:"request_date"`
	ProcessedDate *time.Time       `bson:"processed_date,omitempty" json:"processed_date,omitempty"`
}

type WithdrawalsRepo interface {
	CreateWithdrawal(ctx context.Context, w *Withdrawal) (*Withdrawal, error)
	ListWithdrawalsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Withdrawal, error)
	ListWithdrawals(ctx context.Context, status WithdrawalStatus) ([]*Withdrawal, error)
	// ProcessWithdrawal decides a pending request; returns false if the
	// request was not pending (already decided or missing).
	ProcessWithdrawal(ctx context.Context, id uuid.UUID, to WithdrawalStatus) (bool, error)
}

func (mdb *MongodbRepo) CreateWithdrawal(ctx context.Context, w *Withdrawal) (*Withdrawal, error) {
	col, err := mdb.GetCollection(ctx, WithdrawalColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to insert withdrawal: %v", err)
	}
	return w, nil
}

func (mdb *MongodbRepo) ListWithdrawalsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Withdrawal, error) {
	return mdb.listWithdrawals(ctx, bson.M{"owner_id": ownerID})
}

func (mdb *MongodbRepo) ListWithdrawals(ctx context.Context, status WithdrawalStatus) ([]*Withdrawal, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return mdb.listWithdrawals(ctx, filter)
}

func (mdb *MongodbRepo) listWithdrawals(ctx context.Context, filter bson.M) ([]*Withdrawal, error) {
	col, err := mdb.GetCollection(ctx, WithdrawalColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "request_date", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %v", err)
	}
	defer cursor.Close(ctx)

	var withdrawals []*Withdrawal
	for cursor.Next(ctx) {
		var w Withdrawal
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("error decoding withdrawal: %v", err)
		}
		withdrawals = append(withdrawals, &w)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return withdrawals, nil
}

func (mdb *MongodbRepo) ProcessWithdrawal(ctx context.Context, id uuid.UUID, to WithdrawalStatus) (bool, error) {
	if to != WithdrawalStatusApproved && to != WithdrawalStatusDenied {
		return false, fmt.Errorf("invalid target status: %s", to)
	}

	col, err := mdb.GetCollection(ctx, WithdrawalColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	res, err := col.UpdateOne(ctx,
		bson.M{"id": id, "status": WithdrawalStatusPending},
		bson.M{"$set": bson.M{"status": to, "processed_date": now}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to process withdrawal: %v", err)
	}
	return res.ModifiedCount > 0, nil
}
