package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	ProfileTable  = "profiles"
	DefaultDBName = "staybay"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client acting under the given
// access token, so profile reads/writes run with the user's row-level policies.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = DefaultDBName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the indexes the repositories and the transactional
// procedures rely on: unique document identities, the per-customer review
// identity, and the order idempotency key.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		col  string
		keys bson.D
		opts *options.IndexOptions
	}{
		{HotelColName, bson.D{{Key: "id", Value: 1}}, unique},
		{RoomColName, bson.D{{Key: "id", Value: 1}}, unique},
		{RoomColName, bson.D{{Key: "hotel_id", Value: 1}}, nil},
		{FoodColName, bson.D{{Key: "id", Value: 1}}, unique},
		{FoodColName, bson.D{{Key: "hotel_id", Value: 1}}, nil},
		{ReviewColName, bson.D{{Key: "hotel_id", Value: 1}, {Key: "customer_id", Value: 1}}, unique},
		{OrderColName, bson.D{{Key: "session_id", Value: 1}}, unique},
		{OrderColName, bson.D{{Key: "customer_id", Value: 1}}, nil},
		{OrderColName, bson.D{{Key: "owner_id", Value: 1}}, nil},
		{WithdrawalColName, bson.D{{Key: "owner_id", Value: 1}}, nil},
	}

	for _, spec := range specs {
		col, err := mdb.GetCollection(ctx, spec.col)
		if err != nil {
			return err
		}
		model := mongo.IndexModel{Keys: spec.keys, Options: spec.opts}
		if _, err := col.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %v", spec.col, err)
		}
	}
	return nil
}
