package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes that back every invariant the
// API promises: one user per email, one profile per user, one active
// assignment per (patient, nutritionist) pair, one meal plan and one
// progress report per (patient, week_start), and one active subscription
// per user. Inserts and updates that would break an invariant fail with
// a duplicate-key error, which handlers surface as 409. This replaces
// check-then-insert sequences that race under concurrent requests.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	database := client.Database(dbName)

	type spec struct {
		collection string
		models     []mongo.IndexModel
	}

	active := options.Index().SetUnique(true).
		SetPartialFilterExpression(bson.M{"active": true})
	activeStatus := options.Index().SetUnique(true).
		SetPartialFilterExpression(bson.M{"status": "active"})

	specs := []spec{
		{"users", []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}},
		{"patient_profiles", []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{"nutritionist_profiles", []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "verified", Value: 1}}},
		}},
		{"assignments", []mongo.IndexModel{
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "nutritionist_id", Value: 1}}, Options: active},
			{Keys: bson.D{{Key: "nutritionist_id", Value: 1}, {Key: "active", Value: 1}}},
		}},
		{"meal_plans", []mongo.IndexModel{
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "week_start", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "nutritionist_id", Value: 1}, {Key: "week_start", Value: -1}}},
		}},
		{"progress_reports", []mongo.IndexModel{
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "week_start", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{"subscriptions", []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: activeStatus},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		}},
	}

	for _, s := range specs {
		if _, err := database.Collection(s.collection).Indexes().CreateMany(ctx, s.models); err != nil {
			return err
		}
	}
	return nil
}
