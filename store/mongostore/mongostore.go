// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"healthtrack-server/store"
)

const (
	usersCollection       = "users"
	healthDataCollection  = "healthData"
	exercisesCollection   = "exercises"
	medicationsCollection = "medications"
)

type Options struct {
	URI      string
	Database string
	// Transactions wraps two-document friendship writes in a multi-document
	// transaction. Requires a replica set or mongos.
	Transactions bool
}

// Open connects, pings and prepares indexes, returning a store bundle whose
// Close disconnects the client.
func Open(ctx context.Context, opts Options, log *zap.Logger) (*store.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(opts.Database)
	ensureIndexes(ctx, db, log)

	log.Info("mongo_connected",
		zap.String("db", opts.Database),
		zap.Bool("transactions", opts.Transactions),
	)

	return &store.Store{
		Users:         NewUserStore(client, db.Collection(usersCollection), opts.Transactions, log),
		HealthRecords: &HealthStore{col: db.Collection(healthDataCollection)},
		Exercises:     &ExerciseStore{col: db.Collection(exercisesCollection)},
		Medications:   &MedicationStore{col: db.Collection(medicationsCollection)},
		Close:         client.Disconnect,
	}, nil
}

// Best-effort indexes; a failure is logged and startup continues.
func ensureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		healthDataCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}}},
		},
		exercisesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		},
		medicationsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Warn("mongo_index_failed", zap.String("collection", name), zap.Error(err))
		}
	}
}

// objectID parses a hex id; malformed ids cannot exist, so they are reported
// as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
