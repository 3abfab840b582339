// Package mongodb implements the user and job stores on a MongoDB database.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"jobboard/config"
	"jobboard/internal/domain/lifecycle"
	"jobboard/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	usersCollection = "users"
	jobsCollection  = "jobs"

	defaultConnectTimeout = 10 * time.Second
)

// New connects to MongoDB and registers lifecycle hooks that ping the
// server and create indexes on start and disconnect on stop.
func New(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*mongo.Database, error) {
	if cfg.Mongo == nil || cfg.Mongo.URI == "" {
		return nil, errors.New("mongo.uri must be configured for the mongo storage driver")
	}

	connectTimeout := cfg.Mongo.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(connectTimeout).
		SetAppName(cfg.Env.ServiceName)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	db := client.Database(cfg.Mongo.Database)

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := EnsureIndexes(ctx, db); err != nil {
				return err
			}

			logger.Info("MongoDB connected", slog.String("database", db.Name()))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return client.Disconnect(ctx)
		},
	})

	return db, nil
}

// EnsureIndexes creates the unique email index and the job listing index.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create users email index")
	}

	_, err = db.Collection(jobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create jobs createdAt index")
	}

	return nil
}
