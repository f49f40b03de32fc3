package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/qrmenu/config"
)

// ConnectMongo dials MONGO_URI and returns the MONGO_DATABASE handle.
// The caller disconnects the returned client.
func ConnectMongo(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	return OpenMongo(ctx, config.MongoURI(), config.MongoDatabase())
}

func OpenMongo(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: mongo ping: %w", err)
	}

	return client, client.Database(name), nil
}
