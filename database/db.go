package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names in the toolmarket database.
const (
	ToolsCollection   = "tools"
	ReviewsCollection = "reviews"
	UsersCollection   = "users"
	OrdersCollection  = "orders"
	BlogsCollection   = "blogs"
)

// Connect opens the process wide client and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(dbName), nil
}

// Close disconnects the client, waiting at most five seconds.
func Close(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ClientPinger struct {
	client *mongo.Client
}

func NewPinger(client *mongo.Client) *ClientPinger {
	return &ClientPinger{client: client}
}

func (p *ClientPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
