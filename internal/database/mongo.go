package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"todoapi/internal/config"
)

var mongoConnect = mongo.Connect

// Mongo bundles the shared client with the application database.
// One instance is created at startup and handed to every repository.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects to MongoDB and blocks until the primary answers a ping.
// Commands are traced through otelmongo.
func NewMongo(ctx context.Context, c config.MongoConfig, log logrus.FieldLogger, maxTries int) (*Mongo, error) {
	if c.URI == "" || c.Name == "" {
		return nil, fmt.Errorf("invalid mongo config: uri and name are required")
	}

	opts := options.Client().
		ApplyURI(c.URI).
		SetAppName("todoapi").
		SetMonitor(otelmongo.NewMonitor())
	if c.ConnectTimeoutSec > 0 {
		timeout := time.Duration(c.ConnectTimeoutSec) * time.Second
		opts.SetConnectTimeout(timeout)
		opts.SetServerSelectionTimeout(timeout)
	}

	client, err := mongoConnect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	m := &Mongo{Client: client, DB: client.Database(c.Name)}
	if err := waitFor(ctx, log, "mongodb", maxTries, m.Ping); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return m, nil
}

// Ping checks the primary with a short timeout.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle on the named collection of the application database.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// Close disconnects the client, waiting for in-flight operations up to ctx.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
