// Package database owns the connection to the MongoDB document store.
package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	// ErrNotConnected is returned when the handle is requested before Connect succeeded.
	ErrNotConnected = errors.New("database: not connected")

	// ErrAlreadyConnected is returned when Connect is called a second time.
	ErrAlreadyConnected = errors.New("database: already connected")

	// ErrConnection is wrapped by every failure to reach or authenticate against the server.
	ErrConnection = errors.New("database: connection failed")
)

// Gateway holds the single client connection of the process. It is connected once at startup
// and only read afterwards, so handlers may share it without locking.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

// New returns a gateway that is not connected yet.
func New() *Gateway {
	return &Gateway{}
}

// Connect establishes the connection to the server at uri and selects the database with the
// given name. The primary is pinged so that network and authentication problems surface here
// instead of on the first request.
func (g *Gateway) Connect(ctx context.Context, uri string, databaseName string) error {
	if g.db != nil {
		return ErrAlreadyConnected
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return errors.Wrapf(ErrConnection, "%v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return errors.Wrapf(ErrConnection, "%v", err)
	}
	g.client = client
	g.db = client.Database(databaseName)
	return nil
}

// Database returns the handle to the selected database.
func (g *Gateway) Database() (*mongo.Database, error) {
	if g == nil || g.db == nil {
		return nil, ErrNotConnected
	}
	return g.db, nil
}

// Disconnect closes the connection. Calling it on a gateway that never connected is a no-op.
func (g *Gateway) Disconnect(ctx context.Context) error {
	if g == nil || g.client == nil {
		return nil
	}
	err := g.client.Disconnect(ctx)
	g.client, g.db = nil, nil
	return errors.Wrap(err, "database: disconnect")
}
