package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestDatabaseBeforeConnect expects the handle lookup to fail on a fresh gateway.
func TestDatabaseBeforeConnect(t *testing.T) {
	db, err := New().Database()
	assert.Nil(t, db)
	assert.True(t, errors.Is(err, ErrNotConnected))
}

// TestDatabaseOnNilGateway expects a nil gateway to behave like an unconnected one.
func TestDatabaseOnNilGateway(t *testing.T) {
	var g *Gateway
	_, err := g.Database()
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.NoError(t, g.Disconnect(context.Background()))
}

// TestConnectInvalidURI expects a malformed URI to be reported as a connection error without
// ever reaching the network.
func TestConnectInvalidURI(t *testing.T) {
	g := New()
	err := g.Connect(context.Background(), "invalid://localhost", "test")
	assert.True(t, errors.Is(err, ErrConnection))
	_, err = g.Database()
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func TestDisconnectWithoutConnect(t *testing.T) {
	assert.NoError(t, New().Disconnect(context.Background()))
}
