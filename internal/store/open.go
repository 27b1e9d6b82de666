package store

import (
	"context"

	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contacts-api/internal/config"
	"gitlab.com/dirk.krummacker/contacts-api/internal/database"
)

// CloseFunc releases whatever a backend holds on to.
type CloseFunc func(ctx context.Context) error

// Open builds the backend selected by cfg.StoreDriver. For MongoDB this is the single place
// where the connection of the process is established.
func Open(ctx context.Context, cfg *config.Config) (ContactStore, CloseFunc, error) {
	switch cfg.StoreDriver {
	case config.DriverMongoDB, "":
		gateway := database.New()
		if err := gateway.Connect(ctx, cfg.MongoURI, cfg.DBName); err != nil {
			return nil, nil, err
		}
		return NewMongoContacts(gateway), gateway.Disconnect, nil
	case config.DriverMySQL:
		s, err := OpenMySQL(MySQLDSN(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName))
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	case config.DriverMemory:
		return NewMemoryContacts(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, errors.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
