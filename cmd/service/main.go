package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-api/internal/config"
	"gitlab.com/dirk.krummacker/contacts-api/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-api/internal/service"
	"gitlab.com/dirk.krummacker/contacts-api/internal/store"
)

// Usage example on the command line:
// > MONGODB_URI=mongodb://localhost:27017 DB_NAME=contacts PORT=8080 GIN_LOGGING=OFF go run main.go
func main() {
	os.Exit(run())
}

func run() int {
	log := logger.Must(os.Getenv("APP_ENV"))
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return 1
	}
	log.Info("boot",
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("has_uri", cfg.MongoURI != ""),
		zap.String("uri_prefix", uriPrefix(cfg.MongoURI)),
		zap.String("db", cfg.DBName),
		zap.Int("port", cfg.Port),
	)
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	contacts, closeStore, err := store.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Error("failed to start server", zap.Error(err))
		return 1
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Warn("could not close the store", zap.Error(err))
		}
	}()

	srv := http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: service.SetupHttpRouter(contacts, log, service.Options{
			Production:     cfg.Production(),
			RequestLogging: cfg.RequestLogging(),
		}),
		ReadHeaderTimeout: 15 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to listen and serve", zap.Error(err))
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("could not shutdown the server", zap.Error(err))
		}
		log.Info("server closed")
	}
	return 0
}

// uriPrefix returns the beginning of the connection URI, enough to recognize the host without
// printing credentials in full.
func uriPrefix(uri string) string {
	const n = 25
	if len(uri) <= n {
		return uri
	}
	return uri[:n] + "..."
}
