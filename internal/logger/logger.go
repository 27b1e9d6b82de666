// Package logger builds the zap logger shared by the service and its tools.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a JSON logger for production and a human-readable console logger for every
// other environment.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// Must is like New but falls back to a no-op logger instead of failing, for callers that have
// nowhere to report the error.
func Must(env string) *zap.Logger {
	log, err := New(env)
	if err != nil {
		return zap.NewNop()
	}
	return log
}
