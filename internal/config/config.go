// Package config loads the service configuration from environment variables. A `.env` file in
// the working directory is loaded into the environment first, if present.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	DriverMongoDB = "mongodb"
	DriverMySQL   = "mysql"
	DriverMemory  = "memory"

	DefaultPort = 8080
)

// Config is the root configuration object of the service. Every koanf key is the lower-cased
// name of the environment variable it is read from.
type Config struct {
	Env         string `koanf:"app_env"`
	Port        int    `koanf:"port"         validate:"gte=0,lte=65535"`
	StoreDriver string `koanf:"store_driver" validate:"oneof=mongodb mysql memory"`
	GinLogging  string `koanf:"gin_logging"`

	MongoURI string `koanf:"mongodb_uri" validate:"required_if=StoreDriver mongodb"`
	DBName   string `koanf:"db_name"     validate:"required_unless=StoreDriver memory"`

	// MySQL connection, only used by the mysql store driver.
	DBHost     string `koanf:"dbhost" validate:"required_if=StoreDriver mysql"`
	DBUser     string `koanf:"dbuser" validate:"required_if=StoreDriver mysql"`
	DBPassword string `koanf:"dbpwd"`
}

// Production reports whether the service runs in production. Error traces are hidden from
// clients in production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// RequestLogging reports whether every HTTP request is logged.
func (c *Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}

// Load reads the configuration from the environment, applies defaults and validates it. A
// missing required variable is reported by its environment variable name.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverMongoDB
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator builds a validator that reports fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.ToUpper(field.Tag.Get("koanf"))
	})
	return v
}

// describe turns validation errors into one message naming every offending variable.
func describe(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, "config validation failed")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required", "required_if", "required_unless":
			messages = append(messages, fmt.Sprintf("missing required env var: %s", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("invalid env var %s=%v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
