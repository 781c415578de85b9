// Package config loads wildtrack settings from the environment. Values come
// from .env files (loaded via godotenv) and process environment variables,
// resolved through viper so either source works interchangeably.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wildtrack/wildtrack/pkg/errors"
)

// Settings holds the full runtime configuration.
type Settings struct {
	// MongoDB connection
	MongoURI     string
	DatabaseName string

	// HTTP server
	ServerHost string
	ServerPort int
	PathPrefix string

	// Optional NATS broker for alert events. Empty disables publishing.
	NATSURL string

	// Per-operation database timeout
	StoreTimeout time.Duration
}

// LoadEnvFiles loads environment variables from .env files. Variables
// already present in the environment are never overwritten, so the process
// environment wins over both files and .env (loaded first) wins over
// .env.local. Missing files are not an error.
func LoadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// Load reads settings from .env files and the environment. It returns a
// ConfigError when a required value is missing.
func Load() (*Settings, error) {
	LoadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("PATH_PREFIX", "/api/v1")
	v.SetDefault("STORE_TIMEOUT", "10s")

	// Required keys have no defaults; bind them explicitly so AutomaticEnv
	// resolves them even without a config file.
	for _, key := range []string{"MONGODB_URI", "MONGODB_DB_NAME", "NATS_URL"} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.NewConfigError("env", "failed to bind "+key, err)
		}
	}

	s := &Settings{
		MongoURI:     v.GetString("MONGODB_URI"),
		DatabaseName: v.GetString("MONGODB_DB_NAME"),
		ServerHost:   v.GetString("SERVER_HOST"),
		ServerPort:   v.GetInt("SERVER_PORT"),
		PathPrefix:   v.GetString("PATH_PREFIX"),
		NATSURL:      v.GetString("NATS_URL"),
		StoreTimeout: v.GetDuration("STORE_TIMEOUT"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that required settings are present and sane.
func (s *Settings) Validate() error {
	if s.MongoURI == "" {
		return errors.NewConfigError("mongodb", "MONGODB_URI is required", nil)
	}
	if s.DatabaseName == "" {
		return errors.NewConfigError("mongodb", "MONGODB_DB_NAME is required", nil)
	}
	if s.ServerPort <= 0 || s.ServerPort > 65535 {
		return errors.NewConfigError("server", "SERVER_PORT must be a valid port number", nil)
	}
	if s.StoreTimeout <= 0 {
		s.StoreTimeout = 10 * time.Second
	}
	return nil
}
