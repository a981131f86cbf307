// Package config loads the runtime configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/odemir/go-teklif/internal/kvstore"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	LogJSON      bool   `envconfig:"LOG_JSON" default:"false"`
	ReadTimeout  int    `envconfig:"READ_TIMEOUT" default:"15"`
	WriteTimeout int    `envconfig:"WRITE_TIMEOUT" default:"15"`
	IdleTimeout  int    `envconfig:"IDLE_TIMEOUT" default:"60"`

	StoreDriver   string `envconfig:"STORE_DRIVER" default:"badger"`
	BadgerPath    string `envconfig:"BADGER_PATH" default:"./data"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	DatabaseDSN   string `envconfig:"DATABASE_DSN" default:"teklif.db"`
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("teklif", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: process environment")
	}
	return cfg, nil
}

// StoreOptions maps the config onto the kvstore selector.
func (c Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Driver:        c.StoreDriver,
		BadgerPath:    c.BadgerPath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		DatabaseDSN:   c.DatabaseDSN,
	}
}
