package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the process configuration of the vitalsim server.
type Config struct {
	HTTPAddr      string `env:"VITALSIM_HTTP_ADDR" envDefault:":8080"`
	Store         string `env:"VITALSIM_STORE" envDefault:"memory"`
	DBDSN         string `env:"VITALSIM_DB_DSN"`
	MigrationsDir string `env:"VITALSIM_MIGRATIONS_DIR"`
	RandomSeed    uint64 `env:"VITALSIM_RANDOM_SEED"`
	OTelEndpoint  string `env:"VITALSIM_OTEL_ENDPOINT"`
	OTelEnabled   bool   `env:"VITALSIM_OTEL_ENABLED" envDefault:"true"`
}

var ErrInvalidConfig = errors.New("invalid config")

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set win over the file.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warn: load .env: %v", err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("%w: VITALSIM_DB_DSN is required when VITALSIM_STORE=postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	return nil
}
