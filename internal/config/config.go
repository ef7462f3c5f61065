package config

import (
	"errors"
	"os"
	"time"

	"Coil/internal/core"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env             core.Environment `envconfig:"ENV" default:"development"`
	Addr            string           `envconfig:"ADDR" default:":8443"`
	TLSCert         string           `envconfig:"TLS_CERT"`
	TLSKey          string           `envconfig:"TLS_KEY"`
	TokenKey        string           `envconfig:"TOKEN_KEY" required:"true"`
	DatabaseURL     string           `envconfig:"DATABASE_URL" default:"user=postgres dbname=postgres password=password sslmode=disable"`
	RateLimit       float64          `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst       int              `envconfig:"RATE_BURST" default:"10"`
	ShutdownTimeout time.Duration    `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	ReportFont      string           `envconfig:"REPORT_FONT"`
}

const prefix = "COIL"

// Load reads an optional .env file and then the COIL_* environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
