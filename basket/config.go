package basket

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config holds the environment-driven settings.
type Config struct {
	Surcharge decimal.Decimal `env:"BASKET_SURCHARGE" envDefault:"2.00"`
	LogLevel  string          `env:"LOG_LEVEL"        envDefault:"info"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(nil)
}

// LoadConfigFrom reads Config from environ instead of the process environment
// when environ is non-nil.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	var cfg Config

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	err := env.ParseWithOptions(&cfg, opts)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse basket config: %w", err)
	}

	if cfg.Surcharge.IsNegative() {
		return Config{}, fmt.Errorf("%w: %s", errNegativeSurcharge, cfg.Surcharge)
	}

	return cfg, nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}

	return level
}

// unexported variables.
var (
	errNegativeSurcharge = errors.New("surcharge must not be negative")
)
