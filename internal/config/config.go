package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// StoreBackend selects where the game snapshot lives:
	// "sqlite", "file", or "memory".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string `env:"DB_PATH" envDefault:"data/geodaily.db"`
	StorePath    string `env:"STORE_PATH" envDefault:"data/geodaily.json"`

	// RedisURL enables the shared image-of-the-day cache; empty falls
	// back to an in-process cache.
	RedisURL string `env:"REDIS_URL"`

	GeocoderURL       string `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent string `env:"GEOCODER_USER_AGENT" envDefault:"geodaily/1.0"`

	ImageAPIURL string `env:"IMAGE_API_URL" envDefault:"https://www.bing.com"`
	ImageMarket string `env:"IMAGE_MARKET" envDefault:"de-de"`

	// AdminPasswordHash is a bcrypt hash guarding the day-close scoring
	// endpoint. Empty leaves the endpoint open (fine for private games).
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
