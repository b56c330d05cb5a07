package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the storefront client: where the backend and its
// image CDN live.
type Client struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	CDNURL         string        `env:"CDN_URL" envDefault:"http://localhost:8080/content"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	LogPath        string        `env:"LOG_PATH" envDefault:"storefront.log"`
}

// Server configures the reference backend.
type Server struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"./storefront.db"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"./internal/server/storage/migrations"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadClient() (Client, error) {
	var c Client
	if err := env.Parse(&c); err != nil {
		return Client{}, fmt.Errorf("failed to parse client config: %w", err)
	}
	return c, nil
}

func LoadServer() (Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return Server{}, fmt.Errorf("failed to parse server config: %w", err)
	}
	return s, nil
}
