// Package config loads per-service configuration from environment
// variables using go-envconfig. Each binary has its own config type;
// Mongo and Redis sub-configs are shared.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Mongo struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sales_platform"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Identity configures the identity service binary.
type Identity struct {
	Port        string        `env:"PORT,         default=8081"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	LinkWorkers int           `env:"LINK_WORKERS, default=4"`

	ClientServiceURL string        `env:"CLIENT_SERVICE_URL, default=http://client-service:8084"`
	ClientTimeout    time.Duration `env:"CLIENT_TIMEOUT,     default=5s"`

	Mongo Mongo
}

// Gateway configures the edge gateway binary.
type Gateway struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	IdentityURL string `env:"IDENTITY_URL, default=http://identity-service:8081"`
	SalesURL    string `env:"SALES_URL,    default=http://sales-service:8082"`
	AssetsURL   string `env:"ASSETS_URL"`

	// PublicPaths bypass authentication entirely (prefix match).
	PublicPaths     []string      `env:"PUBLIC_PATHS,     default=/uploads"`
	ValidateTimeout time.Duration `env:"VALIDATE_TIMEOUT, default=3s"`
}

// Sales configures the sales service binary.
type Sales struct {
	Port     string `env:"PORT,      default=8082"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	OrderServiceURL string        `env:"ORDER_SERVICE_URL, default=http://order-service:8083"`
	OrderTimeout    time.Duration `env:"ORDER_TIMEOUT,     default=3s"`

	Mongo Mongo
	Redis Redis
}

func LoadIdentity(ctx context.Context) (*Identity, error) {
	return load[Identity](ctx)
}

func LoadGateway(ctx context.Context) (*Gateway, error) {
	return load[Gateway](ctx)
}

func LoadSales(ctx context.Context) (*Sales, error) {
	return load[Sales](ctx)
}

func load[T any](ctx context.Context) (*T, error) {
	var cfg T
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
