package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Config holds everything the cart service reads from the environment.
type Config struct {
	HTTPAddr string
	GRPCAddr string

	CatalogBaseURL string
	CatalogTimeout time.Duration // 0 means no timeout

	StorageKey   string
	StoreBackend string
	StorePath    string // file backend
	RedisAddr    string
	MySQLDSN     string
	DatabaseURL  string // postgres backend

	OTLPEndpoint string // empty disables tracing
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		GRPCAddr:       getenv("GRPC_ADDR", ":50051"),
		CatalogBaseURL: getenv("CATALOG_BASE_URL", "http://localhost:3333"),
		StorageKey:     getenv("CART_STORAGE_KEY", "@RocketShoes:cart"),
		StoreBackend:   getenv("STORE_BACKEND", BackendFile),
		StorePath:      getenv("STORE_PATH", "data/cart-store.json"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:       getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=true"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CATALOG_TIMEOUT must be a duration: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("CATALOG_TIMEOUT must not be negative")
		}
		cfg.CatalogTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.CatalogBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_BASE_URL must be an absolute url, got %q", c.CatalogBaseURL)
	}

	switch c.StoreBackend {
	case BackendFile:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required")
		}
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	return nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
