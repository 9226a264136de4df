package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "GRPC_ADDR", "CATALOG_BASE_URL", "CATALOG_TIMEOUT",
		"CART_STORAGE_KEY", "STORE_BACKEND", "STORE_PATH", "REDIS_ADDR",
		"MYSQL_DSN", "DATABASE_URL", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "http://localhost:3333", cfg.CatalogBaseURL)
	assert.Equal(t, "@RocketShoes:cart", cfg.StorageKey)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, time.Duration(0), cfg.CatalogTimeout)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("CATALOG_TIMEOUT", "1500ms")
	t.Setenv("CART_STORAGE_KEY", "cart:web")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 1500*time.Millisecond, cfg.CatalogTimeout)
	assert.Equal(t, "cart:web", cfg.StorageKey)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=memory\nHTTP_ADDR=:9090\n"), 0o644))

	// godotenv only fills unset variables
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("HTTP_ADDR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":      {"STORE_BACKEND": "etcd"},
		"postgres without dsn": {"STORE_BACKEND": "postgres"},
		"bad timeout":          {"CATALOG_TIMEOUT": "soon"},
		"negative timeout":     {"CATALOG_TIMEOUT": "-1s"},
		"relative catalog url": {"CATALOG_BASE_URL": "localhost:3333"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
