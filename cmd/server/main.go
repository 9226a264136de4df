package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/rl1809/storefront-cart/internal/adapter/catalog"
	"github.com/rl1809/storefront-cart/internal/adapter/handler"
	"github.com/rl1809/storefront-cart/internal/adapter/notify"
	"github.com/rl1809/storefront-cart/internal/adapter/storage"
	"github.com/rl1809/storefront-cart/internal/config"
	"github.com/rl1809/storefront-cart/internal/core/service"
	"github.com/rl1809/storefront-cart/internal/port"
	"github.com/rl1809/storefront-cart/internal/telemetry"
)

const (
	serviceName    = "storefront-cart"
	serviceVersion = "v1.0.0"
)

type cartStore interface {
	port.Store
	port.HealthChecker
	Close() error
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, serviceName, serviceVersion)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		shutdownTracing(ctx)
		log.Fatalf("failed to listen: %v", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	log.Printf("using %s store", cfg.StoreBackend)

	catalogClient, err := catalog.NewHTTPClient(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.CatalogTimeout})
	if err != nil {
		store.Close()
		log.Fatalf("failed to create catalog client: %v", err)
	}

	cartManager, err := service.NewCartManager(ctx, catalogClient, store, notify.NewLogNotifier(nil),
		service.WithStorageKey(cfg.StorageKey),
	)
	if err != nil {
		store.Close()
		log.Fatalf("failed to load cart: %v", err)
	}
	log.Printf("loaded cart %q with %d items", cartManager.StorageKey(), len(cartManager.Cart()))

	// Initialize gRPC server
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	handler.NewHealthService(store).Register(grpcServer)

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	router := handler.NewRouter(handler.NewHTTPHandler(cartManager, store))
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	if err := store.Close(); err != nil {
		log.Printf("failed to close store: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("failed to flush traces: %v", err)
	}
	log.Println("connections closed")
}

func openStore(ctx context.Context, cfg config.Config) (cartStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemoryAdapter(), nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 10,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisAdapter(rdb), nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping mysql: %w", err)
		}

		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return adapter, nil

	case config.BackendPostgres:
		gdb, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		adapter := storage.NewGormAdapter(gdb)
		if err := adapter.EnsureSchema(ctx); err != nil {
			adapter.Close()
			return nil, err
		}
		return adapter, nil

	default:
		return storage.NewFileAdapter(cfg.StorePath)
	}
}
