package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jcmexdev/storefront/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/storefront/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/coordinator"
	sagasqlite "github.com/jcmexdev/storefront/internal/coordinator/sagalog/sqlite"
	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/ledgerv1"
	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	"github.com/jcmexdev/storefront/internal/order-service/estimator"
	"github.com/jcmexdev/storefront/internal/order-service/progression"
	paymentapp "github.com/jcmexdev/storefront/internal/payment-service/app"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront/internal/store"
)

func main() {
	telemetry.InitLogger("api-gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}

	shutdown, err := telemetry.SetupTracer(ctx, cfg.OTel)
	if err != nil {
		fatal("failed to initialise tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	db, err := store.Open(ctx, &cfg.DB)
	if err != nil {
		fatal("failed to open database", err)
	}
	defer db.Close()

	// validated by config.Load
	loc, _ := cfg.Checkout.Location()
	shippingRate, _ := cfg.Checkout.ShippingRateDecimal()

	if err := os.MkdirAll(filepath.Dir(cfg.SagaLog.Path), 0o755); err != nil {
		fatal("failed to create checkout log directory", err)
	}
	sagaLog, err := sagasqlite.Open(ctx, cfg.SagaLog.Path)
	if err != nil {
		fatal("failed to open checkout log", err)
	}
	defer sagaLog.Close()

	idemCache, carts := cacheAndCarts(cfg.Redis)

	ledger := inventoryservice.NewLedger(db)
	stock := service.NewLocalStockAdmin(ledger)
	if cfg.Inventory.Addr != "" {
		conn := createGRPCConn(cfg.Inventory.Addr)
		defer conn.Close()
		stock = service.NewGRPCStockAdmin(ledgerv1.NewLedgerClient(conn))
		slog.Info("stock administration via inventory-service", "addr", cfg.Inventory.Addr)
	}

	orderRepo := orderapp.NewRepository(loc)
	orders := orderapp.NewService(db, orderRepo, progression.NewEngine(loc, time.Now))
	checkout := coordinator.NewCheckoutService(coordinator.Deps{
		DB:       db,
		Ledger:   ledger,
		Orders:   orderRepo,
		Loads:    estimator.NewLoadReader(loc),
		Payments: paymentapp.NewProcessor(),
		Carts:    carts,
		Cache:    idemCache,
		Log:      sagaLog,
	}, coordinator.Config{
		ShippingRate:   shippingRate,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
	})

	handler := httpx.NewHandler(orders, checkout, stock, carts)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("api gateway running", "addr", cfg.HTTP.Addr, "db", db.Dialect)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("http server failed", err)
	}
}

// cacheAndCarts picks Redis when configured, the in-process stores
// otherwise.
func cacheAndCarts(cfg config.RedisConfig) (cache.Cache, cart.Store) {
	if cfg.Addr == "" {
		slog.Warn("redis.addr not set, using in-memory cart and idempotency cache")
		return cache.NewMemoryCache("checkout"), cart.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	return cache.NewRedisCache(client, "checkout"), cart.NewRedisStore(client)
}

func createGRPCConn(addr string) *grpc.ClientConn {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(interceptors.UnaryClientInterceptor()),
	)
	if err != nil {
		fatal("could not connect to "+addr, err)
	}
	return conn
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
