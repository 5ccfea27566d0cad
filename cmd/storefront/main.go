package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/foliage-shop/internal/cart"
	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/config"
	"github.com/nikolayk812/foliage-shop/internal/database"
	"github.com/nikolayk812/foliage-shop/internal/handler"
	"github.com/nikolayk812/foliage-shop/internal/handler/middleware"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"github.com/nikolayk812/foliage-shop/internal/logger"
	"github.com/nikolayk812/foliage-shop/internal/notify"
	"github.com/nikolayk812/foliage-shop/internal/port"
	"github.com/nikolayk812/foliage-shop/internal/preference"
	"github.com/nikolayk812/foliage-shop/internal/presentation"
	"github.com/nikolayk812/foliage-shop/internal/repository"
	"github.com/nikolayk812/foliage-shop/internal/server"
	"github.com/nikolayk812/foliage-shop/internal/shop"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config.FromEnv: %v", err)
	}

	lg := logger.New(cfg.Logger)
	defer func() {
		_ = lg.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("storefront stopped with error", zap.Error(err))
		stop()
		_ = lg.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	storage, closeStorage, err := openStorage(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStorage()

	products, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("catalog.Default: %w", err)
	}

	texts, err := i18n.NewCatalog()
	if err != nil {
		return fmt.Errorf("i18n.NewCatalog: %w", err)
	}

	center := notify.NewCenter(notify.Config{
		MaxOwners:    cfg.Notifications.MaxOwners,
		TrayCapacity: cfg.Notifications.TrayCapacity,
		TrayTTL:      cfg.Notifications.TrayTTL,
	}, lg)

	service := shop.NewService(
		cart.NewStore(storage, lg),
		preference.NewStore(storage, lg),
		products,
		center,
		texts,
		lg,
	)

	h := handler.New(service, presentation.NewSync(texts), storage, lg)
	router := handler.NewRouter(h, middleware.CookieOptions{
		Secure: cfg.Cookie.Secure,
		MaxAge: cfg.Cookie.MaxAge,
	}, lg)

	lg.Info("storefront starting",
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("products", len(products.Products())))

	return server.New(cfg.HTTP, router, lg).Run(ctx)
}

func openStorage(ctx context.Context, cfg *config.Config, lg *zap.Logger) (port.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if err := database.Migrate(cfg.Postgres, lg); err != nil {
			return nil, nil, fmt.Errorf("database.Migrate: %w", err)
		}

		pool, err := database.Connect(ctx, cfg.Postgres, lg)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Connect: %w", err)
		}
		return repository.NewStorage(pool), pool.Close, nil

	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis, lg)
		if err != nil {
			return nil, nil, fmt.Errorf("database.ConnectRedis: %w", err)
		}
		return repository.NewRedisStorage(client, cfg.Redis.TTL), func() { _ = client.Close() }, nil

	default:
		return repository.NewMemoryStorage(), func() {}, nil
	}
}
