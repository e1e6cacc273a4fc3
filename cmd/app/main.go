package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wichananm65/chaosshop-storefront/internal/cart"
	"github.com/wichananm65/chaosshop-storefront/internal/config"
	"github.com/wichananm65/chaosshop-storefront/internal/interface/http/router"
	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/metrics"
	"github.com/wichananm65/chaosshop-storefront/internal/order"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"github.com/wichananm65/chaosshop-storefront/internal/session"
	"github.com/wichananm65/chaosshop-storefront/internal/upstream"
	"go.uber.org/zap"
)

const janitorInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.Addr),
		zap.String("inventory_url", cfg.InventoryURL),
		zap.String("order_url", cfg.OrderURL),
	)

	m := metrics.New()
	inventoryClient, err := upstream.NewClient(upstream.Config{
		Service:  "inventory",
		BaseURL:  cfg.InventoryURL,
		Timeout:  cfg.UpstreamTimeout,
		Observer: m,
	})
	if err != nil {
		log.Fatal("Failed to create inventory client", zap.Error(err))
	}
	orderClient, err := upstream.NewClient(upstream.Config{
		Service:  "order",
		BaseURL:  cfg.OrderURL,
		Timeout:  cfg.UpstreamTimeout,
		Observer: m,
	})
	if err != nil {
		log.Fatal("Failed to create order client", zap.Error(err))
	}

	carts := cart.NewService(cart.NewInMemoryRepository())
	app := router.New(router.Deps{
		Logger:           log,
		Metrics:          m,
		Issuer:           session.NewIssuer(cfg.Session.Secret, cfg.Session.TTL),
		Products:         product.NewService(product.NewInventoryRepository(inventoryClient), m),
		Carts:            carts,
		Orders:           order.NewService(carts, order.NewHTTPSubmitter(orderClient), m),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	// a cart is unreachable once its session token has expired
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	defer cancel()
	go carts.RunJanitor(ctx, cfg.Session.TTL, janitorInterval)

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancel()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
