package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	backofficeapp "github.com/nordiclux/storefront/internal/backoffice/app"
	cartapp "github.com/nordiclux/storefront/internal/cart/app"
	catalogapp "github.com/nordiclux/storefront/internal/catalog/app"
	"github.com/nordiclux/storefront/internal/chat"
	checkoutapp "github.com/nordiclux/storefront/internal/checkout/app"
	"github.com/nordiclux/storefront/internal/checkout/infra/adapter"
	"github.com/nordiclux/storefront/internal/httpapi"
	"github.com/nordiclux/storefront/internal/importer"
	orderapp "github.com/nordiclux/storefront/internal/order/app"
	"github.com/nordiclux/storefront/pkg/config"
	"github.com/nordiclux/storefront/pkg/kvstore"
	"github.com/nordiclux/storefront/pkg/logger"
	"github.com/nordiclux/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	if err := run(cfg, log); err != nil {
		log.Error("fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var store kvstore.Store
	if cfg.DataPath == "" {
		store = kvstore.NewMemory()
		log.Warn("no data path configured, state will not survive restarts")
	} else {
		db, err := kvstore.Open(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		store = db
	}

	catalog := catalogapp.NewService(store, log)
	cart := cartapp.NewService(store, log)
	orders := orderapp.NewService(store, log)
	categories := backofficeapp.NewCategories(store, log)
	customers := backofficeapp.NewCustomers(store, log)
	seo := backofficeapp.NewSEO(store, log)
	users := backofficeapp.NewUsers(store, log)
	auth := backofficeapp.NewAuth(users, store, log)

	loaders := []func() error{
		catalog.Load, cart.Load, orders.Load,
		categories.Load, customers.Load, seo.Load, users.Load, auth.Load,
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return fmt.Errorf("restore state: %w", err)
		}
	}

	cartReader := adapter.NewCartServiceReader(cart)
	wizard := checkoutapp.NewWizard(cartReader, store, log)
	payment := checkoutapp.NewPayment(store, orders, adapter.NewCustomerRoster(customers), cartReader, log)

	server := httpapi.New(httpapi.Services{
		Catalog:    catalog,
		Cart:       cart,
		Wizard:     wizard,
		Payment:    payment,
		Importer:   importer.New(catalog, log),
		Orders:     orders,
		Categories: categories,
		Customers:  customers,
		SEO:        seo,
		Users:      users,
		Auth:       auth,
		Chat:       chat.New(cfg.SupportPhone),
	}, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		return server.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		return server.App().ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}
