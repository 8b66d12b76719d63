package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pos-service/internal/api/http"
	"github.com/spec-kit/pos-service/internal/api/http/handlers"
	"github.com/spec-kit/pos-service/internal/config"
	"github.com/spec-kit/pos-service/internal/observability"
	"github.com/spec-kit/pos-service/internal/persistence"
	"github.com/spec-kit/pos-service/internal/repository"
	"github.com/spec-kit/pos-service/internal/security"
	"github.com/spec-kit/pos-service/internal/service"
	"github.com/spec-kit/pos-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var rdb *persistence.Redis
	var windows security.WindowStore
	if cfg.RateLimit.Backend == "redis" {
		rdb = persistence.NewRedis(cfg.Redis, logger)
		defer rdb.Close()
		windows = security.NewRedisStore(rdb.Client)
	} else {
		windows = security.NewMemoryStore()
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	supplierRepo := repository.NewSupplierRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	orderRepo := repository.NewPurchaseOrderRepository(pool)
	loanRepo := repository.NewLoanRepository(pool)
	borrowedRepo := repository.NewBorrowedItemRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	authService := service.NewAuthService(*cfg, userRepo)

	images, err := storage.NewImageStore(afero.NewOsFs(), cfg.Storage.ImageDir)
	if err != nil {
		logger.Fatal("failed to init image store", zap.Error(err))
	}

	gate := security.NewGate(
		authService.TokenManager(),
		security.DefaultPolicy(),
		security.NewLimiter(windows, security.DefaultLimits()),
	)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 5 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Gate:           gate,
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rdb),
		Auth:           handlers.NewAuthHandler(authService),
		Products:       handlers.NewProductsHandler(productRepo, images),
		Images:         handlers.NewImagesHandler(images),
		Categories:     handlers.NewCategoriesHandler(categoryRepo),
		Suppliers:      handlers.NewSuppliersHandler(supplierRepo),
		Sales:          handlers.NewSalesHandler(saleRepo),
		Expenses:       handlers.NewExpensesHandler(expenseRepo),
		PurchaseOrders: handlers.NewPurchaseOrdersHandler(orderRepo),
		Loans:          handlers.NewLoansHandler(loanRepo),
		BorrowedItems:  handlers.NewBorrowedItemsHandler(borrowedRepo),
		Users:          handlers.NewUsersHandler(authService),
		Settings:       handlers.NewSettingsHandler(settingsRepo),
		Reports:        handlers.NewReportsHandler(reportRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
