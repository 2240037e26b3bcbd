package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/grocerybag/grocerybag/internal/auth"
	"github.com/grocerybag/grocerybag/internal/config"
	"github.com/grocerybag/grocerybag/internal/customer"
	"github.com/grocerybag/grocerybag/internal/feed"
	"github.com/grocerybag/grocerybag/internal/identity"
	"github.com/grocerybag/grocerybag/internal/middleware"
	"github.com/grocerybag/grocerybag/internal/notification"
	"github.com/grocerybag/grocerybag/internal/purchase"
	"github.com/grocerybag/grocerybag/internal/sale"
	"github.com/grocerybag/grocerybag/internal/supplier"
	"github.com/grocerybag/grocerybag/internal/transaction"
	"github.com/grocerybag/grocerybag/internal/uploads"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. In dev, a missing
// database or redis falls back to in-memory backends; anywhere else both are
// required.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Repositories
	var (
		identityRepo identity.Repository
		supplierRepo supplier.Repository
		customerRepo customer.Repository
		purchaseRepo purchase.Repository
		saleRepo     sale.Repository
		txlog        transaction.Log
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		supplierRepo = supplier.NewPostgresRepository(d.DB)
		customerRepo = customer.NewPostgresRepository(d.DB)
		purchaseRepo = purchase.NewPostgresRepository(d.DB)
		saleRepo = sale.NewPostgresRepository(d.DB)
		txlog = transaction.NewPostgresLog(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		supplierRepo = supplier.NewMemoryRepository()
		customerRepo = customer.NewMemoryRepository()
		purchaseRepo = purchase.NewMemoryRepository()
		saleRepo = sale.NewMemoryRepository()
		txlog = transaction.NewInMemory()
	}

	var otpStore auth.OTPStore
	if d.Cache != nil {
		otpStore = auth.NewRedisOTPStore(d.Cache)
	} else {
		otpStore = auth.NewMemoryOTPStore()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identitySvc, otpStore, notifier)
	supplierSvc := supplier.NewService(supplierRepo)
	customerSvc := customer.NewService(customerRepo)
	purchaseSvc := purchase.NewService(purchaseRepo, supplierSvc)
	saleSvc := sale.NewService(saleRepo, customerSvc, txlog)
	feedSvc := feed.NewService(supplierRepo, customerRepo, purchaseRepo, saleRepo)
	saver := uploads.NewSaver(d.Cfg.UploadDir)

	authHandler := auth.NewHandler(authSvc)
	supplierHandler := supplier.NewHandler(supplierSvc)
	customerHandler := customer.NewHandler(customerSvc)
	purchaseHandler := purchase.NewHandler(purchaseSvc, saver)
	saleHandler := sale.NewHandler(saleSvc, saver)
	txHandler := transaction.NewHandler(txlog)
	feedHandler := feed.NewHandler(feedSvc)

	// Uploaded invoices are served back at the URLs stored on entries.
	app.Static("/static/uploads", d.Cfg.UploadDir)

	// Public routes
	app.Get("/updates/recent", feedHandler.Recent)

	api := app.Group("/api")
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)
	protected := api.Group("", jwtmw, middleware.Audit(d.Logger))

	RegisterSupplierRoutes(protected, supplierHandler, adminOnly)
	RegisterCustomerRoutes(protected, customerHandler, adminOnly)
	RegisterPurchaseRoutes(protected, purchaseHandler, adminOnly)
	RegisterSaleRoutes(protected, saleHandler, adminOnly)
	RegisterTransactionRoutes(protected, txHandler, adminOnly)

	return nil
}
