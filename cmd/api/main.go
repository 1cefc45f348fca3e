package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/parcel-service/internal/api/http"
	"github.com/spec-kit/parcel-service/internal/api/http/handlers"
	"github.com/spec-kit/parcel-service/internal/auth"
	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
	"github.com/spec-kit/parcel-service/internal/geo"
	"github.com/spec-kit/parcel-service/internal/label"
	"github.com/spec-kit/parcel-service/internal/observability"
	"github.com/spec-kit/parcel-service/internal/persistence"
	"github.com/spec-kit/parcel-service/internal/repository"
	"github.com/spec-kit/parcel-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(*cfg)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	vendorRepo := repository.NewVendorRepository(pool)
	parcelRepo := repository.NewParcelRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:  staffRepo,
		VendorRepo: vendorRepo,
	})
	staffService := service.NewStaffService(*cfg, service.StaffDependencies{
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	vendorService := service.NewVendorService(*cfg, service.VendorDependencies{
		VendorRepo: vendorRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	locator := geo.NewCachedLocator(geo.NewHTTPLocator(cfg.Geo, logger), redis.Client, cfg.Geo.CacheTTL(), logger)
	parcelService := service.NewParcelService(service.ParcelDependencies{
		ParcelRepo: parcelRepo,
		Locator:    locator,
		Labels:     label.NewRenderer(cfg.Label),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	bootstrapAdmin(ctx, cfg.Bootstrap, staffService, logger)

	staffGuard := auth.NewGuard[*domain.Staff](domain.PrincipalStaff, authService.TokenManager(),
		auth.ResolverFunc[*domain.Staff](authService.ResolveStaff), cfg.Auth.TokenHeader)
	vendorGuard := auth.NewGuard[*domain.Vendor](domain.PrincipalVendor, authService.TokenManager(),
		auth.ResolverFunc[*domain.Vendor](authService.ResolveVendor), cfg.Auth.TokenHeader)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readinessChecks(pg, redis)),
		Employees:   handlers.NewEmployeeHandler(authService, staffService),
		Vendors:     handlers.NewVendorHandler(authService, vendorService),
		Parcels:     handlers.NewParcelHandler(parcelService),
		StaffGuard:  staffGuard,
		VendorGuard: vendorGuard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	snapshot := metrics.Snapshot()
	logger.Info("request totals", zap.Any("requests", snapshot.Requests), zap.Any("errors", snapshot.Errors))
}

// readinessChecks lists the dependencies /health/ready probes. Redis only backs the
// geolocation cache, so it is probed only when configured.
func readinessChecks(pg *persistence.Postgres, redis *persistence.Redis) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		checks["redis"] = redis
	}
	return checks
}

func bootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig, staff *service.StaffService, logger *zap.Logger) {
	if cfg.AdminName == "" || cfg.AdminPassword == "" {
		logger.Info("no bootstrap admin configured")
		return
	}
	admin, created, err := staff.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("failed to bootstrap admin", zap.String("name", cfg.AdminName), zap.Error(err))
	}
	logger.Info("bootstrap admin ready",
		zap.String("name", admin.Name),
		zap.String("public_id", admin.PublicID),
		zap.Bool("created", created))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
