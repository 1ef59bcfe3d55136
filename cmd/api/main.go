package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lokumhouse/sweets-api/internal/application/auth"
	"github.com/lokumhouse/sweets-api/internal/application/notification"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	infrapdf "github.com/lokumhouse/sweets-api/internal/infrastructure/pdf"
	"github.com/lokumhouse/sweets-api/internal/infrastructure/postgres"
	"github.com/lokumhouse/sweets-api/internal/infrastructure/sitemap"
	httpRouter "github.com/lokumhouse/sweets-api/internal/interfaces/http"
	"github.com/lokumhouse/sweets-api/pkg/config"
	"github.com/lokumhouse/sweets-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	firmaRepo := postgres.NewFirmaRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	sampleRequestRepo := postgres.NewSampleRequestRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	firmaUC := usecase.NewFirmaUseCase(firmaRepo)
	catalogUC := usecase.NewCatalogUseCase(productRepo, categoryRepo, firmaRepo)
	sampleRequestUC := usecase.NewSampleRequestUseCase(sampleRequestRepo)

	pdfGenerator := infrapdf.NewOrderConfirmationGenerator(cfg.App.Name)
	orderUC := usecase.NewOrderUseCase(txRunner, orderRepo, productRepo, firmaRepo, pdfGenerator)

	fanoutUC := notification.NewFanoutUseCase(notificationRepo, profileRepo)
	authUC := auth.NewAuthUseCase(profileRepo, firmaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	sitemapBuilder := sitemap.NewBuilder(cfg.HTTP.BaseURL, categoryRepo, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sweets Platform API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:      categoryUC,
		ProductUC:       productUC,
		FirmaUC:         firmaUC,
		CatalogUC:       catalogUC,
		SampleRequestUC: sampleRequestUC,
		OrderUC:         orderUC,
		FanoutUC:        fanoutUC,
		AuthUC:          authUC,
		Sitemap:         sitemapBuilder,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
