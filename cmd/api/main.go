package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()

	if cfg.DB.AutoMigrate {
		if err := persistence.Migrate(ctx, store.DB); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
	}

	// Sin SDK registrado los proveedores globales son no-op.
	metrics, err := persistence.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		log.Fatal().Err(err).Msg("métricas de persistencia")
	}
	if cfg.Telemetry.Tracing {
		if err := persistence.RegisterTracing(store.DB, otel.GetTracerProvider(), metrics); err != nil {
			log.Fatal().Err(err).Msg("trazado de consultas")
		}
	}

	productRepo := persistence.NewProductRepository(store.DB, persistence.WithMetrics(metrics))
	categoryRepo := persistence.NewCategoryRepository(store.DB, persistence.WithMetrics(metrics))
	txRunner := persistence.NewTxRunner(store.DB, persistence.WithMetrics(metrics))

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura quedan sin autenticación")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
		AppName:    cfg.App.Name,
		Health: func(ctx context.Context) error {
			sqlDB, err := store.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Catalog API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
