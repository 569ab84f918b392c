package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/jwt"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	// JWTSecret vacío deja las escrituras sin autenticación (entornos locales).
	JWTSecret string
	Logger    *logger.Logger
	// Health comprueba el almacén; nil = siempre sano.
	Health  func(ctx context.Context) error
	AppName string
}

// NewApp crea la aplicación Fiber con middlewares comunes y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.AppName == "" {
		deps.AppName = "catalog-api"
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(RequestIDMiddleware())
	app.Use(AccessLogMiddleware(deps.Logger))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Escrituras: Bearer Token con rol admin o editor cuando hay secreto configurado.
	guarded := func(h fiber.Handler) []fiber.Handler {
		if deps.JWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{
			AuthMiddleware(deps.JWTSecret),
			RequireRole(jwt.RoleAdmin, jwt.RoleEditor),
			h,
		}
	}

	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Logger)
	products.Get("/", productHandler.List)
	products.Get("/featured", productHandler.Featured)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", guarded(productHandler.Create)...)
	products.Put("/:id", guarded(productHandler.Update)...)
	products.Delete("/:id", guarded(productHandler.Delete)...)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Logger)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", guarded(categoryHandler.Create)...)
	categories.Put("/:id", guarded(categoryHandler.Update)...)
	categories.Delete("/:id", guarded(categoryHandler.Delete)...)
}
