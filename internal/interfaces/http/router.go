package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-admin-api/internal/application/auth"
	"github.com/jhoicas/catalogo-admin-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	UploadUC     *usecase.UploadUseCase
	JWTSecret    string
	APIPrefix    string
	LoginLimiter fiber.Handler // nil: sin límite
	Metrics      *Metrics
	// Ping comprueba la base de datos en /health; nil lo omite.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API bajo APIPrefix. Debe llamarse después de
// montar los middlewares globales; registra al final el 404 genérico.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group(deps.APIPrefix)

	api.Get("/health", healthHandler(deps.Ping))

	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter, authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products (protegido). Las rutas fijas van antes de /:id.
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", requireAuth)
	products.Get("/stats", productHandler.Stats)
	products.Get("/stats/report", productHandler.StatsReport)
	products.Post("/bulk-delete", productHandler.BulkDelete)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories", requireAuth)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Upload (protegido)
	if deps.UploadUC != nil {
		uploadHandler := NewUploadHandler(deps.UploadUC)
		api.Post("/upload/image", requireAuth, uploadHandler.Image)
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})
}

// healthHandler 200 con status OK; 503 si Ping falla.
func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"success":   false,
					"status":    "DEGRADED",
					"database":  "down",
					"timestamp": now,
				})
			}
		}
		return c.JSON(fiber.Map{"success": true, "status": "OK", "timestamp": now})
	}
}
