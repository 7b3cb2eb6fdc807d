// @title                       Catalog Admin API
// @version                     1.0
// @description                 Administración del catálogo de productos: autenticación, productos, categorías e imágenes.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/docs"
	"github.com/jhoicas/catalogo-admin-api/internal/application/auth"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/internal/application/usecase"
	infracache "github.com/jhoicas/catalogo-admin-api/internal/infrastructure/cache"
	"github.com/jhoicas/catalogo-admin-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/catalogo-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-admin-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/catalogo-admin-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-admin-api/pkg/config"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
)

// maxBodyBytes deja pasar la imagen más el overhead multipart; el límite real de 5MB lo aplica el caso de uso.
const maxBodyBytes = 8 * 1024 * 1024

func main() {
	// Los montos salen como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	db := client.Database(cfg.Mongo.Database)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		log.Warn().Err(err).Msg("creación de índices")
	}
	cancel()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)

	// Cache opcional de categorías: sin Redis o si no responde, se lee directo de Mongo.
	var categoryCache ports.CategoryCache
	if cfg.Redis.Enabled() {
		rdb, err := infracache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, cache de categorías deshabilitado")
		} else {
			defer rdb.Close()
			categoryCache = infracache.NewRedisCategoryCache(rdb, cfg.Redis.TTL)
		}
	}

	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	tokens := jwt.Issuer{
		AccessSecret:  cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     time.Duration(cfg.JWT.Expiration) * time.Minute,
		RefreshTTL:    time.Duration(cfg.JWT.RefreshExpiration) * time.Minute,
		Name:          cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(userRepo, tokens)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, userRepo, infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, categoryCache, log)
	uploadUC := usecase.NewUploadUseCase(fileStorage)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    maxBodyBytes,
		ErrorHandler: httpRouter.ErrorHandler(cfg.App.IsDevelopment(), log),
	})

	metrics := httpRouter.NewMetrics("catalog")
	app.Use(httpRouter.RequestIDMiddleware())
	app.Use(metrics.Middleware())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.IsDevelopment()}))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.BasePath = cfg.HTTP.APIPrefix
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	if local, ok := fileStorage.(*storage.LocalDisk); ok {
		prefix := cfg.Storage.BaseURL
		if u, err := url.Parse(prefix); err == nil && u.Path != "" {
			prefix = u.Path
		}
		app.Static(prefix, local.Root())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		UploadUC:     uploadUC,
		JWTSecret:    cfg.JWT.Secret,
		APIPrefix:    cfg.HTTP.APIPrefix,
		LoginLimiter: httpRouter.LoginRateLimiter(cfg.HTTP.LoginRatePerMinute),
		Metrics:      metrics,
		Ping:         func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
	})

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
