package app

import (
	"errors"
	"strings"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
)

// Version is reported by GET /. It is overridden at build time with -ldflags.
var Version = "dev"

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store  repositories.Store
	Events services.EventPublisher
	Auth   *services.AuthService
}

// New builds the Fiber application with every catalog route mounted both at
// the root and under /api/v1.
func New(cfg config.Config, deps Deps) *fiber.App {
	events := deps.Events
	if events == nil {
		events = services.NopPublisher{}
	}

	categoryService := services.NewCategoryService(deps.Store, events, cfg.List.MaxLimit)
	productService := services.NewProductService(deps.Store, events, cfg.List.MaxLimit)

	categoryHandler := handlers.NewCategoryHandler(categoryService, cfg.List.DefaultLimit)
	productHandler := handlers.NewProductHandler(productService, cfg.List.DefaultLimit)
	healthHandler := handlers.NewHealthHandler(deps.Store, Version)

	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(cfg.CORS.AllowedOrigins),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	auth := middleware.AuthRequired(deps.Auth)

	healthHandler.RegisterRoutes(app)
	for _, router := range []fiber.Router{app, app.Group("/api/v1")} {
		categoryHandler.RegisterRoutes(router, auth)
		productHandler.RegisterRoutes(router, auth)
	}

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, in the same JSON shape as every other error.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}

func allowedOrigins(raw string) string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
