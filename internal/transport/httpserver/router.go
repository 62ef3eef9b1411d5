// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tour-catalog-service/internal/app/service"
	"tour-catalog-service/internal/transport/httpserver/handler"
	"tour-catalog-service/internal/transport/httpserver/middleware"
	"tour-catalog-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps the Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	catalogSvc *service.CatalogService,
	syncSvc *service.SyncService,
	db *gorm.DB,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for the ops dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "tour-catalog-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health checks go first so Kubernetes probes answer even when the
	// rest of the pipeline is saturated
	app.Use(middleware.NewHealthCheck(db))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	app.Static("/static", "./web/static")

	catalogHandler := handler.NewCatalogHandler(catalogSvc, v, logger)
	adminHandler := handler.NewAdminHandler(syncSvc, logger)
	dashboardHandler := handler.NewDashboardHandler(catalogSvc, syncSvc, logger)

	registerRoutes(app, catalogHandler, adminHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	catalogHandler *handler.CatalogHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Catalog
	records := v1.Group("/records")
	records.Get("/", catalogHandler.Search)
	records.Get("/:id", catalogHandler.GetByID)
	records.Get("/:id/related", catalogHandler.Related)

	v1.Get("/sections", catalogHandler.Sections)

	// Admin
	admin := v1.Group("/admin")
	admin.Post("/sync", adminHandler.SyncAll)
	admin.Post("/sync/:feed", adminHandler.SyncFeed)
	admin.Get("/feeds", adminHandler.GetFeeds)
}

// errorHandler returns an error handler that logs by HTTP status class.
// 404s are logged at DEBUG (expected client behavior), other 4xx at
// WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
