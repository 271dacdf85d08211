package server

import (
	"context"
	"log"

	"tv-keuzehulp-be/internal/bootstrap"
	"tv-keuzehulp-be/internal/config"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "tv-keuzehulp",
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(logger.RequestLogger(container.Logger))
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	// Routes without a session
	app.Static("/static", cfg.App.StaticDir)
	app.Get("/metrics", adaptor.HTTPHandler(container.Metrics.Handler()))

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: serverutils.CookieKey(cfg.Session.Secret),
	}))
	app.Use(serverutils.SessionMiddleware(
		container.SessionRepo,
		cfg.Session.TTL,
		cfg.IsProduction(),
		container.Logger,
	))

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	loginEnabled := c.AuthService.Enabled()
	apiGate := serverutils.LoginGate(loginEnabled, cfg.Session.Secret, false)
	pageGate := serverutils.LoginGate(loginEnabled, cfg.Session.Secret, true)

	c.AuthController.RegisterRoutes(app)
	c.KeuzehulpController.RegisterRoutes(app, apiGate, pageGate)
}
