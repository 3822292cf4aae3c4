package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/delivery/http/handler"
	"github.com/samali323/carbonemissioncalc-sub000/internal/delivery/http/middleware"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server is the fiber application serving the public API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	emissionsHandler *handler.EmissionsHandler
	routeHandler     *handler.RouteHandler
	healthHandler    *handler.HealthHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	emissionsHandler *handler.EmissionsHandler,
	routeHandler *handler.RouteHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Carbon Emission Calculator",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		emissionsHandler: emissionsHandler,
		routeHandler:     routeHandler,
		healthHandler:    healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	emissions := api.Group("/emissions")
	emissions.Post("/flight", s.emissionsHandler.CalculateFlight)
	emissions.Post("/compare", s.emissionsHandler.CompareModes)

	routes := api.Group("/routes")
	routes.Get("/", s.routeHandler.GetRoute)
	routes.Delete("/", s.routeHandler.InvalidateRoute)
	routes.Post("/warm", s.routeHandler.WarmRoutes)
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escape handlers, mostly fiber's
// own 404/405, in the usual error envelope.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, errors.ErrInternalServer)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New("HTTP_ERROR", err.Error(), code),
		})
	}
}
