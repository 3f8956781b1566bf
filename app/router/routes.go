// Package router provides HTTP routing, middleware configuration, and server setup for the dashboard
package router

import (
	"log"
	"net/http"
	"time"

	"github.com/amirphl/product-analytics-dashboard/app/handlers"
	"github.com/amirphl/product-analytics-dashboard/app/middleware"
	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	Shutdown(timeout time.Duration) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app              *fiber.App
	cfg              config.ServerConfig
	dashboardHandler handlers.DashboardHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg config.ServerConfig, appName string, dashboardHandler handlers.DashboardHandlerInterface) Router {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: errorHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})

	return &FiberRouter{
		app:              app,
		cfg:              cfg,
		dashboardHandler: dashboardHandler,
	}
}

// SetupRoutes registers the dashboard page. Every other path is a 404.
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	r.app.Get("/", r.dashboardHandler.Index)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	// Plotly and Bootstrap come from their CDNs and the page draws charts from an inline script
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "0",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.plot.ly; style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; img-src 'self' data: blob:; font-src 'self' data: https://cdn.jsdelivr.net; frame-ancestors 'self';",
		ReferrerPolicy:            "no-referrer",
		CrossOriginEmbedderPolicy: "unsafe-none",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		XDNSPrefetchControl:       "off",
	}))

	if r.cfg.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
		}))
	}

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","status":${status},"latency":"${latency}","bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Stream:     log.Writer(),
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: r.cfg.Debug,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s"}`,
				utils.UTCNowRFC3339(),
				requestid.FromContext(c),
				e,
				c.Path(),
				c.Method(),
			)
		},
	}))
}

// Start blocks serving the dashboard until the listener is shut down
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting dashboard on http://%s", address)
	return r.app.Listen(address, fiber.ListenConfig{
		DisableStartupMessage: !r.cfg.Debug,
		EnablePrintRoutes:     r.cfg.Debug,
	})
}

func (r *FiberRouter) Shutdown(timeout time.Duration) error {
	return r.app.ShutdownWithTimeout(timeout)
}

func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).SendString(http.StatusText(http.StatusNotFound))
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: request_id=%s path=%s: %v", code, requestid.FromContext(c), c.Path(), err)

	return c.Status(code).SendString(http.StatusText(code))
}
