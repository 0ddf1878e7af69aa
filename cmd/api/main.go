package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todoapi/docs"
	"todoapi/internal/config"
	handlers "todoapi/internal/http/handler"
	"todoapi/internal/http/middleware"
	"todoapi/internal/logger"
	"todoapi/internal/otel"
	"todoapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Todo API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New("todoapi", cfg.LogLevel, os.Stdout, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithField("store_driver", cfg.StoreDriver).Fatal("failed to open store")
	}
	log.WithField("store_driver", cfg.StoreDriver).Info("store ready")

	todoSvc := service.NewTodoService(st.repo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, st.pinger, todoSvc)

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server listening")
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.WithError(err).Error("server stopped")
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := st.close(closeCtx); err != nil {
		log.WithError(err).Error("failed to close store")
	}
	if err := shutdownTracing(closeCtx); err != nil {
		log.WithError(err).Error("failed to shut down tracing")
	}
	log.Info("server stopped")
}
