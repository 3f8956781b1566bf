// Package main provides the entry point for the product analytics dashboard
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/product-analytics-dashboard/app/charts"
	"github.com/amirphl/product-analytics-dashboard/app/handlers"
	"github.com/amirphl/product-analytics-dashboard/app/router"
	businessflow "github.com/amirphl/product-analytics-dashboard/business_flow"
	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/amirphl/product-analytics-dashboard/repository"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const appName = "Product Analytics Dashboard"

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.DashboardConfig
	snapshot  *businessflow.DashboardSnapshot
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closeLog, err := utils.SetupLogging(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	log.Println("Starting product analytics dashboard...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := initializeApplication(ctx, cfg)
	if err != nil {
		closeLog()
		log.Fatalf("Failed to initialize application [%s]: %v", businessflow.ErrorCode(err), err)
	}
	app.stopFuncs = append(app.stopFuncs, closeLog)

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.router.Start(cfg.Server.Address())
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received %s, shutting down gracefully...", sig)
	case err := <-serverErr:
		if err != nil {
			app.stop()
			log.Fatalf("Failed to start server: %v", err)
		}
	}

	if err := app.router.Shutdown(cfg.Server.ShutdownTimeout); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
	app.stop()
}

// initializeApplication runs the pipeline once and prepares the server
func initializeApplication(ctx context.Context, cfg *config.DashboardConfig) (*Application, error) {
	flow := businessflow.NewDashboardFlow(
		repository.NewFileTableSource(),
		repository.NewCSVTableSink(cfg.Export.Dir),
		cfg.Input,
		cfg.Pipeline,
		log.Default(),
	)

	snapshot, err := flow.Run(ctx)
	if err != nil {
		return nil, err
	}

	for _, path := range snapshot.ExportedFiles {
		log.Printf("Exported %s", path)
	}

	builder := charts.NewBuilder(cfg.Pipeline.TopRankedLimit, cfg.Pipeline.TopCategoryLimit, cfg.Pipeline.TopRatedMinReviews)
	dashboardHandler, err := handlers.NewDashboardHandler(
		cfg.Dashboard,
		builder.BuildAll(snapshot.Report),
		snapshot.Report.BoughtLastMonthCount,
		snapshot.RunID,
		snapshot.GeneratedAt,
	)
	if err != nil {
		return nil, businessflow.NewBusinessError(businessflow.CodeRenderFailed, "failed to render dashboard", err)
	}

	var stopFuncs []func()
	if cfg.Metrics.Enabled {
		stopFuncs = append(stopFuncs, startMetricsServer(cfg.Server.Host, cfg.Metrics))
	}

	return &Application{
		router:    router.NewFiberRouter(cfg.Server, appName, dashboardHandler),
		config:    cfg,
		snapshot:  snapshot,
		stopFuncs: stopFuncs,
	}, nil
}

// startMetricsServer exposes prometheus metrics on their own listener so the
// dashboard keeps a single route
func startMetricsServer(host string, cfg config.MetricsConfig) func() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Metrics listening on http://%s%s", server.Addr, cfg.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Metrics server forced to shutdown: %v", err)
		}
	}
}

func (a *Application) stop() {
	for i := len(a.stopFuncs) - 1; i >= 0; i-- {
		a.stopFuncs[i]()
	}
}
