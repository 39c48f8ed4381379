package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonnyWalker81/apitemplate/internal/logger"
	"github.com/JonnyWalker81/apitemplate/internal/repository"
	"github.com/JonnyWalker81/apitemplate/internal/server"
	"github.com/JonnyWalker81/apitemplate/internal/service"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if port != "" {
		cfg.Server.Port = port
	}

	logger.Info("starting API server",
		logger.String("app", cfg.App.Name),
		logger.String("version", cfg.App.Version),
		logger.String("env", cfg.Server.Env),
	)

	if cfg.OnChange(func(e fsnotify.Event) {
		logger.Warn("configuration file changed, restart to apply",
			logger.String("file", e.Name),
			logger.String("op", e.Op.String()),
		)
	}) {
		logger.Debug("watching configuration file")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	widgetRepo := repository.NewMemoryWidgetRepository()
	widgetService := service.NewWidgetService(widgetRepo)

	app, err := server.New(cfg, server.Deps{
		Widgets:  widgetService,
		Registry: registry,
	})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, errs := server.Serve(":"+cfg.Server.Port, app)

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	shutdown(shutdownCtx)

	return <-errs
}
