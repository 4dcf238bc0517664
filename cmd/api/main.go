package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-formrelay-backend/config"
	_ "go-formrelay-backend/docs" // Important for Swagger
	"go-formrelay-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// @title           Form Relay API
// @version         1.0
// @description     Contact form and newsletter signup relay.
// @host            localhost:8080
// @BasePath        /v1
var rootCmd = &cobra.Command{
	Use:   "formrelay",
	Short: "Contact form and newsletter relay",
	Long: `formrelay validates contact inquiries and newsletter signups posted by
a website and forwards them by email.

Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the newsletter subscriber table",
	Long: `Create the newsletter subscriber table for the configured DB_DRIVER.
Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		repo, closeRepo, err := openSubscriberRepository(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open subscriber storage: %w", err)
		}
		defer closeRepo()

		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		logger.Log.Info("Subscriber table ready", "driver", cfg.Database.Driver, "table", cfg.Newsletter.Table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	return cfg, nil
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Log.Info("Starting form relay", "port", cfg.Port, "env", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
