package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/config"
	httpapi "storefront/internal/http"
	"storefront/internal/logging"
	"storefront/internal/storage"

	_ "storefront/docs"
)

var (
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront catalog, cart and order service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "storefront.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, seedCmd, hashPasswordCmd)
}

// @title Storefront API
// @version 1.0
// @description Catalog, cart, checkout and back-office endpoints.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(cfg.Server.Mode)

	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	a, err := buildApp(cmd.Context(), cfg, kv, logger)
	if err != nil {
		return err
	}
	if cfg.Storage.Seed {
		if _, err := catalog.Seed(cmd.Context(), a.products, logger); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	srv := httpapi.NewServer(a.services, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("storage", cfg.Storage.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	timeout, _ := cfg.ShutdownTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
