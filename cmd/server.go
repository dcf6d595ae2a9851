package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	v1 "github.com/storefront-api/api/v1"
	"github.com/storefront-api/database"
	"github.com/storefront-api/services"
	"github.com/storefront-api/storage"
)

const shutdownTimeout = 15 * time.Second

var serverMigrate bool

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the storefront API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.Server.GinMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, closeDB, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB()

		if serverMigrate {
			if err := database.Migrate(db, log); err != nil {
				return err
			}
		}

		tokens, err := services.NewTokenServiceFromConfig(cfg.Auth, log)
		if err != nil {
			return err
		}

		objects, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to init image storage: %w", err)
		}
		var images *services.ImageService
		if objects != nil {
			if err := objects.EnsureBucket(ctx); err != nil {
				return fmt.Errorf("failed to ensure bucket %s: %w", objects.Bucket(), err)
			}
			images = services.NewImageService(objects, cfg.Storage.MaxImageBytes, "/api/images")
			log.Info("image storage enabled",
				slog.String("backend", cfg.Storage.Backend),
				slog.String("bucket", objects.Bucket()))
		}

		router := v1.NewRouter(db, v1.NewServices(db, tokens, images), v1.RouterConfig{
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			MetricsEnabled: cfg.Metrics.Enabled,
		}, log)

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting storefront server", slog.String("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}

		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().BoolVar(&serverMigrate, "migrate", true, "apply schema migrations before serving")
}
