package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/storefront-api/config"
	"github.com/storefront-api/database"
	"github.com/storefront-api/utils"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Marketplace backend: users, stores, products, ratings and comments",
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and installs the process logger
func bootstrap() (*config.Config, *slog.Logger, error) {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := utils.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log *slog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}
