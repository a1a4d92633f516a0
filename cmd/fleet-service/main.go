package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/config"
	"github.com/nurpe/busfleet/internal/db"
	"github.com/nurpe/busfleet/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fleet-service",
		Short: "Bus fleet management service",
		Long: `REST backend for drivers, conductors, buses, routes, shifts,
complaints and accident reports, with aggregate fleet reports.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and opens the database.
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, log, database, nil
}

func closeDB(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, database, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if !cfg.DB.AutoMigrate {
				if err := db.Migrate(database); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			log.Info().Str("driver", cfg.DB.Driver).Msg("migrations applied")
			return nil
		},
	}
}
