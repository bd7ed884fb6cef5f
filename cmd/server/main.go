package main

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"yultimate_hub/internal/config"
	"yultimate_hub/internal/logger"
)

var cfg config.Config

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yultimate",
		Short: "YUltimate Hub league management API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
		RunE:         runServe,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Setup(cfg.Log)
			_, err := openDatabase()
			return err
		},
	}
}

// openDatabase connects and migrates.
func openDatabase() (*gorm.DB, error) {
	db, err := config.OpenDB(cfg.DB, logger.GormLogger())
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
