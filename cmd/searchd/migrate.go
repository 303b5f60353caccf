package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db/postgres"
)

func migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded Postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			run, direction := postgres.Migrate, "up"
			if down {
				run, direction = postgres.MigrateDown, "down"
			}
			logger.Info("Migrating Postgres", zap.String("direction", direction))
			v, err := run(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("migrate %s: %w", direction, err)
			}
			logger.Info("Migration done", zap.Uint("version", v))
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Roll back every migration")
	return cmd
}
