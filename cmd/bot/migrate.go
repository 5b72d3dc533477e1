package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/florzoye/shop/internal/config"
	"github.com/florzoye/shop/internal/infra/db"
	"github.com/florzoye/shop/internal/infra/logger"
	"github.com/florzoye/shop/migrations"
)

func newMigrateCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{db.MigrateUp, db.MigrateDown, db.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			pool, err := db.Connect(cmd.Context(), cfg.Postgres.DSN, cfg.Postgres.ConnectTimeout, logger.New(cfg.App.Env))
			if err != nil {
				return fmt.Errorf("db connect failed: %w", err)
			}
			defer pool.Close()
			return db.MigratePool(cmd.Context(), pool, migrations.FS, args[0])
		},
	}
}
