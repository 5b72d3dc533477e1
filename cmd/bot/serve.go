package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/florzoye/shop/internal/bot"
	"github.com/florzoye/shop/internal/config"
	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/domain/users"
	"github.com/florzoye/shop/internal/infra/db"
	httpx "github.com/florzoye/shop/internal/infra/http"
	"github.com/florzoye/shop/internal/infra/logger"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/service"
	"github.com/florzoye/shop/migrations"
)

const sweepInterval = time.Minute

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to postgres, apply migrations and run the bot with the health/metrics server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.App.Env)

	pool, err := openDatabase(ctx, cfg, log, db.Connect, migrateUp)
	if err != nil {
		return err
	}
	defer pool.Close()

	srv := httpx.New(cfg.HTTP.Addr, pool, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		log.Info("graceful shutdown complete")
	}()

	policy := products.PriceOverwrite
	if cfg.Ingest.MergePrice == config.MergePriceKeep {
		policy = products.PriceKeep
	}
	shop := service.New(
		brands.NewRepo(pool),
		products.NewRepo(pool, products.WithLogger(log), products.WithMergePolicy(policy)),
		sales.NewRepo(pool),
		catalog.NewRepo(pool),
		service.WithLogger(log),
		service.WithParser(ingest.NewParser(cfg.Ingest.LegacyFormat)),
		service.WithPageSize(cfg.Catalog.PageSize),
	)

	states := newDialogStore(ctx, cfg, pool, log)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("telegram auth failed: %w", err)
	}
	log.Info("authorized on telegram", "bot", api.Self.UserName, "admins", len(cfg.Telegram.AdminIDs))
	if len(cfg.Telegram.AdminIDs) == 0 {
		log.Warn("no admin ids configured, only the catalog is available")
	}

	b := bot.New(api, log, shop, states, users.NewRepo(pool),
		users.NewAdminList(cfg.Telegram.AdminIDs),
		bot.WithLocation(cfg.Location()),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.PollTimeout
	updates := api.GetUpdatesChan(u)

	err = b.Run(ctx, updates)
	api.StopReceivingUpdates()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type (
	connectFunc func(ctx context.Context, dsn string, maxWait time.Duration, log *slog.Logger) (*pgxpool.Pool, error)
	migrateFunc func(ctx context.Context, pool *pgxpool.Pool) error
)

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	return db.MigratePool(ctx, pool, migrations.FS, db.MigrateUp)
}

// openDatabase waits for postgres through connect and only then migrates.
func openDatabase(ctx context.Context, cfg config.Config, log *slog.Logger, connect connectFunc, migrate migrateFunc) (*pgxpool.Pool, error) {
	pool, err := connect(ctx, cfg.Postgres.DSN, cfg.Postgres.ConnectTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	log.Info("db connected")

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	log.Info("migrations applied")
	return pool, nil
}

func newDialogStore(ctx context.Context, cfg config.Config, pool db.DBTX, log *slog.Logger) dialog.Store {
	if cfg.Dialog.Storage == config.DialogStoragePostgres {
		log.Info("dialog states stored in postgres")
		return dialog.NewRepo(pool)
	}
	mem := dialog.NewMemoryStore(cfg.Dialog.TTL)
	go mem.RunSweeper(ctx, sweepInterval)
	log.Info("dialog states stored in memory", "ttl", cfg.Dialog.TTL)
	return mem
}
