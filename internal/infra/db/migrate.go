package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// MigratePool runs a goose command over an already connected pool, so the
// connect retry in Connect covers migrations too. The pool stays open.
func MigratePool(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, command string) error {
	if err := checkCommand(command); err != nil {
		return err
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() { _ = sqlDB.Close() }()
	return Migrate(ctx, sqlDB, fsys, command)
}

// Migrate runs a goose command against the SQL files at the root of fsys.
func Migrate(ctx context.Context, sqlDB *sql.DB, fsys fs.FS, command string) error {
	if err := checkCommand(command); err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, sqlDB, ".")
	case MigrateDown:
		err = goose.DownContext(ctx, sqlDB, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, sqlDB, ".")
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func checkCommand(command string) error {
	switch command {
	case MigrateUp, MigrateDown, MigrateStatus:
		return nil
	}
	return fmt.Errorf("unknown migrate command %q", command)
}
