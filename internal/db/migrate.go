package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrations holds the goose SQL migrations shipped with the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"

const versionTable = "goose_db_version"

// OpenSQL opens a database/sql handle over the pgx driver and checks it.
func OpenSQL(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return conn, nil
}

// UseMigrations points goose at fsys; nil reads migrations from the OS filesystem.
func UseMigrations(fsys fs.FS) error {
	goose.SetBaseFS(fsys)
	goose.SetTableName(versionTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// Migrate applies every pending embedded migration to the database behind dsn.
func Migrate(ctx context.Context, dsn string) error {
	conn, err := OpenSQL(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := UseMigrations(Migrations); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
