package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/quiz-uploader/internal/config"
	quizdb "github.com/gokatarajesh/quiz-uploader/internal/db"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, or version")
		dir     = flag.String("dir", "", "Directory containing migration files (default: migrations embedded in the binary)")
		envFile = flag.String("env", "configs/.env", "Optional .env file with PG_* settings")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "migrator").Logger()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug().Err(err).Str("file", *envFile).Msg("no env file loaded")
	}

	var pg config.Postgres
	if err := env.Parse(&pg); err != nil {
		log.Fatal().Err(err).Msg("invalid PG_* environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrationDir := quizdb.MigrationsDir
	var fsys fs.FS = quizdb.Migrations
	if *dir != "" {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
		}
		if _, err := os.Stat(abs); err != nil {
			log.Fatal().Err(err).Str("dir", abs).Msg("migration directory not readable")
		}
		migrationDir, fsys = abs, nil
	}

	if err := quizdb.UseMigrations(fsys); err != nil {
		log.Fatal().Err(err).Msg("failed to configure goose")
	}

	db, err := quizdb.OpenSQL(ctx, quizdb.DSN(pg))
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("database unavailable")
	}
	defer db.Close()

	logger := log.With().Str("database", pg.Database).Str("migration_dir", migrationDir).Logger()

	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, migrationDir)
	case "down":
		err = goose.DownContext(ctx, db, migrationDir)
	case "status":
		err = goose.StatusContext(ctx, db, migrationDir)
	case "version":
		err = goose.VersionContext(ctx, db, migrationDir)
	default:
		logger.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status, or version")
	}
	if err != nil {
		logger.Fatal().Err(err).Str("command", *command).Msg("migration command failed")
	}
	logger.Info().Str("command", *command).Msg("migration command finished")
}
