package db

import (
	"fmt"

	"github.com/gokatarajesh/quiz-uploader/internal/config"
)

// DSN builds a libpq-style connection string from config.
func DSN(pg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
}
