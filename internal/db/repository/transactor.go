package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sqlcgen "github.com/gokatarajesh/quiz-uploader/internal/db/sqlc"
)

// PgTransactor runs repository work inside pgx transactions on a pool.
type PgTransactor struct {
	pool *pgxpool.Pool
}

var _ Transactor = (*PgTransactor)(nil)

func NewPgTransactor(pool *pgxpool.Pool) *PgTransactor {
	return &PgTransactor{pool: pool}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (t *PgTransactor) WithinTx(ctx context.Context, fn func(store QuestionStore) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(sqlcgen.New(tx))
	})
}
