package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/quiz-uploader/internal/db/sqlc"
	"github.com/gokatarajesh/quiz-uploader/internal/question"
)

// ErrQuestionNotFound is returned by Get when no row has the requested id.
var ErrQuestionNotFound = question.ErrNotFound

// QuestionStore is the subset of sqlc queries the repository needs.
type QuestionStore interface {
	InsertQuizQuestion(ctx context.Context, arg sqlcgen.InsertQuizQuestionParams) (sqlcgen.QuizQuestion, error)
	ListQuizQuestions(ctx context.Context) ([]sqlcgen.QuizQuestion, error)
	GetQuizQuestion(ctx context.Context, id int64) (sqlcgen.QuizQuestion, error)
	CountQuizQuestions(ctx context.Context) (int64, error)
	LockQuizAppend(ctx context.Context) error
}

// Transactor runs fn against a store bound to a single transaction. The
// transaction commits only if fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(store QuestionStore) error) error
}

// QuestionRepository persists parsed question records.
type QuestionRepository struct {
	store QuestionStore
	tx    Transactor
}

var _ question.Store = (*QuestionRepository)(nil)

func NewQuestionRepository(store QuestionStore, tx Transactor) *QuestionRepository {
	return &QuestionRepository{store: store, tx: tx}
}

// Append inserts records in order inside one transaction and returns how many
// were added. On any failure nothing from the batch is kept.
//
// Appends hold a transaction-scoped advisory lock, so concurrent batches draw
// their ids one batch at a time and never interleave in id order.
func (r *QuestionRepository) Append(ctx context.Context, records []question.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	err := r.tx.WithinTx(ctx, func(store QuestionStore) error {
		if err := store.LockQuizAppend(ctx); err != nil {
			return fmt.Errorf("lock append: %w", err)
		}
		for i, rec := range records {
			if _, err := store.InsertQuizQuestion(ctx, sqlcgen.InsertQuizQuestionParams{
				QuestionText:  rec.QuestionText,
				Options:       rec.OptionsRaw,
				CorrectAnswer: rec.CorrectAnswer,
			}); err != nil {
				return fmt.Errorf("insert question %d of %d: %w", i+1, len(records), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("append questions: %w", err)
	}
	return len(records), nil
}

// ListAll returns every stored record in ascending id order.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]question.Record, error) {
	rows, err := r.store.ListQuizQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	records := make([]question.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

// ListForQuiz returns every stored record in quiz delivery shape.
func (r *QuestionRepository) ListForQuiz(ctx context.Context) ([]question.Item, error) {
	records, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return question.BuildQuiz(records), nil
}

// Get fetches a single record by id.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (question.Record, error) {
	row, err := r.store.GetQuizQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Record{}, fmt.Errorf("question %d: %w", id, ErrQuestionNotFound)
		}
		return question.Record{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return toRecord(row), nil
}

// Count reports how many records are stored.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.CountQuizQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func toRecord(row sqlcgen.QuizQuestion) question.Record {
	return question.Record{
		ID:            row.ID,
		QuestionText:  row.QuestionText,
		OptionsRaw:    row.Options,
		CorrectAnswer: row.CorrectAnswer,
	}
}
