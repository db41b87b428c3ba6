package repository

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/quiz-uploader/internal/db/sqlc"
)

var errInjected = errors.New("injected insert failure")

// memoryStore mimics the quiz_questions table under Postgres READ COMMITTED:
// transactions run concurrently, ids come from a shared sequence that keeps
// advancing across rollbacks, and rows become visible only at commit.
// LockQuizAppend behaves like pg_advisory_xact_lock and is the only thing
// that serializes two transactions.
type memoryStore struct {
	mu     sync.Mutex
	rows   []sqlcgen.QuizQuestion
	nextID int64
	// failAt makes the n-th insert (1-based, counted across the store's
	// lifetime) fail. Zero disables it.
	failAt  int
	inserts int
	locks   int

	appendLock sync.Mutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1}
}

// draw takes the next sequence value, or fails when failAt is reached.
func (s *memoryStore) draw() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	id := s.nextID
	s.nextID++
	if s.failAt > 0 && s.inserts == s.failAt {
		return 0, errInjected
	}
	return id, nil
}

func (s *memoryStore) commit(rows []sqlcgen.QuizQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	sort.Slice(s.rows, func(i, j int) bool { return s.rows[i].ID < s.rows[j].ID })
}

func (s *memoryStore) committed() []sqlcgen.QuizQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sqlcgen.QuizQuestion, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *memoryStore) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks
}

// Outside WithinTx every statement is its own transaction.

func (s *memoryStore) InsertQuizQuestion(ctx context.Context, arg sqlcgen.InsertQuizQuestionParams) (sqlcgen.QuizQuestion, error) {
	tx := &memoryTx{s: s}
	row, err := tx.InsertQuizQuestion(ctx, arg)
	if err != nil {
		return sqlcgen.QuizQuestion{}, err
	}
	s.commit(tx.pending)
	return row, nil
}

func (s *memoryStore) ListQuizQuestions(_ context.Context) ([]sqlcgen.QuizQuestion, error) {
	return s.committed(), nil
}

func (s *memoryStore) GetQuizQuestion(_ context.Context, id int64) (sqlcgen.QuizQuestion, error) {
	return findRow(s.committed(), id)
}

func (s *memoryStore) CountQuizQuestions(_ context.Context) (int64, error) {
	return int64(len(s.committed())), nil
}

// LockQuizAppend outside a transaction is released as soon as it is taken.
func (s *memoryStore) LockQuizAppend(_ context.Context) error {
	s.appendLock.Lock()
	s.appendLock.Unlock()
	return nil
}

// WithinTx commits the rows staged by fn when it returns nil. The advisory
// lock, if taken, is released after commit.
func (s *memoryStore) WithinTx(_ context.Context, fn func(store QuestionStore) error) error {
	tx := &memoryTx{s: s}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	s.commit(tx.pending)
	return nil
}

// memoryTx is one open transaction over a memoryStore.
type memoryTx struct {
	s       *memoryStore
	pending []sqlcgen.QuizQuestion
	locked  bool
}

func (t *memoryTx) release() {
	if t.locked {
		t.locked = false
		t.s.appendLock.Unlock()
	}
}

func (t *memoryTx) InsertQuizQuestion(_ context.Context, arg sqlcgen.InsertQuizQuestionParams) (sqlcgen.QuizQuestion, error) {
	id, err := t.s.draw()
	if err != nil {
		return sqlcgen.QuizQuestion{}, err
	}
	// Give concurrent transactions a chance to draw ids in between.
	runtime.Gosched()
	row := sqlcgen.QuizQuestion{
		ID:            id,
		QuestionText:  arg.QuestionText,
		Options:       arg.Options,
		CorrectAnswer: arg.CorrectAnswer,
	}
	t.pending = append(t.pending, row)
	return row, nil
}

func (t *memoryTx) visible() []sqlcgen.QuizQuestion {
	rows := append(t.s.committed(), t.pending...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (t *memoryTx) ListQuizQuestions(context.Context) ([]sqlcgen.QuizQuestion, error) {
	return t.visible(), nil
}

func (t *memoryTx) GetQuizQuestion(_ context.Context, id int64) (sqlcgen.QuizQuestion, error) {
	return findRow(t.visible(), id)
}

func (t *memoryTx) CountQuizQuestions(context.Context) (int64, error) {
	return int64(len(t.visible())), nil
}

func (t *memoryTx) LockQuizAppend(context.Context) error {
	if t.locked {
		return nil
	}
	t.s.appendLock.Lock()
	t.locked = true
	t.s.mu.Lock()
	t.s.locks++
	t.s.mu.Unlock()
	return nil
}

func findRow(rows []sqlcgen.QuizQuestion, id int64) (sqlcgen.QuizQuestion, error) {
	for _, row := range rows {
		if row.ID == id {
			return row, nil
		}
	}
	return sqlcgen.QuizQuestion{}, pgx.ErrNoRows
}
