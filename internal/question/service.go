package question

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Store persists question records. Implemented by repository.QuestionRepository.
type Store interface {
	Append(ctx context.Context, records []Record) (int, error)
	ListAll(ctx context.Context) ([]Record, error)
	ListForQuiz(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Record, error)
	Count(ctx context.Context) (int64, error)
}

// QuizCache holds rendered quiz payloads (implemented by Redis-backed Cache).
type QuizCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64) ([]Item, error)
	Set(ctx context.Context, version int64, items []Item) error
	Invalidate(ctx context.Context) error
	Evict(ctx context.Context) error
}

// Publisher announces committed batches to other instances.
type Publisher interface {
	Publish(ctx context.Context, evt UpdateEvent) error
}

// UploadStore keeps the raw uploaded file.
type UploadStore interface {
	Save(filename string, data []byte) (string, error)
}

// Service ties parsing, storage, and delivery together.
type Service struct {
	store     Store
	cache     QuizCache
	publisher Publisher
	uploads   UploadStore
	metrics   *Metrics
	logger    zerolog.Logger
	warm      chan struct{}
}

// ServiceOptions carries the optional collaborators. Nil fields disable the
// matching behavior.
type ServiceOptions struct {
	Cache     QuizCache
	Publisher Publisher
	Uploads   UploadStore
	Metrics   *Metrics
}

func NewService(store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		store:     store,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		uploads:   opts.Uploads,
		metrics:   opts.Metrics,
		logger:    logger.With().Str("component", "question_service").Logger(),
		warm:      make(chan struct{}, 1),
	}
}

// Ingest parses an uploaded file and appends its questions as one batch.
func (s *Service) Ingest(ctx context.Context, filename string, body io.Reader) (IngestResult, error) {
	if strings.TrimSpace(filename) == "" || body == nil {
		s.metrics.upload("rejected")
		return IngestResult{}, ErrInputMissing
	}

	res, err := s.ingest(ctx, filename, body)
	if err != nil {
		s.metrics.upload("failed")
		return res, err
	}
	s.metrics.upload("ok")
	s.metrics.ingested(res.QuestionCount)
	return res, nil
}

func (s *Service) ingest(ctx context.Context, filename string, body io.Reader) (IngestResult, error) {
	res := IngestResult{Filename: filename}

	data, err := io.ReadAll(body)
	if err != nil {
		return res, &ProcessingError{Stage: "read upload", Err: err}
	}

	// The raw file stays on disk even if a later stage fails.
	if s.uploads != nil {
		path, err := s.uploads.Save(filename, data)
		if err != nil {
			return res, &ProcessingError{Stage: "save upload", Err: err}
		}
		res.StoredPath = path
	}

	records, err := Parse(bytes.NewReader(data))
	if err != nil {
		return res, &ProcessingError{Stage: "parse", Err: err}
	}

	n, err := s.store.Append(ctx, records)
	if err != nil {
		return res, &ProcessingError{Stage: "store", Err: err}
	}
	res.QuestionCount = n

	if n > 0 {
		s.afterCommit(ctx, filename, n)
	}
	return res, nil
}

// afterCommit runs the best-effort follow-ups of a committed batch.
func (s *Service) afterCommit(ctx context.Context, filename string, n int) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("quiz cache invalidation failed, evicting current payload")
			if err := s.cache.Evict(ctx); err != nil {
				s.logger.Error().Err(err).Msg("quiz cache eviction failed, payload may be stale until TTL")
			}
		}
		select {
		case s.warm <- struct{}{}:
		default:
		}
	}

	if s.publisher != nil {
		total, err := s.store.Count(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("count after append failed")
		}
		evt := UpdateEvent{Filename: filename, QuestionCount: n, Total: total}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn().Err(err).Msg("publish update failed")
		}
	}
}

// Quiz returns every stored question in delivery shape, served from cache when possible.
func (s *Service) Quiz(ctx context.Context) ([]Item, error) {
	if s.cache == nil {
		return s.store.ListForQuiz(ctx)
	}

	version, err := s.cache.Version(ctx)
	if err != nil {
		s.metrics.cache("error")
		return s.store.ListForQuiz(ctx)
	}
	if cached, err := s.cache.Get(ctx, version); err == nil && cached != nil {
		s.metrics.cache("hit")
		return cached, nil
	}
	s.metrics.cache("miss")

	items, err := s.store.ListForQuiz(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, version, items); err != nil {
		s.logger.Debug().Err(err).Msg("quiz cache set failed")
	}
	return items, nil
}

// Questions returns the stored records in id order.
func (s *Service) Questions(ctx context.Context) ([]Record, error) {
	return s.store.ListAll(ctx)
}

// Question returns one stored record.
func (s *Service) Question(ctx context.Context, id int64) (Record, error) {
	return s.store.Get(ctx, id)
}

// Count reports how many records are stored.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// WarmRequests signals after each commit that the quiz cache is cold.
func (s *Service) WarmRequests() <-chan struct{} {
	return s.warm
}
