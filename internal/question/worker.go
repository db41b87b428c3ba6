package question

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer rebuilds the quiz payload after each commit so the next reader
// hits a warm cache.
type CacheWarmer struct {
	service   *Service
	queue     <-chan struct{}
	logger    zerolog.Logger
	timeout   time.Duration
	shutdownC chan struct{}
	stopOnce  sync.Once
}

func NewCacheWarmer(service *Service, logger zerolog.Logger, timeout time.Duration) *CacheWarmer {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &CacheWarmer{
		service:   service,
		queue:     service.WarmRequests(),
		logger:    logger.With().Str("component", "quiz_cache_warmer").Logger(),
		timeout:   timeout,
		shutdownC: make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is done.
func (w *CacheWarmer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.shutdownC:
			w.logger.Info().Msg("quiz cache warmer stopping")
			return nil
		case <-w.queue:
			w.handle(ctx)
		}
	}
}

func (w *CacheWarmer) handle(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()

	if _, err := w.service.Quiz(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("quiz cache warm failed")
	}
}

// Stop ends Run. Safe to call more than once.
func (w *CacheWarmer) Stop() {
	w.stopOnce.Do(func() { close(w.shutdownC) })
}
