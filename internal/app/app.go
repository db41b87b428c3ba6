package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-uploader/internal/config"
	"github.com/gokatarajesh/quiz-uploader/internal/db"
	"github.com/gokatarajesh/quiz-uploader/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/quiz-uploader/internal/db/sqlc"
	"github.com/gokatarajesh/quiz-uploader/internal/logging"
	"github.com/gokatarajesh/quiz-uploader/internal/question"
	"github.com/gokatarajesh/quiz-uploader/internal/server"
	ws "github.com/gokatarajesh/quiz-uploader/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
	hub   *ws.Hub

	broadcaster *question.Broadcaster
	warmer      *question.CacheWarmer
	bgCancels   []context.CancelFunc
	bgDone      sync.WaitGroup
}

// New bootstraps logger, schema, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	dsn := db.DSN(cfg.Postgres)
	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, dsn); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		logger.Info().Msg("database schema up to date")
	}

	pool, err := pgxpool.New(ctx, fmt.Sprintf("%s pool_max_conns=%d", dsn, cfg.Postgres.MaxConns))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)
	questionRepo := repository.NewQuestionRepository(queries, repository.NewPgTransactor(pool))

	var uploads question.UploadStore
	if cfg.Upload.KeepRaw {
		disk, err := question.NewDiskUploads(cfg.Upload.Dir)
		if err != nil {
			pool.Close()
			_ = redisClient.Close()
			return nil, err
		}
		uploads = disk
	}

	metrics := question.NewMetrics(nil)
	questionSvc := question.NewService(questionRepo, question.ServiceOptions{
		Cache:     question.NewCache(redisClient, cfg.Quiz.CacheTTL, cfg.Quiz.CachePrefix),
		Publisher: question.NewRedisPublisher(redisClient, cfg.Quiz.UpdatesChannel),
		Uploads:   uploads,
		Metrics:   metrics,
	}, logger)

	hub := ws.NewHub(logger)
	httpHandlers := question.NewHTTPHandlers(questionSvc, cfg.Upload.MaxBytes, logger)
	wsHandler := question.NewWSHandler(questionSvc, hub, metrics, logger)

	apiServer := server.NewHTTPServer(cfg, logger,
		[]server.Pinger{server.PostgresPinger(pool), server.RedisPinger(redisClient)},
		server.Handlers{
			Upload:    httpHandlers.Upload,
			Quiz:      httpHandlers.Quiz,
			Questions: httpHandlers.Questions,
			Question:  httpHandlers.Question,
			QuizWS:    wsHandler.HandleWebSocket,
		})

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		hub:         hub,
		broadcaster: question.NewBroadcaster(redisClient, hub, cfg.Quiz.UpdatesChannel, logger),
		warmer:      question.NewCacheWarmer(questionSvc, logger, cfg.Quiz.WarmTimeout),
		bgCancels:   make([]context.CancelFunc, 0, 2),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	a.shutdown()
	return runErr
}

func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.hub.CloseAll()
	a.stopBackgroundWorkers()

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.broadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		a.bgDone.Add(1)
		go func() {
			defer a.bgDone.Done()
			if err := a.broadcaster.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("quiz broadcaster stopped")
			}
		}()
	}

	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		a.bgDone.Add(1)
		go func() {
			defer a.bgDone.Done()
			if err := a.warmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("quiz cache warmer stopped")
			}
		}()
	}
}

// stopBackgroundWorkers stops the warmer, cancels the remaining workers and
// waits for all of them to return.
func (a *Application) stopBackgroundWorkers() {
	if a.warmer != nil {
		a.warmer.Stop()
	}
	for _, cancel := range a.bgCancels {
		cancel()
	}
	a.bgDone.Wait()
}
