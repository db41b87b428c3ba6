package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-uploader/internal/config"
	httperrors "github.com/gokatarajesh/quiz-uploader/pkg/http/errors"
)

//go:embed web
var webFS embed.FS

// WSUpgrader handles WebSocket upgrades. Origin checks are left to CORS config.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handlers are the feature endpoints mounted by NewHTTPServer. Nil entries
// answer 501.
type Handlers struct {
	Upload    http.HandlerFunc
	Quiz      http.HandlerFunc
	Questions http.HandlerFunc
	Question  http.HandlerFunc
	QuizWS    http.HandlerFunc
}

// Pinger checks a dependency.
type Pinger func(ctx context.Context) error

// NewHTTPServer wires base routes (health, metrics, front-end) and the quiz API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pingers []Pinger, h Handlers) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg, logger, pingers, h),
	}
}

// NewRouter builds the handler tree; split out so tests can drive it with httptest.
func NewRouter(cfg *config.App, logger zerolog.Logger, pingers []Pinger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		for _, ping := range pingers {
			if err := ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	mux.HandleFunc("/upload", orNotImplemented(h.Upload))
	mux.HandleFunc("/api/quiz", orNotImplemented(h.Quiz))
	mux.HandleFunc("/api/questions", orNotImplemented(h.Questions))
	mux.HandleFunc("/api/questions/{id}", orNotImplemented(h.Question))
	mux.HandleFunc("/ws/quiz", orNotImplemented(h.QuizWS))

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))

	return withRequestLogging(logger, withCORS(cfg.CORS, mux))
}

func orNotImplemented(fn http.HandlerFunc) http.HandlerFunc {
	if fn != nil {
		return fn
	}
	return func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotImplemented(w, "handler not configured")
	}
}

// PostgresPinger adapts a pgx pool to a Pinger.
func PostgresPinger(pool *pgxpool.Pool) Pinger {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}

// RedisPinger adapts a Redis client to a Pinger.
func RedisPinger(client *redis.Client) Pinger {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
