package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"quiz-uploader"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Upload   Upload
	Quiz     Quiz
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host        string `env:"PG_HOST,notEmpty"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER,notEmpty"`
	Password    string `env:"PG_PASSWORD,notEmpty"`
	Database    string `env:"PG_DATABASE,notEmpty"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// Redis holds cache + pub/sub configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Upload governs handling of raw question files.
type Upload struct {
	Dir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	KeepRaw  bool   `env:"UPLOAD_KEEP_RAW" envDefault:"true"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Quiz configures quiz delivery.
type Quiz struct {
	CacheTTL       time.Duration `env:"QUIZ_CACHE_TTL" envDefault:"5m"`
	CachePrefix    string        `env:"QUIZ_CACHE_PREFIX" envDefault:"quiz"`
	UpdatesChannel string        `env:"QUIZ_UPDATES_CHANNEL" envDefault:"quiz:updates"`
	WarmTimeout    time.Duration `env:"QUIZ_CACHE_WARM_TIMEOUT" envDefault:"4s"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
