package config

import (
	"time"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Practice   PracticeConfig   `yaml:"practice"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-User-Id,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"vocab-drill"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	RPS             float64       `yaml:"rps"              env:"RATE_LIMIT_RPS"              env-default:"10"`
	Burst           int           `yaml:"burst"            env:"RATE_LIMIT_BURST"            env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// Snapshot backends for practice sessions.
const (
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendFile     = "file"
)

// PracticeConfig holds free-practice defaults and limits.
type PracticeConfig struct {
	DefaultDirection   domain.Direction `yaml:"default_direction"     env:"PRACTICE_DEFAULT_DIRECTION"     env-default:"HEADWORD_TO_DEFINITIONS"`
	DefaultOrder       domain.OrderMode `yaml:"default_order"         env:"PRACTICE_DEFAULT_ORDER"         env-default:"RANDOM"`
	AllowReguess       bool             `yaml:"allow_reguess"         env:"PRACTICE_ALLOW_REGUESS"         env-default:"true"`
	SnapshotBackend    string           `yaml:"snapshot_backend"      env:"PRACTICE_SNAPSHOT_BACKEND"      env-default:"postgres"`
	SnapshotDir        string           `yaml:"snapshot_dir"          env:"PRACTICE_SNAPSHOT_DIR"          env-default:"./data/snapshots"`
	SnapshotMaxAge     time.Duration    `yaml:"snapshot_max_age"      env:"PRACTICE_SNAPSHOT_MAX_AGE"      env-default:"720h"`
	MaxActiveSessions  int              `yaml:"max_active_sessions"   env:"PRACTICE_MAX_ACTIVE_SESSIONS"   env-default:"1024"`
	MaxAnswersPerCheck int              `yaml:"max_answers_per_check" env:"PRACTICE_MAX_ANSWERS_PER_CHECK" env-default:"10"`
}

// QuizConfig holds fixed-length test limits.
type QuizConfig struct {
	MaxActiveTests int `yaml:"max_active_tests" env:"QUIZ_MAX_ACTIVE_TESTS" env-default:"1024"`
	MaxSize        int `yaml:"max_size"         env:"QUIZ_MAX_SIZE"         env-default:"200"`
}

// VocabularyConfig holds word list limits.
type VocabularyConfig struct {
	MaxWordsPerUser int `yaml:"max_words_per_user" env:"VOCAB_MAX_WORDS_PER_USER" env-default:"10000"`
	MaxDefinitions  int `yaml:"max_definitions"    env:"VOCAB_MAX_DEFINITIONS"    env-default:"20"`
	MaxImportRows   int `yaml:"max_import_rows"    env:"VOCAB_MAX_IMPORT_ROWS"    env-default:"5000"`
	DefaultPageSize int `yaml:"default_page_size"  env:"VOCAB_DEFAULT_PAGE_SIZE"  env-default:"50"`
}
