package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidBankSource           = errors.New("invalid bank source")
)

// Bank sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB     `mapstructure:"database"`
	SQLite           SQLite `mapstructure:"sqlite"`
	HTTP             HTTP   `mapstructure:"http"`
	Bank             Bank   `mapstructure:"bank"`
	Log              Log    `mapstructure:"log"`
	Quiz             Quiz   `mapstructure:"quiz"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// SQLite points at the embedded database file.
type SQLite struct {
	Path string `mapstructure:"path"`
}

// HTTP configures the JSON API server.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Bank selects where lessons and questions are loaded from.
type Bank struct {
	Source        string `mapstructure:"source"`         // embedded, file, postgres or sqlite
	QuestionsPath string `mapstructure:"questions_path"` // used by the file source
	LessonsPath   string `mapstructure:"lessons_path"`   // used by the file source
}

// Log configures the zap logger and optional rotating file output.
type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables file output
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Quiz holds setup defaults and session housekeeping.
type Quiz struct {
	DefaultCount      int           `mapstructure:"default_count"`
	DefaultDifficulty string        `mapstructure:"default_difficulty"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SweepSchedule     string        `mapstructure:"sweep_schedule"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables take over.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Secrets are never read from the config file.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sqlite.path", "data/conditionals.db")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("bank.source", SourceEmbedded)
	v.SetDefault("bank.questions_path", "assets/data/questions.json")
	v.SetDefault("bank.lessons_path", "assets/data/lessons.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.default_difficulty", "All")
	v.SetDefault("quiz.session_ttl", "2h")
	v.SetDefault("quiz.sweep_schedule", "@every 1m")
}

func (c *Config) validate() error {
	switch c.Bank.Source {
	case SourceEmbedded, SourceFile, SourceSQLite:
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres bank", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBankSource, c.Bank.Source)
	}
	return nil
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
