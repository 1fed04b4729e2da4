package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported table store backends.
const (
	BackendSupabase = "supabase"
	BackendMongoDB  = "mongodb"
	BackendSQLite   = "sqlite"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Store     StoreConfig
	Supabase  SupabaseConfig
	MongoDB   MongoDBConfig
	SQLite    SQLiteConfig
	Pipeline  PipelineConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// StoreConfig selects which table store backs the collections.
type StoreConfig struct {
	Backend string
}

// SupabaseConfig contains credentials for the Supabase REST endpoint.
type SupabaseConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// MongoDBConfig holds settings for MongoDB. It is used both as a table store backend
// and as the summary snapshot sink.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SQLiteConfig holds settings for the embedded store.
type SQLiteConfig struct {
	Path string
}

// PipelineConfig sizes the import batches and load pages.
type PipelineConfig struct {
	ChunkSize int
	PageSize  int
}

// SheetsConfig contains configuration required to export to Google Sheets. Export is
// disabled when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Enabled reports whether Google Sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("SUPABASE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	chunkSize, err := getenvInt("IMPORT_CHUNK_SIZE", 500)
	if err != nil {
		return nil, err
	}
	pageSize, err := getenvInt("LOAD_PAGE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigins: splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getenvWithDefault("STORE_BACKEND", BackendSupabase)),
		},
		Supabase: SupabaseConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			Key:     os.Getenv("SUPABASE_KEY"),
			Timeout: timeout,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "retailsheet"),
		},
		SQLite: SQLiteConfig{
			Path: getenvWithDefault("SQLITE_PATH", "retailsheet.db"),
		},
		Pipeline: PipelineConfig{
			ChunkSize: chunkSize,
			PageSize:  pageSize,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Europe/Istanbul"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendSupabase:
		switch {
		case c.Supabase.URL == "":
			return errors.New("SUPABASE_URL must be provided")
		case c.Supabase.Key == "":
			return errors.New("SUPABASE_KEY must be provided")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Pipeline.ChunkSize <= 0 {
		return errors.New("IMPORT_CHUNK_SIZE must be positive")
	}

	if c.Pipeline.PageSize <= 0 {
		return errors.New("LOAD_PAGE_SIZE must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
