package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

var _ domain.Config = (*AppConfig)(nil)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	LogFormat       string
	StoreDriver     string
	DatabasePath    string
	SupabaseURL     string
	SupabaseKey     string
	DataDir         string
	SourceFolders   []string
	IngestWorkers   int
	InsertBatchSize int
	PDFEngine       string
	GlyphTable      string
	PageTimeout     time.Duration
	AllowedOrigins  []string
	StaticDir       string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	return &AppConfig{
		// Hosting platforms provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "7860")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "console"),
		StoreDriver:     strings.ToLower(getEnvOrDefault("STORE_DRIVER", "sqlite")),
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", "voters.db"),
		SupabaseURL:     getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:     getEnvOrDefault("SUPABASE_KEY", getEnvOrDefault("SUPABASE_ANON_KEY", "")),
		DataDir:         getEnvOrDefault("DATA_DIR", "."),
		SourceFolders:   getEnvListOrDefault("SOURCE_FOLDERS", []string{"JHENAIGATI", "SREEBARDI"}),
		IngestWorkers:   getEnvIntOrDefault("INGEST_WORKERS", 4),
		InsertBatchSize: getEnvIntOrDefault("INSERT_BATCH_SIZE", 500),
		PDFEngine:       strings.ToLower(getEnvOrDefault("PDF_ENGINE", "mupdf")),
		GlyphTable:      strings.ToLower(getEnvOrDefault("GLYPH_TABLE", "mupdf")),
		PageTimeout:     time.Duration(getEnvIntOrDefault("PAGE_TIMEOUT_SECONDS", 90)) * time.Second,
		AllowedOrigins:  getEnvListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
		StaticDir:       getEnvOrDefault("STATIC_DIR", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns "console" or "json"
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetStoreDriver returns the voter store backend name
func (c *AppConfig) GetStoreDriver() string {
	return c.StoreDriver
}

// GetDatabasePath returns the SQLite file path
func (c *AppConfig) GetDatabasePath() string {
	return c.DatabasePath
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetDataDir returns the directory holding the roll folders
func (c *AppConfig) GetDataDir() string {
	return c.DataDir
}

// GetSourceFolders returns the upazila folders to ingest
func (c *AppConfig) GetSourceFolders() []string {
	return c.SourceFolders
}

func (c *AppConfig) GetIngestWorkers() int {
	return c.IngestWorkers
}

func (c *AppConfig) GetInsertBatchSize() int {
	return c.InsertBatchSize
}

// GetPDFEngine returns the text extraction backend name
func (c *AppConfig) GetPDFEngine() string {
	return c.PDFEngine
}

// GetGlyphTable returns the glyph substitution table name
func (c *AppConfig) GetGlyphTable() string {
	return c.GlyphTable
}

// GetPageTimeout returns the per-page extraction timeout
func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetStaticDir returns the web bundle directory; empty disables static hosting
func (c *AppConfig) GetStaticDir() string {
	return c.StaticDir
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
