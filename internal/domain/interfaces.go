package domain

import (
	"context"
	"time"
)

// PageReader returns the raw text layer of every page of a PDF, in order.
// An error means the document could not be opened at all.
type PageReader interface {
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetLogFormat() string
	GetStoreDriver() string
	GetDatabasePath() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetDataDir() string
	GetSourceFolders() []string
	GetIngestWorkers() int
	GetInsertBatchSize() int
	GetPDFEngine() string
	GetGlyphTable() string
	GetPageTimeout() time.Duration
	GetAllowedOrigins() []string
	GetStaticDir() string
}
