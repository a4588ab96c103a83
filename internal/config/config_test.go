package config

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/domain"
	"github.com/rsmmonaem/voter-talika/internal/service"
)

var configKeys = []string{
	"PORT", "SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "STORE_DRIVER", "DATABASE_PATH",
	"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_ANON_KEY", "DATA_DIR", "SOURCE_FOLDERS",
	"INGEST_WORKERS", "INSERT_BATCH_SIZE", "PDF_ENGINE", "GLYPH_TABLE",
	"PAGE_TIMEOUT_SECONDS", "ALLOWED_ORIGINS", "STATIC_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "7860" {
		t.Fatalf("expected default server port 7860, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "info" || cfg.GetLogFormat() != "console" {
		t.Fatalf("unexpected log defaults %s/%s", cfg.GetLogLevel(), cfg.GetLogFormat())
	}
	if cfg.GetStoreDriver() != "sqlite" || cfg.GetDatabasePath() != "voters.db" {
		t.Fatalf("unexpected store defaults %s/%s", cfg.GetStoreDriver(), cfg.GetDatabasePath())
	}
	if !reflect.DeepEqual(cfg.GetSourceFolders(), []string{"JHENAIGATI", "SREEBARDI"}) {
		t.Fatalf("unexpected default folders %v", cfg.GetSourceFolders())
	}
	if cfg.GetIngestWorkers() != 4 || cfg.GetInsertBatchSize() != 500 {
		t.Fatalf("unexpected ingest defaults %d/%d", cfg.GetIngestWorkers(), cfg.GetInsertBatchSize())
	}
	if cfg.GetPDFEngine() != "mupdf" || cfg.GetGlyphTable() != "mupdf" {
		t.Fatalf("unexpected pipeline defaults %s/%s", cfg.GetPDFEngine(), cfg.GetGlyphTable())
	}
	if cfg.GetPageTimeout() != 90*time.Second {
		t.Fatalf("expected 90s page timeout, got %s", cfg.GetPageTimeout())
	}
	if !reflect.DeepEqual(cfg.GetAllowedOrigins(), []string{"*"}) {
		t.Fatalf("unexpected default origins %v", cfg.GetAllowedOrigins())
	}
	if cfg.GetStaticDir() != "" || cfg.GetSupabaseURL() != "" || cfg.GetSupabaseKey() != "" {
		t.Fatalf("expected empty optional settings")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STORE_DRIVER", "Supabase")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_KEY", "test-key")
	t.Setenv("SOURCE_FOLDERS", " JHENAIGATI , ,NALITABARI")
	t.Setenv("INGEST_WORKERS", "8")
	t.Setenv("PAGE_TIMEOUT_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173")
	t.Setenv("GLYPH_TABLE", "PDFJS")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogFormat() != "json" || cfg.GetStoreDriver() != "supabase" {
		t.Fatalf("unexpected format/driver %s/%s", cfg.GetLogFormat(), cfg.GetStoreDriver())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" || cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("unexpected supabase settings")
	}
	if !reflect.DeepEqual(cfg.GetSourceFolders(), []string{"JHENAIGATI", "NALITABARI"}) {
		t.Fatalf("unexpected folders %v", cfg.GetSourceFolders())
	}
	if cfg.GetIngestWorkers() != 8 || cfg.GetPageTimeout() != 5*time.Second {
		t.Fatalf("unexpected ingest settings %d/%s", cfg.GetIngestWorkers(), cfg.GetPageTimeout())
	}
	if len(cfg.GetAllowedOrigins()) != 2 || cfg.GetGlyphTable() != "pdfjs" {
		t.Fatalf("unexpected origins/table %v/%s", cfg.GetAllowedOrigins(), cfg.GetGlyphTable())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("INGEST_WORKERS", "not-a-number")
	t.Setenv("INSERT_BATCH_SIZE", "-3")
	t.Setenv("SOURCE_FOLDERS", " , ")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetSupabaseKey() != "anon" {
		t.Fatalf("expected anon key fallback, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetIngestWorkers() != 4 || cfg.GetInsertBatchSize() != 500 {
		t.Fatalf("expected defaults for invalid numbers, got %d/%d", cfg.GetIngestWorkers(), cfg.GetInsertBatchSize())
	}
	if len(cfg.GetSourceFolders()) != 2 {
		t.Fatalf("expected default folders, got %v", cfg.GetSourceFolders())
	}
}

func TestNewPipeline(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		table   string
		want    interface{}
		wantErr error
	}{
		{"mupdf", "mupdf", "mupdf", &service.PDFProcessor{}, nil},
		{"plain", "plain", "pdfjs", &service.PlainPDFReader{}, nil},
		{"unknown engine", "poppler", "mupdf", nil, domain.ErrUnknownEngine},
		{"unknown table", "mupdf", "cp1252", nil, domain.ErrUnknownGlyphTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{PDFEngine: tt.engine, GlyphTable: tt.table}
			reader, normalizer, err := NewPipeline(cfg, nopLogger{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reflect.TypeOf(reader) != reflect.TypeOf(tt.want) {
				t.Fatalf("expected %T, got %T", tt.want, reader)
			}
			if normalizer.Table().Name() != tt.table {
				t.Fatalf("expected table %s, got %s", tt.table, normalizer.Table().Name())
			}
		})
	}
}

func TestNewVoterRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := NewVoterRepository(ctx, &AppConfig{StoreDriver: StoreSQLite, DatabasePath: filepath.Join(t.TempDir(), "v.db")}, nopLogger{})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	repo.Close()

	if _, err := NewVoterRepository(ctx, &AppConfig{StoreDriver: "mongo"}, nopLogger{}); !errors.Is(err, domain.ErrUnknownStore) {
		t.Fatalf("expected ErrUnknownStore, got %v", err)
	}
	if _, err := NewVoterRepository(ctx, &AppConfig{StoreDriver: StoreSupabase}, nopLogger{}); !errors.Is(err, domain.ErrStoreNotReady) {
		t.Fatalf("expected ErrStoreNotReady without credentials, got %v", err)
	}
}

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}
