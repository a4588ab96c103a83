package config

import (
	"context"
	"fmt"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"
	"github.com/rsmmonaem/voter-talika/internal/infra/supabase"
	"github.com/rsmmonaem/voter-talika/internal/repository"
	"github.com/rsmmonaem/voter-talika/internal/service"
	"github.com/rsmmonaem/voter-talika/pkg/logger"
)

const (
	StoreSQLite   = "sqlite"
	StoreSupabase = "supabase"

	EngineMuPDF = "mupdf"
	EnginePlain = "plain"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	PageReader      domain.PageReader
	Normalizer      *bangla.Normalizer
	VoterRepository domain.VoterRepository
	IngestService   *service.IngestService
	VoterService    *service.VoterService
}

// NewContainer creates a new dependency injection container. The caller owns
// the returned container and must Close it.
func NewContainer(ctx context.Context, config domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	reader, normalizer, err := NewPipeline(config, appLogger.WithComponent("pdf"))
	if err != nil {
		return nil, err
	}

	repo, err := NewVoterRepository(ctx, config, appLogger.WithComponent("store"))
	if err != nil {
		return nil, err
	}

	ingestService := service.NewIngestService(
		reader,
		normalizer,
		repo,
		appLogger.WithComponent("ingest"),
		config.GetIngestWorkers(),
		config.GetInsertBatchSize(),
	)
	voterService := service.NewVoterService(repo, appLogger.WithComponent("search"))

	return &Container{
		Config:          config,
		Logger:          appLogger,
		PageReader:      reader,
		Normalizer:      normalizer,
		VoterRepository: repo,
		IngestService:   ingestService,
		VoterService:    voterService,
	}, nil
}

// NewPipeline builds the page reader selected by PDF_ENGINE and the
// normalizer for GLYPH_TABLE. It does not touch the store.
func NewPipeline(config domain.Config, log domain.Logger) (domain.PageReader, *bangla.Normalizer, error) {
	table, err := bangla.LookupGlyphTable(config.GetGlyphTable())
	if err != nil {
		return nil, nil, err
	}

	var reader domain.PageReader
	switch config.GetPDFEngine() {
	case "", EngineMuPDF:
		reader = service.NewPDFProcessor(log, config.GetPageTimeout())
	case EnginePlain:
		reader = service.NewPlainPDFReader(log)
	default:
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownEngine, config.GetPDFEngine())
	}

	return reader, bangla.NewNormalizer(table), nil
}

// NewVoterRepository opens the store selected by STORE_DRIVER.
func NewVoterRepository(ctx context.Context, config domain.Config, log domain.Logger) (domain.VoterRepository, error) {
	switch config.GetStoreDriver() {
	case "", StoreSQLite:
		return repository.NewSQLiteVoterRepository(ctx, config.GetDatabasePath(), log)
	case StoreSupabase:
		client := supabase.NewSupabaseClient(config, log)
		if err := client.Initialize(); err != nil {
			return nil, err
		}
		return repository.NewSupabaseVoterRepository(client, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStore, config.GetStoreDriver())
	}
}

// Close releases the store.
func (c *Container) Close() error {
	if c.VoterRepository == nil {
		return nil
	}
	return c.VoterRepository.Close()
}
