package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"
	"github.com/rsmmonaem/voter-talika/internal/extract"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultIngestWorkers = 4
	defaultBatchSize     = 500
	progressEvery        = 10
)

// IngestService walks the roll folders, runs every PDF through the
// normalize/extract pipeline and hands the records to the store.
type IngestService struct {
	reader     domain.PageReader
	normalizer *bangla.Normalizer
	entries    *extract.EntryExtractor
	repo       domain.VoterRepository
	logger     domain.Logger
	workers    int
	batchSize  int
}

// NewIngestService builds the ingest driver. repo may be nil when only
// ProcessDocument is used.
func NewIngestService(
	reader domain.PageReader,
	normalizer *bangla.Normalizer,
	repo domain.VoterRepository,
	logger domain.Logger,
	workers int,
	batchSize int,
) *IngestService {
	if normalizer == nil {
		normalizer = bangla.NewNormalizer(nil)
	}
	if workers <= 0 {
		workers = defaultIngestWorkers
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &IngestService{
		reader:     reader,
		normalizer: normalizer,
		entries:    extract.MustEntryExtractor(extract.DefaultLabels),
		repo:       repo,
		logger:     logger,
		workers:    workers,
		batchSize:  batchSize,
	}
}

// Discover lists every PDF under dataDir/<folder>. The folder name is the
// upazila and the directory below it, when there is one, is the union.
// Missing folders are skipped with a warning.
func (s *IngestService) Discover(dataDir string, folders []string) ([]domain.DocumentJob, error) {
	var jobs []domain.DocumentJob
	for _, folder := range folders {
		root := filepath.Join(dataDir, folder)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			s.logger.Warn("Source folder not found; skipping", "folder", root)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
				return nil
			}
			rel, err := filepath.Rel(dataDir, path)
			if err != nil {
				return err
			}
			parts := strings.Split(filepath.ToSlash(rel), "/")
			job := domain.DocumentJob{Path: path, Upazila: parts[0]}
			if len(parts) > 2 {
				job.UnionName = parts[1]
			}
			jobs = append(jobs, job)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return jobs, nil
}

// ProcessDocument runs the pipeline over one PDF without touching the store.
// The header comes from the first page and is stamped on every entry.
func (s *IngestService) ProcessDocument(ctx context.Context, job domain.DocumentJob) ([]domain.VoterRecord, error) {
	pages, err := s.reader.ReadPages(ctx, job.Path)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(pages))
	for i, p := range pages {
		normalized[i] = s.normalizer.Normalize(p)
	}

	header := extract.ExtractHeader(normalized[0], job.Path)
	prov := job.Provenance()

	var records []domain.VoterRecord
	for _, text := range normalized {
		if text == "" {
			continue
		}
		for _, e := range s.entries.ExtractEntries(text) {
			records = append(records, domain.NewVoterRecord(e, header, prov))
		}
	}
	return records, nil
}

type documentResult struct {
	index   int
	job     domain.DocumentJob
	records []domain.VoterRecord
	failed  bool
}

// Run resets the store and ingests every PDF found under the folders.
// Documents are read concurrently but written by this goroutine alone, in
// discovery order. A document that cannot be opened is logged and counted
// as failed; any other error stops the run.
func (s *IngestService) Run(ctx context.Context, dataDir string, folders []string) (*domain.IngestStats, error) {
	stats := &domain.IngestStats{RunID: uuid.New().String()}
	start := time.Now()

	if err := s.repo.Reset(ctx); err != nil {
		return stats, fmt.Errorf("failed to reset store: %w", err)
	}

	jobs, err := s.Discover(dataDir, folders)
	if err != nil {
		return stats, err
	}
	stats.Documents = len(jobs)
	s.logger.Info("Ingest started", "run_id", stats.RunID, "documents", len(jobs), "workers", s.workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan documentResult)
	sem := make(chan struct{}, s.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			res := documentResult{index: i, job: job}
			records, err := s.ProcessDocument(gctx, job)
			switch {
			case errors.Is(err, domain.ErrDocumentOpen):
				s.logger.Error("Failed to process document", err, "run_id", stats.RunID, "file", job.Path)
				res.failed = true
			case err != nil:
				return err
			default:
				res.records = records
			}

			select {
			case results <- res:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	var workErr error
	go func() {
		workErr = g.Wait()
		close(results)
	}()

	w := &batchWriter{repo: s.repo, size: s.batchSize}
	pending := make(map[int]documentResult)
	next, done := 0, 0
	var writeErr error

	for res := range results {
		if writeErr != nil {
			continue
		}
		pending[res.index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			done++

			if r.failed {
				stats.Failed++
			} else {
				stats.Voters += len(r.records)
				s.logger.Debug("Document processed", "file", r.job.Path, "upazila", r.job.Upazila, "union", r.job.UnionName, "voters", len(r.records))
				if err := w.add(ctx, r.records); err != nil {
					writeErr = err
					cancel()
					break
				}
			}

			if done%progressEvery == 0 {
				s.logProgress(stats, done, start)
			}
		}
	}

	if writeErr != nil {
		return stats, fmt.Errorf("failed to save voters: %w", writeErr)
	}
	if workErr != nil {
		return stats, workErr
	}
	if err := w.flush(ctx); err != nil {
		return stats, fmt.Errorf("failed to save voters: %w", err)
	}

	s.logger.Info("Ingest complete",
		"run_id", stats.RunID,
		"documents", stats.Documents,
		"failed", stats.Failed,
		"voters", stats.Voters,
		"duration", time.Since(start).Round(time.Second).String(),
	)
	return stats, nil
}

func (s *IngestService) logProgress(stats *domain.IngestStats, done int, start time.Time) {
	elapsed := time.Since(start)
	remaining := time.Duration(float64(elapsed) / float64(done) * float64(stats.Documents-done))
	s.logger.Info("Ingest progress",
		"run_id", stats.RunID,
		"done", done,
		"total", stats.Documents,
		"percent", fmt.Sprintf("%.1f", float64(done)/float64(stats.Documents)*100),
		"eta", remaining.Round(time.Second).String(),
		"voters", stats.Voters,
	)
}

// batchWriter buffers records and saves them in fixed-size batches.
type batchWriter struct {
	repo domain.VoterRepository
	size int
	buf  []domain.VoterRecord
}

func (w *batchWriter) add(ctx context.Context, records []domain.VoterRecord) error {
	w.buf = append(w.buf, records...)
	for len(w.buf) >= w.size {
		if err := w.repo.SaveBatch(ctx, w.buf[:w.size]); err != nil {
			return err
		}
		w.buf = w.buf[w.size:]
	}
	return nil
}

func (w *batchWriter) flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	err := w.repo.SaveBatch(ctx, w.buf)
	w.buf = nil
	return err
}
