package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

// MockLogger records messages; safe for use from ingest workers.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, s)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if strings.HasPrefix(msg, prefix) {
			n++
		}
	}
	return n
}

type mockVoterRepo struct {
	resets   int
	batches  [][]domain.VoterRecord
	saved    []domain.VoterRecord
	saveErr  error
	resetErr error

	searchRecords []domain.VoterRecord
	searchTotal   int64
	searchErr     error
	lastFilter    domain.VoterFilter

	areas    []domain.AreaRow
	areasErr error
}

func (m *mockVoterRepo) Reset(ctx context.Context) error {
	m.resets++
	return m.resetErr
}

func (m *mockVoterRepo) SaveBatch(ctx context.Context, records []domain.VoterRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	batch := append([]domain.VoterRecord(nil), records...)
	m.batches = append(m.batches, batch)
	m.saved = append(m.saved, batch...)
	return nil
}

func (m *mockVoterRepo) Search(ctx context.Context, filter domain.VoterFilter) ([]domain.VoterRecord, int64, error) {
	m.lastFilter = filter
	return m.searchRecords, m.searchTotal, m.searchErr
}

func (m *mockVoterRepo) ListAreas(ctx context.Context) ([]domain.AreaRow, error) {
	return m.areas, m.areasErr
}

func (m *mockVoterRepo) Close() error { return nil }

// stubPageReader serves pages by file base name. Unknown files fail to open.
type stubPageReader struct {
	pages map[string][]string
}

func (r *stubPageReader) ReadPages(ctx context.Context, path string) ([]string, error) {
	pages, ok := r.pages[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentOpen, path)
	}
	return pages, nil
}
