package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

// MockHandlerLogger records warnings and errors so tests can assert on them.
type MockHandlerLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []error
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

type mockVoterService struct {
	lastFilter domain.VoterFilter
	result     *domain.SearchResult
	searchErr  error
	tree       domain.FilterTree
	filtersErr error
}

func (m *mockVoterService) Search(ctx context.Context, filter domain.VoterFilter) (*domain.SearchResult, error) {
	m.lastFilter = filter
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.result, nil
}

func (m *mockVoterService) Filters(ctx context.Context) (domain.FilterTree, error) {
	if m.filtersErr != nil {
		return nil, m.filtersErr
	}
	return m.tree, nil
}

func newTestRouter(svc *mockVoterService, opts RouterOptions) (*MockHandlerLogger, http.Handler) {
	logger := NewMockHandlerLogger()
	return logger, NewRouter(NewVoterHandler(svc, logger), logger, opts)
}
