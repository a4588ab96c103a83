package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/domain"
	apperrors "github.com/rsmmonaem/voter-talika/pkg/errors"

	"golang.org/x/text/unicode/norm"
)

const (
	unknownUpazila = "Unknown"
	generalGroup   = "General"
)

// VoterService answers search and filter queries against the store.
type VoterService struct {
	repo   domain.VoterRepository
	logger domain.Logger
}

func NewVoterService(repo domain.VoterRepository, logger domain.Logger) *VoterService {
	return &VoterService{
		repo:   repo,
		logger: logger,
	}
}

// Search validates the filter, applies paging defaults and returns one page
// of matches with the total match count.
func (s *VoterService) Search(ctx context.Context, filter domain.VoterFilter) (*domain.SearchResult, error) {
	if err := filter.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.NewValidationError("Invalid "+verr.Field, verr.Message)
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	filter = filter.WithDefaults()
	// Stored text is NFC, which splits precomposed য় ড় ঢ়.
	filter.Query = norm.NFC.String(strings.TrimSpace(filter.Query))

	records, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Voter search failed", err, "query", filter.Query, "page", filter.Page)
		return nil, storeError("Failed to search voters", err)
	}
	if records == nil {
		records = []domain.VoterRecord{}
	}

	return &domain.SearchResult{
		Data:  records,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Filters builds the upazila, union, ward, area tree from the distinct areas
// in the store. Missing upazila and union names are grouped under fixed
// keys; repeated area codes within a ward are listed once.
func (s *VoterService) Filters(ctx context.Context) (domain.FilterTree, error) {
	rows, err := s.repo.ListAreas(ctx)
	if err != nil {
		s.logger.Error("Failed to list areas", err)
		return nil, storeError("Failed to load filters", err)
	}

	tree := make(domain.FilterTree)
	for _, row := range rows {
		upazila := orDefault(row.Upazila, unknownUpazila)
		union := orDefault(row.UnionName, generalGroup)
		ward := orDefault(row.Ward, generalGroup)

		unions, ok := tree[upazila]
		if !ok {
			unions = make(map[string]domain.WardAreas)
			tree[upazila] = unions
		}
		wards, ok := unions[union]
		if !ok {
			wards = make(domain.WardAreas)
			unions[union] = wards
		}
		if !containsArea(wards[ward], row.AreaCode) {
			wards[ward] = append(wards[ward], domain.Area{Code: row.AreaCode, Name: row.AreaName})
		}
	}
	return tree, nil
}

func storeError(msg string, err error) error {
	if errors.Is(err, domain.ErrStoreNotReady) {
		return apperrors.NewUnavailableError(msg, err)
	}
	return apperrors.NewInternalError(msg, err)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func containsArea(areas []domain.Area, code string) bool {
	for _, a := range areas {
		if a.Code == code {
			return true
		}
	}
	return false
}
