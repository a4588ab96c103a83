package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const (
	votersTable = "voters"
	// voterAreasView is SELECT DISTINCT upazila, union_name, ward, area_code,
	// area_name FROM voters; see migrations/supabase.
	voterAreasView = "voter_areas"
)

// SupabaseVoterRepository keeps voters in a hosted Postgres table reached
// through PostgREST.
type SupabaseVoterRepository struct {
	client domain.SupabaseClient
	logger domain.Logger
}

func NewSupabaseVoterRepository(client domain.SupabaseClient, logger domain.Logger) *SupabaseVoterRepository {
	return &SupabaseVoterRepository{
		client: client,
		logger: logger,
	}
}

func (r *SupabaseVoterRepository) from(table string) (*postgrest.QueryBuilder, error) {
	c := r.client.DB()
	if c == nil {
		return nil, domain.ErrStoreNotReady
	}
	return c.From(table), nil
}

// Reset deletes every row. PostgREST cannot drop tables, so ids keep
// counting from where the previous run stopped.
func (r *SupabaseVoterRepository) Reset(ctx context.Context) error {
	table, err := r.from(votersTable)
	if err != nil {
		return err
	}
	r.logger.Info("Deleting all rows from voters table")
	if _, _, err := table.Delete("minimal", "").Gte("id", "0").Execute(); err != nil {
		return fmt.Errorf("failed to clear voters: %w", err)
	}
	return nil
}

func (r *SupabaseVoterRepository) SaveBatch(ctx context.Context, records []domain.VoterRecord) error {
	if len(records) == 0 {
		return nil
	}
	table, err := r.from(votersTable)
	if err != nil {
		return err
	}
	if _, _, err := table.Insert(records, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to insert %d voters: %w", len(records), err)
	}
	return nil
}

func (r *SupabaseVoterRepository) Search(ctx context.Context, filter domain.VoterFilter) ([]domain.VoterRecord, int64, error) {
	table, err := r.from(votersTable)
	if err != nil {
		return nil, 0, err
	}

	q := table.Select("*", "exact", false)
	if filter.Query != "" {
		q = q.Or(searchOrFilter(filter.Query), "")
	}
	for _, e := range []struct{ column, value string }{
		{"dob", filter.DOB},
		{"upazila", filter.Upazila},
		{"union_name", filter.Union},
		{"ward", filter.Ward},
		{"area_code", filter.AreaCode},
	} {
		if e.value != "" {
			q = q.Eq(e.column, e.value)
		}
	}

	from := filter.Offset()
	q = q.Order("id", &postgrest.OrderOpts{Ascending: true}).Range(from, from+filter.Limit-1, "")

	var records []domain.VoterRecord
	total, err := q.ExecuteTo(&records)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search voters: %w", err)
	}
	return records, total, nil
}

// searchOrFilter builds the PostgREST or=() expression for a free-text
// query. Values are quoted so commas and parentheses in the query are data.
func searchOrFilter(query string) string {
	orig := quoteFilterValue("*" + query + "*")
	folded := quoteFilterValue("*" + bangla.ToArabicDigits(query) + "*")
	parts := []string{
		"name.ilike." + orig,
		"voter_no.ilike." + folded,
		"father.ilike." + orig,
		"mother.ilike." + orig,
		"address.ilike." + orig,
		"area_code.ilike." + folded,
	}
	return strings.Join(parts, ",")
}

func quoteFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

func (r *SupabaseVoterRepository) ListAreas(ctx context.Context) ([]domain.AreaRow, error) {
	view, err := r.from(voterAreasView)
	if err != nil {
		return nil, err
	}

	var areas []domain.AreaRow
	if _, err := view.Select("upazila,union_name,ward,area_code,area_name", "", false).ExecuteTo(&areas); err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	sortAreas(areas)
	return areas, nil
}

// sortAreas orders areas by upazila, union, numeric ward and area code.
func sortAreas(areas []domain.AreaRow) {
	sort.SliceStable(areas, func(i, j int) bool {
		a, b := areas[i], areas[j]
		if a.Upazila != b.Upazila {
			return a.Upazila < b.Upazila
		}
		if a.UnionName != b.UnionName {
			return a.UnionName < b.UnionName
		}
		if wa, wb := wardNumber(a.Ward), wardNumber(b.Ward); wa != wb {
			return wa < wb
		}
		return a.AreaCode < b.AreaCode
	})
}

// wardNumber mirrors SQL CAST(ward AS INTEGER): non-numeric wards sort as 0.
func wardNumber(ward string) int {
	n, err := strconv.Atoi(ward)
	if err != nil {
		return 0
	}
	return n
}

func (r *SupabaseVoterRepository) Close() error { return nil }
