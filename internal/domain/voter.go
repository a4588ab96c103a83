package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strconv"
)

// NameNotFound is stored in place of a voter name the extractor could not locate.
const NameNotFound = "নাম পাওয়া যায়নি"

// DocumentHeader is the metadata printed on the first page of a roll and
// shared by every voter extracted from that document.
type DocumentHeader struct {
	District string `json:"district"`
	AreaCode string `json:"area_code"`
	AreaName string `json:"area_name"`
	Ward     string `json:"ward"`
}

// VoterEntry is a single voter as recovered from page text.
type VoterEntry struct {
	SerialNo   string `json:"serial_no"`
	VoterNo    string `json:"voter_no"`
	Name       string `json:"name"`
	Father     string `json:"father"`
	Mother     string `json:"mother"`
	Occupation string `json:"occupation"`
	DOB        string `json:"dob"`
	Address    string `json:"address"`
}

// Provenance identifies where a document came from on disk.
type Provenance struct {
	Upazila   string `json:"upazila"`
	UnionName string `json:"union_name"`
	FilePath  string `json:"file_path"`
}

// VoterRecord is the flat row handed to the persistence sink.
type VoterRecord struct {
	ID int64 `json:"id,omitempty"`
	VoterEntry
	DocumentHeader
	Provenance
}

// NewVoterRecord stamps document header and provenance onto an entry.
func NewVoterRecord(entry VoterEntry, header DocumentHeader, prov Provenance) VoterRecord {
	return VoterRecord{
		VoterEntry:     entry,
		DocumentHeader: header,
		Provenance:     prov,
	}
}

// DocumentJob is one PDF discovered by the directory walk.
type DocumentJob struct {
	Path      string
	Upazila   string
	UnionName string
}

// Provenance returns the provenance fields stamped on every record of the job.
func (j DocumentJob) Provenance() Provenance {
	return Provenance{
		Upazila:   j.Upazila,
		UnionName: j.UnionName,
		FilePath:  j.Path,
	}
}

// VoterFilter carries search parameters from the HTTP layer.
type VoterFilter struct {
	Query    string
	Upazila  string
	Union    string
	Ward     string
	AreaCode string
	DOB      string
	Page     int
	Limit    int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Validate checks the paging parameters. Zero values are allowed and
// replaced by WithDefaults.
func (f VoterFilter) Validate() error {
	if f.Page < 0 {
		return &ValidationError{Field: "page", Message: "must be a positive number"}
	}
	if f.Limit < 0 {
		return &ValidationError{Field: "limit", Message: "must be a positive number"}
	}
	return nil
}

// WithDefaults fills in the first page and default limit and caps the limit.
func (f VoterFilter) WithDefaults() VoterFilter {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

// Offset returns the row offset for the filter's page.
func (f VoterFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// SearchResult is the paged search payload.
type SearchResult struct {
	Data  []VoterRecord `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// AreaRow is one distinct administrative area present in the store.
type AreaRow struct {
	Upazila   string `json:"upazila"`
	UnionName string `json:"union_name"`
	Ward      string `json:"ward"`
	AreaCode  string `json:"area_code"`
	AreaName  string `json:"area_name"`
}

// Area is a leaf of the filter tree.
type Area struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FilterTree nests areas by upazila, union and ward.
type FilterTree map[string]map[string]WardAreas

// WardAreas maps a ward to its areas. It encodes numeric wards in numeric
// order, followed by any non-numeric ward names.
type WardAreas map[string][]Area

// SortedWards returns the ward keys in display order.
func (w WardAreas) SortedWards() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		switch {
		case aErr == nil && bErr == nil:
			if a != b {
				return a < b
			}
			return keys[i] < keys[j]
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func (w WardAreas) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range w.SortedWards() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		areas := w[k]
		if areas == nil {
			areas = []Area{}
		}
		val, err := json.Marshal(areas)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// VoterRepository persists and queries voter records.
type VoterRepository interface {
	Reset(ctx context.Context) error
	SaveBatch(ctx context.Context, records []VoterRecord) error
	Search(ctx context.Context, filter VoterFilter) ([]VoterRecord, int64, error)
	ListAreas(ctx context.Context) ([]AreaRow, error)
	Close() error
}

// VoterService defines the read-side use cases exposed over HTTP.
type VoterService interface {
	Search(ctx context.Context, filter VoterFilter) (*SearchResult, error)
	Filters(ctx context.Context) (FilterTree, error)
}

// IngestStats summarises one ingestion run.
type IngestStats struct {
	RunID     string `json:"run_id"`
	Documents int    `json:"documents"`
	Failed    int    `json:"failed"`
	Voters    int    `json:"voters"`
}
