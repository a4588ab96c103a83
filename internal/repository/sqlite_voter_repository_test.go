package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{}) {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{}) {}
func (nopLogger) Warn(msg string, fields ...interface{}) {}

func newTestSQLiteRepo(t *testing.T) *SQLiteVoterRepository {
	t.Helper()
	repo, err := NewSQLiteVoterRepository(context.Background(), filepath.Join(t.TempDir(), "voters.db"), nopLogger{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func voter(voterNo, name, upazila, union, ward, areaCode string) domain.VoterRecord {
	return domain.NewVoterRecord(
		domain.VoterEntry{SerialNo: "1", VoterNo: voterNo, Name: name, Father: "রহিম", DOB: "০১/০১/১৯৮০", Address: "নলকুড়া"},
		domain.DocumentHeader{District: "শেরপুর", AreaCode: areaCode, AreaName: "এলাকা " + areaCode, Ward: ward},
		domain.Provenance{Upazila: upazila, UnionName: union, FilePath: "/data/" + voterNo + ".pdf"},
	)
}

func seed(t *testing.T, repo *SQLiteVoterRepository) {
	t.Helper()
	records := []domain.VoterRecord{
		voter("1001", "করিম", "JHENAIGATI", "NALKURA", "2", "567"),
		voter("1002", "সালমা", "JHENAIGATI", "NALKURA", "10", "568"),
		voter("1003", "জসিম", "JHENAIGATI", "GAURIPUR", "2", "569"),
		voter("2001", "করিমা", "SREEBARDI", "GOSAIPUR", "1", "570"),
	}
	if err := repo.SaveBatch(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSQLiteVoterRepository_SaveAndSearch(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	seed(t, repo)

	tests := []struct {
		name   string
		filter domain.VoterFilter
		want   []string
	}{
		{"all", domain.VoterFilter{}, []string{"1001", "1002", "1003", "2001"}},
		{"name substring", domain.VoterFilter{Query: "করিম"}, []string{"1001", "2001"}},
		{"bangla digits match voter_no", domain.VoterFilter{Query: "১০০২"}, []string{"1002"}},
		{"area code", domain.VoterFilter{Query: "569"}, []string{"1003"}},
		{"upazila", domain.VoterFilter{Upazila: "SREEBARDI"}, []string{"2001"}},
		{"union and ward", domain.VoterFilter{Union: "NALKURA", Ward: "2"}, []string{"1001"}},
		{"area filter", domain.VoterFilter{AreaCode: "568"}, []string{"1002"}},
		{"dob exact", domain.VoterFilter{DOB: "০১/০১/১৯৮০", Upazila: "JHENAIGATI"}, []string{"1001", "1002", "1003"}},
		{"no match", domain.VoterFilter{Query: "নেই"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			f.Page, f.Limit = 1, 20
			got, total, err := repo.Search(context.Background(), f)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if int(total) != len(tt.want) || len(got) != len(tt.want) {
				t.Fatalf("expected %d results, got %d (total %d)", len(tt.want), len(got), total)
			}
			for i, v := range got {
				if v.VoterNo != tt.want[i] {
					t.Fatalf("result %d: got %s, want %s", i, v.VoterNo, tt.want[i])
				}
			}
		})
	}
}

func TestSQLiteVoterRepository_SearchPaging(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	var records []domain.VoterRecord
	for i := 0; i < 25; i++ {
		records = append(records, voter(fmt.Sprintf("%04d", i), "নাম", "JHENAIGATI", "NALKURA", "1", "567"))
	}
	if err := repo.SaveBatch(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, total, err := repo.Search(context.Background(), domain.VoterFilter{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 25 || len(got) != 5 {
		t.Fatalf("expected 5 of 25, got %d of %d", len(got), total)
	}
	if got[0].VoterNo != "0020" || got[0].ID == 0 {
		t.Fatalf("unexpected first record on page 3: %+v", got[0])
	}
	if got[0].District != "শেরপুর" || got[0].FilePath != "/data/0020.pdf" {
		t.Fatalf("columns not round-tripped: %+v", got[0])
	}
}

func TestSQLiteVoterRepository_ListAreas(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	seed(t, repo)
	if err := repo.SaveBatch(context.Background(), []domain.VoterRecord{voter("1004", "রুবি", "JHENAIGATI", "NALKURA", "2", "567")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	areas, err := repo.ListAreas(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []domain.AreaRow{
		{Upazila: "JHENAIGATI", UnionName: "GAURIPUR", Ward: "2", AreaCode: "569", AreaName: "এলাকা 569"},
		{Upazila: "JHENAIGATI", UnionName: "NALKURA", Ward: "2", AreaCode: "567", AreaName: "এলাকা 567"},
		{Upazila: "JHENAIGATI", UnionName: "NALKURA", Ward: "10", AreaCode: "568", AreaName: "এলাকা 568"},
		{Upazila: "SREEBARDI", UnionName: "GOSAIPUR", Ward: "1", AreaCode: "570", AreaName: "এলাকা 570"},
	}
	if len(areas) != len(want) {
		t.Fatalf("expected %d areas, got %d: %+v", len(want), len(areas), areas)
	}
	for i := range want {
		if areas[i] != want[i] {
			t.Fatalf("area %d: got %+v, want %+v", i, areas[i], want[i])
		}
	}
}

func TestSQLiteVoterRepository_Reset(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	seed(t, repo)

	if err := repo.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, total, err := repo.Search(context.Background(), domain.VoterFilter{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("search after reset: %v", err)
	}
	if total != 0 || len(got) != 0 {
		t.Fatalf("expected empty store after reset, got %d", total)
	}

	seed(t, repo)
	got, _, err = repo.Search(context.Background(), domain.VoterFilter{Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got[0].ID != 1 {
		t.Fatalf("expected ids to restart at 1, got %d", got[0].ID)
	}
}

func TestSQLiteVoterRepository_SaveEmptyBatch(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	if err := repo.SaveBatch(context.Background(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
