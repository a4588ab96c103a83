package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"

	_ "modernc.org/sqlite"
)

const createVotersTable = `
CREATE TABLE IF NOT EXISTS voters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	serial_no TEXT,
	voter_no TEXT,
	name TEXT,
	father TEXT,
	mother TEXT,
	occupation TEXT,
	dob TEXT,
	address TEXT,
	upazila TEXT,
	union_name TEXT,
	ward TEXT,
	area_code TEXT,
	area_name TEXT,
	district TEXT,
	file_path TEXT
)`

var createVoterIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_voters_voter_no ON voters (voter_no)`,
	`CREATE INDEX IF NOT EXISTS idx_voters_area ON voters (upazila, union_name, ward, area_code)`,
}

const voterColumns = `id, COALESCE(serial_no, ''), COALESCE(voter_no, ''), COALESCE(name, ''),
	COALESCE(father, ''), COALESCE(mother, ''), COALESCE(occupation, ''), COALESCE(dob, ''),
	COALESCE(address, ''), COALESCE(upazila, ''), COALESCE(union_name, ''), COALESCE(ward, ''),
	COALESCE(area_code, ''), COALESCE(area_name, ''), COALESCE(district, ''), COALESCE(file_path, '')`

const insertVoter = `INSERT INTO voters (
	serial_no, voter_no, name, father, mother, occupation, dob, address,
	upazila, union_name, ward, area_code, area_name, district, file_path
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteVoterRepository stores voters in a single-file SQLite database with
// the same layout the search frontend has always read.
type SQLiteVoterRepository struct {
	db     *sql.DB
	logger domain.Logger
}

// NewSQLiteVoterRepository opens (creating if needed) the database at path.
func NewSQLiteVoterRepository(ctx context.Context, path string, logger domain.Logger) (*SQLiteVoterRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection serialises writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	r := &SQLiteVoterRepository{db: db, logger: logger}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("SQLite store ready", "path", path)
	return r, nil
}

func (r *SQLiteVoterRepository) migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		return fmt.Errorf("failed to configure sqlite: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createVotersTable); err != nil {
		return fmt.Errorf("failed to create voters table: %w", err)
	}
	for _, stmt := range createVoterIndexes {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Reset drops and recreates the voters table.
func (r *SQLiteVoterRepository) Reset(ctx context.Context) error {
	r.logger.Info("Dropping and recreating voters table")
	if _, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS voters`); err != nil {
		return fmt.Errorf("failed to drop voters table: %w", err)
	}
	return r.migrate(ctx)
}

// SaveBatch inserts the records in one transaction.
func (r *SQLiteVoterRepository) SaveBatch(ctx context.Context, records []domain.VoterRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertVoter)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range records {
		if _, err := stmt.ExecContext(ctx,
			v.SerialNo, v.VoterNo, v.Name, v.Father, v.Mother, v.Occupation, v.DOB, v.Address,
			v.Upazila, v.UnionName, v.Ward, v.AreaCode, v.AreaName, v.District, v.FilePath,
		); err != nil {
			return fmt.Errorf("failed to insert voter %s: %w", v.VoterNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit voters: %w", err)
	}
	return nil
}

// Search returns one page of voters matching the filter, ordered by id, and
// the total number of matches. The free-text query is a substring match on
// names, address, voter_no and area_code; for the two number columns Bangla
// digits in the query are folded to ASCII first.
func (r *SQLiteVoterRepository) Search(ctx context.Context, filter domain.VoterFilter) ([]domain.VoterRecord, int64, error) {
	where, args := buildVoterWhere(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count voters: %w", err)
	}

	query := `SELECT ` + voterColumns + ` FROM voters` + where + ` ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search voters: %w", err)
	}
	defer rows.Close()

	var records []domain.VoterRecord
	for rows.Next() {
		var v domain.VoterRecord
		if err := rows.Scan(
			&v.ID, &v.SerialNo, &v.VoterNo, &v.Name, &v.Father, &v.Mother, &v.Occupation, &v.DOB,
			&v.Address, &v.Upazila, &v.UnionName, &v.Ward, &v.AreaCode, &v.AreaName, &v.District, &v.FilePath,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan voter: %w", err)
		}
		records = append(records, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read voters: %w", err)
	}
	return records, total, nil
}

func buildVoterWhere(f domain.VoterFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Query != "" {
		orig := "%" + f.Query + "%"
		folded := "%" + bangla.ToArabicDigits(f.Query) + "%"
		clauses = append(clauses, `(name LIKE ? OR voter_no LIKE ? OR father LIKE ? OR mother LIKE ? OR address LIKE ? OR area_code LIKE ?)`)
		args = append(args, orig, folded, orig, orig, orig, folded)
	}

	exact := []struct {
		column string
		value  string
	}{
		{"dob", f.DOB},
		{"upazila", f.Upazila},
		{"union_name", f.Union},
		{"ward", f.Ward},
		{"area_code", f.AreaCode},
	}
	for _, e := range exact {
		if e.value != "" {
			clauses = append(clauses, e.column+` = ?`)
			args = append(args, e.value)
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListAreas returns the distinct administrative areas, wards in numeric order.
func (r *SQLiteVoterRepository) ListAreas(ctx context.Context) ([]domain.AreaRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT COALESCE(upazila, '') AS u, COALESCE(union_name, '') AS n,
			COALESCE(ward, '') AS w, COALESCE(area_code, '') AS c, COALESCE(area_name, '') AS a
		FROM voters
		ORDER BY u, n, CAST(w AS INTEGER), c`)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	var areas []domain.AreaRow
	for rows.Next() {
		var a domain.AreaRow
		if err := rows.Scan(&a.Upazila, &a.UnionName, &a.Ward, &a.AreaCode, &a.AreaName); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (r *SQLiteVoterRepository) Close() error {
	return r.db.Close()
}
