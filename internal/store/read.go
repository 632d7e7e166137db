package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/healthrec/internal/record"
)

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName returns every record whose name contains substr, Active and
// Cured alike, most recently created first (ORDER BY id DESC).
//
// Case sensitivity is SQLite's LIKE default: ASCII letters match
// case-insensitively. An empty substr matches every row; rejecting it is
// the caller's job.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) SearchByName(ctx context.Context, substr string) ([]record.HealthRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, code, details, status, timestamp
		FROM records
		WHERE name LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY id DESC
	`, likeEscaper.Replace(substr))
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}
	defer rows.Close()

	records := []record.HealthRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("search by name: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search by name: iterate: %w", err)
	}

	return records, nil
}

// Get retrieves a single record by id.
// Returns ErrNotFound if no such record exists.
func (s *Store) Get(ctx context.Context, id int64) (record.HealthRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, code, details, status, timestamp
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.HealthRecord{}, fmt.Errorf("get record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return record.HealthRecord{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord maps one result row. details, status and timestamp are
// nullable in the schema.
func scanRecord(row rowScanner) (record.HealthRecord, error) {
	var (
		rec                        record.HealthRecord
		details, status, timestamp sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Code, &details, &status, &timestamp); err != nil {
		return record.HealthRecord{}, err
	}

	rec.Details = details.String
	rec.Timestamp = timestamp.String
	rec.Status = record.StatusActive
	if status.Valid {
		st, err := record.ParseStatus(status.String)
		if err != nil {
			return record.HealthRecord{}, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		rec.Status = st
	}
	return rec, nil
}
