package store

import (
	"context"
	"fmt"

	"github.com/roach88/healthrec/internal/record"
)

// Insert adds a new record and returns its id.
//
// Status is always Active and the timestamp comes from the store clock;
// neither is caller-controlled. Insert does not check that Name and Code
// are non-empty, that is the caller's job. Identical entries are allowed
// and are told apart only by id.
func (s *Store) Insert(ctx context.Context, e record.Entry) (int64, error) {
	ts := s.now().Format(record.TimestampLayout)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO records (name, code, details, status, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.Name,
		e.Code,
		e.Details,
		string(record.StatusActive),
		ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert record: last insert id: %w", err)
	}
	return id, nil
}

// MarkCured sets the status of the record with the given id to Cured.
//
// An unknown id is not an error: zero rows are affected and nothing is
// created. The current status is not checked, so a second call leaves the
// stored data unchanged.
func (s *Store) MarkCured(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE records SET status = ? WHERE id = ?
	`, string(record.StatusCured), id)
	if err != nil {
		return fmt.Errorf("mark cured: %w", err)
	}
	return nil
}
