package geodaily

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteStore keeps the snapshot as one JSONB row. The database gives
// the atomic-replace guarantee; the table never grows past a single
// record.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			id   INTEGER PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM snapshots WHERE id = 1`,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("parsing stored snapshot: %w", err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, data) VALUES (1, jsonb(?))
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, string(data))
	return err
}

var _ Store = (*SQLiteStore)(nil)
var _ Store = (*FileStore)(nil)
var _ Store = (*MemStore)(nil)
