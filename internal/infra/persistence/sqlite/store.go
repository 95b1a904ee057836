// Package sqlite provides a SQLite-backed snapshot store persisting
// experiment lists as JSON payloads in a single table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"beamcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Store = (*Store)(nil)

// Store persists one row per experiment list: the list id and the JSON
// encoding of its snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at path and prepares
// the schema. An empty path selects the default file.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "beamcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS experiment_lists (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create experiment_lists table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the backing database file path.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveList writes the snapshot under id, replacing any previous one.
func (s *Store) SaveList(ctx context.Context, id string, snap domain.Snapshot) error {
	if id == "" {
		return fmt.Errorf("empty list id")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO experiment_lists (id, payload) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, id, payload)
	if err != nil {
		return fmt.Errorf("upsert list %s: %w", id, err)
	}
	return nil
}

// LoadList reads the snapshot stored under id.
func (s *Store) LoadList(ctx context.Context, id string) (domain.Snapshot, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM experiment_lists WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("select list %s: %w", id, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode list %s: %w", id, err)
	}
	return snap, true, nil
}

// ListIDs returns the stored ids in ascending order.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM experiment_lists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select ids: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteList removes the snapshot stored under id.
func (s *Store) DeleteList(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM experiment_lists WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete list %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
