package core

import "beamcore/internal/infra/persistence/sqlite"

// NewSQLiteStore constructs a SQLite-backed snapshot store at the provided
// file path (may be empty for the default).
func NewSQLiteStore(path string) (*sqlite.Store, error) {
	return sqlite.NewStore(path)
}
