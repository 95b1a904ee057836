package core

import "beamcore/internal/infra/persistence/postgres"

// NewPostgresStore constructs a Postgres-backed snapshot store from the
// provided DSN.
func NewPostgresStore(dsn string) (*postgres.Store, error) {
	return postgres.NewStore(dsn)
}
