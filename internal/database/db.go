package database

import (
	"context"
	"database/sql"
)

// DB is what the history repository and the migration runner need from
// Postgres.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)

	// SQLDB shares the pool with database/sql callers such as migrations.
	SQLDB() *sql.DB
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
