package database

import "context"

// Conn is the connection/transaction handle every dialect operation
// receives. Drivers implement it; dialects never reach into a global
// registry for the "current" transaction — the handle is always passed
// explicitly, which keeps introspection testable against fake catalogs.
type Conn interface {
	// SchemaName returns the active schema/database name the connection
	// is scoped to.
	SchemaName() string

	// Quote wraps a single identifier in the engine's quoting style.
	Quote(ident string) string

	// ServerVersion returns the server version detected at connect time.
	// The result is cached on the connection, so feature checks are
	// cheap and consistent within one transaction.
	ServerVersion() Version

	// Query executes a read-only statement returning multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}
