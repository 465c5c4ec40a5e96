// Package mysql implements the MySQL dialect: a database.Conn driver
// backed by database/sql plus the statement-generation and catalog
// introspection overrides MySQL needs on top of the standard defaults.
package mysql

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
	"github.com/koustreak/sqlbridge/internal/logger"
)

// Driver is a MySQL implementation of database.Conn backed by a
// database/sql pool. It is safe for concurrent use by multiple
// goroutines.
type Driver struct {
	db      *sql.DB
	schema  string
	version database.Version
	log     *logger.Logger
}

// New opens a MySQL connection pool using the provided Config and
// returns a Driver. It pings the server, then resolves the active
// database name and server version once so later feature checks never
// cost a round trip.
func New(ctx context.Context, cfg *database.Config, log *logger.Logger) (*Driver, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, mapError(err, "ping failed")
	}

	d, err := OpenDB(ctx, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// OpenDB wraps an already-open *sql.DB as a Driver. The caller keeps
// ownership of pool tuning; OpenDB only resolves the connection scope
// (active database, server version).
func OpenDB(ctx context.Context, db *sql.DB, log *logger.Logger) (*Driver, error) {
	if log == nil {
		log = logger.New(nil)
	}

	var schema sql.NullString
	var rawVersion string
	row := db.QueryRowContext(ctx, "SELECT DATABASE(), VERSION()")
	if err := row.Scan(&schema, &rawVersion); err != nil {
		return nil, mapError(err, "failed to resolve connection scope")
	}
	if !schema.Valid || schema.String == "" {
		return nil, errs.New(errs.ErrKindInvalidInput,
			"connection has no default database selected")
	}

	version, err := database.ParseVersion(rawVersion)
	if err != nil {
		return nil, err
	}

	log.With().
		Str("engine", "mysql").
		Str("schema", schema.String).
		Str("version", version.String()).
		Logger().
		Debug("connected")

	return &Driver{db: db, schema: schema.String, version: version, log: log}, nil
}

// Close shuts down the connection pool.
func (d *Driver) Close() {
	_ = d.db.Close()
}

// Ping verifies the database is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// DB returns the underlying *sql.DB (for advanced use).
func (d *Driver) DB() *sql.DB { return d.db }

// --- database.Conn implementation ---

// SchemaName returns the database the connection is scoped to.
func (d *Driver) SchemaName() string { return d.schema }

// ServerVersion returns the version detected at connect time.
func (d *Driver) ServerVersion() database.Version { return d.version }

// Quote wraps an identifier in backticks, doubling embedded backticks.
func (d *Driver) Quote(ident string) string { return Quote(ident) }

// Query executes a statement returning multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	d.log.Debugf("mysql query: %s", query)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &mysqlRows{rows: rows}, nil
}

// QueryRow executes a statement returning at most one row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &mysqlRow{row: d.db.QueryRowContext(ctx, query, args...)}
}

// Quote is the MySQL identifier-quoting policy.
func Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// placeholder ignores the argument index; MySQL placeholders are
// positional "?" markers.
func placeholder(int) string { return "?" }

// --- sql.DB type wrappers ---

type mysqlRows struct {
	rows *sql.Rows
}

func (r *mysqlRows) Next() bool             { return r.rows.Next() }
func (r *mysqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *mysqlRows) Close()                 { _ = r.rows.Close() }
func (r *mysqlRows) Err() error             { return r.rows.Err() }

type mysqlRow struct {
	row *sql.Row
}

func (r *mysqlRow) Scan(dest ...any) error { return r.row.Scan(dest...) }
