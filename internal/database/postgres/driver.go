// Package postgres implements the PostgreSQL dialect: a database.Conn
// driver backed by pgxpool plus the handful of overrides Postgres needs
// on top of the standard defaults.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
	"github.com/koustreak/sqlbridge/internal/logger"
)

// Driver is a PostgreSQL implementation of database.Conn backed by
// pgxpool. It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool    *pgxpool.Pool
	schema  string
	version database.Version
	log     *logger.Logger
}

// New connects to PostgreSQL using the provided Config and returns a
// Driver. The active schema and server version are resolved once at
// connect time and cached.
func New(ctx context.Context, cfg *database.Config, log *logger.Logger) (*Driver, error) {
	if log == nil {
		log = logger.New(nil)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed,
			"failed to create connection pool", err)
	}

	d := &Driver{pool: pool, log: log}

	var rawVersion string
	row := pool.QueryRow(ctx,
		"SELECT current_schema(), current_setting('server_version')")
	if err := row.Scan(&d.schema, &rawVersion); err != nil {
		pool.Close()
		return nil, mapError(err, "failed to resolve connection scope")
	}

	d.version, err = database.ParseVersion(rawVersion)
	if err != nil {
		pool.Close()
		return nil, err
	}

	log.With().
		Str("engine", "postgres").
		Str("schema", d.schema).
		Str("version", d.version.String()).
		Logger().
		Debug("connected")

	return d, nil
}

// Close drains the connection pool.
func (d *Driver) Close() {
	d.pool.Close()
}

// Ping verifies the database is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// --- database.Conn implementation ---

// SchemaName returns the schema the connection is scoped to.
func (d *Driver) SchemaName() string { return d.schema }

// ServerVersion returns the version detected at connect time.
func (d *Driver) ServerVersion() database.Version { return d.version }

// Quote wraps an identifier in double quotes, doubling embedded quotes.
func (d *Driver) Quote(ident string) string { return Quote(ident) }

// Query executes a statement returning multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	d.log.Debugf("postgres query: %s", query)
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &pgxRows{rows: rows}, nil
}

// QueryRow executes a statement returning at most one row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &pgxRow{row: d.pool.QueryRow(ctx, query, args...)}
}

// Quote is the PostgreSQL identifier-quoting policy.
func Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// placeholder renders $n positional markers.
func placeholder(n int) string { return fmt.Sprintf("$%d", n) }

// --- pgx type wrappers ---

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgxRows) Close()                 { r.rows.Close() }
func (r *pgxRows) Err() error             { return r.rows.Err() }

type pgxRow struct {
	row pgx.Row
}

func (r *pgxRow) Scan(dest ...any) error { return r.row.Scan(dest...) }
