package postgres

import (
	"fmt"
	"strings"
	"sync"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
)

// Dialect is the PostgreSQL strategy object. Postgres tracks standard
// SQL closely, so it inherits the default Insert/Delete/DropIndex forms
// and overrides only upsert and the catalog queries.
type Dialect struct {
	database.Base

	types     TypeProvider
	functions FunctionProvider

	// Guards constraint/index introspection aggregation.
	mu sync.Mutex
}

// NewDialect builds the PostgreSQL dialect for the given connection.
func NewDialect(_ database.Conn) *Dialect {
	return &Dialect{
		Base:      database.NewBase(),
		types:     TypeProvider{},
		functions: FunctionProvider{},
	}
}

// Name implements database.Dialect.
func (d *Dialect) Name() string { return "postgres" }

// NewBuilder returns a Builder with double-quote quoting and $n
// placeholders.
func (d *Dialect) NewBuilder() *database.Builder {
	return database.NewBuilder(Quote, placeholder)
}

// Types implements database.Dialect.
func (d *Dialect) Types() database.TypeProvider { return d.types }

// Functions implements database.Dialect.
func (d *Dialect) Functions() database.FunctionProvider { return d.functions }

// Replace builds the Postgres upsert: INSERT … ON CONFLICT on the first
// supplied column, updating the remaining columns from the excluded row.
func (d *Dialect) Replace(b *database.Builder, table database.Table, values []database.ColumnValue) (string, error) {
	if len(values) == 0 {
		return "", errs.New(errs.ErrKindInvalidInput,
			"replace into "+table.Name+" requires at least one column value")
	}

	b.Write("INSERT INTO ").Ident(table.Name).Write(" (")
	for i, v := range values {
		if i > 0 {
			b.Write(", ")
		}
		b.Ident(v.Column)
	}
	b.Write(") VALUES (")
	for i, v := range values {
		if i > 0 {
			b.Write(", ")
		}
		b.Arg(v.Value)
	}
	b.Write(") ON CONFLICT (").Ident(values[0].Column).Write(")")

	if len(values) == 1 {
		b.Write(" DO NOTHING")
		return b.SQL(), nil
	}

	b.Write(" DO UPDATE SET ")
	for i, v := range values[1:] {
		if i > 0 {
			b.Write(", ")
		}
		b.Ident(v.Column).Write(" = excluded.").Ident(v.Column)
	}
	return b.SQL(), nil
}

// TypeProvider maps abstract column types to PostgreSQL type syntax.
// Every supported server version carries microsecond precision, so no
// feature gate is needed.
type TypeProvider struct{}

// TemporalType returns the column type for date-time values.
func (TypeProvider) TemporalType() string { return "timestamptz" }

// FunctionProvider maps abstract SQL functions to PostgreSQL syntax.
type FunctionProvider struct{}

// Cast renders a type cast using the abstract type's native syntax.
func (FunctionProvider) Cast(expr string, target database.ColumnType) string {
	return fmt.Sprintf("CAST(%s AS %s)", expr, target.SQL)
}

// Random renders random(). Postgres seeds randomness per session via
// setseed(), which cannot be expressed inline; a supplied seed is
// therefore ignored here.
func (FunctionProvider) Random(_ *int64) string { return "random()" }

// Match renders a tsquery full-text predicate. MatchStrict uses the
// operator-driven to_tsquery form, MatchNaturalLanguage the
// plainto_tsquery form. The pattern is embedded as an escaped string
// literal, not parameterized.
func (FunctionProvider) Match(column, pattern string, mode database.MatchMode) (string, error) {
	var fn string
	switch mode {
	case database.MatchStrict:
		fn = "to_tsquery"
	case database.MatchNaturalLanguage:
		fn = "plainto_tsquery"
	default:
		return "", errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("unsupported match mode %d", mode))
	}
	return fmt.Sprintf("to_tsvector(%s) @@ %s('%s')",
		column, fn, escapeString(pattern)), nil
}

// escapeString escapes a value for embedding in a single-quoted
// Postgres string literal.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
