package database

import (
	"context"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// TypeKind classifies abstract column types for dialect-specific
// rendering decisions.
type TypeKind int

const (
	TypeString TypeKind = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeTemporal
	TypeBinary
	TypeJSON
)

// ColumnType is an abstract column type descriptor: a kind plus the
// type's native SQL syntax (e.g. "varchar(255)").
type ColumnType struct {
	Kind TypeKind
	SQL  string
}

// MatchMode selects the semantics of a full-text match predicate.
type MatchMode int

const (
	// MatchStrict is the default: exact, operator-driven matching
	// (boolean mode on engines that distinguish).
	MatchStrict MatchMode = iota

	// MatchNaturalLanguage ranks by relevance instead of exact operators.
	MatchNaturalLanguage
)

// TypeProvider maps abstract column types to engine-specific type syntax.
type TypeProvider interface {
	// TemporalType returns the engine's date-time column type, picking a
	// higher-precision variant when the server version supports it.
	TemporalType() string
}

// FunctionProvider maps abstract SQL functions and operators to
// engine-specific syntax. All methods are pure fragment generators.
type FunctionProvider interface {
	// Cast renders a type cast of expr to the target type.
	Cast(expr string, target ColumnType) string

	// Random renders a random-value function call, seeded when seed is
	// non-nil.
	Random(seed *int64) string

	// Match renders a full-text search predicate over column for the
	// given pattern. The pattern is embedded as an escaped string
	// literal, not parameterized — callers own that trust boundary.
	Match(column, pattern string, mode MatchMode) (string, error)
}

// Dialect is the per-engine strategy object: statement generation plus
// catalog introspection. Engines embed Base and override only the
// behaviors that diverge from standard SQL.
//
// Introspection calls are full-or-nothing: either the complete structured
// map is returned or the call fails. Results are fresh snapshots — no
// caching, no cross-call state.
type Dialect interface {
	// Name identifies the engine ("mysql", "postgres", …).
	Name() string

	// NewBuilder returns a Builder carrying the engine's quoting and
	// placeholder policies.
	NewBuilder() *Builder

	// Types returns the engine's type mapping.
	Types() TypeProvider

	// Functions returns the engine's function mapping.
	Functions() FunctionProvider

	// Insert builds an INSERT statement. columns empty means "insert
	// default values" using the engine's DefaultValuesClause. When
	// ignoreDuplicates is set, engines with an ignore variant rewrite
	// the statement keyword accordingly.
	Insert(b *Builder, ignoreDuplicates bool, table Table, columns []string, valuesExpr string) string

	// Delete builds a DELETE statement, optionally in the engine's
	// ignore-errors variant.
	Delete(b *Builder, ignoreErrors bool, table Table, where string) string

	// Replace builds the engine's upsert-by-replace statement with all
	// values registered as positional arguments (retrieve via b.Args()).
	// Engines without a replace form return ErrKindInvalidInput.
	Replace(b *Builder, table Table, values []ColumnValue) (string, error)

	// DropIndex builds the statement removing the named index.
	DropIndex(b *Builder, table Table, index string) string

	// DefaultValuesClause is the fragment used when an INSERT lists no
	// explicit columns.
	DefaultValuesClause() string

	// TableColumns returns, per requested table, the (name, nullability)
	// of every column the catalog reports. An empty tables set returns
	// the whole active schema.
	TableColumns(ctx context.Context, conn Conn, tables []Table) (map[Table][]Column, error)

	// ColumnConstraints returns the foreign keys of the requested
	// tables, grouped by the referencing column. An empty tables set
	// returns the whole active schema.
	ColumnConstraints(ctx context.Context, conn Conn, tables []Table) (map[ColumnRef][]ForeignKeyConstraint, error)

	// ExistingIndices returns the user-defined indices of the requested
	// tables, excluding the implicit primary-key index and indices the
	// engine auto-created to back foreign keys.
	ExistingIndices(ctx context.Context, conn Conn, tables []Table) (map[Table][]Index, error)
}

// Base provides the standard-SQL defaults engines build on. It has no
// introspection of its own — catalog layouts are engine-specific.
type Base struct {
	// DefaultValues is the clause emitted when an INSERT lists no
	// columns. Standard SQL spells it DEFAULT VALUES; engines that need
	// an explicit empty-values marker override the field.
	DefaultValues string
}

// NewBase returns Base with the standard-SQL default-values clause.
func NewBase() Base {
	return Base{DefaultValues: "DEFAULT VALUES"}
}

// DefaultValuesClause implements Dialect.
func (d Base) DefaultValuesClause() string { return d.DefaultValues }

// Insert builds a plain INSERT. ignoreDuplicates has no portable form
// and is left to engine overrides.
func (d Base) Insert(b *Builder, _ bool, table Table, columns []string, valuesExpr string) string {
	b.Write("INSERT INTO ").Ident(table.Name)
	if len(columns) == 0 {
		b.Write(" ").Write(d.DefaultValues)
		return b.SQL()
	}
	b.Write(" (").Idents(columns...).Write(") VALUES (").Write(valuesExpr).Write(")")
	return b.SQL()
}

// Delete builds a plain DELETE. ignoreErrors has no portable form and is
// left to engine overrides.
func (d Base) Delete(b *Builder, _ bool, table Table, where string) string {
	b.Write("DELETE FROM ").Ident(table.Name)
	if where != "" {
		b.Write(" WHERE ").Write(where)
	}
	return b.SQL()
}

// Replace has no portable form; engines with a native replace/upsert
// override it.
func (d Base) Replace(_ *Builder, table Table, _ []ColumnValue) (string, error) {
	return "", errs.New(errs.ErrKindInvalidInput,
		"replace is not supported for table "+table.Name+" on this engine")
}

// DropIndex builds the standalone standard form. Engines that scope
// index names per table override it.
func (d Base) DropIndex(b *Builder, _ Table, index string) string {
	b.Write("DROP INDEX ").Ident(index)
	return b.SQL()
}
