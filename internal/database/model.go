package database

import (
	"fmt"
	"strings"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// Table identifies a relation by name. The name is kept exactly as stored
// by the engine; Key() provides the case-normalized form used for lookups
// where the catalog reports names with different casing.
type Table struct {
	Name string
}

// Key returns the case-normalized lookup key for the table.
func (t Table) Key() string { return strings.ToLower(t.Name) }

// ColumnRef identifies a single column of a table. It is the grouping key
// for foreign-key constraints.
type ColumnRef struct {
	Table  string
	Column string
}

// Column is one row of column introspection: a column name paired with
// its nullability as reported by the catalog.
type Column struct {
	Name     string
	Nullable bool
}

// ColumnValue pairs a column name with a value to bind, for statement
// generation (REPLACE / upsert).
type ColumnValue struct {
	Column string
	Value  any
}

// ReferenceAction is the ON DELETE behavior of a foreign key.
type ReferenceAction int

const (
	Cascade ReferenceAction = iota
	SetNull
	SetDefault
	Restrict
	NoAction
)

func (a ReferenceAction) String() string {
	switch a {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET_NULL"
	case SetDefault:
		return "SET_DEFAULT"
	case Restrict:
		return "RESTRICT"
	case NoAction:
		return "NO_ACTION"
	default:
		return fmt.Sprintf("ReferenceAction(%d)", int(a))
	}
}

// ParseReferenceAction maps catalog delete-rule text to a ReferenceAction.
// Catalogs report rules with spaces ("SET NULL", "NO ACTION"); those are
// normalized to the underscore token form before matching. An unknown
// rule is a corrupt-catalog error — it is never defaulted silently,
// because the schema comparator depends on exact rule fidelity.
func ParseReferenceAction(raw string) (ReferenceAction, error) {
	token := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "_")
	switch token {
	case "CASCADE":
		return Cascade, nil
	case "SET_NULL":
		return SetNull, nil
	case "SET_DEFAULT":
		return SetDefault, nil
	case "RESTRICT":
		return Restrict, nil
	case "NO_ACTION":
		return NoAction, nil
	default:
		return 0, errs.New(errs.ErrKindCorruptCatalog,
			fmt.Sprintf("unrecognized delete rule %q", raw))
	}
}

// ForeignKeyConstraint describes one foreign key as reconstructed from
// the catalog. Table/Column hold the reference; RefTable/RefColumn are
// the target being pointed to.
type ForeignKeyConstraint struct {
	Name      string
	Table     string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  ReferenceAction
}

// Index describes one user-defined index. Columns are kept in the
// catalog-reported sequence order, already quoted for the engine.
type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}
