// Package schema orchestrates dialect introspection into a single
// immutable snapshot a schema comparator can diff against its desired
// state.
package schema

import (
	"context"

	"github.com/koustreak/sqlbridge/internal/database"
)

// Snapshot is the full introspected state of a table set at one point
// in time. It is built fresh on every Inspect call and never mutated
// afterwards.
type Snapshot struct {
	Columns     map[database.Table][]database.Column
	Constraints map[database.ColumnRef][]database.ForeignKeyConstraint
	Indices     map[database.Table][]database.Index
}

// Inspect runs the dialect's three introspection operations over the
// given tables and bundles the results. The snapshot is all-or-nothing:
// the first failing operation aborts the call and no partial snapshot
// is returned.
func Inspect(ctx context.Context, conn database.Conn, d database.Dialect, tables []database.Table) (*Snapshot, error) {
	columns, err := d.TableColumns(ctx, conn, tables)
	if err != nil {
		return nil, err
	}

	constraints, err := d.ColumnConstraints(ctx, conn, tables)
	if err != nil {
		return nil, err
	}

	indices, err := d.ExistingIndices(ctx, conn, tables)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Columns:     columns,
		Constraints: constraints,
		Indices:     indices,
	}, nil
}
