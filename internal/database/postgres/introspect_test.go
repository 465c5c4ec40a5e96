package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
)

// fakeConn is an in-memory database.Conn serving canned catalog rows.
type fakeConn struct {
	onQuery func(query string, args []any) ([][]any, error)
}

func (c *fakeConn) SchemaName() string              { return "public" }
func (c *fakeConn) Quote(ident string) string       { return Quote(ident) }
func (c *fakeConn) ServerVersion() database.Version { return database.Version{Major: 16} }

func (c *fakeConn) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	if c.onQuery == nil {
		return &fakeRows{}, nil
	}
	rows, err := c.onQuery(query, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{rows: rows}, nil
}

func (c *fakeConn) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{}
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *bool:
			*p = row[i].(bool)
		default:
			return fmt.Errorf("unsupported scan destination %T", d)
		}
	}
	return nil
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

type fakeRow struct{}

func (fakeRow) Scan(...any) error { return fmt.Errorf("not implemented") }

func connServing(rows [][]any) *fakeConn {
	return &fakeConn{
		onQuery: func(string, []any) ([][]any, error) { return rows, nil },
	}
}

func TestTableColumns_GroupsByRequestedTable(t *testing.T) {
	users := database.Table{Name: "users"}

	conn := connServing([][]any{
		{"users", "id", false},
		{"users", "email", true},
		{"stray", "x", true}, // not requested — must be dropped
	})

	d := NewDialect(conn)
	got, err := d.TableColumns(context.Background(), conn, []database.Table{users})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []database.Column{
		{Name: "id", Nullable: false},
		{Name: "email", Nullable: true},
	}, got[users])
}

func TestTableColumns_NarrowsQueryWithNumberedPlaceholders(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	conn := &fakeConn{
		onQuery: func(q string, args []any) ([][]any, error) {
			gotQuery, gotArgs = q, args
			return nil, nil
		},
	}

	d := NewDialect(conn)
	_, err := d.TableColumns(context.Background(), conn, []database.Table{{Name: "users"}, {Name: "orders"}})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "table_name IN ($1, $2)")
	assert.Equal(t, []any{"users", "orders"}, gotArgs)
}

func TestColumnConstraints_BuildsConstraintsWithDeleteRules(t *testing.T) {
	orders := database.Table{Name: "orders"}

	conn := connServing([][]any{
		{"orders_user_id_fkey", "orders", "user_id", "users", "id", "SET NULL"},
		{"orders_coupon_id_fkey", "orders", "coupon_id", "coupons", "id", "NO ACTION"},
	})

	d := NewDialect(conn)
	got, err := d.ColumnConstraints(context.Background(), conn, []database.Table{orders})
	require.NoError(t, err)

	require.Len(t, got, 2)

	userFK := got[database.ColumnRef{Table: "orders", Column: "user_id"}]
	require.Len(t, userFK, 1)
	assert.Equal(t, database.ForeignKeyConstraint{
		Name:      "orders_user_id_fkey",
		Table:     "orders",
		Column:    "user_id",
		RefTable:  "users",
		RefColumn: "id",
		OnDelete:  database.SetNull,
	}, userFK[0])
}

func TestColumnConstraints_UnknownDeleteRuleFailsLoudly(t *testing.T) {
	conn := connServing([][]any{
		{"orders_user_id_fkey", "orders", "user_id", "users", "id", "EXPLODE"},
	})

	d := NewDialect(conn)
	_, err := d.ColumnConstraints(context.Background(), conn, []database.Table{{Name: "orders"}})
	require.Error(t, err)
	assert.True(t, errs.IsCorruptCatalog(err))
}

func TestExistingIndices_AggregatesOrderedColumns(t *testing.T) {
	users := database.Table{Name: "users"}

	conn := connServing([][]any{
		{"users", "users_compound_idx", false, "last_name,first_name"},
		{"users", "users_email_key", true, "email"},
	})

	d := NewDialect(conn)
	got, err := d.ExistingIndices(context.Background(), conn, []database.Table{users})
	require.NoError(t, err)

	require.Len(t, got[users], 2)
	assert.Equal(t, []string{`"last_name"`, `"first_name"`}, got[users][0].Columns)
	assert.False(t, got[users][0].Unique)
	assert.True(t, got[users][1].Unique)
}

func TestExistingIndices_QueryExcludesPrimaryKeyIndex(t *testing.T) {
	var gotQuery string
	conn := &fakeConn{
		onQuery: func(q string, _ []any) ([][]any, error) {
			gotQuery = q
			return nil, nil
		},
	}

	d := NewDialect(conn)
	_, err := d.ExistingIndices(context.Background(), conn, []database.Table{{Name: "users"}})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "NOT ix.indisprimary")
	assert.Contains(t, gotQuery, "string_agg(a.attname")
}
