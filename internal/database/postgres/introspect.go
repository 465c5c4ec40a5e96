package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/sqlbridge/internal/database"
)

const indexColumnSeparator = ","

// TableColumns returns, per requested table, every (column, nullability)
// pair the catalog reports for the active schema.
func (d *Dialect) TableColumns(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.Table][]database.Column, error) {
	query := `
		SELECT DISTINCT table_name, column_name, is_nullable = 'YES'
		FROM information_schema.columns
		WHERE table_schema = current_schema()`

	var args []any
	if len(tables) > 0 {
		query += " AND table_name IN (" + inPlaceholders(1, len(tables)) + ")"
		for _, t := range tables {
			args = append(args, t.Name)
		}
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requested := make(map[string]database.Table, len(tables))
	for _, t := range tables {
		requested[t.Name] = t
	}

	result := make(map[database.Table][]database.Column)
	for rows.Next() {
		var tableName, columnName string
		var nullable bool
		if err := rows.Scan(&tableName, &columnName, &nullable); err != nil {
			return nil, err
		}

		table, ok := requested[tableName]
		if !ok {
			if len(tables) > 0 {
				continue
			}
			table = database.Table{Name: tableName}
		}
		result[table] = append(result[table], database.Column{
			Name:     columnName,
			Nullable: nullable,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ColumnConstraints returns the foreign keys of the requested tables,
// grouped by the referencing column. Postgres reports the referenced
// side through constraint_column_usage rather than key_column_usage, so
// the join is three-way.
func (d *Dialect) ColumnConstraints(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.ColumnRef][]database.ForeignKeyConstraint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	query := `
		SELECT
			rc.constraint_name,
			kcu.table_name,
			kcu.column_name,
			ccu.table_name,
			ccu.column_name,
			rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON  kcu.constraint_schema = rc.constraint_schema
			AND kcu.constraint_name   = rc.constraint_name
		JOIN information_schema.constraint_column_usage ccu
			ON  ccu.constraint_schema = rc.constraint_schema
			AND ccu.constraint_name   = rc.constraint_name
		WHERE rc.constraint_schema = current_schema()`

	var args []any
	if len(tables) > 0 {
		query += " AND kcu.table_name IN (" + inPlaceholders(1, len(tables)) + ")"
		for _, t := range tables {
			args = append(args, t.Name)
		}
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requested := make(map[string]bool, len(tables))
	for _, t := range tables {
		requested[t.Name] = true
	}

	result := make(map[database.ColumnRef][]database.ForeignKeyConstraint)
	for rows.Next() {
		var name, tableName, columnName, refTable, refColumn, deleteRule string
		if err := rows.Scan(&name, &tableName, &columnName, &refTable, &refColumn, &deleteRule); err != nil {
			return nil, err
		}
		if len(tables) > 0 && !requested[tableName] {
			continue
		}

		onDelete, err := database.ParseReferenceAction(deleteRule)
		if err != nil {
			return nil, err
		}

		key := database.ColumnRef{Table: tableName, Column: columnName}
		result[key] = append(result[key], database.ForeignKeyConstraint{
			Name:      name,
			Table:     tableName,
			Column:    columnName,
			RefTable:  refTable,
			RefColumn: refColumn,
			OnDelete:  onDelete,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ExistingIndices returns the user-defined indices of the requested
// tables from pg_index, with column names aggregated server-side in
// index sequence order. The primary-key index is excluded via
// indisprimary. Postgres does not auto-create indices to back foreign
// keys, so no FK-backed filter applies here.
func (d *Dialect) ExistingIndices(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.Table][]database.Index, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	query := `
		SELECT
			t.relname,
			i.relname,
			ix.indisunique,
			string_agg(a.attname, '` + indexColumnSeparator + `' ORDER BY k.n)
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, n) ON true
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
		WHERE n.nspname = current_schema()
		  AND NOT ix.indisprimary`

	var args []any
	if len(tables) > 0 {
		query += " AND t.relname IN (" + inPlaceholders(1, len(tables)) + ")"
		for _, t := range tables {
			args = append(args, t.Name)
		}
	}

	query += `
		GROUP BY t.relname, i.relname, ix.indisunique`

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requested := make(map[string]database.Table, len(tables))
	for _, t := range tables {
		requested[t.Key()] = t
	}

	result := make(map[database.Table][]database.Index)
	for rows.Next() {
		var tableName, indexName, columnNames string
		var unique bool
		if err := rows.Scan(&tableName, &indexName, &unique, &columnNames); err != nil {
			return nil, err
		}

		table, ok := requested[strings.ToLower(tableName)]
		if !ok {
			if len(tables) > 0 {
				continue
			}
			table = database.Table{Name: tableName}
		}

		parts := strings.Split(columnNames, indexColumnSeparator)
		columns := make([]string, len(parts))
		for i, p := range parts {
			columns[i] = conn.Quote(p)
		}

		result[table] = append(result[table], database.Index{
			Name:    indexName,
			Table:   table.Name,
			Columns: columns,
			Unique:  unique,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// inPlaceholders renders n comma-separated $k markers starting at start.
func inPlaceholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
