package mysql

import (
	"context"
	"strings"

	"github.com/koustreak/sqlbridge/internal/database"
)

// indexColumnSeparator joins column names in the server-side aggregate
// of the index query. The catalog returns them pre-ordered; the parse
// side splits on exactly this separator.
const indexColumnSeparator = ","

// TableColumns returns, per requested table, every (column, nullability)
// pair the catalog reports. One deduplicated query scoped to the active
// database; rows are folded into a map keyed by the originating Table
// handle, matched case-sensitively on the stored name. With an empty
// tables set the whole schema is returned, keyed by fresh handles.
func (d *Dialect) TableColumns(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.Table][]database.Column, error) {
	query := `
		SELECT DISTINCT table_name, column_name, is_nullable = 'YES'
		FROM information_schema.columns
		WHERE table_schema = DATABASE()`

	var args []any
	if len(tables) > 0 {
		query += " AND table_name IN (" + inPlaceholders(len(tables)) + ")"
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
// grouped by the referencing column. The referential-constraint catalog
// is joined with key-column-usage on constraint identity; rows for
// tables outside the requested set are discarded even though the query
// already narrows, as a guard against overly broad catalog joins.
func (d *Dialect) ColumnConstraints(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.ColumnRef][]database.ForeignKeyConstraint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	query := `
		SELECT
			rc.constraint_name,
			kcu.table_name,
			kcu.column_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name,
			rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON  rc.constraint_schema = kcu.constraint_schema
			AND rc.constraint_name   = kcu.constraint_name
		WHERE rc.constraint_schema = DATABASE()`

	var args []any
	if len(tables) > 0 {
		query += " AND kcu.table_name IN (" + inPlaceholders(len(tables)) + ")"
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
// tables. Per-column statistics rows are aggregated server-side into one
// row per index with the column list concatenated in sequence order. The
// implicit primary-key index is excluded by name, and so are non-unique
// single-column indices that exist solely to back a foreign key (MySQL
// auto-creates those); a unique index survives the filter regardless.
func (d *Dialect) ExistingIndices(ctx context.Context, conn database.Conn, tables []database.Table) (map[database.Table][]database.Index, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	query := `
		SELECT
			idx.table_name,
			idx.index_name,
			idx.non_unique,
			idx.column_names,
			kcu.constraint_name IS NOT NULL
		FROM (
			SELECT
				table_name,
				index_name,
				non_unique,
				GROUP_CONCAT(column_name ORDER BY seq_in_index SEPARATOR '` + indexColumnSeparator + `') AS column_names,
				COUNT(*) AS column_count
			FROM information_schema.statistics
			WHERE table_schema = DATABASE()
			  AND index_name <> 'PRIMARY'`

	var args []any
	if len(tables) > 0 {
		query += "\n\t\t\t  AND table_name IN (" + inPlaceholders(len(tables)) + ")"
		for _, t := range tables {
			args = append(args, t.Name)
		}
	}

	query += `
			GROUP BY table_name, index_name, non_unique
		) idx
		LEFT JOIN information_schema.key_column_usage kcu
			ON  kcu.table_schema = DATABASE()
			AND kcu.table_name   = idx.table_name
			AND kcu.column_name  = idx.column_names
			AND kcu.referenced_table_name IS NOT NULL
			AND idx.column_count = 1`

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
		var nonUnique int
		var fkBacked bool
		if err := rows.Scan(&tableName, &indexName, &nonUnique, &columnNames, &fkBacked); err != nil {
			return nil, err
		}

		// An auto-created FK-support index is not a user-defined index.
		// A unique index on the same column is.
		if fkBacked && nonUnique != 0 {
			continue
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
			Unique:  nonUnique == 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// inPlaceholders renders n comma-separated "?" markers.
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
