package mysql

import (
	"strings"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
)

// Replace builds REPLACE INTO with every value registered as a
// positional argument on the builder. Columns render in the order
// supplied.
func (d *Dialect) Replace(b *database.Builder, table database.Table, values []database.ColumnValue) (string, error) {
	if len(values) == 0 {
		return "", errs.New(errs.ErrKindInvalidInput,
			"replace into "+table.Name+" requires at least one column value")
	}

	b.Write("REPLACE INTO ").Ident(table.Name).Write(" (")
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
	b.Write(")")
	return b.SQL(), nil
}

// Insert delegates to the default generator, then rewrites the first
// statement keyword to the duplicate-suppressing variant when asked.
func (d *Dialect) Insert(b *database.Builder, ignoreDuplicates bool, table database.Table, columns []string, valuesExpr string) string {
	stmt := d.Base.Insert(b, false, table, columns, valuesExpr)
	if ignoreDuplicates {
		stmt = strings.Replace(stmt, "INSERT", "INSERT IGNORE", 1)
	}
	return stmt
}

// Delete delegates to the default generator, then rewrites the first
// statement keyword to the error-suppressing variant when asked.
func (d *Dialect) Delete(b *database.Builder, ignoreErrors bool, table database.Table, where string) string {
	stmt := d.Base.Delete(b, false, table, where)
	if ignoreErrors {
		stmt = strings.Replace(stmt, "DELETE", "DELETE IGNORE", 1)
	}
	return stmt
}

// DropIndex renders the ALTER TABLE form. MySQL index names are scoped
// per table, so a standalone DROP INDEX would be ambiguous without the
// table qualifier.
func (d *Dialect) DropIndex(b *database.Builder, table database.Table, index string) string {
	b.Write("ALTER TABLE ").Ident(table.Name).Write(" DROP INDEX ").Ident(index)
	return b.SQL()
}
