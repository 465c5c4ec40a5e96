package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlbridge/internal/errs"
)

func newTestBuilder() *Builder {
	return NewBuilder(ansiQuote, question)
}

func TestBase_Insert(t *testing.T) {
	d := NewBase()

	stmt := d.Insert(newTestBuilder(), false, Table{Name: "users"}, []string{"id", "name"}, "?, ?")
	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES (?, ?)`, stmt)
}

func TestBase_Insert_NoColumns(t *testing.T) {
	d := NewBase()

	stmt := d.Insert(newTestBuilder(), false, Table{Name: "users"}, nil, "")
	assert.Equal(t, `INSERT INTO "users" DEFAULT VALUES`, stmt)
}

func TestBase_Delete(t *testing.T) {
	d := NewBase()

	stmt := d.Delete(newTestBuilder(), false, Table{Name: "users"}, `"id" = ?`)
	assert.Equal(t, `DELETE FROM "users" WHERE "id" = ?`, stmt)

	stmt = d.Delete(newTestBuilder(), false, Table{Name: "users"}, "")
	assert.Equal(t, `DELETE FROM "users"`, stmt)
}

func TestBase_Replace_Unsupported(t *testing.T) {
	d := NewBase()

	_, err := d.Replace(newTestBuilder(), Table{Name: "users"}, []ColumnValue{{Column: "id", Value: 1}})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestBase_DropIndex(t *testing.T) {
	d := NewBase()

	stmt := d.DropIndex(newTestBuilder(), Table{Name: "users"}, "users_email_idx")
	assert.Equal(t, `DROP INDEX "users_email_idx"`, stmt)
}
