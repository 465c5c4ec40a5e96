package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ansiQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func numbered(n int) string { return fmt.Sprintf("$%d", n) }

func question(int) string { return "?" }

func TestBuilder_ArgsAndIdents(t *testing.T) {
	b := NewBuilder(ansiQuote, numbered)
	b.Write("SELECT * FROM ").Ident("users").Write(" WHERE ").
		Ident("id").Write(" = ").Arg(7).
		Write(" AND ").Ident("name").Write(" = ").Arg("ada")

	assert.Equal(t, `SELECT * FROM "users" WHERE "id" = $1 AND "name" = $2`, b.SQL())
	assert.Equal(t, []any{7, "ada"}, b.Args())
}

func TestBuilder_QuestionPlaceholders(t *testing.T) {
	b := NewBuilder(ansiQuote, question)
	b.Write("DELETE FROM ").Ident("t").Write(" WHERE ").
		Ident("a").Write(" = ").Arg(1).Write(" AND ").
		Ident("b").Write(" = ").Arg(2)

	assert.Equal(t, `DELETE FROM "t" WHERE "a" = ? AND "b" = ?`, b.SQL())
	assert.Len(t, b.Args(), 2)
}

func TestBuilder_Idents(t *testing.T) {
	b := NewBuilder(ansiQuote, question)
	b.Idents("a", "b", "c")
	assert.Equal(t, `"a", "b", "c"`, b.SQL())
}

func TestBuilder_QuoteEscapesEmbeddedQuote(t *testing.T) {
	b := NewBuilder(ansiQuote, question)
	b.Ident(`odd"name`)
	assert.Equal(t, `"odd""name"`, b.SQL())
}
