package mysql

import (
	"fmt"
	"strings"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
)

// FunctionProvider maps abstract SQL functions to MySQL syntax.
// All methods are pure fragment generators.
type FunctionProvider struct{}

// Cast renders a type cast. MySQL rejects CAST(... AS VARCHAR); string
// targets are rendered with the cast-only CHAR type instead. CHAR is
// never used for column definitions — it exists solely so that string
// casts are expressible.
func (FunctionProvider) Cast(expr string, target database.ColumnType) string {
	typ := target.SQL
	if target.Kind == database.TypeString {
		typ = "CHAR"
	}
	return fmt.Sprintf("CAST(%s AS %s)", expr, typ)
}

// Random renders RAND(), seeded when seed is non-nil. A seeded call
// returns a repeatable sequence, which schema tooling uses for stable
// sampling.
func (FunctionProvider) Random(seed *int64) string {
	if seed != nil {
		return fmt.Sprintf("RAND(%d)", *seed)
	}
	return "RAND()"
}

// Match renders a full-text predicate: MATCH (col) AGAINST ('pattern'
// <mode>). MatchStrict maps to boolean mode, the operator-driven exact
// semantics. The pattern is embedded as an escaped string literal, not
// parameterized; callers must pre-validate patterns or accept that trust
// boundary.
func (FunctionProvider) Match(column, pattern string, mode database.MatchMode) (string, error) {
	var clause string
	switch mode {
	case database.MatchStrict:
		clause = "IN BOOLEAN MODE"
	case database.MatchNaturalLanguage:
		clause = "IN NATURAL LANGUAGE MODE"
	default:
		return "", errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("unsupported match mode %d", mode))
	}
	return fmt.Sprintf("MATCH (%s) AGAINST ('%s' %s)",
		column, escapeString(pattern), clause), nil
}

// escapeString escapes a value for embedding in a single-quoted MySQL
// string literal: backslashes first, then quote doubling.
func escapeString(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}
