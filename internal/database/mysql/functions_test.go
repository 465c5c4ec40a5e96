package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlbridge/internal/database"
	"github.com/koustreak/sqlbridge/internal/errs"
)

func TestFunctionProvider_Cast(t *testing.T) {
	fns := FunctionProvider{}

	tests := []struct {
		name   string
		expr   string
		target database.ColumnType
		want   string
	}{
		{
			name:   "string targets use CHAR, never the native syntax",
			expr:   "price",
			target: database.ColumnType{Kind: database.TypeString, SQL: "varchar(255)"},
			want:   "CAST(price AS CHAR)",
		},
		{
			name:   "integer target keeps native syntax",
			expr:   "amount",
			target: database.ColumnType{Kind: database.TypeInteger, SQL: "signed"},
			want:   "CAST(amount AS signed)",
		},
		{
			name:   "temporal target keeps native syntax",
			expr:   "created_at",
			target: database.ColumnType{Kind: database.TypeTemporal, SQL: "datetime(6)"},
			want:   "CAST(created_at AS datetime(6))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fns.Cast(tt.expr, tt.target))
		})
	}
}

func TestFunctionProvider_Random(t *testing.T) {
	fns := FunctionProvider{}

	assert.Equal(t, "RAND()", fns.Random(nil))

	seed := int64(42)
	assert.Equal(t, "RAND(42)", fns.Random(&seed))
}

func TestFunctionProvider_Match(t *testing.T) {
	fns := FunctionProvider{}

	got, err := fns.Match("`title`", "+golang -java", database.MatchStrict)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (`title`) AGAINST ('+golang -java' IN BOOLEAN MODE)", got)

	got, err = fns.Match("`title`", "database tools", database.MatchNaturalLanguage)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (`title`) AGAINST ('database tools' IN NATURAL LANGUAGE MODE)", got)
}

func TestFunctionProvider_Match_EscapesPattern(t *testing.T) {
	fns := FunctionProvider{}

	got, err := fns.Match("`title`", `it's a \trap`, database.MatchStrict)
	require.NoError(t, err)
	assert.Equal(t, `MATCH (`+"`title`"+`) AGAINST ('it''s a \\trap' IN BOOLEAN MODE)`, got)
}

func TestFunctionProvider_Match_UnknownMode(t *testing.T) {
	fns := FunctionProvider{}

	_, err := fns.Match("`title`", "x", database.MatchMode(99))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}
