package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlbridge/internal/errs"
)

func TestParseReferenceAction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ReferenceAction
		wantErr bool
	}{
		{name: "cascade", input: "CASCADE", want: Cascade},
		{name: "set null with space", input: "SET NULL", want: SetNull},
		{name: "set default with space", input: "SET DEFAULT", want: SetDefault},
		{name: "no action with space", input: "NO ACTION", want: NoAction},
		{name: "restrict", input: "RESTRICT", want: Restrict},
		{name: "lower case", input: "cascade", want: Cascade},
		{name: "already tokenized", input: "SET_NULL", want: SetNull},
		{name: "surrounding whitespace", input: "  RESTRICT ", want: Restrict},
		{name: "unknown rule fails", input: "DO SOMETHING", wantErr: true},
		{name: "empty fails", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReferenceAction(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsCorruptCatalog(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceAction_String(t *testing.T) {
	assert.Equal(t, "SET_NULL", SetNull.String())
	assert.Equal(t, "NO_ACTION", NoAction.String())
	assert.Equal(t, "CASCADE", Cascade.String())
}

func TestTable_Key(t *testing.T) {
	assert.Equal(t, "users", Table{Name: "Users"}.Key())
	assert.Equal(t, "users", Table{Name: "users"}.Key())
}
