package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MCPL_HOST", "127.0.0.1")
	t.Setenv("MCPL_EMPTY", "")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty input", input: "", want: ""},
		{name: "no references", input: "plain", want: "plain"},
		{name: "set variable", input: "${MCPL_HOST}", want: "127.0.0.1"},
		{name: "set variable ignores default", input: "${MCPL_HOST:0.0.0.0}", want: "127.0.0.1"},
		{name: "empty but set wins", input: "x${MCPL_EMPTY:fallback}x", want: "xx"},
		{name: "default used", input: "${MCPL_UNSET_PORT:8000}", want: "8000"},
		{name: "empty default", input: "[${MCPL_UNSET_PORT:}]", want: "[]"},
		{name: "mixed", input: "http://${MCPL_HOST}:${MCPL_UNSET_PORT:8080}/mcp", want: "http://127.0.0.1:8080/mcp"},
		{name: "missing without default", input: "a-${MCPL_MISSING}-b", want: "a-${MCPL_MISSING}-b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnvVars(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUndefinedVariable)
				assert.Contains(t, err.Error(), "MCPL_MISSING")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
