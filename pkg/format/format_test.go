package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapreport/pkg/parser"
)

func TestRebuild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed alias styles",
			input: `SELECT a "Col 1", SUM(b) AS total FROM t WHERE c = $P{c} ORDER BY a`,
			want:  "SELECT a AS `Col 1`, SUM(b) AS `total` FROM t WHERE c = $P{c} ORDER BY a",
		},
		{
			name:  "comments and newlines cleaned",
			input: "SELECT\n  a AS x, -- first\n  b y\nFROM t;",
			want:  "SELECT a AS `x`, b AS `y` FROM t",
		},
		{
			name:  "subquery field",
			input: "SELECT (SELECT MAX(x) FROM u) AS m FROM t",
			want:  "SELECT (SELECT MAX(x) FROM u) AS `m` FROM t",
		},
		{
			name:  "prefix before select kept",
			input: "WITH c AS (SELECT 1 AS n FROM dual) SELECT n 'N' FROM c",
			want:  "WITH c AS (SELECT 1 AS n FROM dual) SELECT n AS `N` FROM c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parser.Analyze(tt.input)
			require.NoError(t, err)

			got, err := Rebuild(q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	inputs := []string{
		`SELECT a "Col 1", SUM(b) AS total FROM t WHERE c = $P{c} ORDER BY a DESC`,
		"SELECT x.id AS `ID`, CONCAT(a, ', ', b) 'Full Name' FROM x JOIN y ON y.id = x.id",
	}
	for _, input := range inputs {
		q, err := parser.Analyze(input)
		require.NoError(t, err)
		once, err := Rebuild(q)
		require.NoError(t, err)

		q2, err := parser.Analyze(once)
		require.NoError(t, err)
		twice, err := Rebuild(q2)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		require.Len(t, q2.Fields, len(q.Fields))
		for i := range q.Fields {
			assert.Equal(t, q.Fields[i].Expression, q2.Fields[i].Expression)
			assert.Equal(t, q.Fields[i].Alias, q2.Fields[i].Alias)
		}
	}
}

func TestRebuild_MissingAlias(t *testing.T) {
	q, err := parser.Analyze("SELECT a, b AS x FROM t")
	require.NoError(t, err)

	_, err = Rebuild(q)
	var missing *parser.MissingAliasError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "a", missing.Field)
}

func TestRebuild_NoSelectList(t *testing.T) {
	q := &parser.Query{Cleaned: "SELECT FROM t", Clauses: &parser.Clauses{}}
	_, err := Rebuild(q)
	assert.ErrorIs(t, err, ErrNoSelectList)
}

func TestBacktick(t *testing.T) {
	assert.Equal(t, "`Total`", Backtick("Total"))
	assert.Equal(t, "`a``b`", Backtick("a`b"))
}

func TestSelectList(t *testing.T) {
	fields := []parser.SelectField{
		{Expression: "a", Alias: "x", HasAlias: true},
		{Expression: "SUM(b)", Alias: "Total B", HasAlias: true},
	}
	assert.Equal(t, "a AS `x`, SUM(b) AS `Total B`", SelectList(fields))
}
