package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapreport/internal/testutil"
	"github.com/leapstack-labs/leapreport/pkg/guard"
	"github.com/leapstack-labs/leapreport/pkg/infer"
	"github.com/leapstack-labs/leapreport/pkg/parser"
)

type fakeHeaders struct {
	header Header
	err    error
	calls  int
}

func (f *fakeHeaders) Header(context.Context) (Header, error) {
	f.calls++
	return f.header, f.err
}

func TestGenerate(t *testing.T) {
	headers := &fakeHeaders{header: Header{EN: "Sample Bank", SI: "නියැදි", TA: "மாதிரி"}}
	g := New(Config{Headers: headers, Logger: testutil.NewTestLogger(t)})

	d, err := g.Generate(context.Background(), `SELECT a AS "Col 1" FROM t WHERE id = $P{uid} ORDER BY a DESC`)
	require.NoError(t, err)

	want := "SELECT a AS `Col 1` FROM t WHERE id = $P{uid} ORDER BY a DESC"
	assert.Equal(t, want, d.BaseQuery)
	assert.Equal(t, want, d.OriginalBaseQuery)
	assert.Equal(t, headers.header, d.InstituteHeader)
	assert.Equal(t, 1, headers.calls)

	require.Len(t, d.Parameters, 1)
	assert.Equal(t, "uid", d.Parameters[0].Name)
	assert.Equal(t, infer.Integer, d.Parameters[0].Class)

	assert.Equal(t, []SelectField{{IsChecked: true, NameEN: "a AS Col 1", Alignment: DefaultAlignment}}, d.SelectFields)
	assert.Equal(t, []SearchField{{IsChecked: true, NameEN: "id"}}, d.SearchFields)
	assert.Equal(t, []SortField{{Field: "a", Direction: parser.Desc}}, d.SortFields)
	assert.Empty(t, d.ReportName)
	assert.Equal(t, Headings{}, d.Headings)
}

func TestGenerate_ClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target any
	}{
		{"blank", "   \n", new(*parser.ParseError)},
		{"no from", "SELECT 1", new(*parser.ParseError)},
		{"missing alias", "SELECT a, b AS x FROM t", new(*parser.MissingAliasError)},
		{"duplicate alias", "SELECT a AS x, b AS `X` FROM t", new(*parser.DuplicateFieldError)},
		{"insert into permanent table", "INSERT INTO customers VALUES (1)", new(*guard.BaseQueryValidationError)},
		{"create permanent table", "CREATE TABLE out_t AS SELECT a AS x FROM t", new(*guard.BaseQueryValidationError)},
	}

	g := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := g.Generate(context.Background(), tt.query)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestGenerate_TempTableAccepted(t *testing.T) {
	g := New(Config{})
	d, err := g.Generate(context.Background(),
		"CREATE TEMPORARY TABLE __temp_x AS SELECT id AS i FROM loans;\nSELECT i AS ID FROM __temp_x")
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE TEMPORARY TABLE __temp_x AS SELECT id AS i FROM loans; SELECT i AS `ID` FROM __temp_x",
		d.BaseQuery)
	require.Len(t, d.SelectFields, 1)
	assert.Equal(t, "i AS ID", d.SelectFields[0].NameEN)
}

func TestGenerate_CommentsStripped(t *testing.T) {
	g := New(Config{})
	d, err := g.Generate(context.Background(), "-- DROP TABLE x\nSELECT a AS x /* note */ FROM t")
	require.NoError(t, err)
	assert.NotContains(t, d.BaseQuery, "DROP")
	assert.NotContains(t, d.BaseQuery, "note")
	assert.Equal(t, "SELECT a AS `x` FROM t", d.BaseQuery)
}

func TestGenerate_HeaderFailureDegrades(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	g := New(Config{
		Headers: &fakeHeaders{err: errors.New("connection refused")},
		Logger:  logger,
	})

	d, err := g.Generate(context.Background(), "SELECT a AS x FROM t")
	require.NoError(t, err)
	assert.Equal(t, Header{}, d.InstituteHeader)
	assert.Contains(t, logs.String(), "institute header lookup failed")
	assert.Contains(t, logs.String(), "connection refused")
}

type fixedClassifier struct{}

func (fixedClassifier) Classify(_ string, p parser.Placeholder) infer.Parameter {
	return infer.Parameter{Name: p.Name, Class: infer.Date}
}

func TestGenerate_CustomClassifier(t *testing.T) {
	g := New(Config{Classifier: fixedClassifier{}})
	d, err := g.Generate(context.Background(), "SELECT a AS x FROM t WHERE t.id = $P{id}")
	require.NoError(t, err)
	require.Len(t, d.Parameters, 1)
	assert.Equal(t, infer.Date, d.Parameters[0].Class)
}

func TestDescriptor_JSONShape(t *testing.T) {
	g := New(Config{})
	d, err := g.Generate(context.Background(), "SELECT a AS x FROM t")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"base_query", "original_base_query", "headings", "it_institute_header", "parameters",
		"report_name", "search_fields", "select_fields", "sort_fields",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []any{}, raw["parameters"])
	assert.Equal(t, []any{}, raw["search_fields"])
	assert.Equal(t, []any{}, raw["sort_fields"])

	header, ok := raw["it_institute_header"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, header, "header_en")
	assert.Contains(t, header, "header_si")
	assert.Contains(t, header, "header_ta")

	fields, ok := raw["select_fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, map[string]any{"isChecked": true, "name_en": "a AS x", "alignment": "left"}, fields[0])
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"parse", &parser.ParseError{Pos: -1, Message: "x"}, true},
		{"missing alias", &parser.MissingAliasError{Field: "a"}, true},
		{"duplicate", &parser.DuplicateFieldError{Alias: "a"}, true},
		{"policy", &guard.BaseQueryValidationError{Rule: "GD01"}, true},
		{"read only", &guard.ReadOnlyViolationError{Keyword: "DROP"}, true},
		{"wrapped", fmt.Errorf("generate: %w", &parser.MissingAliasError{Field: "a"}), true},
		{"other", errors.New("database is down"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClientError(tt.err))
		})
	}
}
