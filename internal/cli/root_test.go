package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapreport/internal/cli/config"
	"github.com/leapstack-labs/leapreport/internal/cli/testutil"
	"github.com/leapstack-labs/leapreport/pkg/guard"
	"github.com/leapstack-labs/leapreport/pkg/parser"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := run(t, "", "analyze", "-o", "json",
		"-q", `SELECT a AS "Col 1" FROM t WHERE id = $P{uid} ORDER BY a DESC`)
	require.NoError(t, err)

	var d report.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "SELECT a AS `Col 1` FROM t WHERE id = $P{uid} ORDER BY a DESC", d.BaseQuery)
	require.Len(t, d.Parameters, 1)
	assert.Equal(t, "uid", d.Parameters[0].Name)
	assert.Equal(t, []report.SortField{{Field: "a", Direction: parser.Desc}}, d.SortFields)
}

func TestAnalyze_FileAsText(t *testing.T) {
	path := testutil.WriteQueryFile(t, "SELECT l.amount AS Amount\nFROM loans l\nWHERE l.branch_id = $P{branch}\n")

	out, _, err := run(t, "", "analyze", path, "-o", "text", "--no-headers")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertContains(t, out, "Select fields")
	testutil.AssertContains(t, out, "l.amount AS Amount")
	testutil.AssertContains(t, out, "java.lang.Integer")
	testutil.AssertContains(t, out, "l.branch_id")
}

func TestAnalyze_StdinYAML(t *testing.T) {
	out, _, err := run(t, "SELECT a AS x FROM t", "analyze", "-", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "base_query: SELECT a AS `x` FROM t")
	assert.Contains(t, out, "it_institute_header:")
}

func TestAnalyze_StaticHeaderFromConfig(t *testing.T) {
	cfgPath := testutil.WriteConfigFile(t, "institute:\n  driver: static\n  static:\n    header_en: Sample Bank\n")

	out, _, err := run(t, "", "--config", cfgPath, "analyze", "-o", "json", "-q", "SELECT a AS x FROM t")
	require.NoError(t, err)

	var d report.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "Sample Bank", d.InstituteHeader.EN)
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := run(t, "", "analyze", "-q", "SELECT a, b AS x FROM t")
	var missing *parser.MissingAliasError
	assert.ErrorAs(t, err, &missing)

	_, _, err = run(t, "", "analyze", "-q", "INSERT INTO customers VALUES (1)")
	var policy *guard.BaseQueryValidationError
	assert.ErrorAs(t, err, &policy)

	_, _, err = run(t, "   ", "analyze")
	assert.ErrorContains(t, err, "no query given")

	_, _, err = run(t, "", "analyze", "some.sql", "-q", "SELECT a AS x FROM t")
	assert.ErrorContains(t, err, "not both")

	_, _, err = run(t, "", "analyze", "-o", "xml", "-q", "SELECT a AS x FROM t")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "", "validate", "-q", "INSERT INTO __temp_x VALUES (1)")
	require.NoError(t, err)
	assert.Equal(t, "✓ Query is valid\n", out)

	_, _, err = run(t, "", "validate", "-q", "UPDATE accounts SET a = 1")
	var policy *guard.BaseQueryValidationError
	assert.ErrorAs(t, err, &policy)

	_, _, err = run(t, "", "validate", "--read-only", "-q", "INSERT INTO __temp_x VALUES (1)")
	var ro *guard.ReadOnlyViolationError
	assert.ErrorAs(t, err, &ro)
}

func TestValidate_All(t *testing.T) {
	_, errOut, err := run(t, "", "validate", "--all", "-q",
		"INSERT INTO a VALUES (1); CREATE TABLE b (x INT)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Found: a")
	assert.Contains(t, errOut, "GD02: Temporary tables must be named with the __temp_ prefix. Found: b")
}

func TestQuote(t *testing.T) {
	out, _, err := run(t, "", "quote", "-q", "SELECT amount AS Total Amount FROM loans")
	require.NoError(t, err)
	assert.Equal(t, "SELECT amount AS `Total Amount` FROM loans\n", out)
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}

func TestGetConfigAndRendererFallbacks(t *testing.T) {
	cmd := NewRootCmd()
	assert.NotNil(t, GetConfig(cmd.Context()))
	assert.NotNil(t, GetRenderer(cmd.Context()))
}
