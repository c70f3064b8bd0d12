package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func newTest(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRenderer(out, errOut, mode), out, errOut
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeAuto, ModeJSON},
		{"", ModeJSON},
		{ModeText, ModeText},
		{"YAML", ModeYAML},
		{ModeJSON, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTest(tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Structured(t *testing.T) {
	v := sample{Name: "a <b>", Count: 2}

	r, out, _ := newTest(ModeJSON)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"a <b>","count":2}`, out.String())
	assert.Contains(t, out.String(), "a <b>", "HTML is not escaped")

	r, out, _ = newTest(ModeYAML)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "name: a <b>\ncount: 2\n", out.String())

	r, out, _ = newTest(ModeText)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestRenderer_Table(t *testing.T) {
	r, out, _ := newTest(ModeText)
	r.Table("Fields", table.Row{"Name", "Class"}, []table.Row{{"uid", "java.lang.String"}})

	s := out.String()
	assert.Contains(t, s, "Fields")
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "java.lang.String")
	assert.Contains(t, s, "┌")
}

func TestRenderer_EmptyTable(t *testing.T) {
	r, out, _ := newTest(ModeText)
	r.Table("Sort fields", table.Row{"Field"}, nil)
	assert.Equal(t, "Sort fields\n  (none)\n\n", out.String())
}

func TestRenderer_Messages(t *testing.T) {
	r, out, errOut := newTest(ModeText)
	r.Success("Query is valid")
	r.Error("bad query")
	r.KeyValue("English", "Bank")

	assert.Equal(t, "✓ Query is valid\n  English:       Bank\n", out.String())
	assert.Equal(t, "✗ bad query\n", errOut.String())
}
