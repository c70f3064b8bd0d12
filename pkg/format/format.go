// Package format re-serializes report queries with normalized alias quoting.
package format

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/parser"
)

// ErrNoSelectList is returned by Rebuild when the query has no select list
// to replace.
var ErrNoSelectList = errors.New("format: query has no select list")

// Field renders one select field as `<expr> AS `alias``.
func Field(f parser.SelectField) string {
	return f.Expression + " AS " + Backtick(f.Alias)
}

// SelectList renders fields joined by ", ".
func SelectList(fields []parser.SelectField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = Field(f)
	}
	return strings.Join(parts, ", ")
}

// Backtick quotes name as a MySQL identifier.
func Backtick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Rebuild returns q.Cleaned with its top-level select list replaced by
// SelectList(q.Fields). Every field must carry an alias.
func Rebuild(q *parser.Query) (string, error) {
	sel := q.Clauses.Select
	if !sel.Found || len(sel.Tokens) == 0 {
		return "", ErrNoSelectList
	}
	for _, f := range q.Fields {
		if !f.HasAlias {
			return "", &parser.MissingAliasError{Field: f.Expression}
		}
	}

	var b strings.Builder
	b.Grow(len(q.Cleaned) + 8*len(q.Fields))
	b.WriteString(q.Cleaned[:sel.Start])
	b.WriteString(SelectList(q.Fields))
	b.WriteString(q.Cleaned[sel.End:])
	return b.String(), nil
}
