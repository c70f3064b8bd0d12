// Package guard enforces the write-safety policy for report base queries:
// INSERT, UPDATE, DELETE and CREATE TABLE are only allowed against tables
// whose name starts with the __temp_ prefix.
//
// Checks run on the comment-stripped query. Quoted strings and identifiers
// are single tokens, so text such as `Update Type` or 'delete me' can never
// forge or hide a keyword.
package guard

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/parser"
	"github.com/leapstack-labs/leapreport/pkg/token"
)

// TempPrefix is the required prefix of every writable table.
const TempPrefix = "__temp_"

// contextRadius is how many bytes around a DML keyword are searched for
// TempPrefix and reported as context.
const contextRadius = 40

// Source is a query prepared for checking.
type Source struct {
	Text   string        // comment-stripped query
	Masked string        // Text with quoted spans blanked out
	Tokens []token.Token // tokens of Text, without EOF
}

// NewSource strips comments from sql and tokenizes the result.
func NewSource(sql string) *Source {
	text := parser.StripComments(sql)
	all := parser.Tokenize(text)

	toks := make([]token.Token, 0, len(all))
	masked := []byte(text)
	for _, tok := range all {
		if tok.Type == token.EOF {
			continue
		}
		toks = append(toks, tok)
		if tok.Type == token.QIDENT || tok.Type == token.STRING {
			for i := tok.Pos.Offset; i < tok.End; i++ {
				masked[i] = ' '
			}
		}
	}
	return &Source{Text: text, Masked: string(masked), Tokens: toks}
}

// Findings runs every rule against sql and returns all violations in rule
// order.
func Findings(sql string) []*BaseQueryValidationError {
	src := NewSource(sql)
	var out []*BaseQueryValidationError
	for _, rule := range Rules {
		out = append(out, rule.Check(src)...)
	}
	return out
}

// Validate returns the first violation of the temp-table policy, or nil.
func Validate(sql string) error {
	if findings := Findings(sql); len(findings) > 0 {
		return findings[0]
	}
	return nil
}

// context returns the text around offset for error messages, whitespace
// collapsed.
func (s *Source) context(offset int) string {
	start := max(0, offset-contextRadius)
	end := min(len(s.Text), start+2*contextRadius)
	return strings.Join(strings.Fields(s.Text[start:end]), " ")
}

// nearTemp reports whether TempPrefix occurs outside quotes within
// contextRadius bytes of offset.
func (s *Source) nearTemp(offset int) bool {
	start := max(0, offset-contextRadius)
	end := min(len(s.Masked), offset+contextRadius)
	return strings.Contains(strings.ToLower(s.Masked[start:end]), TempPrefix)
}

// BaseQueryValidationError reports a write that the temp-table policy
// forbids.
type BaseQueryValidationError struct {
	Rule    string // ID of the rule that fired
	Keyword string // offending statement keyword(s) as written
	Table   string // target table, empty when none was found
	Context string // surrounding query text
	Offset  int    // byte offset of Keyword in the comment-stripped query
}

func (e *BaseQueryValidationError) Error() string {
	switch e.Rule {
	case RuleCreateTarget:
		return fmt.Sprintf(ErrCreateTarget, e.Table)
	case RuleResidualDML:
		return fmt.Sprintf(ErrResidualDML, e.Keyword, e.Context)
	default:
		return fmt.Sprintf(ErrDMLTarget, e.Keyword, e.Table)
	}
}

// ReadOnlyViolationError reports a keyword that is not allowed in a
// read-only query.
type ReadOnlyViolationError struct {
	Keyword string
	Offset  int
}

func (e *ReadOnlyViolationError) Error() string {
	return fmt.Sprintf(ErrReadOnly, e.Keyword)
}

// Error messages
const (
	ErrDMLTarget    = "DML statement '%s' is only allowed on temporary tables prefixed with __temp_. Found: %s"
	ErrCreateTarget = "Temporary tables must be named with the __temp_ prefix. Found: %s"
	ErrResidualDML  = "DML statement '%s' is not allowed except for __temp_ tables. Context: %s"
	ErrReadOnly     = "Query contains potentially unsafe operations: %s"
)
