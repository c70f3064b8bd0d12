package guard

import (
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/token"
)

// RuleDef is one policy check.
type RuleDef struct {
	ID          string
	Name        string
	Description string
	Check       func(s *Source) []*BaseQueryValidationError
}

// Rule IDs.
const (
	RuleDMLTarget    = "GD01"
	RuleCreateTarget = "GD02"
	RuleResidualDML  = "GD03"
)

// Rules are run in this order by Findings.
var Rules = []RuleDef{
	DMLTarget,
	CreateTarget,
	ResidualDML,
}

// DMLTarget flags INSERT INTO, UPDATE and DELETE FROM statements whose
// target table lacks the __temp_ prefix.
var DMLTarget = RuleDef{
	ID:          RuleDMLTarget,
	Name:        "dml.target",
	Description: "INSERT INTO, UPDATE and DELETE FROM may only target __temp_ tables",
	Check:       checkDMLTarget,
}

// CreateTarget flags CREATE TABLE statements for non-__temp_ tables.
var CreateTarget = RuleDef{
	ID:          RuleCreateTarget,
	Name:        "dml.create",
	Description: "CREATE TABLE may only create __temp_ tables",
	Check:       checkCreateTarget,
}

// ResidualDML flags INSERT, UPDATE and DELETE keywords that are not part of
// a recognized statement and have no __temp_ name nearby.
var ResidualDML = RuleDef{
	ID:          RuleResidualDML,
	Name:        "dml.residual",
	Description: "bare INSERT, UPDATE and DELETE keywords need a nearby __temp_ table",
	Check:       checkResidual,
}

// statement is one recognized write statement.
type statement struct {
	kind    token.TokenType // INSERT, UPDATE, DELETE or CREATE
	keyword int             // index of the leading keyword token
	table   int             // index of the first target name token
	name    string          // unquoted target name
}

func checkDMLTarget(s *Source) []*BaseQueryValidationError {
	var out []*BaseQueryValidationError
	for _, st := range s.statements() {
		if st.kind == token.CREATE || isTemp(st.name) {
			continue
		}
		kw := s.Tokens[st.keyword]
		out = append(out, &BaseQueryValidationError{
			Rule:    RuleDMLTarget,
			Keyword: s.words(st.keyword, st.table),
			Table:   st.name,
			Context: s.context(kw.Pos.Offset),
			Offset:  kw.Pos.Offset,
		})
	}
	return out
}

func checkCreateTarget(s *Source) []*BaseQueryValidationError {
	var out []*BaseQueryValidationError
	for _, st := range s.statements() {
		if st.kind != token.CREATE || isTemp(st.name) {
			continue
		}
		kw := s.Tokens[st.keyword]
		out = append(out, &BaseQueryValidationError{
			Rule:    RuleCreateTarget,
			Keyword: s.words(st.keyword, st.table),
			Table:   st.name,
			Context: s.context(kw.Pos.Offset),
			Offset:  kw.Pos.Offset,
		})
	}
	return out
}

func checkResidual(s *Source) []*BaseQueryValidationError {
	explained := make(map[int]bool)
	for _, st := range s.statements() {
		explained[st.keyword] = true
	}

	var out []*BaseQueryValidationError
	for i, tok := range s.Tokens {
		switch tok.Type {
		case token.INSERT, token.UPDATE, token.DELETE:
		default:
			continue
		}
		if explained[i] || s.nearTemp(tok.Pos.Offset) {
			continue
		}
		out = append(out, &BaseQueryValidationError{
			Rule:    RuleResidualDML,
			Keyword: tok.Literal,
			Context: s.context(tok.Pos.Offset),
			Offset:  tok.Pos.Offset,
		})
	}
	return out
}

// statements finds INSERT INTO t, UPDATE t, DELETE FROM t and
// CREATE [TEMPORARY] TABLE [IF NOT EXISTS] t.
func (s *Source) statements() []statement {
	var out []statement
	toks := s.Tokens
	for i, tok := range toks {
		next := i + 1
		switch tok.Type {
		case token.INSERT:
			if !s.is(next, token.INTO) {
				continue
			}
			next++
		case token.DELETE:
			if !s.is(next, token.FROM) {
				continue
			}
			next++
		case token.UPDATE:
		case token.CREATE:
			if s.word(next, "TEMPORARY") {
				next++
			}
			if !s.is(next, token.TABLE) {
				continue
			}
			next++
			if s.word(next, "IF") && s.word(next+1, "NOT") && s.word(next+2, "EXISTS") {
				next += 3
			}
		default:
			continue
		}

		if name, ok := s.tableName(next); ok {
			out = append(out, statement{kind: tok.Type, keyword: i, table: next, name: name})
		}
	}
	return out
}

// tableName reads a possibly dotted, possibly quoted name starting at i.
func (s *Source) tableName(i int) (string, bool) {
	if !s.namePart(i) {
		return "", false
	}
	parts := []string{s.Tokens[i].Unquote()}
	for s.is(i+1, token.DOT) && s.namePart(i+2) &&
		s.Tokens[i].End == s.Tokens[i+1].Pos.Offset && s.Tokens[i+1].End == s.Tokens[i+2].Pos.Offset {
		parts = append(parts, s.Tokens[i+2].Unquote())
		i += 2
	}
	return strings.Join(parts, "."), true
}

func (s *Source) namePart(i int) bool {
	if i >= len(s.Tokens) {
		return false
	}
	tok := s.Tokens[i]
	return tok.Type == token.QIDENT || tok.Type == token.IDENT || tok.Type == token.NUMBER
}

func (s *Source) is(i int, t token.TokenType) bool {
	return i < len(s.Tokens) && s.Tokens[i].Type == t
}

func (s *Source) word(i int, w string) bool {
	return i < len(s.Tokens) && s.Tokens[i].IsWord() && strings.EqualFold(s.Tokens[i].Literal, w)
}

// words returns the literals of tokens [from, to) joined by single spaces.
func (s *Source) words(from, to int) string {
	lits := make([]string, 0, to-from)
	for _, tok := range s.Tokens[from:to] {
		lits = append(lits, tok.Literal)
	}
	return strings.Join(lits, " ")
}

func isTemp(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), TempPrefix)
}
