package parser

import (
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/token"
)

// AliasRule recognizes one way of writing a field alias. Match receives the
// cleaned query and the tokens of a single SELECT field and returns the
// expression text and the unquoted alias when the rule applies.
type AliasRule struct {
	Name        string
	Description string
	Match       func(src string, toks []token.Token) (expr, alias string, ok bool)
}

// DefaultAliasRules are tried in order; the first match wins.
var DefaultAliasRules = []AliasRule{
	ExplicitAlias,
	ImplicitQuotedAlias,
	TrailingWordAlias,
}

// ExplicitAlias matches <expr> AS alias, where alias is quoted with "", '',
// `` or [], or is a bare (possibly dotted) identifier.
var ExplicitAlias = AliasRule{
	Name:        "explicit",
	Description: `<expr> AS "alias" | 'alias' | ` + "`alias`" + ` | alias`,
	Match:       matchExplicit,
}

// ImplicitQuotedAlias matches a quoted alias written without AS.
var ImplicitQuotedAlias = AliasRule{
	Name:        "implicit_quoted",
	Description: `<expr> "alias" | 'alias' | ` + "`alias`",
	Match:       matchImplicitQuoted,
}

// TrailingWordAlias treats the last word of a multi-word field as its alias
// unless that word is a sort modifier or opens a parenthesis. It is stricter
// than "last token wins": a word after an operator or an expression keyword,
// and the END of a CASE, are never aliases, so `a + b` and `CASE ... END`
// without AS are reported as missing an alias.
var TrailingWordAlias = AliasRule{
	Name:        "trailing_word",
	Description: "<expr> alias",
	Match:       matchTrailingWord,
}

func matchExplicit(src string, toks []token.Token) (string, string, bool) {
	n := len(toks)
	if n < 3 {
		return "", "", false
	}

	var alias string
	start := n - 1
	switch last := toks[n-1]; {
	case last.Type == token.QIDENT || last.Type == token.STRING:
		alias = strings.TrimSpace(last.Unquote())
	case last.IsWord():
		for start >= 2 && toks[start-1].Type == token.DOT && toks[start-2].IsWord() &&
			adjacent(toks[start-2], toks[start-1]) && adjacent(toks[start-1], toks[start]) {
			start -= 2
		}
		alias = span(src, toks[start:])
	default:
		return "", "", false
	}

	if alias == "" || start < 2 || toks[start-1].Type != token.AS {
		return "", "", false
	}
	return strings.TrimSpace(span(src, toks[:start-1])), alias, true
}

func matchImplicitQuoted(src string, toks []token.Token) (string, string, bool) {
	n := len(toks)
	if n < 2 {
		return "", "", false
	}
	last, prev := toks[n-1], toks[n-2]
	if last.Type != token.QIDENT && last.Type != token.STRING {
		return "", "", false
	}
	if adjacent(prev, last) || continuesExpression(prev) {
		return "", "", false
	}
	alias := strings.TrimSpace(last.Unquote())
	if alias == "" {
		return "", "", false
	}
	return strings.TrimSpace(span(src, toks[:n-1])), alias, true
}

// reservedTrailing words never act as implicit aliases: sort modifiers, the
// END of a CASE expression and a dangling AS.
var reservedTrailing = map[string]bool{
	"as":    true,
	"asc":   true,
	"desc":  true,
	"nulls": true,
	"first": true,
	"last":  true,
	"end":   true,
}

func matchTrailingWord(src string, toks []token.Token) (string, string, bool) {
	ws := words(toks)
	if len(ws) < 2 {
		return "", "", false
	}
	last := ws[len(ws)-1]
	before := ws[len(ws)-2]

	text := span(src, last)
	if reservedTrailing[strings.ToLower(text)] || strings.HasPrefix(text, "(") {
		return "", "", false
	}
	if isOperator(last[0]) || continuesExpression(before[len(before)-1]) {
		return "", "", false
	}
	return strings.TrimSpace(span(src, toks[:len(toks)-len(last)])), text, true
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b token.Token) bool {
	return a.End == b.Pos.Offset
}

func isOperator(tok token.Token) bool {
	switch tok.Type {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.DPIPE,
		token.DOT, token.COMMA, token.LPAREN, token.OTHER:
		return true
	}
	return token.IsComparison(tok.Type)
}

// expressionWords are words after which an expression must continue.
var expressionWords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "IS": true, "IN": true, "LIKE": true,
	"BETWEEN": true, "CASE": true, "WHEN": true, "THEN": true, "ELSE": true,
	"DISTINCT": true, "INTERVAL": true, "SELECT": true, "AS": true,
}

// continuesExpression reports whether the token after tok must belong to the
// same expression, so tok can never precede an alias.
func continuesExpression(tok token.Token) bool {
	if isOperator(tok) {
		return true
	}
	return tok.IsWord() && expressionWords[strings.ToUpper(tok.Literal)]
}
