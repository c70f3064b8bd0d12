package format

import (
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/parser"
	"github.com/leapstack-labs/leapreport/pkg/token"
)

// joinWords may precede JOIN in a join clause.
var joinWords = map[string]bool{
	"LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true,
	"CROSS": true, "FULL": true, "NATURAL": true,
}

// aliasStops end an unquoted alias run after its first word.
var aliasStops = map[string]bool{
	"JOIN": true, "STRAIGHT_JOIN": true, "ON": true, "USING": true,
	"UNION": true, "EXCEPT": true, "INTERSECT": true, "WINDOW": true, "INTO": true,
}

// QuoteAliases wraps unquoted AS aliases that span several tokens, such as
// "AS Total Amount" or "AS net-pay", in backticks so the query can run.
// Quoted aliases and simple identifiers are left as they are, as are
// type names such as CAST(x AS DECIMAL(10,2)) or CAST(x AS SIGNED INTEGER).
func QuoteAliases(sql string) string {
	toks := parser.Tokenize(sql)

	var b strings.Builder
	b.Grow(len(sql) + 16)
	last := 0
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != token.AS {
			continue
		}
		run := aliasRun(toks[i+1:])
		if len(run) < 2 {
			continue
		}
		start, end := run[0].Pos.Offset, run[len(run)-1].End
		b.WriteString(sql[last:start])
		b.WriteString(Backtick(sql[start:end]))
		last = end
		i += len(run)
	}
	b.WriteString(sql[last:])
	return b.String()
}

// aliasRun returns the unquoted alias tokens at the head of toks, or nil when
// the alias is quoted, turns out to be a call or closes a parenthesis.
func aliasRun(toks []token.Token) []token.Token {
	n := 0
	for n < len(toks) {
		tok := toks[n]
		switch tok.Type {
		case token.IDENT, token.NUMBER, token.MINUS, token.DOT, token.SLASH, token.OTHER,
			token.FIRST, token.LAST, token.ASC, token.DESC, token.TABLE:
			if n > 0 && tok.Type == token.IDENT && startsJoinTail(toks[n:]) {
				return toks[:n]
			}
			n++
		case token.LPAREN, token.RPAREN:
			return nil
		default:
			return toks[:n]
		}
	}
	return toks[:n]
}

// startsJoinTail reports whether toks begins with JOIN, a word such as ON or
// UNION that cannot continue an alias, or join modifiers leading up to JOIN.
func startsJoinTail(toks []token.Token) bool {
	for i, tok := range toks {
		if tok.Type != token.IDENT {
			return false
		}
		word := strings.ToUpper(tok.Literal)
		switch {
		case aliasStops[word]:
			return i == 0 || word == "JOIN" || word == "STRAIGHT_JOIN"
		case !joinWords[word]:
			return false
		}
	}
	return false
}
