package parser

import "github.com/leapstack-labs/leapreport/pkg/token"

// ParsePredicates returns the field reference on the left of every
// top-level AND/OR condition of the WHERE clause. Operators and values are
// dropped. A condition wrapped entirely in parentheses is split again.
func ParsePredicates(src string, c Clause) []string {
	var refs []string
	for _, cond := range splitConditions(c.Tokens) {
		if inner, ok := unwrapParens(cond); ok {
			refs = append(refs, ParsePredicates(src, Clause{Found: true, Tokens: inner})...)
			continue
		}
		if ref := leadingRef(src, cond); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// splitConditions splits on depth-zero AND/OR. The AND of a
// "BETWEEN x AND y" range is not a separator.
func splitConditions(toks []token.Token) [][]token.Token {
	var conds [][]token.Token
	depth, start := 0, 0
	between := false
	for i, tok := range toks {
		if depth == 0 {
			switch tok.Type {
			case token.BETWEEN:
				between = true
			case token.AND, token.OR:
				if tok.Type == token.AND && between {
					between = false
					break
				}
				if i > start {
					conds = append(conds, toks[start:i])
				}
				start = i + 1
				continue
			}
		}
		depth = track(depth, tok)
	}
	if start < len(toks) {
		conds = append(conds, toks[start:])
	}
	return conds
}

// unwrapParens returns the tokens inside a condition of the form ( ... )
// where the opening parenthesis closes on the last token.
func unwrapParens(toks []token.Token) ([]token.Token, bool) {
	n := len(toks)
	if n < 2 || toks[0].Type != token.LPAREN || toks[n-1].Type != token.RPAREN {
		return nil, false
	}
	depth := 0
	for i, tok := range toks {
		depth = track(depth, tok)
		if depth == 0 && i < n-1 {
			return nil, false
		}
	}
	return toks[1 : n-1], true
}

// leadingRef returns the first word of cond up to any comparison operator.
func leadingRef(src string, cond []token.Token) string {
	ws := words(cond)
	if len(ws) == 0 {
		return ""
	}
	first := ws[0]
	end := len(first)
	for i, tok := range first {
		if token.IsComparison(tok.Type) || tok.Literal == "!" {
			end = i
			break
		}
	}
	return span(src, first[:end])
}
