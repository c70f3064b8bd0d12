package parser

import "github.com/leapstack-labs/leapreport/pkg/token"

// splitTopLevel splits toks at every depth-zero token for which isSep
// reports true. Separators are dropped; empty pieces are skipped.
func splitTopLevel(toks []token.Token, isSep func(toks []token.Token, i int) bool) [][]token.Token {
	var pieces [][]token.Token
	depth, start := 0, 0
	for i, tok := range toks {
		if depth == 0 && isSep(toks, i) {
			if i > start {
				pieces = append(pieces, toks[start:i])
			}
			start = i + 1
			continue
		}
		depth = track(depth, tok)
	}
	if start < len(toks) {
		pieces = append(pieces, toks[start:])
	}
	return pieces
}

func isComma(toks []token.Token, i int) bool {
	return toks[i].Type == token.COMMA
}

// words groups toks into whitespace-separated words. Whitespace inside
// parentheses does not separate words, so "COUNT(a, b)" is one word while
// "COUNT (a)" is two.
func words(toks []token.Token) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var out [][]token.Token
	depth, start := 0, 0
	for i := 1; i < len(toks); i++ {
		depth = track(depth, toks[i-1])
		if depth == 0 && toks[i].Pos.Offset > toks[i-1].End {
			out = append(out, toks[start:i])
			start = i
		}
	}
	return append(out, toks[start:])
}

// span returns the source text covered by toks.
func span(src string, toks []token.Token) string {
	if len(toks) == 0 {
		return ""
	}
	return src[toks[0].Pos.Offset:toks[len(toks)-1].End]
}
