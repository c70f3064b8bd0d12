package parser

import (
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/token"
)

// StripComments removes line and block comments from query and drops the
// blank lines left behind. Comment markers inside quoted strings and
// identifiers are not comments and are kept.
func StripComments(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	last := 0
	for _, tok := range Tokenize(query) {
		if !token.IsComment(tok.Type) {
			continue
		}
		b.WriteString(query[last:tok.Pos.Offset])
		// a/*x*/b must not fuse into ab
		if tok.Type == token.BLOCK_COMMENT && tok.Pos.Offset > 0 && tok.End < len(query) &&
			!isSpace(query[tok.Pos.Offset-1]) && !isSpace(query[tok.End]) {
			b.WriteByte(' ')
		}
		last = tok.End
	}
	b.WriteString(query[last:])

	return collapseBlankLines(b.String())
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Clean returns query on a single line with comments removed, every run of
// whitespace between tokens collapsed to one space and trailing semicolons
// dropped. Text inside quoted literals is copied verbatim.
func Clean(query string) string {
	toks := significant(query)
	for len(toks) > 0 && toks[len(toks)-1].Type == token.SEMICOLON {
		toks = toks[:len(toks)-1]
	}

	var b strings.Builder
	b.Grow(len(query))
	for i, tok := range toks {
		if i > 0 && tok.Pos.Offset > toks[i-1].End {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Literal)
	}
	return b.String()
}
