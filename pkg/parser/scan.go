package parser

import "github.com/leapstack-labs/leapreport/pkg/token"

// Clause is one located clause body. Start and End are byte offsets into
// the scanned text; Tokens are the body tokens between them.
type Clause struct {
	Found  bool
	Start  int
	End    int
	Tokens []token.Token
}

// Text returns the clause body from src.
func (c Clause) Text(src string) string {
	if !c.Found {
		return ""
	}
	return src[c.Start:c.End]
}

// Clauses holds the top-level clause boundaries of one SELECT statement.
type Clauses struct {
	SelectAt int // offset of the SELECT keyword
	FromAt   int // offset of the FROM keyword
	Select   Clause
	Where    Clause
	OrderBy  Clause
}

// ScanClauses locates the top-level SELECT list, WHERE body and ORDER BY
// body in src. Only keywords at parenthesis depth zero count as clause
// boundaries, so subqueries and function calls never split a clause.
//
// When src holds several ;-separated statements, the first statement that
// starts with SELECT (or WITH) is scanned; failing that, the first top-level
// SELECT anywhere.
func ScanClauses(src string) (*Clauses, error) {
	return scanTokens(significant(src))
}

func scanTokens(toks []token.Token) (*Clauses, error) {
	stmt := pickStatement(toks)

	sel := findTopLevel(stmt, 0, func(i int) bool { return stmt[i].Type == token.SELECT })
	if sel < 0 {
		return nil, &ParseError{Pos: -1, Message: ErrNoSelect}
	}
	from := findTopLevel(stmt, sel+1, func(i int) bool { return stmt[i].Type == token.FROM })
	if from < 0 {
		return nil, &ParseError{Pos: stmt[sel].Pos.Offset, Message: ErrNoFrom}
	}

	c := &Clauses{
		SelectAt: stmt[sel].Pos.Offset,
		FromAt:   stmt[from].Pos.Offset,
		Select:   makeClause(stmt[sel+1 : from]),
	}

	where := findTopLevel(stmt, from+1, func(i int) bool { return stmt[i].Type == token.WHERE })
	if where >= 0 {
		end := findTopLevel(stmt, where+1, func(i int) bool { return endsWhere(stmt, i) })
		if end < 0 {
			end = len(stmt)
		}
		c.Where = makeClause(stmt[where+1 : end])
	}

	order := findTopLevel(stmt, from+1, func(i int) bool { return isPair(stmt, i, token.ORDER, token.BY) })
	if order >= 0 {
		end := findTopLevel(stmt, order+2, func(i int) bool {
			return stmt[i].Type == token.LIMIT || stmt[i].Type == token.OFFSET
		})
		if end < 0 {
			end = len(stmt)
		}
		c.OrderBy = makeClause(stmt[order+2 : end])
	}

	return c, nil
}

// pickStatement returns the tokens of the statement to analyze.
func pickStatement(toks []token.Token) []token.Token {
	var stmts [][]token.Token
	depth, start := 0, 0
	for i, tok := range toks {
		depth = track(depth, tok)
		if tok.Type == token.SEMICOLON && depth == 0 {
			stmts = append(stmts, toks[start:i])
			start = i + 1
		}
	}
	stmts = append(stmts, toks[start:])
	if len(stmts) == 1 {
		return toks
	}

	for _, stmt := range stmts {
		if len(stmt) > 0 && (stmt[0].Type == token.SELECT || stmt[0].Type == token.WITH) {
			return stmt
		}
	}
	return toks
}

// findTopLevel returns the index of the first token at or after from, at
// depth zero relative to from, for which match reports true; -1 if none.
func findTopLevel(toks []token.Token, from int, match func(i int) bool) int {
	depth := 0
	for i := from; i < len(toks); i++ {
		if depth == 0 && match(i) {
			return i
		}
		depth = track(depth, toks[i])
	}
	return -1
}

// track returns the parenthesis depth after tok. Depth never goes negative.
func track(depth int, tok token.Token) int {
	switch tok.Type {
	case token.LPAREN:
		return depth + 1
	case token.RPAREN:
		if depth > 0 {
			return depth - 1
		}
	}
	return depth
}

func endsWhere(toks []token.Token, i int) bool {
	switch toks[i].Type {
	case token.HAVING, token.LIMIT, token.OFFSET:
		return true
	case token.ORDER, token.GROUP:
		return isPair(toks, i, toks[i].Type, token.BY)
	}
	return false
}

func isPair(toks []token.Token, i int, first, second token.TokenType) bool {
	return toks[i].Type == first && i+1 < len(toks) && toks[i+1].Type == second
}

func makeClause(body []token.Token) Clause {
	if len(body) == 0 {
		return Clause{Found: true, Tokens: nil}
	}
	return Clause{
		Found:  true,
		Start:  body[0].Pos.Offset,
		End:    body[len(body)-1].End,
		Tokens: body,
	}
}
