// Package token defines the token types produced by the report-query lexer.
//
// The vocabulary is deliberately small: only the keywords that delimit clauses,
// carry alias or sort semantics, or start a write statement are keywords. Every
// other word is an IDENT, so keyword-shaped column names never confuse the
// clause scanner.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Comments
	LINE_COMMENT  // -- or # comment
	BLOCK_COMMENT // /* comment */

	// Literals
	IDENT  // identifier
	QIDENT // "ident", `ident`, [ident]
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'
	PARAM  // $P{name}

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	OTHER     // any other punctuation (@, :, ?, ...)

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BETWEEN
	BY
	CREATE
	DELETE
	DESC
	FIRST
	FROM
	GROUP
	HAVING
	IN
	INSERT
	INTO
	LAST
	LIKE
	LIMIT
	NULLS
	OFFSET
	OR
	ORDER
	SELECT
	TABLE
	UPDATE
	WHERE
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	LINE_COMMENT:  "LINE_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",

	IDENT:  "IDENT",
	QIDENT: "QIDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	PARAM:  "PARAM",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	OTHER:     "OTHER",

	AND:     "AND",
	AS:      "AS",
	ASC:     "ASC",
	BETWEEN: "BETWEEN",
	BY:      "BY",
	CREATE:  "CREATE",
	DELETE:  "DELETE",
	DESC:    "DESC",
	FIRST:   "FIRST",
	FROM:    "FROM",
	GROUP:   "GROUP",
	HAVING:  "HAVING",
	IN:      "IN",
	INSERT:  "INSERT",
	INTO:    "INTO",
	LAST:    "LAST",
	LIKE:    "LIKE",
	LIMIT:   "LIMIT",
	NULLS:   "NULLS",
	OFFSET:  "OFFSET",
	OR:      "OR",
	ORDER:   "ORDER",
	SELECT:  "SELECT",
	TABLE:   "TABLE",
	UPDATE:  "UPDATE",
	WHERE:   "WHERE",
	WITH:    "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":     AND,
	"as":      AS,
	"asc":     ASC,
	"between": BETWEEN,
	"by":      BY,
	"create":  CREATE,
	"delete":  DELETE,
	"desc":    DESC,
	"first":   FIRST,
	"from":    FROM,
	"group":   GROUP,
	"having":  HAVING,
	"in":      IN,
	"insert":  INSERT,
	"into":    INTO,
	"last":    LAST,
	"like":    LIKE,
	"limit":   LIMIT,
	"nulls":   NULLS,
	"offset":  OFFSET,
	"or":      OR,
	"order":   ORDER,
	"select":  SELECT,
	"table":   TABLE,
	"update":  UPDATE,
	"where":   WHERE,
	"with":    WITH,
}

// LookupIdent returns the keyword token type for a lowercase word, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WITH
}

// IsComment returns true for line and block comments.
func IsComment(t TokenType) bool {
	return t == LINE_COMMENT || t == BLOCK_COMMENT
}

// IsComparison returns true for the comparison operators.
func IsComparison(t TokenType) bool {
	return t >= EQ && t <= GE
}

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token represents a lexical token. Literal is the exact source text of the
// token, quotes and delimiters included, so Literal == src[Pos.Offset:End].
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     int // byte offset just past the token
}

// IsWord reports whether the token is a bare word (identifier or keyword).
func (t Token) IsWord() bool {
	return t.Type == IDENT || IsKeyword(t.Type)
}

// Unquote returns the token text without surrounding quote characters.
// Doubled quote escapes inside the token are collapsed.
func (t Token) Unquote() string {
	lit := t.Literal
	if len(lit) < 2 {
		return lit
	}
	switch t.Type {
	case QIDENT, STRING:
	default:
		return lit
	}
	open, closing := lit[0], lit[len(lit)-1]
	if open == '[' {
		if closing != ']' {
			return lit[1:]
		}
		return lit[1 : len(lit)-1]
	}
	body := lit[1:]
	if closing == open {
		body = lit[1 : len(lit)-1]
	}
	q := string(open)
	return strings.ReplaceAll(body, q+q, q)
}

