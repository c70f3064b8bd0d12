package parser

import (
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/token"
)

// Lexer tokenizes report SQL. Unlike a full SQL lexer it never fails:
// unterminated strings and comments run to end of input, and unknown
// punctuation becomes token.OTHER.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	prev token.TokenType // last non-comment token type
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token, comments included.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos, End: len(l.input)}
	}

	start := l.ch
	typ := l.scan()
	// A word after a dot is a qualified name part, even when it is reserved
	// (t.limit, t.offset).
	if l.prev == token.DOT && (isLetter(start) || start == '_') {
		typ = token.IDENT
	}
	if !token.IsComment(typ) {
		l.prev = typ
	}
	return token.Token{
		Type:    typ,
		Literal: l.input[pos.Offset:l.pos],
		Pos:     pos,
		End:     l.pos,
	}
}

// scan consumes one token and returns its type.
func (l *Lexer) scan() token.TokenType {
	switch l.ch {
	case '-':
		if l.peekChar() == '-' {
			l.readLineComment()
			return token.LINE_COMMENT
		}
		return l.single(token.MINUS)
	case '#':
		l.readLineComment()
		return token.LINE_COMMENT
	case '/':
		if l.peekChar() == '*' {
			l.readBlockComment()
			return token.BLOCK_COMMENT
		}
		return l.single(token.SLASH)
	case '\'':
		l.readQuoted('\'', true)
		return token.STRING
	case '"':
		l.readQuoted('"', true)
		return token.QIDENT
	case '`':
		l.readQuoted('`', false)
		return token.QIDENT
	case '[':
		l.readBracketed()
		return token.QIDENT
	case '$':
		if l.peekChar() == 'P' && l.readParam() {
			return token.PARAM
		}
		return l.single(token.OTHER)
	case '+':
		return l.single(token.PLUS)
	case '*':
		return l.single(token.STAR)
	case '%':
		return l.single(token.PERCENT)
	case '=':
		return l.single(token.EQ)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(token.LE)
		case '>':
			return l.double(token.NE)
		}
		return l.single(token.LT)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GE)
		}
		return l.single(token.GT)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NE)
		}
		return l.single(token.OTHER)
	case '|':
		if l.peekChar() == '|' {
			return l.double(token.DPIPE)
		}
		return l.single(token.OTHER)
	case '.':
		return l.single(token.DOT)
	case ',':
		return l.single(token.COMMA)
	case ';':
		return l.single(token.SEMICOLON)
	case '(':
		return l.single(token.LPAREN)
	case ')':
		return l.single(token.RPAREN)
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		word := l.readIdentifier()
		return token.LookupIdent(strings.ToLower(word))
	case isDigit(l.ch):
		l.readNumber()
		return token.NUMBER
	}
	return l.single(token.OTHER)
}

func (l *Lexer) single(t token.TokenType) token.TokenType {
	l.readChar()
	return t
}

func (l *Lexer) double(t token.TokenType) token.TokenType {
	l.readChar()
	l.readChar()
	return t
}

func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) && !l.atEOF() {
		l.readChar()
	}
}

// readLineComment consumes "-- ..." or "# ..." up to, not including, the newline.
func (l *Lexer) readLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// readBlockComment consumes "/* ... */". Unterminated comments run to EOF.
func (l *Lexer) readBlockComment() {
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			return
		}
		l.readChar()
	}
}

// readQuoted consumes a quoted span. A doubled quote is an escaped quote;
// when backslash is set, a backslash escapes the next byte (MySQL strings).
func (l *Lexer) readQuoted(quote byte, backslash bool) {
	l.readChar() // skip opening quote

	for !l.atEOF() {
		switch {
		case backslash && l.ch == '\\':
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
		case l.ch == quote && l.peekChar() == quote:
			l.readChar()
			l.readChar()
		case l.ch == quote:
			l.readChar() // skip closing quote
			return
		default:
			l.readChar()
		}
	}
}

// readBracketed consumes a [bracketed] identifier.
func (l *Lexer) readBracketed() {
	l.readChar() // skip '['
	for !l.atEOF() {
		if l.ch == ']' {
			l.readChar()
			return
		}
		l.readChar()
	}
}

// readParam consumes a $P{name} placeholder. It reports false, consuming
// nothing, when the input at the current position is not a placeholder.
func (l *Lexer) readParam() bool {
	rest := l.input[l.pos:]
	if !strings.HasPrefix(rest, "$P{") {
		return false
	}
	closing := strings.IndexByte(rest, '}')
	if closing <= len("$P{") {
		return false
	}
	for range closing + 1 {
		l.readChar()
	}
	return true
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Identifiers may start with digits in MySQL (2fa_code, 1st_payment).
	for isLetter(l.ch) || l.ch == '_' {
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
}

// isLetter treats every non-ASCII byte as a letter so UTF-8 words stay whole.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// Tokenize returns all tokens from the input, comments included,
// terminated by a single EOF token.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}

// significant returns the tokens of input without comments and without
// the trailing EOF token.
func significant(input string) []token.Token {
	all := Tokenize(input)
	out := make([]token.Token, 0, len(all))
	for _, tok := range all {
		if tok.Type == token.EOF || token.IsComment(tok.Type) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
