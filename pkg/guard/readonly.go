package guard

import "strings"

// unsafeKeywords may not appear as bare words in a read-only query.
var unsafeKeywords = map[string]bool{
	"DROP":     true,
	"DELETE":   true,
	"INSERT":   true,
	"UPDATE":   true,
	"ALTER":    true,
	"CREATE":   true,
	"TRUNCATE": true,
	"REPLACE":  true,
	"MERGE":    true,
	"GRANT":    true,
	"REVOKE":   true,
	"EXEC":     true,
	"EXECUTE":  true,
	"CALL":     true,
	"LOAD":     true,
	"OUTFILE":  true,
	"INFILE":   true,
}

// CheckReadOnly rejects sql when any unquoted, uncommented word is a
// write, DDL or file-access keyword. Keywords are matched as whole words,
// so a column named created_at is fine while the REPLACE() string function
// is not.
func CheckReadOnly(sql string) error {
	src := NewSource(sql)
	for _, tok := range src.Tokens {
		if !tok.IsWord() {
			continue
		}
		if kw := strings.ToUpper(tok.Literal); unsafeKeywords[kw] {
			return &ReadOnlyViolationError{Keyword: kw, Offset: tok.Pos.Offset}
		}
	}
	return nil
}
