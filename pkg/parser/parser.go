// Package parser recovers the structure of a single report SELECT without a
// full SQL grammar.
//
// The input is tokenized (comments, quoted literals and $P{name}
// placeholders are single tokens) and then scanned with a parenthesis-depth
// counter, so nested subqueries and function calls never produce false
// clause boundaries. From the top-level clauses it extracts the projected
// fields and their aliases, the filterable WHERE fields, the ORDER BY terms
// and the named placeholders.
//
// All functions are pure; a Query is safe to share once built.
package parser

// Query is the structural description of one report query.
type Query struct {
	Original     string
	Cleaned      string // comment-free, single-line form all offsets refer to
	Clauses      *Clauses
	Fields       []SelectField
	Predicates   []string
	OrderBy      []OrderField
	Placeholders []Placeholder
}

// Analyze cleans query and extracts its structure. It fails with a
// *ParseError when no top-level SELECT ... FROM can be found. Alias
// discipline is not enforced here; see ValidateAliases.
func Analyze(query string) (*Query, error) {
	cleaned := Clean(query)

	clauses, err := scanTokens(significant(cleaned))
	if err != nil {
		return nil, err
	}
	if len(clauses.Select.Tokens) == 0 {
		return nil, &ParseError{Pos: clauses.SelectAt, Message: ErrEmptySelect}
	}

	return &Query{
		Original:     query,
		Cleaned:      cleaned,
		Clauses:      clauses,
		Fields:       ParseSelectFields(cleaned, clauses.Select),
		Predicates:   ParsePredicates(cleaned, clauses.Where),
		OrderBy:      ParseOrderBy(cleaned, clauses.OrderBy),
		Placeholders: ParsePlaceholders(cleaned),
	}, nil
}
