package parser

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/leapreport/pkg/token"
)

// SelectField is one projected expression of the SELECT list.
type SelectField struct {
	Expression string
	Alias      string // unquoted; empty when HasAlias is false
	HasAlias   bool
	Rule       string // name of the AliasRule that matched
}

// ParseSelectFields splits the select-list clause on top-level commas and
// classifies each field with DefaultAliasRules.
func ParseSelectFields(src string, c Clause) []SelectField {
	return ParseSelectFieldsWithRules(src, c, DefaultAliasRules)
}

// ParseSelectFieldsWithRules is ParseSelectFields with a custom rule order.
func ParseSelectFieldsWithRules(src string, c Clause, rules []AliasRule) []SelectField {
	pieces := splitTopLevel(c.Tokens, isComma)
	fields := make([]SelectField, 0, len(pieces))
	for _, piece := range pieces {
		fields = append(fields, parseField(src, piece, rules))
	}
	return fields
}

// ParseField classifies a single field expression, e.g. `SUM(x) AS "Total"`.
func ParseField(field string) SelectField {
	return parseField(field, significant(field), DefaultAliasRules)
}

func parseField(src string, toks []token.Token, rules []AliasRule) SelectField {
	for _, rule := range rules {
		if expr, alias, ok := rule.Match(src, toks); ok && expr != "" {
			return SelectField{Expression: expr, Alias: alias, HasAlias: true, Rule: rule.Name}
		}
	}
	return SelectField{Expression: strings.TrimSpace(span(src, toks))}
}

// NormalizeAlias returns the form aliases are compared in: surrounding
// quotes and whitespace stripped, case folded.
func NormalizeAlias(alias string) string {
	s := strings.TrimSpace(alias)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)
	return cases.Fold().String(s)
}

// ValidateAliases checks that every field has an alias and that no two
// aliases collide under NormalizeAlias.
func ValidateAliases(fields []SelectField) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !f.HasAlias || NormalizeAlias(f.Alias) == "" {
			return &MissingAliasError{Field: f.Expression}
		}
		key := NormalizeAlias(f.Alias)
		if seen[key] {
			return &DuplicateFieldError{Alias: f.Alias}
		}
		seen[key] = true
	}
	return nil
}
