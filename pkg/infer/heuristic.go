package infer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/leapstack-labs/leapreport/pkg/parser"
)

// Heuristic classifies parameters by the table.field they are compared
// against, falling back to keywords in the parameter name.
type Heuristic struct {
	// Radius is the window size either side of the placeholder; zero means
	// DefaultRadius.
	Radius int
}

// Classify implements Classifier.
func (h Heuristic) Classify(query string, p parser.Placeholder) Parameter {
	radius := h.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	start := max(0, p.Offset-radius)
	end := min(len(query), p.End+radius)

	if table, field, ok := fieldRef(query[start:end], p.Name); ok {
		ref := table + "." + field
		return Parameter{
			Name:        p.Name,
			Class:       classifyField(field),
			Description: fmt.Sprintf("Parameter for %s filtering", ref),
			Field:       field,
			Reference:   ref,
			Table:       table,
		}
	}
	return classifyName(p.Name)
}

const comparator = `(?:<>|!=|<=|>=|=|<|>|\bLIKE\b|\bIN\b)`

// fieldRef finds "<table>.<field> <cmp> $P{name}" in window.
func fieldRef(window, name string) (table, field string, ok bool) {
	re, err := regexp.Compile(`(?i)(\w+)\.(\w+)\s*` + comparator + `\s*\(?\s*` +
		regexp.QuoteMeta("$P{"+name+"}"))
	if err != nil {
		return "", "", false
	}
	m := re.FindStringSubmatch(window)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

type keywordRule struct {
	class    Class
	suffix   []string // must end a word part: "customerid", "interestrate"
	contains []string // may appear inside a word part
}

// Field names: an "id" part wins over everything.
var fieldRules = []keywordRule{
	{class: Integer, suffix: []string{"id"}, contains: []string{"count", "number"}},
	{class: Decimal, suffix: []string{"rate"}, contains: []string{"amount", "balance"}},
	{class: Date, contains: []string{"date", "time"}},
}

var nameRules = []keywordRule{
	{class: Integer, suffix: []string{"id"}, contains: []string{"number", "count"}},
	{class: Date, contains: []string{"date", "time"}},
	{class: Decimal, suffix: []string{"rate"}, contains: []string{"amount", "balance", "value"}},
}

// plainWords end in a suffix keyword without carrying its meaning.
var plainWords = map[string]bool{
	"valid": true, "invalid": true, "paid": true, "unpaid": true, "prepaid": true,
	"void": true, "hybrid": true, "bid": true,
	"corporate": true, "separate": true, "accurate": true, "generate": true,
	"moderate": true, "pirate": true,
}

func classifyField(field string) Class {
	if r, ok := matchRules(fieldRules, field); ok {
		return r.class
	}
	return String
}

func classifyName(name string) Parameter {
	p := Parameter{
		Name:        name,
		Class:       String,
		Description: "Parameter " + name,
		Field:       name,
		Reference:   name,
		Table:       UnknownTable,
	}
	if r, ok := matchRules(nameRules, name); ok {
		p.Class = r.class
		switch r.class {
		case Integer:
			p.Description = "ID parameter " + name
		case Date:
			p.Description = "Date parameter " + name
		case Decimal:
			p.Description = "Numeric parameter " + name
		}
	}
	return p
}

func matchRules(rules []keywordRule, name string) (keywordRule, bool) {
	parts := wordParts(name)
	for _, r := range rules {
		for _, part := range parts {
			for _, kw := range r.suffix {
				if strings.HasSuffix(part, kw) && !plainWords[part] {
					return r, true
				}
			}
			for _, kw := range r.contains {
				if strings.Contains(part, kw) {
					return r, true
				}
			}
		}
	}
	return keywordRule{}, false
}

// wordParts splits snake_case, kebab-case, dotted and camelCase names into
// lower-case parts: "customerId" and "customer_id" both give [customer id].
func wordParts(name string) []string {
	var parts []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return parts
}
