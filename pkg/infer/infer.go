// Package infer guesses the Java class, source table and source field of the
// $P{name} placeholders of a report query.
//
// Classification is a heuristic over the text around each placeholder and
// over the placeholder name. It never consults a schema and never fails;
// without a strong signal a parameter is a String.
package infer

import (
	"github.com/leapstack-labs/leapreport/pkg/parser"
)

// Class is the JVM class name the report engine binds a parameter to.
type Class string

// Parameter classes.
const (
	Integer Class = "java.lang.Integer"
	Decimal Class = "java.math.BigDecimal"
	Date    Class = "java.util.Date"
	String  Class = "java.lang.String"
)

// UnknownTable is the Table of a parameter not bound to a table.field.
const UnknownTable = "unknown"

// DefaultRadius is how many bytes either side of a placeholder are inspected.
const DefaultRadius = 100

// Parameter describes one report parameter.
type Parameter struct {
	Name        string `json:"name"`
	Class       Class  `json:"class"`
	Description string `json:"description"`
	Field       string `json:"field"`
	Reference   string `json:"reference"`
	Table       string `json:"table"`
}

// Classifier turns a placeholder found in query into a Parameter.
type Classifier interface {
	Classify(query string, p parser.Placeholder) Parameter
}

// Parameters classifies every placeholder of q in order of first occurrence.
func Parameters(c Classifier, q *parser.Query) []Parameter {
	out := make([]Parameter, 0, len(q.Placeholders))
	for _, p := range q.Placeholders {
		out = append(out, c.Classify(q.Cleaned, p))
	}
	return out
}
