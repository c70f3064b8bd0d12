package parser

import "strings"

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderField is one ORDER BY term.
type OrderField struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// ParseOrderBy returns the terms of the ORDER BY clause. The first word of
// each term is the field; an ASC or DESC second word sets the direction,
// which otherwise defaults to ASC.
func ParseOrderBy(src string, c Clause) []OrderField {
	var out []OrderField
	for _, term := range splitTopLevel(c.Tokens, isComma) {
		ws := words(term)
		f := OrderField{Field: span(src, ws[0]), Direction: Asc}
		if len(ws) > 1 && strings.EqualFold(span(src, ws[1]), string(Desc)) {
			f.Direction = Desc
		}
		out = append(out, f)
	}
	return out
}
