// Package report assembles the report descriptor consumed by report
// authoring tools from a single base query.
package report

import (
	"github.com/leapstack-labs/leapreport/pkg/infer"
	"github.com/leapstack-labs/leapreport/pkg/parser"
)

// Descriptor is the canonical description of a report query.
type Descriptor struct {
	BaseQuery         string            `json:"base_query" yaml:"base_query"`
	OriginalBaseQuery string            `json:"original_base_query" yaml:"original_base_query"`
	Headings          Headings          `json:"headings" yaml:"headings"`
	InstituteHeader   Header            `json:"it_institute_header" yaml:"it_institute_header"`
	Parameters        []infer.Parameter `json:"parameters" yaml:"parameters"`
	ReportName        string            `json:"report_name" yaml:"report_name"`
	SearchFields      []SearchField     `json:"search_fields" yaml:"search_fields"`
	SelectFields      []SelectField     `json:"select_fields" yaml:"select_fields"`
	SortFields        []SortField       `json:"sort_fields" yaml:"sort_fields"`
}

// Headings are filled in by the report author.
type Headings struct {
	MainHeading string `json:"main_heading" yaml:"main_heading"`
	SubHeading  string `json:"sub_heading" yaml:"sub_heading"`
}

// Header is the institute name in English, Sinhala and Tamil.
type Header struct {
	EN string `json:"header_en" yaml:"header_en"`
	SI string `json:"header_si" yaml:"header_si"`
	TA string `json:"header_ta" yaml:"header_ta"`
}

// SearchField is a filterable WHERE field.
type SearchField struct {
	IsChecked bool   `json:"isChecked" yaml:"isChecked"`
	NameEN    string `json:"name_en" yaml:"name_en"`
}

// SelectField is a projected column, rendered as "<expr> AS <alias>".
type SelectField struct {
	IsChecked bool   `json:"isChecked" yaml:"isChecked"`
	NameEN    string `json:"name_en" yaml:"name_en"`
	Alignment string `json:"alignment" yaml:"alignment"`
}

// SortField is one ORDER BY term.
type SortField = parser.OrderField

// DefaultAlignment is the column alignment of every select field.
const DefaultAlignment = "left"

func searchFields(refs []string) []SearchField {
	out := make([]SearchField, 0, len(refs))
	for _, ref := range refs {
		out = append(out, SearchField{IsChecked: true, NameEN: ref})
	}
	return out
}

func selectFields(fields []parser.SelectField) []SelectField {
	out := make([]SelectField, 0, len(fields))
	for _, f := range fields {
		out = append(out, SelectField{
			IsChecked: true,
			NameEN:    f.Expression + " AS " + f.Alias,
			Alignment: DefaultAlignment,
		})
	}
	return out
}

func sortFields(order []parser.OrderField) []SortField {
	if order == nil {
		return []SortField{}
	}
	return order
}
