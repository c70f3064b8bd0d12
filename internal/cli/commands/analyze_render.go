package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapreport/internal/cli/output"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

// renderDescriptor prints a descriptor as tables.
func renderDescriptor(r *output.Renderer, d *report.Descriptor) {
	r.Header("Base query")
	r.Println("  " + d.BaseQuery)
	r.Println()

	r.Header("Institute header")
	r.KeyValue("English", orDash(d.InstituteHeader.EN))
	r.KeyValue("Sinhala", orDash(d.InstituteHeader.SI))
	r.KeyValue("Tamil", orDash(d.InstituteHeader.TA))
	r.Println()

	selectRows := make([]table.Row, 0, len(d.SelectFields))
	for i, f := range d.SelectFields {
		selectRows = append(selectRows, table.Row{i + 1, f.NameEN, f.Alignment})
	}
	r.Table("Select fields", table.Row{"#", "Field", "Alignment"}, selectRows)

	paramRows := make([]table.Row, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		paramRows = append(paramRows, table.Row{p.Name, p.Class, p.Reference, p.Table, p.Description})
	}
	r.Table("Parameters", table.Row{"Name", "Class", "Reference", "Table", "Description"}, paramRows)

	searchRows := make([]table.Row, 0, len(d.SearchFields))
	for _, f := range d.SearchFields {
		searchRows = append(searchRows, table.Row{f.NameEN})
	}
	r.Table("Search fields", table.Row{"Field"}, searchRows)

	sortRows := make([]table.Row, 0, len(d.SortFields))
	for _, f := range d.SortFields {
		sortRows = append(sortRows, table.Row{f.Field, f.Direction})
	}
	r.Table("Sort fields", table.Row{"Field", "Direction"}, sortRows)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
