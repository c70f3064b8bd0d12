package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapreport/pkg/report"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Query     string // inline SQL instead of a file
	NoHeaders bool   // skip the institute header lookup
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Generate the report descriptor for a base query",
		Long: `Analyze a report base query and print its descriptor.

The query is checked against the temp-table write policy, every SELECT
field must carry a unique alias, and the select list is rebuilt with
backtick-quoted aliases. Parameters written as $P{name} are listed with
an inferred Java class.

Output adapts to environment:
  - Terminal: tables
  - Piped/Scripted: JSON
  - --output yaml: YAML`,
		Example: `  # Analyze a query file
  leapreport analyze reports/loans.sql

  # Analyze from stdin as JSON
  cat loans.sql | leapreport analyze - -o json

  # Analyze an inline query
  leapreport analyze -q 'SELECT id AS "Loan ID" FROM loans WHERE branch_id = $P{branch}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args, opts.Query)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL to analyze instead of a file")
	cmd.Flags().BoolVar(&opts.NoHeaders, "no-headers", false, "Skip the institute header lookup")

	return cmd
}

func runAnalyze(cmd *cobra.Command, query string, opts *AnalyzeOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	genCfg := report.Config{Logger: cc.Logger}
	if !opts.NoHeaders {
		headers, err := cc.OpenHeaders(ctx)
		if err != nil {
			cc.Logger.Warn("institute header unavailable", "error", err)
		} else {
			defer func() { _ = headers.Close() }()
			genCfg.Headers = headers
		}
	}

	desc, err := report.New(genCfg).Generate(ctx, query)
	if err != nil {
		return err
	}

	if ok, err := cc.Renderer.Structured(desc); ok {
		return err
	}
	renderDescriptor(cc.Renderer, desc)
	return nil
}
