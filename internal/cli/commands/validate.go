package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapreport/pkg/guard"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Query    string
	ReadOnly bool // also reject every write, DDL and file keyword
	All      bool // list every policy finding instead of stopping at the first
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check a query against the write-safety policy",
		Long: `Check a query against the temp-table write policy.

INSERT INTO, UPDATE, DELETE FROM and CREATE TABLE are only allowed on
tables named with the __temp_ prefix. With --read-only, any write, DDL,
privilege or file keyword is rejected.`,
		Example: `  # Validate a base query
  leapreport validate reports/loans.sql

  # Validate an ad-hoc query that must not write
  leapreport validate --read-only -q 'SELECT * FROM loans'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args, opts.Query)
			if err != nil {
				return err
			}
			return runValidate(cmd, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL to validate instead of a file")
	cmd.Flags().BoolVar(&opts.ReadOnly, "read-only", false, "Reject every write, DDL and file keyword")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Report every policy violation")

	return cmd
}

func runValidate(cmd *cobra.Command, query string, opts *ValidateOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	if opts.All {
		findings := guard.Findings(query)
		for _, f := range findings[min(1, len(findings)):] {
			r.Error(f.Rule + ": " + f.Error())
		}
		if len(findings) > 0 {
			return findings[0]
		}
	} else if err := guard.Validate(query); err != nil {
		return err
	}

	if opts.ReadOnly {
		if err := guard.CheckReadOnly(query); err != nil {
			return err
		}
	}

	cc.Logger.Debug("query passed validation", "read_only", opts.ReadOnly)
	r.Success("Query is valid")
	return nil
}
