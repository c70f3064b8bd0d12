package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapreport/pkg/format"
)

// NewQuoteCommand creates the quote command.
func NewQuoteCommand() *cobra.Command {
	var inline string
	cmd := &cobra.Command{
		Use:   "quote [file|-]",
		Short: "Backtick-quote multi-word AS aliases",
		Long: `Rewrite a query so aliases such as "AS Total Amount" or "AS net-pay"
are wrapped in backticks and the query can be executed as written.`,
		Example: `  leapreport quote -q 'SELECT amount AS Total Amount FROM loans'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args, inline)
			if err != nil {
				return err
			}
			cc := NewCommandContext(cmd)
			cc.Renderer.Println(strings.TrimRight(format.QuoteAliases(query), "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inline, "query", "q", "", "SQL to rewrite instead of a file")
	return cmd
}
