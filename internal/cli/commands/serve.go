package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapreport/internal/server"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the report analyzer HTTP API.

Endpoints:
  POST /api/report-structure/generate-jrxml  {"base_query": "..."}
  POST /api/sql/validate                     {"query": "...", "read_only": false}
  GET  /healthz

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  leapreport serve --addr :9090`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if cmd.Flags().Changed("addr") {
				cc.Cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cc)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

func runServe(ctx context.Context, cc *CommandContext) error {
	headers, err := cc.OpenHeaders(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = headers.Close() }()

	srv := server.New(server.Config{
		Generator: report.New(report.Config{Headers: headers, Logger: cc.Logger}),
		Server:    cc.Cfg.Server,
		Logger:    cc.Logger,
	})
	return srv.Serve(ctx)
}
