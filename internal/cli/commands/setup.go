package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/leapreport/internal/cli/config"
	"github.com/leapstack-labs/leapreport/internal/cli/output"
	"github.com/leapstack-labs/leapreport/internal/institute"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenHeaders opens the configured institute header provider.
func (cc *CommandContext) OpenHeaders(ctx context.Context) (*institute.Provider, error) {
	return institute.Open(ctx, cc.Cfg.Institute, cc.Logger)
}

// getConfig returns the current configuration, or defaults when none has
// been loaded (commands executed directly in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// readQuery returns the SQL given by --query, a file argument, or stdin
// when the argument is "-", or absent and stdin is not a terminal.
func readQuery(cmd *cobra.Command, args []string, inline string) (string, error) {
	if inline != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("use either --query or a file argument, not both")
		}
		return inline, nil
	}

	var (
		data []byte
		err  error
	)
	switch {
	case len(args) == 0 && isTerminal(cmd.InOrStdin()):
		return "", errNoQuery
	case len(args) == 0 || args[0] == "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read query: %w", err)
	}

	query := string(data)
	if strings.TrimSpace(query) == "" {
		return "", errNoQuery
	}
	return query, nil
}

var errNoQuery = errors.New("no query given (pass a file, '-' for stdin, or --query)")

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
