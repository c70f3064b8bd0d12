package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
// Institute settings are checked when a command opens the header provider,
// so commands that never need it work with an incomplete institute block.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output format %q (expected one of: %s)",
			c.OutputFormat, strings.Join(OutputModes, ", "))
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level %q (expected one of: %s)",
			c.Log.Level, strings.Join(LogLevels, ", "))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", c.Log.Format)
	}
	if c.Server.ShutdownTimeout < 0 || c.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	return nil
}
