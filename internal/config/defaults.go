package config

import "time"

// Default configuration values.
const (
	DefaultOutput            = "auto" // TTY=text, otherwise json
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultInstituteDriver   = DriverNone
	DefaultInstituteTimeout  = 5 * time.Second
	DefaultInstituteCacheTTL = 5 * time.Minute
)

// Defaults returns the flat key map loaded before any other config source.
func Defaults() map[string]any {
	return map[string]any{
		"output":                     DefaultOutput,
		"verbose":                    false,
		"log.level":                  DefaultLogLevel,
		"log.format":                 DefaultLogFormat,
		"server.addr":                DefaultAddr,
		"server.read_header_timeout": DefaultReadHeaderTimeout.String(),
		"server.shutdown_timeout":    DefaultShutdownTimeout.String(),
		"institute.driver":           DefaultInstituteDriver,
		"institute.timeout":          DefaultInstituteTimeout.String(),
		"institute.cache_ttl":        DefaultInstituteCacheTTL.String(),
		"institute.migrate":          false,
	}
}

// ApplyServerDefaults fills unset server values.
func ApplyServerDefaults(s *ServerConfig) {
	if s == nil {
		return
	}
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.ReadHeaderTimeout == 0 {
		s.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// ApplyInstituteDefaults fills unset institute values.
func ApplyInstituteDefaults(c *InstituteConfig) {
	if c == nil {
		return
	}
	if c.Driver == "" {
		c.Driver = DefaultInstituteDriver
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultInstituteTimeout
	}
}
