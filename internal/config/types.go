// Package config provides shared configuration types for leapreport.
// This package is decoupled from CLI concerns so the server and the
// institute store can be configured without importing cobra.
package config

import (
	"fmt"
	"strings"
	"time"
)

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// StaticHeader is a fixed institute header used by the "static" driver.
type StaticHeader struct {
	HeaderEN string `koanf:"header_en"`
	HeaderSI string `koanf:"header_si"`
	HeaderTA string `koanf:"header_ta"`
}

// InstituteConfig selects where the institute header comes from.
type InstituteConfig struct {
	Driver   string        `koanf:"driver"` // mysql, pgx, sqlite, static, none
	DSN      string        `koanf:"dsn"`
	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	Migrate  bool          `koanf:"migrate"`
	Static   StaticHeader  `koanf:"static"`
}

// Institute drivers.
const (
	DriverMySQL  = "mysql"
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
	DriverStatic = "static"
	DriverNone   = "none"
)

// SQLDrivers lists the drivers backed by database/sql.
var SQLDrivers = []string{DriverMySQL, DriverPgx, DriverSQLite}

// IsSQL reports whether the driver reads the header from a database.
func (c *InstituteConfig) IsSQL() bool {
	for _, d := range SQLDrivers {
		if strings.EqualFold(c.Driver, d) {
			return true
		}
	}
	return false
}

// Validate checks that the driver is known and has what it needs.
func (c *InstituteConfig) Validate() error {
	switch strings.ToLower(c.Driver) {
	case DriverStatic, DriverNone:
		return nil
	case DriverMySQL, DriverPgx, DriverSQLite:
		if c.DSN == "" {
			return fmt.Errorf("institute.dsn is required for driver %q", c.Driver)
		}
		if c.Timeout < 0 {
			return fmt.Errorf("institute.timeout must not be negative")
		}
		return nil
	case "":
		return fmt.Errorf("institute driver is required")
	default:
		return &UnknownDriverError{Driver: c.Driver}
	}
}

// UnknownDriverError reports an unsupported institute driver.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown institute driver %q (available: %s, %s, %s)",
		e.Driver, strings.Join(SQLDrivers, ", "), DriverStatic, DriverNone)
}
