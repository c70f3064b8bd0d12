package institute

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	// database/sql drivers for the institute store
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leapreport/internal/config"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

// Provider is a report.HeaderProvider that may hold resources.
type Provider struct {
	report.HeaderProvider
	close func() error
}

// Close releases the provider's database connection, if any.
func (p *Provider) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// Open builds the header provider described by cfg. SQL drivers are opened
// and pinged; with cfg.Migrate the bundled migrations are applied first. A
// positive cfg.CacheTTL wraps the provider in a Cached.
func Open(ctx context.Context, cfg config.InstituteConfig, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	config.ApplyInstituteDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver := strings.ToLower(cfg.Driver)
	switch driver {
	case config.DriverNone:
		return &Provider{HeaderProvider: Static{}}, nil
	case config.DriverStatic:
		return &Provider{HeaderProvider: Static{
			EN: cfg.Static.HeaderEN,
			SI: cfg.Static.HeaderSI,
			TA: cfg.Static.HeaderTA,
		}}, nil
	}

	logger.Debug("connecting to institute database", slog.String("driver", driver))

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	if cfg.Migrate {
		if err := Migrate(db, driver); err != nil {
			_ = db.Close()
			return nil, err
		}
		version, err := MigrationVersion(db, driver)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("institute schema ready", slog.String("driver", driver), slog.Int64("version", version))
	}

	store := NewStore(db, cfg.Timeout, logger)
	var provider report.HeaderProvider = store
	if cfg.CacheTTL > 0 {
		provider = NewCached(store, cfg.CacheTTL)
	}
	return &Provider{HeaderProvider: provider, close: store.Close}, nil
}
