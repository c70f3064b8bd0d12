// Package institute provides the institute header shown at the top of every
// generated report, read from the it_institute table or from configuration.
package institute

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapreport/pkg/report"
)

// headerQuery reads the active institute. It is portable across MySQL,
// PostgreSQL and SQLite.
const headerQuery = `SELECT name_ln1, name_ln2, name_ln3 FROM it_institute WHERE status = 1 LIMIT 1`

// Store reads the institute header from a database.
type Store struct {
	DB      *sql.DB
	Timeout time.Duration // per lookup; zero means no extra deadline
	Logger  *slog.Logger
}

// NewStore creates a Store over db.
// If logger is nil, a discard logger is used.
func NewStore(db *sql.DB, timeout time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{DB: db, Timeout: timeout, Logger: logger}
}

// Header returns the first active institute. A missing row yields an empty
// header and no error; NULL names become "".
func (s *Store) Header(ctx context.Context) (report.Header, error) {
	if s.DB == nil {
		return report.Header{}, fmt.Errorf("database connection not established")
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var en, si, ta sql.NullString
	err := s.DB.QueryRowContext(ctx, headerQuery).Scan(&en, &si, &ta)
	if errors.Is(err, sql.ErrNoRows) {
		s.Logger.Debug("no active institute row")
		return report.Header{}, nil
	}
	if err != nil {
		return report.Header{}, fmt.Errorf("failed to query institute header: %w", err)
	}

	return report.Header{EN: en.String, SI: si.String, TA: ta.String}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.DB != nil {
		s.Logger.Debug("closing database connection")
		return s.DB.Close()
	}
	return nil
}
