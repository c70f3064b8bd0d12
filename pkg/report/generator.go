package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/format"
	"github.com/leapstack-labs/leapreport/pkg/guard"
	"github.com/leapstack-labs/leapreport/pkg/infer"
	"github.com/leapstack-labs/leapreport/pkg/parser"
)

// HeaderProvider looks up the institute header shown on every report.
type HeaderProvider interface {
	Header(ctx context.Context) (Header, error)
}

// Config holds generator configuration.
type Config struct {
	// Headers supplies the institute header (optional, empty header if nil)
	Headers HeaderProvider
	// Classifier infers parameter classes (optional, infer.Heuristic if nil)
	Classifier infer.Classifier
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Generator builds descriptors. It is safe for concurrent use when its
// HeaderProvider is.
type Generator struct {
	headers    HeaderProvider
	classifier infer.Classifier
	logger     *slog.Logger
}

// New creates a Generator.
func New(cfg Config) *Generator {
	g := &Generator{
		headers:    cfg.Headers,
		classifier: cfg.Classifier,
		logger:     cfg.Logger,
	}
	if g.classifier == nil {
		g.classifier = infer.Heuristic{}
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	return g
}

// ErrEmptyQuery is the message for a blank base query.
const ErrEmptyQuery = "base query is empty"

// Generate validates baseQuery against the temp-table policy, analyzes it
// and assembles its descriptor. Errors for which IsClientError is true
// describe a problem with baseQuery itself.
func (g *Generator) Generate(ctx context.Context, baseQuery string) (*Descriptor, error) {
	if strings.TrimSpace(baseQuery) == "" {
		return nil, &parser.ParseError{Pos: -1, Message: ErrEmptyQuery}
	}
	if err := guard.Validate(baseQuery); err != nil {
		return nil, err
	}

	q, err := parser.Analyze(baseQuery)
	if err != nil {
		return nil, err
	}
	if err := parser.ValidateAliases(q.Fields); err != nil {
		return nil, err
	}

	rebuilt, err := format.Rebuild(q)
	if err != nil {
		g.logger.Debug("select rebuild failed, using cleaned query", "error", err)
		rebuilt = q.Cleaned
	}

	g.logger.Debug("analyzed base query",
		"fields", len(q.Fields),
		"predicates", len(q.Predicates),
		"parameters", len(q.Placeholders))

	return &Descriptor{
		BaseQuery:         rebuilt,
		OriginalBaseQuery: rebuilt,
		InstituteHeader:   g.header(ctx),
		Parameters:        infer.Parameters(g.classifier, q),
		SearchFields:      searchFields(q.Predicates),
		SelectFields:      selectFields(q.Fields),
		SortFields:        sortFields(q.OrderBy),
	}, nil
}

func (g *Generator) header(ctx context.Context) Header {
	if g.headers == nil {
		return Header{}
	}
	h, err := g.headers.Header(ctx)
	if err != nil {
		g.logger.Warn("institute header lookup failed", "error", err)
		return Header{}
	}
	return h
}

// IsClientError reports whether err is caused by the submitted query: a
// parse failure, a missing or duplicate alias, or a policy violation.
func IsClientError(err error) bool {
	var (
		parseErr    *parser.ParseError
		missingErr  *parser.MissingAliasError
		dupErr      *parser.DuplicateFieldError
		policyErr   *guard.BaseQueryValidationError
		readOnlyErr *guard.ReadOnlyViolationError
	)
	return errors.As(err, &parseErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &dupErr) ||
		errors.As(err, &policyErr) ||
		errors.As(err, &readOnlyErr)
}
