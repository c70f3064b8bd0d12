package institute

import (
	"context"

	"github.com/leapstack-labs/leapreport/pkg/report"
)

// Static always returns the same header.
type Static report.Header

// Header implements report.HeaderProvider.
func (s Static) Header(context.Context) (report.Header, error) {
	return report.Header(s), nil
}
