package repo

import (
	"context"

	"github.com/soul23/healthchecker/internal/domain"
)

// ReportStore keeps produced reports. Latest reports ok=false until the
// first Put.
type ReportStore interface {
	Put(ctx context.Context, r domain.Report) error
	Latest(ctx context.Context) (domain.Report, bool, error)
}
