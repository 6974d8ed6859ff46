package driving

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// AssumptionService exposes assumption listing and validity changes.
type AssumptionService interface {
	// List returns assumptions matching the filter, newest first.
	List(ctx context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error)

	// Toggle applies a mark-valid or mark-invalid action. Toggling the
	// state already held clears it back to unknown; the opposite state
	// is only reachable through unknown.
	Toggle(ctx context.Context, id string, mark domain.Validity) (*domain.Assumption, error)

	// Invalidate marks an assumption invalid in one step and records
	// the fragment that broke it.
	Invalidate(ctx context.Context, id string, invalidatedBy string) (*domain.Assumption, error)
}
