package driven

import (
	"context"
	"time"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// DecisionStore persists decisions extracted from fragments.
// Decisions are produced by the external extraction pipeline; this side
// only creates (on import) and reads them. There is no update contract.
type DecisionStore interface {
	// SaveDecision stores a decision.
	SaveDecision(ctx context.Context, decision *domain.Decision) error

	// ListDecisions returns decisions, newest first. Any of the filters
	// may be nil. Project filtering goes through the owning fragment.
	ListDecisions(ctx context.Context, project *string, fragmentID *string, since *time.Time, limit int) ([]domain.Decision, error)
}
