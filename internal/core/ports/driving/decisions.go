package driving

import (
	"context"
	"time"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// DecisionService exposes read access to extracted decisions.
type DecisionService interface {
	// List returns decisions, newest first. All filters optional.
	List(ctx context.Context, project *string, since *time.Time, limit int) ([]domain.Decision, error)
}
