package driven

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// AssumptionStore persists assumptions and their validity state.
// Mutation is restricted to still_valid and invalidated_by.
type AssumptionStore interface {
	// SaveAssumption stores an assumption.
	SaveAssumption(ctx context.Context, assumption *domain.Assumption) error

	// GetAssumption retrieves an assumption by ID.
	// Returns domain.ErrNotFound if absent.
	GetAssumption(ctx context.Context, id string) (*domain.Assumption, error)

	// ListAssumptions returns assumptions matching the filter, newest
	// first, truncated to limit.
	ListAssumptions(ctx context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error)

	// UpdateValidity persists a new still_valid / invalidated_by pair.
	// Returns domain.ErrNotFound if absent.
	UpdateValidity(ctx context.Context, id string, stillValid *bool, invalidatedBy *string) error
}
