package driven

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// FragmentStore persists fragments.
// Backed by SQLite locally or a remote provenance API.
type FragmentStore interface {
	// SaveFragment stores a new fragment. The identifier and capture
	// timestamp are assigned by the caller and never change afterwards.
	SaveFragment(ctx context.Context, fragment *domain.Fragment) error

	// GetFragment retrieves a fragment by ID with its decisions and
	// assumptions hydrated. Returns domain.ErrNotFound if absent.
	GetFragment(ctx context.Context, id string) (*domain.Fragment, error)

	// ListFragments returns fragments matching the filter, ordered by
	// capture time descending. Decisions and assumptions are not
	// hydrated.
	ListFragments(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error)

	// UpdateFragment applies a metadata update restricted to project,
	// topics and summary. Returns domain.ErrNotFound if absent.
	UpdateFragment(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error)

	// DeleteFragment removes a fragment and everything referencing it.
	// Returns domain.ErrNotFound if absent.
	DeleteFragment(ctx context.Context, id string) error
}
