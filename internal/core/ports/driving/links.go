package driving

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// LinkRequest carries the inputs for creating a fragment link.
// Zero values take the documented defaults.
type LinkRequest struct {
	SourceID string
	TargetID string

	// LinkType defaults to relates_to when empty.
	LinkType domain.LinkType

	// Strength defaults to domain.DefaultLinkStrength when nil.
	Strength *float64
}

// LinkService exposes the link index.
type LinkService interface {
	// AddLink validates and stores a link. Self-links and out-of-range
	// strengths fail with domain.ErrValidation before anything reaches
	// the store; a missing endpoint fails with domain.ErrNotFound.
	AddLink(ctx context.Context, req LinkRequest) (*domain.FragmentLink, error)

	// LinksFor returns links touching the fragment, strongest first.
	LinksFor(ctx context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error)

	// Degree returns the count of links touching the fragment,
	// parallel edges included.
	Degree(ctx context.Context, fragmentID string) (int, error)
}
