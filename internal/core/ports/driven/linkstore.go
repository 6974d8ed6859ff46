package driven

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// LinkStore persists the directed, weighted, typed edges between
// fragments. Links accumulate: a second identical (source, target,
// type) call stores a parallel edge, it never overwrites. Concurrent
// writers are tolerated for the same reason.
type LinkStore interface {
	// SaveLink stores a link. The link has already passed domain
	// validation; endpoint existence is the caller's concern.
	SaveLink(ctx context.Context, link *domain.FragmentLink) error

	// LinksFor returns links where the fragment appears as source or
	// target, optionally filtered by type, ordered by strength
	// descending then creation time descending, truncated to limit.
	// A limit <= 0 means no truncation.
	LinksFor(ctx context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error)

	// ListLinks returns all links up to limit, in no particular order.
	ListLinks(ctx context.Context, limit int) ([]domain.FragmentLink, error)

	// CountLinks returns the number of links touching the fragment.
	// Parallel edges each count; neighbours are not deduplicated.
	CountLinks(ctx context.Context, fragmentID string) (int, error)
}
