package driving

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// SearchService provides ranked free-text search to external actors.
type SearchService interface {
	// Search returns ranked results for the query, scores in [0, 1],
	// ordered by score descending.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
