package driven

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// Searcher produces ranked free-text search results with relevance
// scores in [0.0, 1.0]. Ranking is a collaborator concern: the local
// adapter scores lexically, the remote adapter passes through the
// API's scores.
type Searcher interface {
	// Search returns results ordered by score descending, truncated to
	// opts.Limit.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
