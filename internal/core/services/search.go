package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 10

// SearchService runs ranked free-text queries through the searcher
// collaborator.
type SearchService struct {
	searcher driven.Searcher
}

// NewSearchService creates a new search service.
func NewSearchService(searcher driven.Searcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// Search returns ranked results for the query. An empty query returns
// an empty response rather than an error.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q, limit: %d", query, opts.Limit)

	results, err := s.searcher.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	logger.Debug("Search returned %d results", len(results))

	return &domain.SearchResponse{Query: query, Results: results}, nil
}
