package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
)

// stubSearcher records the call it received and returns canned results.
type stubSearcher struct {
	gotQuery string
	gotOpts  domain.SearchOptions
	results  []domain.SearchResult
	err      error
}

var _ driven.Searcher = (*stubSearcher)(nil)

func (s *stubSearcher) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	s.gotQuery = query
	s.gotOpts = opts
	return s.results, s.err
}

// TestSearchService_EmptyQuery tests that a blank query short-circuits
// without touching the searcher
func TestSearchService_EmptyQuery(t *testing.T) {
	stub := &stubSearcher{err: errors.New("should not be called")}
	svc := NewSearchService(stub)

	for _, query := range []string{"", "   ", "\t\n"} {
		resp, err := svc.Search(context.Background(), query, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Empty(t, stub.gotQuery)
	}
}

// TestSearchService_TrimsAndDefaultsLimit tests query normalisation
func TestSearchService_TrimsAndDefaultsLimit(t *testing.T) {
	stub := &stubSearcher{results: []domain.SearchResult{
		{Fragment: domain.Fragment{ID: "f1", Content: "redis cache"}, Score: 1.0},
	}}
	svc := NewSearchService(stub)

	resp, err := svc.Search(context.Background(), "  redis  ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "redis", stub.gotQuery)
	assert.Equal(t, DefaultSearchLimit, stub.gotOpts.Limit)
	assert.Equal(t, "redis", resp.Query)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "f1", resp.Results[0].Fragment.ID)
}

// TestSearchService_PropagatesError tests searcher failure wrapping
func TestSearchService_PropagatesError(t *testing.T) {
	sentinel := errors.New("index offline")
	svc := NewSearchService(&stubSearcher{err: sentinel})

	_, err := svc.Search(context.Background(), "redis", domain.SearchOptions{})
	assert.ErrorIs(t, err, sentinel)
}
