package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Project filters results to a single project.
	Project *string
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Fragment is the matched fragment.
	Fragment Fragment

	// Score is the relevance score in [0.0, 1.0], produced by the
	// searcher collaborator. Results are ordered by score descending.
	Score float64
}

// SearchResponse pairs a query with its ranked results.
type SearchResponse struct {
	Query   string
	Results []SearchResult
}
