package lexical

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
)

// scanLimit bounds how many candidate fragments one query considers.
const scanLimit = 1000

// Searcher scores fragments lexically against the query.
type Searcher struct {
	fragmentStore driven.FragmentStore
}

var _ driven.Searcher = (*Searcher)(nil)

// NewSearcher creates a lexical searcher over the fragment store.
func NewSearcher(fragmentStore driven.FragmentStore) *Searcher {
	return &Searcher{fragmentStore: fragmentStore}
}

// Search returns fragments matching at least one query token, ordered
// by score descending, then newest first. The score is the fraction of
// tokens that match, so a fragment hitting every token scores 1.0.
func (s *Searcher) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	tokens := domain.Tokenize(query)
	if len(tokens) == 0 {
		return []domain.SearchResult{}, nil
	}

	// Candidates are filtered by project only; token matching happens
	// here because ranking needs per-token hits, not the all-tokens
	// match the filter applies.
	candidates, err := s.fragmentStore.ListFragments(ctx, domain.Filter{Project: opts.Project}, scanLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing candidate fragments: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, fragment := range candidates {
		score := scoreFragment(fragment, tokens)
		if score == 0 {
			continue
		}
		results = append(results, domain.SearchResult{Fragment: fragment, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Fragment.CapturedAt.After(results[j].Fragment.CapturedAt)
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// scoreFragment returns the fraction of tokens present in the
// fragment's content, project or topics.
func scoreFragment(fragment domain.Fragment, tokens []string) float64 {
	content := strings.ToLower(fragment.Content)
	project := ""
	if fragment.Project != nil {
		project = strings.ToLower(*fragment.Project)
	}
	topics := make([]string, len(fragment.Topics))
	for i, t := range fragment.Topics {
		topics[i] = strings.ToLower(t)
	}

	hits := 0
	for _, token := range tokens {
		if strings.Contains(content, token) || strings.Contains(project, token) {
			hits++
			continue
		}
		for _, topic := range topics {
			if strings.Contains(topic, token) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(tokens))
}
