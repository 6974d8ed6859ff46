package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/search/lexical"
	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/memory"
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/services"
)

// setupTestServices wires the full service set over an in-memory store
// and returns the store (for seeding) plus a cleanup that restores the
// previous wiring.
func setupTestServices() (*memory.Store, func()) {
	oldFragment := fragmentService
	oldLink := linkService
	oldGraph := graphService
	oldSearch := searchService
	oldDecision := decisionService
	oldAssumption := assumptionService

	store := memory.NewStore()
	fragmentService = services.NewFragmentService(store, store)
	linkService = services.NewLinkService(store, store)
	graphService = services.NewGraphService(store, store)
	searchService = services.NewSearchService(lexical.NewSearcher(store))
	decisionService = services.NewDecisionService(store)
	assumptionService = services.NewAssumptionService(store, store)

	return store, func() {
		fragmentService = oldFragment
		linkService = oldLink
		graphService = oldGraph
		searchService = oldSearch
		decisionService = oldDecision
		assumptionService = oldAssumption
	}
}

// execute runs the root command with the given args and returns the
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func seedFragment(t *testing.T, store *memory.Store, id, content, project string, capturedAt time.Time) {
	t.Helper()
	fragment := &domain.Fragment{
		ID:         id,
		Content:    content,
		SourceType: domain.SourceQuickCapture,
		CapturedAt: capturedAt,
	}
	if project != "" {
		fragment.Project = &project
	}
	require.NoError(t, store.SaveFragment(context.Background(), fragment))
}

func seedLink(t *testing.T, store *memory.Store, id, source, target string, linkType domain.LinkType, strength float64) {
	t.Helper()
	require.NoError(t, store.SaveLink(context.Background(), &domain.FragmentLink{
		ID:        id,
		SourceID:  source,
		TargetID:  target,
		LinkType:  linkType,
		Strength:  strength,
		CreatedAt: time.Now(),
	}))
}
