package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

func strptr(s string) *string { return &s }

func seedFragment(t *testing.T, s *Store, id, content, project string, capturedAt time.Time) {
	t.Helper()
	f := &domain.Fragment{
		ID:         id,
		Content:    content,
		SourceType: domain.SourceQuickCapture,
		CapturedAt: capturedAt,
	}
	if project != "" {
		f.Project = strptr(project)
	}
	require.NoError(t, s.SaveFragment(context.Background(), f))
}

// TestStore_GetFragmentHydrates tests decision/assumption hydration
func TestStore_GetFragmentHydrates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	seedFragment(t, s, "f1", "chose redis", "payments", now)
	require.NoError(t, s.SaveDecision(ctx, &domain.Decision{
		ID: "d1", FragmentID: "f1", What: "use redis", Confidence: 0.9, CreatedAt: now,
	}))
	require.NoError(t, s.SaveAssumption(ctx, &domain.Assumption{
		ID: "a1", FragmentID: "f1", Statement: "traffic stays low", Explicit: true, CreatedAt: now,
	}))

	got, err := s.GetFragment(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, got.Decisions, 1)
	assert.Len(t, got.Assumptions, 1)

	_, err = s.GetFragment(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestStore_ListFragmentsOrderAndPaging tests newest-first order with
// limit and offset
func TestStore_ListFragmentsOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedFragment(t, s, "f1", "first", "", base)
	seedFragment(t, s, "f2", "second", "", base.Add(time.Hour))
	seedFragment(t, s, "f3", "third", "", base.Add(2*time.Hour))

	got, err := s.ListFragments(ctx, domain.Filter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "f3", got[0].ID)
	assert.Equal(t, "f1", got[2].ID)

	got, err = s.ListFragments(ctx, domain.Filter{}, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)

	got, err = s.ListFragments(ctx, domain.Filter{}, 10, 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestStore_UpdateFragmentRestricted tests that only metadata changes
func TestStore_UpdateFragmentRestricted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedFragment(t, s, "f1", "content stays", "old", time.Now())

	updated, err := s.UpdateFragment(ctx, "f1", domain.FragmentUpdate{
		Project: strptr("new"),
		Topics:  []string{"infra"},
		Summary: strptr("short"),
	})
	require.NoError(t, err)
	assert.Equal(t, "content stays", updated.Content)
	assert.Equal(t, "new", *updated.Project)
	assert.Equal(t, []string{"infra"}, updated.Topics)
	assert.Equal(t, "short", *updated.Summary)

	_, err = s.UpdateFragment(ctx, "missing", domain.FragmentUpdate{Project: strptr("p")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestStore_DeleteFragmentCascades tests cascade semantics
func TestStore_DeleteFragmentCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	seedFragment(t, s, "f1", "a", "", now)
	seedFragment(t, s, "f2", "b", "", now)
	require.NoError(t, s.SaveDecision(ctx, &domain.Decision{ID: "d1", FragmentID: "f1", What: "w"}))
	require.NoError(t, s.SaveLink(ctx, &domain.FragmentLink{
		ID: "l1", SourceID: "f1", TargetID: "f2", LinkType: domain.LinkRelatesTo, Strength: 0.8,
	}))
	// f2's assumption was invalidated by f1; deleting f1 clears the
	// reference but keeps the assumption.
	require.NoError(t, s.SaveAssumption(ctx, &domain.Assumption{
		ID: "a1", FragmentID: "f2", Statement: "s", StillValid: boolptr(false), InvalidatedBy: strptr("f1"),
	}))

	require.NoError(t, s.DeleteFragment(ctx, "f1"))

	_, err := s.GetFragment(ctx, "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := s.CountLinks(ctx, "f2")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	decisions, err := s.ListDecisions(ctx, nil, nil, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, decisions)

	a, err := s.GetAssumption(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, a.InvalidatedBy)
}

func boolptr(b bool) *bool { return &b }

// TestStore_ParallelLinksAccumulate tests multigraph semantics
func TestStore_ParallelLinksAccumulate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	seedFragment(t, s, "f1", "a", "", now)
	seedFragment(t, s, "f2", "b", "", now)

	for i, id := range []string{"l1", "l2"} {
		require.NoError(t, s.SaveLink(ctx, &domain.FragmentLink{
			ID: id, SourceID: "f1", TargetID: "f2",
			LinkType: domain.LinkRelatesTo, Strength: 0.8,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	count, err := s.CountLinks(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	links, err := s.LinksFor(ctx, "f1", nil, 10)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

// TestStore_LinksForOrderAndFilter tests strength ordering and the
// type filter
func TestStore_LinksForOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	for _, id := range []string{"f1", "f2", "f3"} {
		seedFragment(t, s, id, id, "", now)
	}

	require.NoError(t, s.SaveLink(ctx, &domain.FragmentLink{
		ID: "weak", SourceID: "f1", TargetID: "f2", LinkType: domain.LinkRelatesTo, Strength: 0.5, CreatedAt: now,
	}))
	require.NoError(t, s.SaveLink(ctx, &domain.FragmentLink{
		ID: "strong", SourceID: "f3", TargetID: "f1", LinkType: domain.LinkFollows, Strength: 0.9, CreatedAt: now,
	}))

	links, err := s.LinksFor(ctx, "f1", nil, 10)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "strong", links[0].ID)

	follows := domain.LinkFollows
	links, err = s.LinksFor(ctx, "f1", &follows, 10)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "strong", links[0].ID)
}

// TestStore_ListDecisionsProjectJoin tests project filtering through
// the owning fragment
func TestStore_ListDecisionsProjectJoin(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	seedFragment(t, s, "f1", "a", "payments", now)
	seedFragment(t, s, "f2", "b", "search", now)
	require.NoError(t, s.SaveDecision(ctx, &domain.Decision{ID: "d1", FragmentID: "f1", What: "w", CreatedAt: now}))
	require.NoError(t, s.SaveDecision(ctx, &domain.Decision{ID: "d2", FragmentID: "f2", What: "w", CreatedAt: now}))

	decisions, err := s.ListDecisions(ctx, strptr("payments"), nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "d1", decisions[0].ID)
}

// TestStore_ListAssumptionsValidityFilter tests the tri-state filter
func TestStore_ListAssumptionsValidityFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	seedFragment(t, s, "f1", "a", "", now)

	require.NoError(t, s.SaveAssumption(ctx, &domain.Assumption{ID: "a1", FragmentID: "f1", Statement: "unknown", CreatedAt: now}))
	require.NoError(t, s.SaveAssumption(ctx, &domain.Assumption{ID: "a2", FragmentID: "f1", Statement: "valid", StillValid: boolptr(true), CreatedAt: now}))
	require.NoError(t, s.SaveAssumption(ctx, &domain.Assumption{ID: "a3", FragmentID: "f1", Statement: "invalid", StillValid: boolptr(false), CreatedAt: now}))

	for _, tt := range []struct {
		validity domain.Validity
		wantID   string
	}{
		{domain.ValidityUnknown, "a1"},
		{domain.ValidityValid, "a2"},
		{domain.ValidityInvalid, "a3"},
	} {
		v := tt.validity
		got, err := s.ListAssumptions(ctx, domain.AssumptionFilter{Validity: &v}, 10)
		require.NoError(t, err)
		require.Len(t, got, 1, "validity %s", v)
		assert.Equal(t, tt.wantID, got[0].ID)
	}

	all, err := s.ListAssumptions(ctx, domain.AssumptionFilter{}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
