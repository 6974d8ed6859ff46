package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/messages"
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// mockFragmentService implements the fragment interactions the detail
// view uses.
type mockFragmentService struct {
	driving.FragmentService

	GetFunc     func(ctx context.Context, id string) (*domain.Fragment, error)
	UpdateFunc  func(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error)
	RelatedFunc func(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error)
}

func (m *mockFragmentService) Get(ctx context.Context, id string) (*domain.Fragment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Fragment{ID: id, Content: "content", CapturedAt: time.Now()}, nil
}

func (m *mockFragmentService) Update(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return &domain.Fragment{ID: id, Content: "content", CapturedAt: time.Now()}, nil
}

func (m *mockFragmentService) Related(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error) {
	if m.RelatedFunc != nil {
		return m.RelatedFunc(ctx, id, linkType, limit)
	}
	return nil, nil
}

// mockLinkService implements driving.LinkService for testing.
type mockLinkService struct {
	driving.LinkService

	AddLinkFunc func(ctx context.Context, req driving.LinkRequest) (*domain.FragmentLink, error)
}

func (m *mockLinkService) AddLink(ctx context.Context, req driving.LinkRequest) (*domain.FragmentLink, error) {
	if m.AddLinkFunc != nil {
		return m.AddLinkFunc(ctx, req)
	}
	return &domain.FragmentLink{
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		LinkType: req.LinkType,
	}, nil
}

func newTestView(fragments driving.FragmentService, links driving.LinkService) *View {
	if fragments == nil {
		fragments = &mockFragmentService{}
	}
	if links == nil {
		links = &mockLinkService{}
	}
	v := NewView(nil, nil, fragments, links)
	v.SetDimensions(80, 24)
	return v
}

// runBatch executes a tea.Batch command and feeds every resulting
// message back into the view.
func runBatch(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, sub := range batch {
		v.Update(sub())
	}
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func testFragment() *domain.Fragment {
	project := "payments"
	valid := true
	return &domain.Fragment{
		ID:         "frag-1",
		Content:    "switched to idempotency keys on retries",
		Project:    &project,
		Topics:     []string{"reliability"},
		CapturedAt: time.Now(),
		Decisions: []domain.Decision{
			{What: "use idempotency keys", Why: "retries double-charged"},
		},
		Assumptions: []domain.Assumption{
			{Statement: "gateway dedupes within 24h", StillValid: &valid},
			{Statement: "retries are rare"},
		},
	}
}

func TestView_Load(t *testing.T) {
	fragments := &mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			assert.Equal(t, "frag-1", id)
			return testFragment(), nil
		},
		RelatedFunc: func(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error) {
			return []driving.RelatedFragment{
				{Fragment: domain.Fragment{ID: "frag-2", Content: "other"}, LinkType: domain.LinkFollows, Strength: 0.8},
			}, nil
		},
	}
	v := newTestView(fragments, nil)

	runBatch(t, v, v.Load("frag-1"))

	require.NotNil(t, v.Fragment())
	assert.Equal(t, "frag-1", v.Fragment().ID)
	require.Len(t, v.Related(), 1)
	assert.NoError(t, v.Err())
}

func TestView_Load_Error(t *testing.T) {
	fragments := &mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			return nil, errors.New("not found")
		},
		RelatedFunc: func(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error) {
			return nil, errors.New("not found")
		},
	}
	v := newTestView(fragments, nil)

	runBatch(t, v, v.Load("missing"))

	assert.Error(t, v.Err())
	assert.Nil(t, v.Fragment())
}

func TestView_RelatedLoaded_ForOtherFragment_Ignored(t *testing.T) {
	v := newTestView(nil, nil)
	runBatch(t, v, v.Load("frag-1"))

	v.Update(messages.RelatedLoaded{
		FragmentID: "frag-9",
		Related:    []driving.RelatedFragment{{Fragment: domain.Fragment{ID: "frag-8"}}},
	})

	assert.Empty(t, v.Related())
}

func TestView_ExpandToggle(t *testing.T) {
	fragments := &mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			return testFragment(), nil
		},
	}
	v := newTestView(fragments, nil)
	runBatch(t, v, v.Load("frag-1"))
	require.False(t, v.Expanded())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, v.Expanded())

	view := v.View()
	assert.Contains(t, view, "use idempotency keys")
	assert.Contains(t, view, "gateway dedupes within 24h")
	assert.Contains(t, view, "Still Valid")
	assert.Contains(t, view, "Unchecked")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, v.Expanded())
}

func TestView_EditFlow(t *testing.T) {
	var got domain.FragmentUpdate
	fragments := &mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			return testFragment(), nil
		},
		UpdateFunc: func(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
			got = update
			f := testFragment()
			f.Project = update.Project
			return f, nil
		},
	}
	v := newTestView(fragments, nil)
	runBatch(t, v, v.Load("frag-1"))

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	require.True(t, v.Editing())

	// Project step, prefilled with the current value.
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Topics step.
	typeText(v, ", billing")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Summary step submits.
	typeText(v, "retry safety")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.False(t, v.Editing())

	updated, ok := cmd().(messages.FragmentUpdated)
	require.True(t, ok)
	require.NoError(t, updated.Err)

	require.NotNil(t, got.Project)
	assert.Equal(t, "payments2", *got.Project)
	assert.Equal(t, []string{"reliability", "billing"}, got.Topics)
	require.NotNil(t, got.Summary)
	assert.Equal(t, "retry safety", *got.Summary)

	v.Update(updated)
	assert.Equal(t, "payments2", *v.Fragment().Project)
}

func TestView_EditCancelled(t *testing.T) {
	v := newTestView(&mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			return testFragment(), nil
		},
	}, nil)
	runBatch(t, v, v.Load("frag-1"))

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	require.True(t, v.Editing())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, v.Editing())
	assert.Equal(t, "payments", *v.Fragment().Project)
}

func TestView_LinkFlow(t *testing.T) {
	var got driving.LinkRequest
	links := &mockLinkService{
		AddLinkFunc: func(ctx context.Context, req driving.LinkRequest) (*domain.FragmentLink, error) {
			got = req
			return &domain.FragmentLink{
				SourceID: req.SourceID,
				TargetID: req.TargetID,
				LinkType: req.LinkType,
			}, nil
		},
	}
	v := newTestView(nil, links)
	runBatch(t, v, v.Load("frag-1"))

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	require.True(t, v.Linking())

	// Target step.
	typeText(v, "frag-2")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Type step: move down twice to follows.
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Strength step, prefilled with the default; replace it.
	v.input.SetValue("0.9")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.False(t, v.Linking())

	created, ok := cmd().(messages.LinkCreated)
	require.True(t, ok)
	require.NoError(t, created.Err)

	assert.Equal(t, "frag-1", got.SourceID)
	assert.Equal(t, "frag-2", got.TargetID)
	assert.Equal(t, domain.LinkFollows, got.LinkType)
	require.NotNil(t, got.Strength)
	assert.InDelta(t, 0.9, *got.Strength, 0.0001)
}

func TestView_LinkFlow_BadStrength(t *testing.T) {
	v := newTestView(nil, nil)
	runBatch(t, v, v.Load("frag-1"))

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	typeText(v, "frag-2")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.input.SetValue("lots")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.Linking())
}

func TestView_LinkCreated_RefreshesRelated(t *testing.T) {
	relatedCalls := 0
	fragments := &mockFragmentService{
		RelatedFunc: func(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error) {
			relatedCalls++
			return []driving.RelatedFragment{
				{Fragment: domain.Fragment{ID: "frag-2"}, LinkType: domain.LinkRelatesTo, Strength: 0.5},
			}, nil
		},
	}
	v := newTestView(fragments, nil)
	runBatch(t, v, v.Load("frag-1"))
	require.Equal(t, 1, relatedCalls)

	_, cmd := v.Update(messages.LinkCreated{
		Link: &domain.FragmentLink{SourceID: "frag-1", TargetID: "frag-2", LinkType: domain.LinkRelatesTo},
	})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 2, relatedCalls)
	assert.Len(t, v.Related(), 1)
}

func TestView_EscReturnsToTimeline(t *testing.T) {
	v := newTestView(nil, nil)
	runBatch(t, v, v.Load("frag-1"))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewTimeline, changed.View)
}

func TestView_View_CollapsedShowsHint(t *testing.T) {
	v := newTestView(&mockFragmentService{
		GetFunc: func(ctx context.Context, id string) (*domain.Fragment, error) {
			return testFragment(), nil
		},
	}, nil)
	runBatch(t, v, v.Load("frag-1"))

	view := v.View()

	assert.Contains(t, view, "1 decisions, 2 assumptions")
	assert.NotContains(t, view, "use idempotency keys")
}
