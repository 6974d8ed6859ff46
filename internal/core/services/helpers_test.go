package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/memory"
	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// fixedClock pins Now so tests can assert timestamps.
type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func seedFragment(t *testing.T, store *memory.Store, id, content, project string, capturedAt time.Time) {
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
	require.NoError(t, store.SaveFragment(context.Background(), f))
}

func seedLink(t *testing.T, store *memory.Store, id, source, target string, linkType domain.LinkType, strength float64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, store.SaveLink(context.Background(), &domain.FragmentLink{
		ID:        id,
		SourceID:  source,
		TargetID:  target,
		LinkType:  linkType,
		Strength:  strength,
		CreatedAt: createdAt,
	}))
}
