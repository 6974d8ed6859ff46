package cli

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

func resetEditFlags() {
	editProject = ""
	editTopics = nil
	editSummary = ""
	editCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func TestEditCmd_UpdatesMetadata(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer resetEditFlags()

	seedFragment(t, store, "f1", "original content", "old-project", time.Now())

	out, err := execute(t, "edit", "f1", "--project", "new-project", "-t", "database", "--summary", "short form")

	require.NoError(t, err)
	assert.Contains(t, out, "Updated fragment f1")

	stored, err := store.GetFragment(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "original content", stored.Content)
	require.NotNil(t, stored.Project)
	assert.Equal(t, "new-project", *stored.Project)
	assert.Equal(t, []string{"database"}, stored.Topics)
	require.NotNil(t, stored.Summary)
	assert.Equal(t, "short form", *stored.Summary)
}

func TestEditCmd_UntouchedFieldsSurvive(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer resetEditFlags()

	seedFragment(t, store, "f1", "original content", "keep-me", time.Now())

	_, err := execute(t, "edit", "f1", "--summary", "only the summary changes")

	require.NoError(t, err)

	stored, err := store.GetFragment(context.Background(), "f1")
	require.NoError(t, err)
	require.NotNil(t, stored.Project)
	assert.Equal(t, "keep-me", *stored.Project)
}

func TestEditCmd_NoFlagsRejected(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer resetEditFlags()

	seedFragment(t, store, "f1", "original content", "", time.Now())

	_, err := execute(t, "edit", "f1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteCmd_RemovesFragmentWithYes(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer func() { deleteYes = false }()

	seedFragment(t, store, "f1", "doomed", "", time.Now())

	out, err := execute(t, "delete", "--yes", "f1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted fragment f1")

	_, err = store.GetFragment(context.Background(), "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCmd_UnknownFragment(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer func() { deleteYes = false }()

	_, err := execute(t, "delete", "--yes", "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
