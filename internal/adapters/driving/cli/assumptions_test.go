package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/memory"
	"github.com/provo-labs/provo-cli/internal/core/domain"
)

func resetAssumptionsFlags() {
	assumptionsProject = ""
	assumptionsValid = false
	assumptionsInvalid = false
	assumptionsLimit = 50
}

func seedAssumption(t *testing.T, store *memory.Store, id, fragmentID, statement string, stillValid *bool) {
	t.Helper()
	require.NoError(t, store.SaveAssumption(context.Background(), &domain.Assumption{
		ID:         id,
		FragmentID: fragmentID,
		Statement:  statement,
		Explicit:   true,
		StillValid: stillValid,
		CreatedAt:  time.Now(),
	}))
}

func TestAssumptionsCmd_ListsAllStates(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer resetAssumptionsFlags()

	tr, fa := true, false
	seedFragment(t, store, "f1", "note", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "traffic stays flat", nil)
	seedAssumption(t, store, "a2", "f1", "budget is approved", &tr)
	seedAssumption(t, store, "a3", "f1", "team stays at five", &fa)

	out, err := execute(t, "assumptions")

	require.NoError(t, err)
	assert.Contains(t, out, "[Unchecked] traffic stays flat")
	assert.Contains(t, out, "[Still Valid] budget is approved")
	assert.Contains(t, out, "[Invalidated] team stays at five")
}

func TestAssumptionsCmd_ValidFlag(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()
	defer resetAssumptionsFlags()

	tr := true
	seedFragment(t, store, "f1", "note", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "traffic stays flat", nil)
	seedAssumption(t, store, "a2", "f1", "budget is approved", &tr)

	out, err := execute(t, "assumptions", "--valid")

	require.NoError(t, err)
	assert.Contains(t, out, "budget is approved")
	assert.NotContains(t, out, "traffic stays flat")
}

func TestAssumptionsCmd_FlagsMutuallyExclusive(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer resetAssumptionsFlags()

	_, err := execute(t, "assumptions", "--valid", "--invalid")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssumptionMarkCmd_TogglesThroughUnchecked(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()

	seedFragment(t, store, "f1", "note", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "traffic stays flat", nil)

	out, err := execute(t, "assumptions", "mark", "a1", "valid")
	require.NoError(t, err)
	assert.Contains(t, out, "Still Valid")

	// Marking the held state clears back to unchecked.
	out, err = execute(t, "assumptions", "mark", "a1", "valid")
	require.NoError(t, err)
	assert.Contains(t, out, "Unchecked")
}

func TestAssumptionMarkCmd_RejectsUnknownMark(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "assumptions", "mark", "a1", "maybe")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssumptionInvalidateCmd_RecordsBreaker(t *testing.T) {
	store, cleanup := setupTestServices()
	defer cleanup()

	seedFragment(t, store, "f1", "note", "", time.Now())
	seedFragment(t, store, "breaker1", "contradicting note", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "traffic stays flat", nil)

	out, err := execute(t, "assumptions", "invalidate", "a1", "breaker1")

	require.NoError(t, err)
	assert.Contains(t, out, "invalidated by fragment breaker1")

	stored, err := store.GetAssumption(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidityInvalid, stored.Validity())
	require.NotNil(t, stored.InvalidatedBy)
	assert.Equal(t, "breaker1", *stored.InvalidatedBy)
}
