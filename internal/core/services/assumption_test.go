package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/memory"
	"github.com/provo-labs/provo-cli/internal/core/domain"
)

func seedAssumption(t *testing.T, store *memory.Store, id, fragmentID, statement string) {
	t.Helper()
	require.NoError(t, store.SaveAssumption(context.Background(), &domain.Assumption{
		ID:         id,
		FragmentID: fragmentID,
		Statement:  statement,
		Explicit:   true,
		CreatedAt:  time.Now(),
	}))
}

// TestAssumptionService_ToggleCycle tests the persisted tri-state
// cycle: unknown -> valid -> unknown -> invalid -> unknown
func TestAssumptionService_ToggleCycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedFragment(t, store, "f1", "a", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "load stays low")

	svc := NewAssumptionService(store, store)

	steps := []struct {
		mark domain.Validity
		want domain.Validity
	}{
		{domain.ValidityValid, domain.ValidityValid},
		{domain.ValidityValid, domain.ValidityUnknown},
		{domain.ValidityInvalid, domain.ValidityInvalid},
		{domain.ValidityValid, domain.ValidityUnknown},
	}
	for _, step := range steps {
		got, err := svc.Toggle(ctx, "a1", step.mark)
		require.NoError(t, err)
		assert.Equal(t, step.want, got.Validity())

		// The new state must be visible on a fresh read.
		stored, err := store.GetAssumption(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, step.want, stored.Validity())
	}
}

// TestAssumptionService_ToggleUnknownID tests the not-found path
func TestAssumptionService_ToggleUnknownID(t *testing.T) {
	store := memory.NewStore()
	svc := NewAssumptionService(store, store)

	_, err := svc.Toggle(context.Background(), "ghost", domain.ValidityValid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestAssumptionService_Invalidate tests the direct invalidation path
// and the invalidator existence check
func TestAssumptionService_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	seedFragment(t, store, "f1", "a", "", now)
	seedFragment(t, store, "breaker", "traffic spiked", "", now)
	seedAssumption(t, store, "a1", "f1", "load stays low")

	svc := NewAssumptionService(store, store)

	_, err := svc.Invalidate(ctx, "a1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.Invalidate(ctx, "a1", "breaker")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidityInvalid, got.Validity())
	require.NotNil(t, got.InvalidatedBy)
	assert.Equal(t, "breaker", *got.InvalidatedBy)

	// Recovering to unknown must clear the invalidator reference.
	got, err = svc.Toggle(ctx, "a1", domain.ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidityUnknown, got.Validity())
	assert.Nil(t, got.InvalidatedBy)
}

// TestAssumptionService_ListDefaultsLimit tests the fallback limit
func TestAssumptionService_ListDefaultsLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedFragment(t, store, "f1", "a", "", time.Now())
	seedAssumption(t, store, "a1", "f1", "s")

	svc := NewAssumptionService(store, store)
	got, err := svc.List(ctx, domain.AssumptionFilter{}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
