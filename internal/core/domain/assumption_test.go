package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssumption_Validity tests the tri-state view over StillValid
func TestAssumption_Validity(t *testing.T) {
	valid := true
	invalid := false

	assert.Equal(t, ValidityUnknown, (&Assumption{}).Validity())
	assert.Equal(t, ValidityValid, (&Assumption{StillValid: &valid}).Validity())
	assert.Equal(t, ValidityInvalid, (&Assumption{StillValid: &invalid}).Validity())
}

// TestAssumption_ToggleCycle tests the unknown -> valid -> unknown
// cycle and its invalid counterpart
func TestAssumption_ToggleCycle(t *testing.T) {
	a := &Assumption{FragmentID: "f1", Statement: "redis stays"}

	got, err := a.Toggle(ValidityValid)
	require.NoError(t, err)
	assert.Equal(t, ValidityValid, got)

	got, err = a.Toggle(ValidityValid)
	require.NoError(t, err)
	assert.Equal(t, ValidityUnknown, got)

	got, err = a.Toggle(ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, ValidityInvalid, got)

	got, err = a.Toggle(ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, ValidityUnknown, got)
}

// TestAssumption_ToggleNeverCrossesDirectly tests that the opposite
// state is only reachable through unknown
func TestAssumption_ToggleNeverCrossesDirectly(t *testing.T) {
	a := &Assumption{FragmentID: "f1", Statement: "one region is enough"}

	_, err := a.Toggle(ValidityValid)
	require.NoError(t, err)
	require.Equal(t, ValidityValid, a.Validity())

	// Marking invalid from valid clears to unknown instead of jumping.
	got, err := a.Toggle(ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, ValidityUnknown, got)

	got, err = a.Toggle(ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, ValidityInvalid, got)
}

// TestAssumption_ToggleRejectsUnknownTarget tests toggle input validation
func TestAssumption_ToggleRejectsUnknownTarget(t *testing.T) {
	a := &Assumption{FragmentID: "f1", Statement: "s"}
	_, err := a.Toggle(ValidityUnknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

// TestAssumption_InvalidateClearsOnRecovery tests that invalidated_by
// is dropped whenever the assumption leaves the invalid state
func TestAssumption_InvalidateClearsOnRecovery(t *testing.T) {
	a := &Assumption{FragmentID: "f1", Statement: "payments stay on stripe"}

	require.NoError(t, a.Invalidate("f9"))
	assert.Equal(t, ValidityInvalid, a.Validity())
	require.NotNil(t, a.InvalidatedBy)
	assert.Equal(t, "f9", *a.InvalidatedBy)
	assert.NoError(t, a.Validate())

	// Toggling invalid again returns to unknown and clears the reference.
	got, err := a.Toggle(ValidityInvalid)
	require.NoError(t, err)
	assert.Equal(t, ValidityUnknown, got)
	assert.Nil(t, a.InvalidatedBy)
}

// TestAssumption_Validate tests the invariants
func TestAssumption_Validate(t *testing.T) {
	valid := true
	ref := "f2"

	tests := []struct {
		name       string
		assumption Assumption
		wantErr    bool
	}{
		{
			name:       "minimal valid",
			assumption: Assumption{FragmentID: "f1", Statement: "s"},
		},
		{
			name:       "missing fragment",
			assumption: Assumption{Statement: "s"},
			wantErr:    true,
		},
		{
			name:       "missing statement",
			assumption: Assumption{FragmentID: "f1"},
			wantErr:    true,
		},
		{
			name:       "valid with invalidated_by rejected",
			assumption: Assumption{FragmentID: "f1", Statement: "s", StillValid: &valid, InvalidatedBy: &ref},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.assumption.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
