package domain

import (
	"fmt"
	"time"
)

// Decision is a "what was decided and why" fact extracted from exactly
// one fragment. Decisions are immutable after creation; no update
// contract exists.
type Decision struct {
	// ID is the unique identifier for the decision.
	ID string

	// FragmentID is the owning fragment. A fragment may own zero or
	// more decisions.
	FragmentID string

	// What states the decision itself.
	What string

	// Why holds the rationale. May be empty.
	Why string

	// Confidence is the extraction confidence in [0.0, 1.0].
	Confidence float64

	// CreatedAt is when the decision was recorded.
	CreatedAt time.Time
}

// Validate checks the decision invariants.
func (d *Decision) Validate() error {
	if d.FragmentID == "" {
		return fmt.Errorf("%w: decision requires an owning fragment id", ErrValidation)
	}
	if d.What == "" {
		return fmt.Errorf("%w: decision requires a statement", ErrValidation)
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0, 1]", ErrValidation, d.Confidence)
	}
	return nil
}
