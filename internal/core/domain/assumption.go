package domain

import (
	"fmt"
	"time"
)

// Validity is the tri-state truth value of an assumption.
type Validity string

// Validity states.
const (
	// ValidityUnknown means the assumption has not been checked yet.
	// Stored as a null StillValid.
	ValidityUnknown Validity = "unknown"

	// ValidityValid means the assumption still holds.
	ValidityValid Validity = "valid"

	// ValidityInvalid means the assumption has been broken.
	ValidityInvalid Validity = "invalid"
)

// Label returns a human-readable label, with a fallback for
// unrecognised values.
func (v Validity) Label() string {
	switch v {
	case ValidityUnknown:
		return "Unchecked"
	case ValidityValid:
		return "Still Valid"
	case ValidityInvalid:
		return "Invalidated"
	default:
		return unknownLabel
	}
}

// AssumptionFilter narrows an assumption listing. Nil fields impose no
// constraint; a set Validity can also select the unknown state, which a
// plain *bool filter could not express.
type AssumptionFilter struct {
	Project    *string
	FragmentID *string
	Since      *time.Time

	// Validity filters by tri-state validity when set.
	Validity *Validity
}

// Assumption is a stated or inferred premise tied to exactly one
// fragment.
type Assumption struct {
	// ID is the unique identifier for the assumption.
	ID string

	// FragmentID is the owning fragment.
	FragmentID string

	// Statement is the premise text.
	Statement string

	// Explicit is true when the premise was stated outright, false when
	// it was inferred.
	Explicit bool

	// StillValid is the tri-state validity: nil = unknown, true =
	// valid, false = invalid.
	StillValid *bool

	// InvalidatedBy optionally references the fragment that broke this
	// assumption. Always unset unless StillValid is false.
	InvalidatedBy *string

	// CreatedAt is when the assumption was recorded.
	CreatedAt time.Time
}

// Validity returns the tri-state view of StillValid.
func (a *Assumption) Validity() Validity {
	switch {
	case a.StillValid == nil:
		return ValidityUnknown
	case *a.StillValid:
		return ValidityValid
	default:
		return ValidityInvalid
	}
}

// Validate checks the assumption invariants.
func (a *Assumption) Validate() error {
	if a.FragmentID == "" {
		return fmt.Errorf("%w: assumption requires an owning fragment id", ErrValidation)
	}
	if a.Statement == "" {
		return fmt.Errorf("%w: assumption requires a statement", ErrValidation)
	}
	if a.Validity() != ValidityInvalid && a.InvalidatedBy != nil {
		return fmt.Errorf("%w: invalidated_by may only be set on an invalid assumption", ErrValidation)
	}
	return nil
}

// Toggle applies a "mark valid" or "mark invalid" action and returns
// the resulting validity. The transition table:
//
//	unknown --mark v--> v
//	v       --mark v--> unknown
//	v       --mark opposite(v)--> unknown
//
// Crossing from valid to invalid (or back) therefore always takes two
// actions: one to clear, one to set. Entering any state other than
// invalid clears InvalidatedBy.
func (a *Assumption) Toggle(mark Validity) (Validity, error) {
	if mark != ValidityValid && mark != ValidityInvalid {
		return a.Validity(), fmt.Errorf("%w: cannot toggle to %q", ErrValidation, mark)
	}

	next := ValidityUnknown
	if a.Validity() == ValidityUnknown {
		next = mark
	}

	a.setValidity(next)
	return next, nil
}

// Invalidate marks the assumption invalid in one step and records the
// fragment that broke it. Unlike Toggle, it is valid from any state.
func (a *Assumption) Invalidate(invalidatedBy string) error {
	if invalidatedBy == "" {
		return fmt.Errorf("%w: invalidating fragment id required", ErrValidation)
	}
	a.setValidity(ValidityInvalid)
	a.InvalidatedBy = &invalidatedBy
	return nil
}

func (a *Assumption) setValidity(v Validity) {
	switch v {
	case ValidityValid:
		t := true
		a.StillValid = &t
		a.InvalidatedBy = nil
	case ValidityInvalid:
		f := false
		a.StillValid = &f
	default:
		a.StillValid = nil
		a.InvalidatedBy = nil
	}
}
