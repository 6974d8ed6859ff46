package domain

import (
	"fmt"
	"time"
)

// LinkType identifies the kind of relationship between two fragments.
type LinkType string

// Available link types.
const (
	// LinkRelatesTo marks semantic similarity.
	LinkRelatesTo LinkType = "relates_to"

	// LinkReferences marks fragments mentioning the same entities.
	LinkReferences LinkType = "references"

	// LinkFollows marks a temporal sequence.
	LinkFollows LinkType = "follows"

	// LinkContradicts marks conflicting decisions.
	LinkContradicts LinkType = "contradicts"

	// LinkInvalidates marks new information breaking an old assumption.
	LinkInvalidates LinkType = "invalidates"
)

// DefaultLinkStrength is applied when a link is created without an
// explicit strength.
const DefaultLinkStrength = 0.8

// IsValid returns true if the link type is recognised.
func (t LinkType) IsValid() bool {
	switch t {
	case LinkRelatesTo, LinkReferences, LinkFollows, LinkContradicts, LinkInvalidates:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t LinkType) String() string {
	return string(t)
}

// Label returns a human-readable label, with a fallback for
// unrecognised values.
func (t LinkType) Label() string {
	switch t {
	case LinkRelatesTo:
		return "Relates To"
	case LinkReferences:
		return "References"
	case LinkFollows:
		return "Follows"
	case LinkContradicts:
		return "Contradicts"
	case LinkInvalidates:
		return "Invalidates"
	default:
		return unknownLabel
	}
}

// Icon returns a single-glyph marker for the link type.
func (t LinkType) Icon() string {
	switch t {
	case LinkRelatesTo:
		return "🔗"
	case LinkReferences:
		return "📎"
	case LinkFollows:
		return "➡"
	case LinkContradicts:
		return "⚡"
	case LinkInvalidates:
		return "❌"
	default:
		return "🔗"
	}
}

// Directed returns true if the edge direction carries meaning for this
// link type. Presentation treats all edges as undirected for layout;
// the data always preserves direction.
func (t LinkType) Directed() bool {
	switch t {
	case LinkFollows, LinkInvalidates, LinkReferences:
		return true
	default:
		return false
	}
}

// FragmentLink is a directed, typed, weighted edge between two
// fragments. Links accumulate: creating the same (source, target, type)
// twice yields two parallel edges, never an overwrite.
type FragmentLink struct {
	// ID is the unique identifier for the link.
	ID string

	// SourceID is the fragment the edge starts from.
	SourceID string

	// TargetID is the fragment the edge points to.
	TargetID string

	// LinkType is the relationship kind.
	LinkType LinkType

	// Strength is the edge weight in [0.0, 1.0].
	Strength float64

	// CreatedAt is when the link was created.
	CreatedAt time.Time
}

// Validate checks the link invariants: no self-links, a recognised
// type, and strength within [0, 1].
func (l *FragmentLink) Validate() error {
	if l.SourceID == "" || l.TargetID == "" {
		return fmt.Errorf("%w: link requires source and target fragment ids", ErrValidation)
	}
	if l.SourceID == l.TargetID {
		return fmt.Errorf("%w: a fragment cannot link to itself", ErrValidation)
	}
	if !l.LinkType.IsValid() {
		return fmt.Errorf("%w: unknown link type %q", ErrValidation, l.LinkType)
	}
	if l.Strength < 0 || l.Strength > 1 {
		return fmt.Errorf("%w: strength %v outside [0, 1]", ErrValidation, l.Strength)
	}
	return nil
}

// Touches returns true if the fragment appears as either endpoint.
func (l *FragmentLink) Touches(fragmentID string) bool {
	return l.SourceID == fragmentID || l.TargetID == fragmentID
}

// OtherEnd returns the endpoint opposite to the given fragment, and
// false if the fragment is not an endpoint at all.
func (l *FragmentLink) OtherEnd(fragmentID string) (string, bool) {
	switch fragmentID {
	case l.SourceID:
		return l.TargetID, true
	case l.TargetID:
		return l.SourceID, true
	default:
		return "", false
	}
}
