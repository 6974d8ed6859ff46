package domain

import "time"

const unknownLabel = "Unknown"

// SourceType identifies where a fragment was captured from.
type SourceType string

// Available source types.
const (
	// SourceQuickCapture is a note typed directly into the CLI.
	SourceQuickCapture SourceType = "quick_capture"

	// SourceZoom is an excerpt from a Zoom meeting transcript.
	SourceZoom SourceType = "zoom"

	// SourceTeams is an excerpt from a Teams meeting transcript.
	SourceTeams SourceType = "teams"

	// SourceNotes is content picked up from a watched notes directory.
	SourceNotes SourceType = "notes"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceQuickCapture, SourceZoom, SourceTeams, SourceNotes:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Label returns a human-readable label for the source type.
// Unrecognised values fall back to a generic label rather than
// rendering blank.
func (t SourceType) Label() string {
	switch t {
	case SourceQuickCapture:
		return "Quick Capture"
	case SourceZoom:
		return "Zoom"
	case SourceTeams:
		return "Teams"
	case SourceNotes:
		return "Notes"
	default:
		return unknownLabel
	}
}

// Icon returns a single-glyph marker for the source type.
func (t SourceType) Icon() string {
	switch t {
	case SourceQuickCapture:
		return "✏"
	case SourceZoom:
		return "🎥"
	case SourceTeams:
		return "👥"
	case SourceNotes:
		return "📝"
	default:
		return "•"
	}
}

// Fragment represents a captured unit of context.
// It is the root entity: decisions, assumptions and links all reference
// a fragment by ID.
type Fragment struct {
	// ID is the unique, stable identifier. Immutable once assigned.
	ID string

	// Content is the raw captured text.
	Content string

	// Summary is an optional condensed form of the content.
	Summary *string

	// SourceType identifies the capture channel.
	SourceType SourceType

	// SourceRef is an optional free-text reference (file path, meeting
	// id, URL).
	SourceRef *string

	// CapturedAt is set once at creation and never mutated.
	CapturedAt time.Time

	// Participants lists the people present when the fragment was
	// captured.
	Participants []string

	// Topics is an unordered set of topic tags.
	Topics []string

	// Project is an optional project label.
	Project *string

	// Decisions and Assumptions are populated when fetching a single
	// fragment; list operations leave them empty.
	Decisions   []Decision
	Assumptions []Assumption
}

// FragmentUpdate carries the mutable subset of fragment metadata.
// Only project, topics and summary may change after capture; nil fields
// are left untouched.
type FragmentUpdate struct {
	Project *string
	Topics  []string
	Summary *string
}

// IsEmpty returns true if the update would change nothing.
func (u FragmentUpdate) IsEmpty() bool {
	return u.Project == nil && u.Topics == nil && u.Summary == nil
}
