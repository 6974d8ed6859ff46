package driving

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// CaptureRequest carries the inputs for capturing a new fragment.
type CaptureRequest struct {
	// Content is the fragment text. Required.
	Content string

	// Project is the optional project label.
	Project *string

	// Topics are optional topic tags.
	Topics []string

	// SourceRef is an optional free-text reference (URL, file path).
	SourceRef *string

	// SourceType defaults to quick_capture when empty.
	SourceType domain.SourceType

	// Participants are optional participant names.
	Participants []string
}

// RelatedFragment pairs a fragment with the link that reached it.
type RelatedFragment struct {
	Fragment domain.Fragment
	Strength float64
	LinkType domain.LinkType
}

// FragmentService exposes fragment capture and retrieval.
type FragmentService interface {
	// Capture creates a new fragment and returns it with an assigned
	// identifier and capture timestamp.
	Capture(ctx context.Context, req CaptureRequest) (*domain.Fragment, error)

	// Get returns a fragment with decisions and assumptions hydrated.
	Get(ctx context.Context, id string) (*domain.Fragment, error)

	// List returns fragments matching the filter, newest first.
	List(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error)

	// Update applies a metadata update; only project, topics and
	// summary may change.
	Update(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error)

	// Delete removes a fragment and its dependent records.
	Delete(ctx context.Context, id string) error

	// Related returns fragments linked to the given one, strongest
	// links first, never including the fragment itself.
	Related(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]RelatedFragment, error)
}
