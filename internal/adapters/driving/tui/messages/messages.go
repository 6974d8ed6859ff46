// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and command results flowing through the
// Elm architecture.
package messages

import (
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewTimeline is the chronological fragment listing.
	ViewTimeline
	// ViewDetail shows a single fragment with its decisions,
	// assumptions and links.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewTimeline:
		return "timeline"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries search results back to the model. Seq echoes
// the sequence number of the query that produced the response, so the
// view can discard responses that finished after a newer query was
// issued.
type SearchCompleted struct {
	Seq      uint64
	Response *domain.SearchResponse
	Err      error
}

// TimelineLoaded carries one fragment page for the timeline view.
// Offset echoes the requested page offset.
type TimelineLoaded struct {
	Fragments []domain.Fragment
	Offset    int
	Err       error
}

// FragmentSelected is sent when a fragment is chosen from a list.
type FragmentSelected struct {
	ID string
}

// FragmentLoaded carries a hydrated fragment for the detail view.
type FragmentLoaded struct {
	Fragment *domain.Fragment
	Err      error
}

// FragmentUpdated signals a metadata edit finished.
type FragmentUpdated struct {
	Fragment *domain.Fragment
	Err      error
}

// RelatedLoaded carries the linked neighbours of a fragment.
type RelatedLoaded struct {
	FragmentID string
	Related    []driving.RelatedFragment
	Err        error
}

// LinkCreated signals a link creation finished.
type LinkCreated struct {
	Link *domain.FragmentLink
	Err  error
}

// ErrorOccurred signals that an error happened outside a specific
// request/response pair.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
