package tui

import "errors"

// ErrMissingFragmentService is returned when the fragment service is not provided.
var ErrMissingFragmentService = errors.New("tui: fragment service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingLinkService is returned when the link service is not provided.
var ErrMissingLinkService = errors.New("tui: link service is required")
