package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// Ensure FragmentService implements the interface.
var _ driving.FragmentService = (*FragmentService)(nil)

// DefaultListLimit caps fragment listings when no limit is given.
const DefaultListLimit = 50

// FragmentService manages fragment capture, retrieval and metadata
// edits.
type FragmentService struct {
	fragmentStore driven.FragmentStore
	linkStore     driven.LinkStore
	clock         Clock
}

// NewFragmentService creates a new fragment service.
func NewFragmentService(fragmentStore driven.FragmentStore, linkStore driven.LinkStore) *FragmentService {
	return &FragmentService{
		fragmentStore: fragmentStore,
		linkStore:     linkStore,
		clock:         systemClock{},
	}
}

// WithClock overrides the time source. Used by tests.
func (s *FragmentService) WithClock(c Clock) *FragmentService {
	s.clock = c
	return s
}

// Capture creates a new fragment. The identifier and capture timestamp
// are assigned here, once, and never mutated afterwards.
func (s *FragmentService) Capture(ctx context.Context, req driving.CaptureRequest) (*domain.Fragment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: fragment content required", domain.ErrValidation)
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceQuickCapture
	}
	if !sourceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrValidation, sourceType)
	}

	fragment := &domain.Fragment{
		ID:           uuid.NewString(),
		Content:      content,
		SourceType:   sourceType,
		SourceRef:    req.SourceRef,
		CapturedAt:   s.clock.Now(),
		Participants: req.Participants,
		Topics:       req.Topics,
		Project:      req.Project,
	}

	if err := s.fragmentStore.SaveFragment(ctx, fragment); err != nil {
		return nil, fmt.Errorf("saving fragment: %w", err)
	}

	logger.Debug("Captured fragment %s (%s)", fragment.ID, fragment.SourceType)
	return fragment, nil
}

// Get returns a fragment with decisions and assumptions hydrated.
func (s *FragmentService) Get(ctx context.Context, id string) (*domain.Fragment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: fragment id required", domain.ErrValidation)
	}
	return s.fragmentStore.GetFragment(ctx, id)
}

// List returns fragments matching the filter, newest first.
func (s *FragmentService) List(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.fragmentStore.ListFragments(ctx, filter, limit, offset)
}

// Update applies a metadata edit. Content, source and capture time are
// immutable; only project, topics and summary may change.
func (s *FragmentService) Update(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: fragment id required", domain.ErrValidation)
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	return s.fragmentStore.UpdateFragment(ctx, id, update)
}

// Delete removes a fragment and everything referencing it.
func (s *FragmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: fragment id required", domain.ErrValidation)
	}
	return s.fragmentStore.DeleteFragment(ctx, id)
}

// Related returns fragments linked to the given one, strongest links
// first. The fragment itself never appears in the result, and links
// whose far endpoint has been deleted are skipped.
func (s *FragmentService) Related(ctx context.Context, id string, linkType *domain.LinkType, limit int) ([]driving.RelatedFragment, error) {
	if limit <= 0 {
		limit = DefaultLinksForLimit
	}

	// Fail with not-found before touching the link index.
	if _, err := s.fragmentStore.GetFragment(ctx, id); err != nil {
		return nil, err
	}

	links, err := s.linkStore.LinksFor(ctx, id, linkType, limit)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	related := make([]driving.RelatedFragment, 0, len(links))
	for _, link := range links {
		otherID, ok := link.OtherEnd(id)
		if !ok || otherID == id {
			continue
		}
		fragment, err := s.fragmentStore.GetFragment(ctx, otherID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("resolving related fragment %s: %w", otherID, err)
		}
		related = append(related, driving.RelatedFragment{
			Fragment: *fragment,
			Strength: link.Strength,
			LinkType: link.LinkType,
		})
	}
	return related, nil
}
