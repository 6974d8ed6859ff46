package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// Ensure LinkService implements the interface.
var _ driving.LinkService = (*LinkService)(nil)

// DefaultLinksForLimit caps LinksFor results when no limit is given.
const DefaultLinksForLimit = 10

// LinkService maintains the link index: directed, typed, weighted
// edges between fragments with multigraph semantics.
type LinkService struct {
	linkStore     driven.LinkStore
	fragmentStore driven.FragmentStore
	clock         Clock
}

// NewLinkService creates a new link service.
func NewLinkService(linkStore driven.LinkStore, fragmentStore driven.FragmentStore) *LinkService {
	return &LinkService{
		linkStore:     linkStore,
		fragmentStore: fragmentStore,
		clock:         systemClock{},
	}
}

// WithClock overrides the time source. Used by tests.
func (s *LinkService) WithClock(c Clock) *LinkService {
	s.clock = c
	return s
}

// AddLink validates and stores a link between two existing fragments.
// Validation failures never reach the store; a failed store write
// leaves no partial state behind.
func (s *LinkService) AddLink(ctx context.Context, req driving.LinkRequest) (*domain.FragmentLink, error) {
	linkType := req.LinkType
	if linkType == "" {
		linkType = domain.LinkRelatesTo
	}
	strength := domain.DefaultLinkStrength
	if req.Strength != nil {
		strength = *req.Strength
	}

	link := &domain.FragmentLink{
		ID:        uuid.NewString(),
		SourceID:  req.SourceID,
		TargetID:  req.TargetID,
		LinkType:  linkType,
		Strength:  strength,
		CreatedAt: s.clock.Now(),
	}
	if err := link.Validate(); err != nil {
		return nil, err
	}

	// Endpoint existence is the store's knowledge, not ours.
	for _, id := range []string{req.SourceID, req.TargetID} {
		if _, err := s.fragmentStore.GetFragment(ctx, id); err != nil {
			return nil, fmt.Errorf("resolving link endpoint %s: %w", id, err)
		}
	}

	if err := s.linkStore.SaveLink(ctx, link); err != nil {
		return nil, fmt.Errorf("saving link: %w", err)
	}

	logger.Debug("Linked %s -> %s (%s, %.2f)", link.SourceID, link.TargetID, link.LinkType, link.Strength)
	return link, nil
}

// LinksFor returns links touching the fragment, ordered by strength
// descending then creation time descending.
func (s *LinkService) LinksFor(ctx context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error) {
	if limit <= 0 {
		limit = DefaultLinksForLimit
	}
	if linkType != nil && !linkType.IsValid() {
		return nil, fmt.Errorf("%w: unknown link type %q", domain.ErrValidation, *linkType)
	}
	return s.linkStore.LinksFor(ctx, fragmentID, linkType, limit)
}

// Degree returns the number of links touching the fragment. Parallel
// edges each count.
func (s *LinkService) Degree(ctx context.Context, fragmentID string) (int, error) {
	return s.linkStore.CountLinks(ctx, fragmentID)
}
