package services

import (
	"context"
	"fmt"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// Ensure AssumptionService implements the interface.
var _ driving.AssumptionService = (*AssumptionService)(nil)

// AssumptionService exposes assumption listing and the validity state
// machine.
type AssumptionService struct {
	assumptionStore driven.AssumptionStore
	fragmentStore   driven.FragmentStore
}

// NewAssumptionService creates a new assumption service.
func NewAssumptionService(assumptionStore driven.AssumptionStore, fragmentStore driven.FragmentStore) *AssumptionService {
	return &AssumptionService{
		assumptionStore: assumptionStore,
		fragmentStore:   fragmentStore,
	}
}

// List returns assumptions matching the filter, newest first.
func (s *AssumptionService) List(ctx context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.assumptionStore.ListAssumptions(ctx, filter, limit)
}

// Toggle applies a mark-valid or mark-invalid action through the
// tri-state cycle. A failed store write leaves the previous state
// intact so the caller can retry.
func (s *AssumptionService) Toggle(ctx context.Context, id string, mark domain.Validity) (*domain.Assumption, error) {
	assumption, err := s.assumptionStore.GetAssumption(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := assumption.Toggle(mark)
	if err != nil {
		return nil, err
	}

	if err := s.assumptionStore.UpdateValidity(ctx, id, assumption.StillValid, assumption.InvalidatedBy); err != nil {
		return nil, fmt.Errorf("updating assumption validity: %w", err)
	}

	logger.Debug("Assumption %s toggled to %s", id, next)
	return assumption, nil
}

// Invalidate marks an assumption invalid in one step, recording the
// fragment that broke it. The invalidating fragment must exist.
func (s *AssumptionService) Invalidate(ctx context.Context, id string, invalidatedBy string) (*domain.Assumption, error) {
	if _, err := s.fragmentStore.GetFragment(ctx, invalidatedBy); err != nil {
		return nil, fmt.Errorf("resolving invalidating fragment: %w", err)
	}

	assumption, err := s.assumptionStore.GetAssumption(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := assumption.Invalidate(invalidatedBy); err != nil {
		return nil, err
	}

	if err := s.assumptionStore.UpdateValidity(ctx, id, assumption.StillValid, assumption.InvalidatedBy); err != nil {
		return nil, fmt.Errorf("updating assumption validity: %w", err)
	}

	logger.Debug("Assumption %s invalidated by %s", id, invalidatedBy)
	return assumption, nil
}
