package services

import (
	"context"
	"time"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// Ensure DecisionService implements the interface.
var _ driving.DecisionService = (*DecisionService)(nil)

// DecisionService exposes read access to decisions produced by the
// external extraction pipeline.
type DecisionService struct {
	decisionStore driven.DecisionStore
}

// NewDecisionService creates a new decision service.
func NewDecisionService(decisionStore driven.DecisionStore) *DecisionService {
	return &DecisionService{decisionStore: decisionStore}
}

// List returns decisions, newest first.
func (s *DecisionService) List(ctx context.Context, project *string, since *time.Time, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.decisionStore.ListDecisions(ctx, project, nil, since, limit)
}
