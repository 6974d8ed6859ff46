// Package memory provides in-memory implementations of the storage
// ports. Used as test fixtures and as a throwaway backend when no data
// directory is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
)

// Ensure Store implements the storage interfaces.
var (
	_ driven.FragmentStore   = (*Store)(nil)
	_ driven.LinkStore       = (*Store)(nil)
	_ driven.DecisionStore   = (*Store)(nil)
	_ driven.AssumptionStore = (*Store)(nil)
)

// Store is a single in-memory store behind all four storage ports.
// Keeping the maps together makes cross-entity reads (hydration,
// project joins, cascade deletes) trivial, mirroring what the SQLite
// schema does with foreign keys.
type Store struct {
	mu          sync.RWMutex
	fragments   map[string]domain.Fragment
	decisions   map[string]domain.Decision
	assumptions map[string]domain.Assumption
	links       []domain.FragmentLink
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		fragments:   make(map[string]domain.Fragment),
		decisions:   make(map[string]domain.Decision),
		assumptions: make(map[string]domain.Assumption),
	}
}

// ---- FragmentStore ----

// SaveFragment stores a new fragment.
func (s *Store) SaveFragment(_ context.Context, fragment *domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments[fragment.ID] = *fragment
	return nil
}

// GetFragment retrieves a fragment with decisions and assumptions
// hydrated.
func (s *Store) GetFragment(_ context.Context, id string) (*domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fragment, ok := s.fragments[id]
	if !ok {
		return nil, fmt.Errorf("fragment %s: %w", id, domain.ErrNotFound)
	}

	for _, d := range s.decisions {
		if d.FragmentID == id {
			fragment.Decisions = append(fragment.Decisions, d)
		}
	}
	for _, a := range s.assumptions {
		if a.FragmentID == id {
			fragment.Assumptions = append(fragment.Assumptions, a)
		}
	}
	sort.Slice(fragment.Decisions, func(i, j int) bool {
		return fragment.Decisions[i].CreatedAt.Before(fragment.Decisions[j].CreatedAt)
	})
	sort.Slice(fragment.Assumptions, func(i, j int) bool {
		return fragment.Assumptions[i].CreatedAt.Before(fragment.Assumptions[j].CreatedAt)
	})

	return &fragment, nil
}

// ListFragments returns fragments matching the filter, newest first.
func (s *Store) ListFragments(_ context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Fragment, 0, len(s.fragments))
	for _, f := range s.fragments {
		if filter.Matches(f) {
			matched = append(matched, f)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CapturedAt.Equal(matched[j].CapturedAt) {
			return matched[i].CapturedAt.After(matched[j].CapturedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	if offset >= len(matched) {
		return []domain.Fragment{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// UpdateFragment applies a metadata update to project, topics and
// summary only.
func (s *Store) UpdateFragment(_ context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fragment, ok := s.fragments[id]
	if !ok {
		return nil, fmt.Errorf("fragment %s: %w", id, domain.ErrNotFound)
	}
	if update.Project != nil {
		fragment.Project = update.Project
	}
	if update.Topics != nil {
		fragment.Topics = update.Topics
	}
	if update.Summary != nil {
		fragment.Summary = update.Summary
	}
	s.fragments[id] = fragment
	return &fragment, nil
}

// DeleteFragment removes a fragment, its decisions and assumptions,
// every link touching it, and clears invalidated_by references to it.
func (s *Store) DeleteFragment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fragments[id]; !ok {
		return fmt.Errorf("fragment %s: %w", id, domain.ErrNotFound)
	}
	delete(s.fragments, id)

	for did, d := range s.decisions {
		if d.FragmentID == id {
			delete(s.decisions, did)
		}
	}
	for aid, a := range s.assumptions {
		if a.FragmentID == id {
			delete(s.assumptions, aid)
			continue
		}
		if a.InvalidatedBy != nil && *a.InvalidatedBy == id {
			a.InvalidatedBy = nil
			s.assumptions[aid] = a
		}
	}

	kept := s.links[:0]
	for _, l := range s.links {
		if !l.Touches(id) {
			kept = append(kept, l)
		}
	}
	s.links = kept
	return nil
}

// ---- LinkStore ----

// SaveLink stores a link. Parallel edges accumulate.
func (s *Store) SaveLink(_ context.Context, link *domain.FragmentLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, *link)
	return nil
}

// LinksFor returns links touching the fragment, strongest first, then
// newest first.
func (s *Store) LinksFor(_ context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.FragmentLink, 0, len(s.links))
	for _, l := range s.links {
		if !l.Touches(fragmentID) {
			continue
		}
		if linkType != nil && l.LinkType != *linkType {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Strength != matched[j].Strength {
			return matched[i].Strength > matched[j].Strength
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// ListLinks returns all links up to limit.
func (s *Store) ListLinks(_ context.Context, limit int) ([]domain.FragmentLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]domain.FragmentLink, len(s.links))
	copy(links, s.links)
	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	return links, nil
}

// CountLinks returns the number of links touching the fragment.
func (s *Store) CountLinks(_ context.Context, fragmentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.links {
		if l.Touches(fragmentID) {
			count++
		}
	}
	return count, nil
}

// ---- DecisionStore ----

// SaveDecision stores a decision.
func (s *Store) SaveDecision(_ context.Context, decision *domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions[decision.ID] = *decision
	return nil
}

// ListDecisions returns decisions, newest first.
func (s *Store) ListDecisions(_ context.Context, project, fragmentID *string, since *time.Time, limit int) ([]domain.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Decision, 0, len(s.decisions))
	for _, d := range s.decisions {
		if fragmentID != nil && d.FragmentID != *fragmentID {
			continue
		}
		if since != nil && d.CreatedAt.Before(*since) {
			continue
		}
		if project != nil && !s.fragmentInProject(d.FragmentID, *project) {
			continue
		}
		matched = append(matched, d)
	}
	sortNewestFirst(matched, func(d domain.Decision) (time.Time, string) { return d.CreatedAt, d.ID })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// ---- AssumptionStore ----

// SaveAssumption stores an assumption.
func (s *Store) SaveAssumption(_ context.Context, assumption *domain.Assumption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assumptions[assumption.ID] = *assumption
	return nil
}

// GetAssumption retrieves an assumption by ID.
func (s *Store) GetAssumption(_ context.Context, id string) (*domain.Assumption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assumption, ok := s.assumptions[id]
	if !ok {
		return nil, fmt.Errorf("assumption %s: %w", id, domain.ErrNotFound)
	}
	return &assumption, nil
}

// ListAssumptions returns assumptions matching the filter, newest
// first.
func (s *Store) ListAssumptions(_ context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Assumption, 0, len(s.assumptions))
	for _, a := range s.assumptions {
		if filter.FragmentID != nil && a.FragmentID != *filter.FragmentID {
			continue
		}
		if filter.Since != nil && a.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Validity != nil && a.Validity() != *filter.Validity {
			continue
		}
		if filter.Project != nil && !s.fragmentInProject(a.FragmentID, *filter.Project) {
			continue
		}
		matched = append(matched, a)
	}
	sortNewestFirst(matched, func(a domain.Assumption) (time.Time, string) { return a.CreatedAt, a.ID })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// UpdateValidity persists a new still_valid / invalidated_by pair.
func (s *Store) UpdateValidity(_ context.Context, id string, stillValid *bool, invalidatedBy *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assumption, ok := s.assumptions[id]
	if !ok {
		return fmt.Errorf("assumption %s: %w", id, domain.ErrNotFound)
	}
	assumption.StillValid = stillValid
	assumption.InvalidatedBy = invalidatedBy
	s.assumptions[id] = assumption
	return nil
}

// fragmentInProject reports whether the owning fragment carries the
// project label. Callers hold at least a read lock.
func (s *Store) fragmentInProject(fragmentID, project string) bool {
	f, ok := s.fragments[fragmentID]
	return ok && f.Project != nil && *f.Project == project
}

// sortNewestFirst orders by creation time descending with ID as a
// deterministic tie-break.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi < idj
	})
}
