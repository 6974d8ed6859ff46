package mcp

import (
	"context"
	"time"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// mockFragmentService implements driving.FragmentService for testing.
type mockFragmentService struct {
	fragments []domain.Fragment
	related   []driving.RelatedFragment
	err       error

	capturedReq *driving.CaptureRequest
}

func (m *mockFragmentService) Capture(_ context.Context, req driving.CaptureRequest) (*domain.Fragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.capturedReq = &req
	return &domain.Fragment{
		ID:         "frag-new",
		Content:    req.Content,
		Project:    req.Project,
		Topics:     req.Topics,
		SourceType: domain.SourceQuickCapture,
		CapturedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockFragmentService) Get(_ context.Context, id string) (*domain.Fragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.fragments {
		if m.fragments[i].ID == id {
			return &m.fragments[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFragmentService) List(_ context.Context, _ domain.Filter, limit, offset int) ([]domain.Fragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.fragments) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.fragments) {
		end = len(m.fragments)
	}
	return m.fragments[offset:end], nil
}

func (m *mockFragmentService) Update(_ context.Context, id string, _ domain.FragmentUpdate) (*domain.Fragment, error) {
	return &domain.Fragment{ID: id}, m.err
}

func (m *mockFragmentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockFragmentService) Related(_ context.Context, _ string, _ *domain.LinkType, _ int) ([]driving.RelatedFragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.related, nil
}

// mockLinkService implements driving.LinkService for testing.
type mockLinkService struct {
	err error

	addedReq *driving.LinkRequest
}

func (m *mockLinkService) AddLink(_ context.Context, req driving.LinkRequest) (*domain.FragmentLink, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.addedReq = &req
	return &domain.FragmentLink{
		ID:       "link-new",
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		LinkType: req.LinkType,
	}, nil
}

func (m *mockLinkService) LinksFor(_ context.Context, _ string, _ *domain.LinkType, _ int) ([]domain.FragmentLink, error) {
	return nil, m.err
}

func (m *mockLinkService) Degree(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

// mockGraphService implements driving.GraphService for testing.
type mockGraphService struct {
	graph *domain.GraphData
	err   error

	gotFilter domain.Filter
	gotLimit  int
}

func (m *mockGraphService) BuildGraph(_ context.Context, filter domain.Filter, limit int) (*domain.GraphData, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotFilter = filter
	m.gotLimit = limit
	if m.graph == nil {
		return &domain.GraphData{}, nil
	}
	return m.graph, nil
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotQuery = query
	m.gotOpts = opts
	if m.response == nil {
		return &domain.SearchResponse{Query: query}, nil
	}
	return m.response, nil
}

// mockAssumptionService implements driving.AssumptionService for
// testing.
type mockAssumptionService struct {
	assumptions []domain.Assumption
	err         error
}

func (m *mockAssumptionService) List(_ context.Context, _ domain.AssumptionFilter, _ int) ([]domain.Assumption, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assumptions, nil
}

func (m *mockAssumptionService) Toggle(_ context.Context, _ string, _ domain.Validity) (*domain.Assumption, error) {
	return nil, m.err
}

func (m *mockAssumptionService) Invalidate(_ context.Context, _ string, _ string) (*domain.Assumption, error) {
	return nil, m.err
}

// testPorts returns a fully-populated Ports with fresh mocks.
func testPorts() *Ports {
	return &Ports{
		Fragment:   &mockFragmentService{},
		Link:       &mockLinkService{},
		Graph:      &mockGraphService{},
		Search:     &mockSearchService{},
		Assumption: &mockAssumptionService{},
	}
}
