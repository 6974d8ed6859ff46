package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
)

// Ensure Client implements the driven ports.
var (
	_ driven.FragmentStore   = (*Client)(nil)
	_ driven.LinkStore       = (*Client)(nil)
	_ driven.DecisionStore   = (*Client)(nil)
	_ driven.AssumptionStore = (*Client)(nil)
	_ driven.Searcher        = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 10 * time.Second

	// DefaultRequestRate throttles client requests per second.
	DefaultRequestRate = 20

	// hydrationLimit caps the dependent records fetched when hydrating
	// a single fragment.
	hydrationLimit = 200
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API server base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// RequestRate is the client-side throttle in requests per second
	// (default: 20).
	RequestRate float64
}

// Client talks to a remote provo API server.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestRate == 0 {
		cfg.RequestRate = DefaultRequestRate
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestRate), int(cfg.RequestRate)),
	}
}

// ==================== Wire Types ====================

// fragmentPayload is the fragment wire format.
type fragmentPayload struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Summary      *string   `json:"summary,omitempty"`
	SourceType   string    `json:"source_type"`
	SourceRef    *string   `json:"source_ref,omitempty"`
	CapturedAt   time.Time `json:"captured_at"`
	Participants []string  `json:"participants"`
	Topics       []string  `json:"topics"`
	Project      *string   `json:"project,omitempty"`
}

// fragmentUpdatePayload is the metadata update wire format. Absent
// fields stay untouched server-side.
type fragmentUpdatePayload struct {
	Project *string  `json:"project,omitempty"`
	Topics  []string `json:"topics,omitempty"`
	Summary *string  `json:"summary,omitempty"`
}

// linkPayload is the link wire format.
type linkPayload struct {
	ID        string    `json:"id"`
	SourceID  string    `json:"source_id"`
	TargetID  string    `json:"target_id"`
	LinkType  string    `json:"link_type"`
	Strength  float64   `json:"strength"`
	CreatedAt time.Time `json:"created_at"`
}

// decisionPayload is the decision wire format.
type decisionPayload struct {
	ID         string    `json:"id"`
	FragmentID string    `json:"fragment_id"`
	What       string    `json:"what"`
	Why        string    `json:"why"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// assumptionPayload is the assumption wire format.
type assumptionPayload struct {
	ID            string    `json:"id"`
	FragmentID    string    `json:"fragment_id"`
	Statement     string    `json:"statement"`
	Explicit      bool      `json:"explicit"`
	StillValid    *bool     `json:"still_valid"`
	InvalidatedBy *string   `json:"invalidated_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// validityPayload carries a tri-state validity update.
type validityPayload struct {
	StillValid    *bool   `json:"still_valid"`
	InvalidatedBy *string `json:"invalidated_by"`
}

// searchResultPayload is one search hit on the wire.
type searchResultPayload struct {
	fragmentPayload
	Score float64 `json:"score"`
}

// searchResponsePayload is the search response wire format.
type searchResponsePayload struct {
	Query   string                `json:"query"`
	Results []searchResultPayload `json:"results"`
}

// countPayload is the link count wire format.
type countPayload struct {
	Count int `json:"count"`
}

// errorPayload is the server error wire format.
type errorPayload struct {
	Detail string `json:"detail"`
}

func toFragmentPayload(fragment *domain.Fragment) fragmentPayload {
	participants := fragment.Participants
	if participants == nil {
		participants = []string{}
	}
	topics := fragment.Topics
	if topics == nil {
		topics = []string{}
	}
	return fragmentPayload{
		ID:           fragment.ID,
		Content:      fragment.Content,
		Summary:      fragment.Summary,
		SourceType:   string(fragment.SourceType),
		SourceRef:    fragment.SourceRef,
		CapturedAt:   fragment.CapturedAt,
		Participants: participants,
		Topics:       topics,
		Project:      fragment.Project,
	}
}

func (p fragmentPayload) toDomain() domain.Fragment {
	return domain.Fragment{
		ID:           p.ID,
		Content:      p.Content,
		Summary:      p.Summary,
		SourceType:   domain.SourceType(p.SourceType),
		SourceRef:    p.SourceRef,
		CapturedAt:   p.CapturedAt,
		Participants: p.Participants,
		Topics:       p.Topics,
		Project:      p.Project,
	}
}

func (p linkPayload) toDomain() domain.FragmentLink {
	return domain.FragmentLink{
		ID:        p.ID,
		SourceID:  p.SourceID,
		TargetID:  p.TargetID,
		LinkType:  domain.LinkType(p.LinkType),
		Strength:  p.Strength,
		CreatedAt: p.CreatedAt,
	}
}

func (p decisionPayload) toDomain() domain.Decision {
	return domain.Decision{
		ID:         p.ID,
		FragmentID: p.FragmentID,
		What:       p.What,
		Why:        p.Why,
		Confidence: p.Confidence,
		CreatedAt:  p.CreatedAt,
	}
}

func (p assumptionPayload) toDomain() domain.Assumption {
	return domain.Assumption{
		ID:            p.ID,
		FragmentID:    p.FragmentID,
		Statement:     p.Statement,
		Explicit:      p.Explicit,
		StillValid:    p.StillValid,
		InvalidatedBy: p.InvalidatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// ==================== Request Plumbing ====================

// do issues a throttled request and decodes the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: waiting for request slot: %v", domain.ErrTransport, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding %s %s response: %v", domain.ErrTransport, method, path, err)
		}
	}
	return nil
}

// statusError maps an HTTP error status to a domain error, carrying
// the server's detail message when present.
func statusError(resp *http.Response) error {
	detail := ""
	var payload errorPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, detail)
	default:
		return fmt.Errorf("%w: server returned %d: %s", domain.ErrTransport, resp.StatusCode, detail)
	}
}

// ==================== Fragment Store ====================

// SaveFragment creates or replaces a fragment on the server.
func (c *Client) SaveFragment(ctx context.Context, fragment *domain.Fragment) error {
	return c.do(ctx, http.MethodPost, "/api/fragments", nil, toFragmentPayload(fragment), nil)
}

// GetFragment retrieves a fragment and hydrates its decisions and
// assumptions with two follow-up requests.
func (c *Client) GetFragment(ctx context.Context, id string) (*domain.Fragment, error) {
	var payload fragmentPayload
	if err := c.do(ctx, http.MethodGet, "/api/fragments/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	fragment := payload.toDomain()

	decisions, err := c.ListDecisions(ctx, nil, &id, nil, hydrationLimit)
	if err != nil {
		return nil, err
	}
	fragment.Decisions = decisions

	assumptions, err := c.ListAssumptions(ctx, domain.AssumptionFilter{FragmentID: &id}, hydrationLimit)
	if err != nil {
		return nil, err
	}
	fragment.Assumptions = assumptions

	return &fragment, nil
}

// ListFragments returns fragments matching the filter, newest first.
func (c *Client) ListFragments(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error) {
	query := url.Values{}
	if filter.Project != nil {
		query.Set("project", *filter.Project)
	}
	if filter.SourceType != nil {
		query.Set("source_type", string(*filter.SourceType))
	}
	if filter.Since != nil {
		query.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Until != nil {
		query.Set("until", filter.Until.UTC().Format(time.RFC3339))
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var payloads []fragmentPayload
	if err := c.do(ctx, http.MethodGet, "/api/fragments", query, nil, &payloads); err != nil {
		return nil, err
	}

	fragments := make([]domain.Fragment, len(payloads))
	for i, p := range payloads {
		fragments[i] = p.toDomain()
	}
	return fragments, nil
}

// UpdateFragment applies a metadata update and returns the fresh
// fragment.
func (c *Client) UpdateFragment(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
	body := fragmentUpdatePayload{
		Project: update.Project,
		Topics:  update.Topics,
		Summary: update.Summary,
	}
	var payload fragmentPayload
	if err := c.do(ctx, http.MethodPatch, "/api/fragments/"+url.PathEscape(id), nil, body, &payload); err != nil {
		return nil, err
	}
	fragment := payload.toDomain()
	return &fragment, nil
}

// DeleteFragment removes a fragment server-side; the server cascades
// to dependent records.
func (c *Client) DeleteFragment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/fragments/"+url.PathEscape(id), nil, nil, nil)
}

// ==================== Link Store ====================

// SaveLink stores a link.
func (c *Client) SaveLink(ctx context.Context, link *domain.FragmentLink) error {
	body := linkPayload{
		ID:        link.ID,
		SourceID:  link.SourceID,
		TargetID:  link.TargetID,
		LinkType:  string(link.LinkType),
		Strength:  link.Strength,
		CreatedAt: link.CreatedAt,
	}
	return c.do(ctx, http.MethodPost, "/api/links", nil, body, nil)
}

// LinksFor returns links touching the fragment.
func (c *Client) LinksFor(ctx context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error) {
	query := url.Values{}
	query.Set("fragment_id", fragmentID)
	if linkType != nil {
		query.Set("link_type", string(*linkType))
	}
	query.Set("limit", strconv.Itoa(limit))

	return c.fetchLinks(ctx, query)
}

// ListLinks returns links up to limit.
func (c *Client) ListLinks(ctx context.Context, limit int) ([]domain.FragmentLink, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	return c.fetchLinks(ctx, query)
}

func (c *Client) fetchLinks(ctx context.Context, query url.Values) ([]domain.FragmentLink, error) {
	var payloads []linkPayload
	if err := c.do(ctx, http.MethodGet, "/api/links", query, nil, &payloads); err != nil {
		return nil, err
	}

	links := make([]domain.FragmentLink, len(payloads))
	for i, p := range payloads {
		links[i] = p.toDomain()
	}
	return links, nil
}

// CountLinks returns the number of links touching the fragment.
func (c *Client) CountLinks(ctx context.Context, fragmentID string) (int, error) {
	query := url.Values{}
	query.Set("fragment_id", fragmentID)

	var payload countPayload
	if err := c.do(ctx, http.MethodGet, "/api/links/count", query, nil, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// ==================== Decision Store ====================

// SaveDecision stores a decision.
func (c *Client) SaveDecision(ctx context.Context, decision *domain.Decision) error {
	body := decisionPayload{
		ID:         decision.ID,
		FragmentID: decision.FragmentID,
		What:       decision.What,
		Why:        decision.Why,
		Confidence: decision.Confidence,
		CreatedAt:  decision.CreatedAt,
	}
	return c.do(ctx, http.MethodPost, "/api/decisions", nil, body, nil)
}

// ListDecisions returns decisions matching the filters, newest first.
func (c *Client) ListDecisions(ctx context.Context, project, fragmentID *string, since *time.Time, limit int) ([]domain.Decision, error) {
	query := url.Values{}
	if project != nil {
		query.Set("project", *project)
	}
	if fragmentID != nil {
		query.Set("fragment_id", *fragmentID)
	}
	if since != nil {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}
	query.Set("limit", strconv.Itoa(limit))

	var payloads []decisionPayload
	if err := c.do(ctx, http.MethodGet, "/api/decisions", query, nil, &payloads); err != nil {
		return nil, err
	}

	decisions := make([]domain.Decision, len(payloads))
	for i, p := range payloads {
		decisions[i] = p.toDomain()
	}
	return decisions, nil
}

// ==================== Assumption Store ====================

// SaveAssumption stores an assumption.
func (c *Client) SaveAssumption(ctx context.Context, assumption *domain.Assumption) error {
	body := assumptionPayload{
		ID:            assumption.ID,
		FragmentID:    assumption.FragmentID,
		Statement:     assumption.Statement,
		Explicit:      assumption.Explicit,
		StillValid:    assumption.StillValid,
		InvalidatedBy: assumption.InvalidatedBy,
		CreatedAt:     assumption.CreatedAt,
	}
	return c.do(ctx, http.MethodPost, "/api/assumptions", nil, body, nil)
}

// GetAssumption retrieves an assumption by ID.
func (c *Client) GetAssumption(ctx context.Context, id string) (*domain.Assumption, error) {
	var payload assumptionPayload
	if err := c.do(ctx, http.MethodGet, "/api/assumptions/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	assumption := payload.toDomain()
	return &assumption, nil
}

// ListAssumptions returns assumptions matching the filter, newest
// first.
func (c *Client) ListAssumptions(ctx context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error) {
	query := url.Values{}
	if filter.Project != nil {
		query.Set("project", *filter.Project)
	}
	if filter.FragmentID != nil {
		query.Set("fragment_id", *filter.FragmentID)
	}
	if filter.Since != nil {
		query.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Validity != nil {
		query.Set("validity", string(*filter.Validity))
	}
	query.Set("limit", strconv.Itoa(limit))

	var payloads []assumptionPayload
	if err := c.do(ctx, http.MethodGet, "/api/assumptions", query, nil, &payloads); err != nil {
		return nil, err
	}

	assumptions := make([]domain.Assumption, len(payloads))
	for i, p := range payloads {
		assumptions[i] = p.toDomain()
	}
	return assumptions, nil
}

// UpdateValidity sets the tri-state validity of an assumption.
func (c *Client) UpdateValidity(ctx context.Context, id string, stillValid *bool, invalidatedBy *string) error {
	body := validityPayload{
		StillValid:    stillValid,
		InvalidatedBy: invalidatedBy,
	}
	return c.do(ctx, http.MethodPatch, "/api/assumptions/"+url.PathEscape(id)+"/validity", nil, body, nil)
}

// ==================== Searcher ====================

// Search returns ranked results produced server-side; scores pass
// through untouched.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Project != nil {
		params.Set("project", *opts.Project)
	}

	var payload searchResponsePayload
	if err := c.do(ctx, http.MethodGet, "/api/search", params, nil, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, len(payload.Results))
	for i, r := range payload.Results {
		results[i] = domain.SearchResult{
			Fragment: r.fragmentPayload.toDomain(),
			Score:    r.Score,
		}
	}
	return results, nil
}
