// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/styles"
	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// previewLength caps the snippet shown under each result.
const previewLength = 100

// ResultList displays ranked search results in a navigable list,
// highlighting matched query tokens in the preview.
type ResultList struct {
	results  []domain.SearchResult
	query    string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
		}
		switch msg.String() {
		case "k":
			r.MoveUp()
		case "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*2+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// Each result takes two lines plus optional project line.
	visibleCount := (r.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single result: id, capture time and score on
// the first line, a highlighted preview underneath.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("%s%s  %s  %.2f",
		indicator,
		shortID(result.Fragment.ID),
		result.Fragment.CapturedAt.Local().Format("2006-01-02 15:04"),
		result.Score,
	)

	var headLine string
	if index == r.selected {
		headLine = r.styles.Selected.Render(head)
	} else {
		headLine = r.styles.Normal.Render(head)
	}

	previewLine := "    " + r.renderPreview(result.Fragment.Content)

	var projectLine string
	if result.Fragment.Project != nil && *result.Fragment.Project != "" {
		projectLine = "\n" + r.styles.Subtitle.Render("    "+*result.Fragment.Project)
	}

	return headLine + projectLine + "\n" + previewLine
}

// renderPreview truncates the content and emphasises the query tokens
// that matched.
func (r *ResultList) renderPreview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	truncated := domain.Truncate(flat, previewLength)

	var b strings.Builder
	for _, seg := range domain.Highlight(truncated, r.query) {
		if seg.Match {
			b.WriteString(r.styles.Match.Render(seg.Text))
			continue
		}
		b.WriteString(r.styles.Muted.Render(seg.Text))
	}
	return b.String()
}

// SetResults replaces the list contents and remembers the query for
// highlighting.
func (r *ResultList) SetResults(results []domain.SearchResult, query string) {
	r.results = results
	r.query = query
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Query returns the query the current results answer.
func (r *ResultList) Query() string {
	return r.query
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
