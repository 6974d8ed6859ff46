// Package timeline provides the chronological fragment listing view
// for the TUI.
package timeline

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/components/status"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/keymap"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/messages"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/styles"
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// pageSize is how many fragments one timeline page loads.
const pageSize = 50

// View lists fragments newest first and opens the detail view on
// selection.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	fragmentService driving.FragmentService
	ctx             context.Context

	fragments []domain.Fragment
	selected  int
	offset    int
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new timeline view.
func NewView(s *styles.Styles, km *keymap.KeyMap, fragmentService driving.FragmentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		statusbar:       status.NewBar(s, km),
		fragmentService: fragmentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	return v.loadPage(0)
}

// Update handles messages for the timeline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TimelineLoaded:
		v.handleLoaded(msg)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		if f := v.SelectedFragment(); f != nil {
			id := f.ID
			return v, func() tea.Msg {
				return messages.FragmentSelected{ID: id}
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.fragments)-1 {
			v.selected++
		}
	case "r":
		v.statusbar.SetState(status.StateLoading)
		return v, v.loadPage(v.offset)
	case "right", "]":
		// Next page.
		v.statusbar.SetState(status.StateLoading)
		return v, v.loadPage(v.offset + pageSize)
	case "left", "[":
		if v.offset > 0 {
			next := v.offset - pageSize
			if next < 0 {
				next = 0
			}
			v.statusbar.SetState(status.StateLoading)
			return v, v.loadPage(next)
		}
	}

	return v, nil
}

// loadPage fetches one page of fragments, newest first.
func (v *View) loadPage(offset int) tea.Cmd {
	return func() tea.Msg {
		fragments, err := v.fragmentService.List(v.ctx, domain.Filter{}, pageSize, offset)
		if err != nil {
			return messages.TimelineLoaded{Offset: offset, Err: err}
		}
		return messages.TimelineLoaded{Fragments: fragments, Offset: offset}
	}
}

func (v *View) handleLoaded(msg messages.TimelineLoaded) {
	if msg.Err != nil {
		// Keep whatever page was already on screen.
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	// An empty next page means we ran off the end; stay put.
	if len(msg.Fragments) == 0 && len(v.fragments) > 0 {
		v.statusbar.SetState(status.StateReady)
		return
	}

	v.err = nil
	v.fragments = msg.Fragments
	v.offset = msg.Offset
	v.selected = 0
	v.statusbar.SetState(status.StateReady)
}

// SetFragments replaces the listing. Used when navigating in from a
// filtered context and by tests.
func (v *View) SetFragments(fragments []domain.Fragment) {
	v.fragments = fragments
	v.selected = 0
}

// View renders the timeline.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Timeline"), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if len(v.fragments) == 0 {
		sections = append(sections, v.styles.Muted.Render("No fragments captured yet."))
	} else {
		sections = append(sections, v.renderList())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderList() string {
	visibleCount := (v.height - 8) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if v.selected >= visibleCount {
		start = v.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(v.fragments) {
		end = len(v.fragments)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, v.renderFragment(i, &v.fragments[i]))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderFragment(index int, f *domain.Fragment) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("%s%s %s  %s",
		indicator,
		f.SourceType.Icon(),
		f.CapturedAt.Local().Format("2006-01-02 15:04"),
		preview(f.Content, v.width-24),
	)

	var headLine string
	if index == v.selected {
		headLine = v.styles.Selected.Render(head)
	} else {
		headLine = v.styles.Normal.Render(head)
	}

	meta := ""
	if f.Project != nil && *f.Project != "" {
		meta = *f.Project
	}
	if len(f.Topics) > 0 {
		if meta != "" {
			meta += "  "
		}
		meta += strings.Join(f.Topics, ", ")
	}
	if meta == "" {
		return headLine
	}
	return headLine + "\n" + v.styles.Muted.Render("      "+meta)
}

func preview(content string, maxLen int) string {
	if maxLen < 20 {
		maxLen = 20
	}
	flat := strings.Join(strings.Fields(content), " ")
	return domain.Truncate(flat, maxLen)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Fragments returns the current page.
func (v *View) Fragments() []domain.Fragment {
	return v.fragments
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}

// SelectedFragment returns the fragment under the cursor, or nil.
func (v *View) SelectedFragment() *domain.Fragment {
	if len(v.fragments) == 0 || v.selected < 0 || v.selected >= len(v.fragments) {
		return nil
	}
	return &v.fragments[v.selected]
}

// Err returns the last load error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
