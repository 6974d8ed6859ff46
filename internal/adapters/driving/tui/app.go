// Package tui provides the interactive terminal user interface built
// on Bubbletea following the Elm architecture.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/keymap"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/messages"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/styles"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/views/detail"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/views/menu"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/views/search"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/views/timeline"
	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// App is the main TUI application. It implements tea.Model and routes
// messages to the active view.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// searchView is the fragment search view.
	searchView *search.View

	// timelineView is the capture timeline view.
	timelineView *timeline.View

	// detailView is the fragment detail view.
	detailView *detail.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where esc from the detail view returns to.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Search),
		timelineView: timeline.NewView(s, km, ports.Fragment),
		detailView:   detail.NewView(s, km, ports.Fragment, ports.Link),
		currentView:  messages.ViewMenu,
		previousView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.timelineView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("provo - Decision Provenance"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.timelineView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Tab flips between the search and timeline views.
		if msg.String() == "tab" {
			switch a.currentView {
			case messages.ViewSearch:
				a.currentView = messages.ViewTimeline
				return a, a.timelineView.Init()
			case messages.ViewTimeline:
				a.currentView = messages.ViewSearch
				return a, nil
			case messages.ViewMenu, messages.ViewDetail, messages.ViewHelp:
				// Tab only applies to the two list views.
			}
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
			return a, cmd
		case messages.ViewTimeline:
			a.timelineView, cmd = a.timelineView.Update(msg)
			a.err = a.timelineView.Err()
			return a, cmd
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
			a.err = a.detailView.Err()
			return a, cmd
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.TimelineLoaded:
		a.timelineView, cmd = a.timelineView.Update(msg)
		a.err = a.timelineView.Err()
		return a, cmd

	case messages.FragmentLoaded, messages.FragmentUpdated,
		messages.RelatedLoaded, messages.LinkCreated:
		a.detailView, cmd = a.detailView.Update(msg)
		a.err = a.detailView.Err()
		return a, cmd

	case messages.ViewChanged:
		// Esc from the detail view returns to wherever the fragment
		// was opened from, keeping that view's state intact.
		if a.currentView == messages.ViewDetail {
			a.currentView = a.previousView
			return a, nil
		}
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewTimeline:
			return a, a.timelineView.Init()
		case messages.ViewMenu, messages.ViewDetail, messages.ViewHelp:
			// No initialisation needed.
		}
		return a, nil

	case messages.FragmentSelected:
		// Navigate to the detail view from search or timeline.
		if a.currentView != messages.ViewDetail {
			a.previousView = a.currentView
		}
		a.currentView = messages.ViewDetail
		return a, a.detailView.Load(msg.ID)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTimeline:
		a.timelineView, cmd = a.timelineView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		// Help view is static.
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewTimeline:
		return a.timelineView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Enter search query
  enter       Submit search
  n           New search
  esc         Back to Menu

Timeline:
  j/k, ↑/↓    Navigate fragments
  [/]         Previous / next page
  r           Reload
  enter       Open fragment

Fragment:
  x, space    Expand decisions and assumptions
  e           Edit project, topics, summary
  l           Link to another fragment
  esc         Back

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected search result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.timelineView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
