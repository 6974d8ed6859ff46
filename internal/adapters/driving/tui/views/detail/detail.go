// Package detail provides the fragment detail view for the TUI: the
// hydrated fragment, its linked neighbours, and inline metadata
// editing and link creation.
package detail

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/components/input"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/components/status"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/keymap"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/messages"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/tui/styles"
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// mode is the view's interaction mode.
type mode int

const (
	// modeView is plain navigation over the loaded fragment.
	modeView mode = iota
	// modeEdit walks the metadata editor: project, topics, summary.
	modeEdit
	// modeLink walks the link creator: target, type, strength.
	modeLink
)

// Editor steps.
const (
	editProject = iota
	editTopics
	editSummary
)

// Link creator steps.
const (
	linkTarget = iota
	linkType
	linkStrength
)

// relatedLimit caps the neighbour list.
const relatedLimit = 20

// View shows one fragment in full.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	input     *input.TextInput

	fragmentService driving.FragmentService
	linkService     driving.LinkService
	ctx             context.Context

	fragment *domain.Fragment
	related  []driving.RelatedFragment
	err      error

	mode     mode
	expanded bool

	// Editor state.
	editStep int
	pending  domain.FragmentUpdate

	// Link creator state.
	linkStep     int
	linkTargetID string
	linkTypeIdx  int

	width  int
	height int
	ready  bool
}

// linkTypes is the selection order in the link creator.
var linkTypes = []domain.LinkType{
	domain.LinkRelatesTo,
	domain.LinkReferences,
	domain.LinkFollows,
	domain.LinkContradicts,
	domain.LinkInvalidates,
}

// NewView creates a new detail view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	fragmentService driving.FragmentService,
	linkService driving.LinkService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:          s,
		keymap:          km,
		statusbar:       status.NewBar(s, km),
		input:           input.NewTextInput(s, "Project: ", ""),
		fragmentService: fragmentService,
		linkService:     linkService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
	v.statusbar.SetState(status.StateDetail)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load fetches the fragment and its neighbours.
func (v *View) Load(id string) tea.Cmd {
	v.mode = modeView
	v.expanded = false
	v.err = nil
	v.statusbar.SetState(status.StateLoading)

	loadFragment := func() tea.Msg {
		fragment, err := v.fragmentService.Get(v.ctx, id)
		return messages.FragmentLoaded{Fragment: fragment, Err: err}
	}
	loadRelated := func() tea.Msg {
		related, err := v.fragmentService.Related(v.ctx, id, nil, relatedLimit)
		return messages.RelatedLoaded{FragmentID: id, Related: related, Err: err}
	}
	return tea.Batch(loadFragment, loadRelated)
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FragmentLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.fragment = msg.Fragment
		v.statusbar.SetState(status.StateDetail)
		v.statusbar.SetMessage("Fragment " + shortID(msg.Fragment.ID))
		return v, nil

	case messages.RelatedLoaded:
		if v.fragment == nil || msg.FragmentID != v.fragment.ID {
			return v, nil
		}
		if msg.Err == nil {
			v.related = msg.Related
		}
		return v, nil

	case messages.FragmentUpdated:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.fragment = msg.Fragment
		v.statusbar.SetState(status.StateDetail)
		v.statusbar.SetMessage("Saved")
		return v, nil

	case messages.LinkCreated:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.statusbar.SetState(status.StateDetail)
		v.statusbar.SetMessage("Linked to " + shortID(msg.Link.TargetID))
		// Refresh the neighbour list to include the new edge.
		if v.fragment != nil {
			id := v.fragment.ID
			return v, func() tea.Msg {
				related, err := v.fragmentService.Related(v.ctx, id, nil, relatedLimit)
				return messages.RelatedLoaded{FragmentID: id, Related: related, Err: err}
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modeEdit:
		return v.handleEditKey(msg)
	case modeLink:
		return v.handleLinkKey(msg)
	case modeView:
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewTimeline}
		}
	}

	switch msg.String() {
	case "x", " ":
		v.expanded = !v.expanded
	case "e":
		if v.fragment != nil {
			v.beginEdit()
		}
	case "l":
		if v.fragment != nil {
			v.beginLink()
		}
	}

	return v, nil
}

// beginEdit enters the metadata editor at the first step, prefilled
// with current values.
func (v *View) beginEdit() {
	v.mode = modeEdit
	v.editStep = editProject
	v.pending = domain.FragmentUpdate{}

	v.input.SetLabel("Project: ")
	v.input.SetValue(strDeref(v.fragment.Project))
	v.input.Focus()
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.mode = modeView
		v.statusbar.SetMessage("Edit cancelled")
		return v, nil
	}

	if msg.Type != tea.KeyEnter {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Enter advances the editor one step.
	value := strings.TrimSpace(v.input.Value())

	switch v.editStep {
	case editProject:
		project := value
		v.pending.Project = &project
		v.editStep = editTopics
		v.input.SetLabel("Topics: ")
		v.input.SetValue(strings.Join(v.fragment.Topics, ", "))
		return v, nil

	case editTopics:
		v.pending.Topics = splitTopics(value)
		v.editStep = editSummary
		v.input.SetLabel("Summary: ")
		v.input.SetValue(strDeref(v.fragment.Summary))
		return v, nil

	case editSummary:
		summary := value
		v.pending.Summary = &summary
		v.mode = modeView
		return v, v.submitEdit()
	}

	return v, nil
}

func (v *View) submitEdit() tea.Cmd {
	id := v.fragment.ID
	update := v.pending
	return func() tea.Msg {
		fragment, err := v.fragmentService.Update(v.ctx, id, update)
		return messages.FragmentUpdated{Fragment: fragment, Err: err}
	}
}

// beginLink enters the link creator at the target step.
func (v *View) beginLink() {
	v.mode = modeLink
	v.linkStep = linkTarget
	v.linkTargetID = ""
	v.linkTypeIdx = 0

	v.input.SetLabel("Link to: ")
	v.input.SetValue("")
	v.input.Focus()
}

func (v *View) handleLinkKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.mode = modeView
		v.statusbar.SetMessage("Link cancelled")
		return v, nil
	}

	switch v.linkStep {
	case linkTarget:
		if msg.Type == tea.KeyEnter {
			target := strings.TrimSpace(v.input.Value())
			if target == "" {
				return v, nil
			}
			v.linkTargetID = target
			v.linkStep = linkType
			return v, nil
		}
		v.input, _ = v.input.Update(msg)
		return v, nil

	case linkType:
		switch msg.String() {
		case "up", "k":
			if v.linkTypeIdx > 0 {
				v.linkTypeIdx--
			}
		case "down", "j":
			if v.linkTypeIdx < len(linkTypes)-1 {
				v.linkTypeIdx++
			}
		case "enter":
			v.linkStep = linkStrength
			v.input.SetLabel("Strength: ")
			v.input.SetValue(fmt.Sprintf("%.1f", domain.DefaultLinkStrength))
		}
		return v, nil

	case linkStrength:
		if msg.Type == tea.KeyEnter {
			strength, err := strconv.ParseFloat(strings.TrimSpace(v.input.Value()), 64)
			if err != nil {
				v.statusbar.SetState(status.StateError)
				v.statusbar.SetMessage("strength must be a number in [0, 1]")
				return v, nil
			}
			v.mode = modeView
			return v, v.submitLink(strength)
		}
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	return v, nil
}

func (v *View) submitLink(strength float64) tea.Cmd {
	req := driving.LinkRequest{
		SourceID: v.fragment.ID,
		TargetID: v.linkTargetID,
		LinkType: linkTypes[v.linkTypeIdx],
		Strength: &strength,
	}
	return func() tea.Msg {
		link, err := v.linkService.AddLink(v.ctx, req)
		return messages.LinkCreated{Link: link, Err: err}
	}
}

// View renders the detail view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.fragment == nil {
		if v.err != nil {
			return v.styles.Error.Render("Error: " + v.err.Error())
		}
		return v.styles.Muted.Render("Loading fragment...")
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.renderHeader(), "")
	sections = append(sections, v.styles.Normal.Render(v.fragment.Content), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.expanded {
		sections = append(sections, v.renderDecisions())
		sections = append(sections, v.renderAssumptions())
	} else if len(v.fragment.Decisions) > 0 || len(v.fragment.Assumptions) > 0 {
		hint := fmt.Sprintf("[x] expand %d decisions, %d assumptions",
			len(v.fragment.Decisions), len(v.fragment.Assumptions))
		sections = append(sections, v.styles.Help.Render(hint), "")
	}

	sections = append(sections, v.renderRelated())

	switch v.mode {
	case modeEdit:
		sections = append(sections, "", v.input.View())
	case modeLink:
		sections = append(sections, "", v.renderLinkCreator())
	case modeView:
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHeader() string {
	f := v.fragment

	head := fmt.Sprintf("%s %s  %s",
		f.SourceType.Icon(),
		shortID(f.ID),
		f.CapturedAt.Local().Format("2006-01-02 15:04"),
	)
	lines := []string{v.styles.Title.Render(head)}

	meta := make([]string, 0, 3)
	if f.Project != nil && *f.Project != "" {
		meta = append(meta, *f.Project)
	}
	if len(f.Topics) > 0 {
		meta = append(meta, strings.Join(f.Topics, ", "))
	}
	if f.Summary != nil && *f.Summary != "" {
		meta = append(meta, *f.Summary)
	}
	if len(meta) > 0 {
		lines = append(lines, v.styles.Muted.Render(strings.Join(meta, "  ·  ")))
	}

	return strings.Join(lines, "\n")
}

func (v *View) renderDecisions() string {
	if len(v.fragment.Decisions) == 0 {
		return ""
	}

	lines := []string{v.styles.Subtitle.Render("Decisions")}
	for _, d := range v.fragment.Decisions {
		lines = append(lines, v.styles.Normal.Render("  - "+d.What))
		if d.Why != "" {
			lines = append(lines, v.styles.Muted.Render("    why: "+d.Why))
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (v *View) renderAssumptions() string {
	if len(v.fragment.Assumptions) == 0 {
		return ""
	}

	lines := []string{v.styles.Subtitle.Render("Assumptions")}
	for _, a := range v.fragment.Assumptions {
		validity := a.Validity()
		style := v.styles.ForValidity(validity == domain.ValidityValid, validity == domain.ValidityInvalid)
		lines = append(lines, style.Render(fmt.Sprintf("  [%s] ", validity.Label()))+v.styles.Normal.Render(a.Statement))
		if a.InvalidatedBy != nil {
			lines = append(lines, v.styles.Muted.Render("    invalidated by "+shortID(*a.InvalidatedBy)))
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (v *View) renderRelated() string {
	if len(v.related) == 0 {
		return v.styles.Muted.Render("No linked fragments")
	}

	lines := []string{v.styles.Subtitle.Render(fmt.Sprintf("Linked (%d)", len(v.related)))}
	for _, r := range v.related {
		head := fmt.Sprintf("  %s %s (%.2f)  %s",
			r.LinkType.Icon(), r.LinkType.Label(), r.Strength, shortID(r.Fragment.ID))
		lines = append(lines, v.styles.Normal.Render(head))
		lines = append(lines, v.styles.Muted.Render("      "+preview(r.Fragment.Content, v.width-10)))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderLinkCreator() string {
	switch v.linkStep {
	case linkTarget, linkStrength:
		return v.input.View()
	case linkType:
		lines := []string{v.styles.Subtitle.Render("Link type:")}
		for i, lt := range linkTypes {
			cursor := "  "
			style := v.styles.Normal
			if i == v.linkTypeIdx {
				cursor = "> "
				style = v.styles.Selected
			}
			lines = append(lines, cursor+style.Render(lt.Label()))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Fragment returns the loaded fragment, or nil.
func (v *View) Fragment() *domain.Fragment {
	return v.fragment
}

// Related returns the loaded neighbour list.
func (v *View) Related() []driving.RelatedFragment {
	return v.related
}

// Expanded returns whether decisions/assumptions are shown.
func (v *View) Expanded() bool {
	return v.expanded
}

// Editing returns true while the metadata editor is open.
func (v *View) Editing() bool {
	return v.mode == modeEdit
}

// Linking returns true while the link creator is open.
func (v *View) Linking() bool {
	return v.mode == modeLink
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func preview(content string, maxLen int) string {
	if maxLen < 20 {
		maxLen = 20
	}
	flat := strings.Join(strings.Fields(content), " ")
	return domain.Truncate(flat, maxLen)
}

// splitTopics parses a comma separated topic list, dropping empties.
func splitTopics(s string) []string {
	parts := strings.Split(s, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
