package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"apiscout/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	VersionLabel   string
	Input          string // rendered text input
	Disabled       bool
	Phase          search.Phase
	Query          string
	Entries        []search.Entry
	Total          int
	Groups         []TagGroup
	SelectedIndex  int
	ViewportHeight int
	StatusMessage  string
	StatusIsError  bool
	HelpView       string // rendered key help
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	endpointRender *EndpointRenderer
	groupRender    *GroupRenderer
	detailRender   *DetailRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showTargets bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		endpointRender: NewEndpointRenderer(styles, showTargets),
		groupRender:    NewGroupRenderer(styles),
		detailRender:   NewDetailRenderer(styles),
	}
}

// Detail renders the pager page for an entry
func (r *Renderer) Detail(entry search.Entry, width int) string {
	return r.detailRender.RenderDetail(entry.Endpoint, entry.Target, width)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	if state.Disabled {
		content.WriteString(r.styles.Disabled.Render("search unavailable"))
	} else {
		content.WriteString(r.styles.Prompt.Render("/ "))
		content.WriteString(state.Input)
	}
	content.WriteString("\n\n")

	var mainContent string
	switch state.Phase {
	case search.Results:
		mainContent = r.renderResults(state)
	case search.NoResults:
		mainContent = r.styles.NoResults.Render(fmt.Sprintf("No endpoints match %q", state.Query))
	default:
		if len(state.Groups) == 0 {
			mainContent = r.styles.Dim.Render("No endpoints loaded.")
		} else {
			mainContent = r.renderNavigation(state)
		}
	}
	content.WriteString(mainContent)

	// Footer: status line and key help, pushed to the bottom
	var footer []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		footer = append(footer, style.Render(state.StatusMessage))
	}
	if state.HelpView != "" {
		footer = append(footer, r.styles.Help.Render(state.HelpView))
	}

	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		if paddingNeeded := availableLines - currentLines - len(footer); paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	return mainStyle.Render(content.String())
}

// renderTitle renders the logo with the active version right-aligned
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("apiscout")
	if state.VersionLabel == "" {
		return logo
	}

	right := r.styles.Version.Render(fmt.Sprintf("[%s]", state.VersionLabel))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + right
	}
	return logo + "  " + right
}

func (r *Renderer) renderResults(state ViewState) string {
	lines := make([]string, 0, len(state.Entries)+2)
	for i, entry := range state.Entries {
		lines = append(lines, r.endpointRender.RenderEndpoint(
			entry.Endpoint, entry.Target, state.Query,
			i == state.SelectedIndex, 0, state.Width-4,
		))
	}

	lines = append(lines, "")
	lines = append(lines, r.styles.Count.Render(fmt.Sprintf("%d of %d", len(state.Entries), state.Total)))
	return strings.Join(lines, "\n")
}

// renderNavigation renders the grouped endpoint listing shown while idle
func (r *Renderer) renderNavigation(state ViewState) string {
	var visibleLines []string
	currentIndex := 0
	lineIndex := 0
	selectedLine := 0

	for gi, group := range state.Groups {
		if gi > 0 {
			visibleLines = append(visibleLines, "")
			lineIndex++
		}
		visibleLines = append(visibleLines, r.groupRender.RenderGroupHeader(group))
		lineIndex++

		for _, e := range group.Endpoints {
			isSelected := currentIndex == state.SelectedIndex
			if isSelected {
				selectedLine = lineIndex
			}
			visibleLines = append(visibleLines, r.endpointRender.RenderEndpoint(
				e, "", "", isSelected, 1, state.Width-4,
			))
			currentIndex++
			lineIndex++
		}
	}

	return r.scroll(visibleLines, selectedLine, state.ViewportHeight)
}

// scroll keeps the selected line inside a window of height lines
func (r *Renderer) scroll(lines []string, selected, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	// Reserve room for the scroll indicators
	effectiveHeight := height - 2
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	offset := 0
	if selected >= effectiveHeight {
		offset = selected - effectiveHeight + 1
	}
	if maxOffset := len(lines) - effectiveHeight; offset > maxOffset {
		offset = maxOffset
	}
	end := offset + effectiveHeight

	out := make([]string, 0, height)
	if offset > 0 {
		out = append(out, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}
	out = append(out, lines[offset:end]...)
	if below := len(lines) - end; below > 0 {
		out = append(out, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(out, "\n")
}
