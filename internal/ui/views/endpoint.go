package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"apiscout/internal/domain"
)

// methodWidth fits the longest verb, OPTIONS
const methodWidth = 7

// EndpointRenderer handles rendering of endpoint lines
type EndpointRenderer struct {
	styles      *Styles
	showTargets bool
}

// NewEndpointRenderer creates a new endpoint renderer
func NewEndpointRenderer(styles *Styles, showTargets bool) *EndpointRenderer {
	return &EndpointRenderer{
		styles:      styles,
		showTargets: showTargets,
	}
}

// RenderEndpoint renders one endpoint line: method badge, path with the
// query's matched characters highlighted, and optionally the page target.
func (r *EndpointRenderer) RenderEndpoint(e domain.Endpoint, target string, query string,
	isSelected bool, indent int, width int) string {

	bg := lipgloss.NewStyle()
	if isSelected {
		bg = r.styles.SelectionBg
	}

	badge := lipgloss.NewStyle().
		Bold(true).
		Width(methodWidth).
		Foreground(lipgloss.Color(MethodColor(e.Method))).
		Inherit(bg).
		Render(strings.ToUpper(e.Method))

	normal := bg
	if e.Deprecated {
		normal = r.styles.Deprecated.Inherit(bg)
	}
	path := highlightMatches(e.Path, query, r.styles.Highlight.Inherit(bg), normal)

	var parts []string
	if indent > 0 {
		parts = append(parts, bg.Render(strings.Repeat("  ", indent)))
	}
	parts = append(parts, badge, bg.Render(" "), path)

	if e.Summary != "" {
		parts = append(parts, bg.Render("  "), r.styles.Dim.Inherit(bg).Render(e.Summary))
	}
	if r.showTargets && target != "" {
		parts = append(parts, bg.Render("  "), r.styles.Target.Inherit(bg).Render("→ "+target))
	}

	line := strings.Join(parts, "")

	// Pad the selected line to full width
	if isSelected && width > 0 {
		if lineLen := lipgloss.Width(line); lineLen < width {
			line += bg.Render(strings.Repeat(" ", width-lineLen))
		}
	}
	return line
}

// highlightMatches styles the characters of text that fuzzily match query.
// Spaces in the query are ignored since paths never contain them.
func highlightMatches(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	pattern := strings.ReplaceAll(strings.ToLower(query), " ", "")
	if pattern == "" {
		return normalStyle.Render(text)
	}

	matches := fuzzy.Find(pattern, []string{strings.ToLower(text)})
	if len(matches) == 0 {
		return normalStyle.Render(text)
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, ch := range text {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(ch)))
		} else {
			b.WriteString(normalStyle.Render(string(ch)))
		}
	}
	return b.String()
}
