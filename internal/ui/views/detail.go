package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"apiscout/internal/domain"
)

// DetailRenderer builds the full endpoint page shown in the pager
type DetailRenderer struct {
	styles *Styles
}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

// RenderDetail renders an endpoint's documentation wrapped to width
func (d *DetailRenderer) RenderDetail(e domain.Endpoint, target string, width int) string {
	if width <= 0 {
		width = 80
	}

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	var b strings.Builder

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(MethodColor(e.Method))).
		Render(strings.ToUpper(e.Method))
	b.WriteString(d.styles.Title.Render(badge + " " + e.Path))
	b.WriteString("\n")
	if e.Deprecated {
		b.WriteString(d.styles.StatusError.Render("deprecated"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render(name+":"), value))
	}
	field("Operation", e.OperationID)
	field("Version", e.Version)
	field("Tags", strings.Join(e.Tags, ", "))
	field("Page", target)

	if e.Summary != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(e.Summary, width))
		b.WriteString("\n")
	}

	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(e.Description, width))
		b.WriteString("\n")
	}

	if len(e.Parameters) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Parameters"))
		b.WriteString("\n")
		for _, p := range e.Parameters {
			required := ""
			if p.Required {
				required = " (required)"
			}
			b.WriteString(fmt.Sprintf("  %s %s%s\n", keyStyle.Render(p.Name), d.styles.Dim.Render("in "+p.In), required))
			if p.Description != "" {
				for _, line := range strings.Split(wordwrap.String(p.Description, width-4), "\n") {
					b.WriteString("    " + line + "\n")
				}
			}
		}
	}

	if body := e.RequestBody; body != nil {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Request body"))
		if body.Required {
			b.WriteString(" (required)")
		}
		b.WriteString("\n")
		if body.Description != "" {
			b.WriteString(wordwrap.String(body.Description, width))
			b.WriteString("\n")
		}
		if len(body.ContentTypes) > 0 {
			b.WriteString(d.styles.Dim.Render(strings.Join(body.ContentTypes, ", ")))
			b.WriteString("\n")
		}
	}

	if len(e.Responses) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Responses"))
		b.WriteString("\n")
		for _, r := range e.Responses {
			line := fmt.Sprintf("  %s %s", keyStyle.Render(r.Status), r.Description)
			if len(r.ContentTypes) > 0 {
				line += " " + d.styles.Dim.Render("("+strings.Join(r.ContentTypes, ", ")+")")
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
