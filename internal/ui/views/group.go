package views

import (
	"fmt"

	"apiscout/internal/domain"
)

// UntaggedGroupName holds endpoints without tags in the navigation listing
const UntaggedGroupName = "untagged"

// TagGroup is a navigation section: endpoints sharing a primary tag
type TagGroup struct {
	Name      string
	Endpoints []domain.Endpoint
}

// GroupByTag groups endpoints by primary tag in order of first appearance.
// Untagged endpoints come last.
func GroupByTag(endpoints []domain.Endpoint) []TagGroup {
	var groups []TagGroup
	index := make(map[string]int)
	var untagged []domain.Endpoint

	for _, e := range endpoints {
		tag := e.PrimaryTag()
		if tag == "" {
			untagged = append(untagged, e)
			continue
		}
		i, ok := index[tag]
		if !ok {
			i = len(groups)
			index[tag] = i
			groups = append(groups, TagGroup{Name: tag})
		}
		groups[i].Endpoints = append(groups[i].Endpoints, e)
	}

	if len(untagged) > 0 {
		groups = append(groups, TagGroup{Name: UntaggedGroupName, Endpoints: untagged})
	}
	return groups
}

// Flatten returns the endpoints of groups in display order
func Flatten(groups []TagGroup) []domain.Endpoint {
	var out []domain.Endpoint
	for _, g := range groups {
		out = append(out, g.Endpoints...)
	}
	return out
}

// GroupRenderer handles rendering of group headers
type GroupRenderer struct {
	styles *Styles
}

// NewGroupRenderer creates a new group renderer
func NewGroupRenderer(styles *Styles) *GroupRenderer {
	return &GroupRenderer{
		styles: styles,
	}
}

// RenderGroupHeader renders a group header
func (g *GroupRenderer) RenderGroupHeader(group TagGroup) string {
	line := fmt.Sprintf("▼ %s (%d)", group.Name, len(group.Endpoints))
	if group.Name == UntaggedGroupName {
		return g.styles.Dim.Render(line)
	}
	return g.styles.GroupHeader.Render(line)
}
