package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiscout/internal/domain"
	"apiscout/internal/search"
)

func TestGroupByTag(t *testing.T) {
	endpoints := []domain.Endpoint{
		{Method: "GET", Path: "/health"},
		{Method: "GET", Path: "/users", Tags: []string{"users"}},
		{Method: "GET", Path: "/accounts", Tags: []string{"accounts", "users"}},
		{Method: "POST", Path: "/users", Tags: []string{"users"}},
	}

	groups := GroupByTag(endpoints)
	require.Len(t, groups, 3)
	assert.Equal(t, "users", groups[0].Name)
	assert.Len(t, groups[0].Endpoints, 2)
	assert.Equal(t, "accounts", groups[1].Name)
	assert.Equal(t, UntaggedGroupName, groups[2].Name)

	flat := Flatten(groups)
	require.Len(t, flat, 4)
	assert.Equal(t, "/users", flat[0].Path)
	assert.Equal(t, "/health", flat[3].Path)
}

func TestGroupByTagEmpty(t *testing.T) {
	assert.Empty(t, GroupByTag(nil))
	assert.Empty(t, Flatten(nil))
}

func TestHighlightMatchesKeepsText(t *testing.T) {
	plain := lipgloss.NewStyle()
	for _, query := range []string{"", "usr", "get user", "zzz"} {
		out := highlightMatches("/users/{id}", query, plain, plain)
		assert.Equal(t, "/users/{id}", out, "query %q", query)
	}
}

func TestRenderPhases(t *testing.T) {
	r := NewRenderer(true)
	entry := search.Entry{
		Label:    "GET /users/{id}",
		Target:   "get_users_id.html",
		Endpoint: domain.Endpoint{Method: "GET", Path: "/users/{id}", Summary: "Get user"},
	}
	base := ViewState{Width: 100, Height: 30, VersionLabel: "2.x", ViewportHeight: 20}

	idle := base
	idle.Groups = GroupByTag([]domain.Endpoint{entry.Endpoint})
	out := r.Render(idle)
	assert.Contains(t, out, "apiscout")
	assert.Contains(t, out, "[2.x]")
	assert.Contains(t, out, "untagged")

	results := base
	results.Phase = search.Results
	results.Query = "get user"
	results.Entries = []search.Entry{entry}
	results.Total = 12
	out = r.Render(results)
	assert.Contains(t, out, "get_users_id.html")
	assert.Contains(t, out, "1 of 12")

	none := base
	none.Phase = search.NoResults
	none.Query = "zzz"
	assert.Contains(t, r.Render(none), `No endpoints match "zzz"`)

	disabled := base
	disabled.Disabled = true
	assert.Contains(t, r.Render(disabled), "search unavailable")
}

func TestRenderNavigationScrolls(t *testing.T) {
	r := NewRenderer(false)

	var endpoints []domain.Endpoint
	for _, p := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		endpoints = append(endpoints, domain.Endpoint{Method: "GET", Path: "/" + p, Tags: []string{"x"}})
	}

	out := r.Render(ViewState{
		Width:          80,
		Height:         40,
		Groups:         GroupByTag(endpoints),
		SelectedIndex:  7,
		ViewportHeight: 4,
	})
	assert.Contains(t, out, "more above")
	assert.True(t, strings.Contains(out, "/h"))
}

func TestRenderDetail(t *testing.T) {
	r := NewRenderer(true)
	out := r.Detail(search.Entry{
		Target: "get_users_id.html",
		Endpoint: domain.Endpoint{
			Method:      "GET",
			Path:        "/users/{id}",
			Summary:     "Get user",
			Description: strings.Repeat("word ", 40),
			Tags:        []string{"users"},
		},
	}, 40)

	assert.Contains(t, out, "get_users_id.html")
	assert.Contains(t, out, "Get user")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "word") {
			assert.LessOrEqual(t, lipgloss.Width(line), 40)
		}
	}
}

func TestRenderDetailBodyAndResponses(t *testing.T) {
	r := NewRenderer(true)
	out := r.Detail(search.Entry{
		Target: "post_users.html",
		Endpoint: domain.Endpoint{
			Method: "POST",
			Path:   "/users",
			RequestBody: &domain.RequestBody{
				Description:  "The user to create",
				Required:     true,
				ContentTypes: []string{"application/json"},
			},
			Responses: []domain.Response{
				{Status: "201", Description: "Created", ContentTypes: []string{"application/json"}},
				{Status: "400", Description: "Invalid user"},
			},
		},
	}, 80)

	assert.Contains(t, out, "Request body (required)")
	assert.Contains(t, out, "The user to create")
	assert.Contains(t, out, "application/json")
	assert.Contains(t, out, "Responses")
	assert.Contains(t, out, "201 Created")
	assert.Contains(t, out, "400 Invalid user")
	assert.Less(t, strings.Index(out, "201"), strings.Index(out, "400"))

	plain := r.Detail(search.Entry{Endpoint: domain.Endpoint{Method: "GET", Path: "/health"}}, 80)
	assert.NotContains(t, plain, "Request body")
	assert.NotContains(t, plain, "Responses")
}
