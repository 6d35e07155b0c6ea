package search

import (
	"apiscout/internal/domain"
	"apiscout/internal/match"
)

// Phase is the search view state
type Phase int

const (
	// Idle shows the normal navigation and no results
	Idle Phase = iota
	// Results shows the matched endpoints
	Results
	// NoResults shows the "no results" indicator
	NoResults
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Results:
		return "results"
	case NoResults:
		return "no-results"
	}
	return "unknown"
}

// State is a snapshot of the controller
type State struct {
	Query        string // raw input as last typed
	Phase        Phase
	HasPending   bool
	PendingQuery string // trimmed query the armed dispatch will run
}

// Entry is one displayed result
type Entry struct {
	Label    string // "METHOD path"
	Target   string // documentation page for the endpoint
	Endpoint domain.Endpoint
	Score    float64
}

// View is what the renderer draws for the current phase
type View struct {
	Phase Phase

	// Query is the trimmed query the entries answer, "" when idle
	Query string

	// ShowNavigation is true when the normal navigation should be visible
	ShowNavigation bool

	// Entries holds at most the configured number of results
	Entries []Entry

	// Total is the number of matches before the display cap
	Total int

	// ClearInput asks the renderer to empty the input field
	ClearInput bool
}

// Renderer draws controller views
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer
type RenderFunc func(View)

// Render calls f(v)
func (f RenderFunc) Render(v View) {
	f(v)
}

// RecordSource provides the endpoint collection to index
type RecordSource interface {
	Endpoints() []domain.Endpoint
}

// Records is a fixed in-memory RecordSource
type Records []domain.Endpoint

// Endpoints returns r
func (r Records) Endpoints() []domain.Endpoint {
	return r
}

// Searcher queries a built index
type Searcher interface {
	Search(query string) []match.Result
}

// IndexBuilder builds a Searcher over a record collection
type IndexBuilder func(records []domain.Endpoint) Searcher

// EngineBuilder returns an IndexBuilder backed by the match engine
func EngineBuilder(opts match.Options) IndexBuilder {
	return func(records []domain.Endpoint) Searcher {
		return match.Build(records, opts)
	}
}

// VersionScope decides which version-tagged records are searchable
type VersionScope interface {
	Current() string
	Visible(regionVersion string) bool
}

// Entries converts ranked results into display entries, keeping at most limit.
// A limit of 0 or less keeps everything.
func Entries(results []match.Result, limit int) []Entry {
	n := len(results)
	if limit > 0 && n > limit {
		n = limit
	}

	entries := make([]Entry, 0, n)
	for _, r := range results[:n] {
		entries = append(entries, Entry{
			Label:    r.Endpoint.Label(),
			Target:   TargetURL(r.Endpoint.Method, r.Endpoint.Path),
			Endpoint: r.Endpoint,
			Score:    r.Score,
		})
	}
	return entries
}
