// Package match implements approximate multi-field matching of endpoint records.
//
// Every searchable field of a record (path, method, summary, description and
// each tag) is scored independently against the query. A field score is a
// badness value in [0, 1]: 0 is an exact match, 1 means no useful similarity.
// Field scores are then weighted by field importance and the record keeps its
// best (lowest) weighted score. Records whose best score exceeds the
// acceptance threshold are not returned at all.
//
// # Field scoring
//
// The query is aligned against the best-matching substring of the field with
// an optimal-string-alignment edit distance, so typos, dropped characters and
// swapped neighbours cost one error each. The error rate is the base score,
// plus a proximity term for matches far from the start of the field and a
// small coverage term so a field equal to the query beats a field that merely
// contains it. Queries that appear in the field as a scattered subsequence
// (abbreviations such as "usrid") get a floor score through the subsequence
// rank instead.
//
// # Usage
//
//	idx := match.Build(endpoints, match.DefaultOptions())
//	for _, r := range idx.Search("get user") {
//	    fmt.Printf("%s %.3f\n", r.Endpoint.Label(), r.Score)
//	}
//
// An Index is read-only after Build and safe for concurrent use.
package match

import (
	"slices"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"apiscout/internal/domain"
)

// Field identifies which part of a record produced a score
type Field int

const (
	FieldPath Field = iota
	FieldMethod
	FieldSummary
	FieldDescription
	FieldTag
)

func (f Field) String() string {
	switch f {
	case FieldPath:
		return "path"
	case FieldMethod:
		return "method"
	case FieldSummary:
		return "summary"
	case FieldDescription:
		return "description"
	case FieldTag:
		return "tag"
	}
	return "unknown"
}

// Weights sets field importance in (0, 1]. A weight of 0 excludes the field.
type Weights struct {
	Path        float64
	Method      float64
	Summary     float64
	Description float64
	Tag         float64
}

func (w Weights) of(f Field) float64 {
	switch f {
	case FieldPath:
		return w.Path
	case FieldMethod:
		return w.Method
	case FieldSummary:
		return w.Summary
	case FieldDescription:
		return w.Description
	case FieldTag:
		return w.Tag
	}
	return 0
}

// Options configures index construction and scoring.
type Options struct {
	// Threshold is the highest weighted score still accepted as a match.
	Threshold float64

	// Weights scales each field's score. Lower weight means a field needs
	// a closer match to compete with primary fields.
	Weights Weights

	// FieldPenalty is added per unit of missing weight, so an exact match
	// in a context field never ties an exact match in a primary field.
	FieldPenalty float64

	// Distance normalises the proximity penalty: a match starting Distance
	// runes into the field costs a full score point.
	Distance int

	// CacheSize is the number of query results kept per index.
	// Set to 0 to disable caching.
	CacheSize int
}

// DefaultOptions returns the fixed scoring policy used by apiscout.
func DefaultOptions() Options {
	return Options{
		Threshold: 0.3,
		Weights: Weights{
			Path:        1.0,
			Method:      1.0,
			Summary:     0.8,
			Description: 0.6,
			Tag:         0.7,
		},
		FieldPenalty: 0.1,
		Distance:     100,
		CacheSize:    128,
	}
}

// Result is one accepted record.
type Result struct {
	// Endpoint is the matched record.
	Endpoint domain.Endpoint

	// Score is the record's best weighted field score (lower is better).
	Score float64

	// Field is the field that produced Score.
	Field Field

	// Position is the record's index in the collection given to Build.
	Position int
}

type fieldText struct {
	field Field
	text  string
	runes []rune
}

type entry struct {
	endpoint domain.Endpoint
	fields   []fieldText
}

// Index is a read-only search structure over a fixed record collection.
type Index struct {
	entries []entry
	opts    Options
	cache   *lru.Cache[string, []Result]
}

// Build indexes records. An empty collection yields an index for which
// every query returns no results.
func Build(records []domain.Endpoint, opts Options) *Index {
	idx := &Index{
		entries: make([]entry, 0, len(records)),
		opts:    opts,
	}

	if opts.CacheSize > 0 {
		// lru.New only fails for non-positive sizes
		idx.cache, _ = lru.New[string, []Result](opts.CacheSize)
	}

	for _, rec := range records {
		e := entry{endpoint: rec}
		e.fields = appendField(e.fields, FieldPath, rec.Path)
		e.fields = appendField(e.fields, FieldMethod, rec.Method)
		e.fields = appendField(e.fields, FieldSummary, rec.Summary)
		e.fields = appendField(e.fields, FieldDescription, rec.Description)
		for _, tag := range rec.Tags {
			e.fields = appendField(e.fields, FieldTag, tag)
		}
		idx.entries = append(idx.entries, e)
	}

	return idx
}

// appendField keeps missing fields as empty text; they simply never match.
func appendField(fields []fieldText, f Field, raw string) []fieldText {
	text := strings.ToLower(raw)
	return append(fields, fieldText{field: f, text: text, runes: []rune(text)})
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Empty reports whether the index has no records.
func (idx *Index) Empty() bool {
	return len(idx.entries) == 0
}

// Search returns every record whose weighted score is within the threshold,
// ordered by ascending score. Ties keep collection order.
func (idx *Index) Search(query string) []Result {
	q := normalizeQuery(query)
	if q == "" || idx.Empty() {
		return nil
	}

	if idx.cache != nil {
		if cached, ok := idx.cache.Get(q); ok {
			return slices.Clone(cached)
		}
	}

	pattern := []rune(q)
	results := make([]Result, 0)
	for pos, e := range idx.entries {
		best, bestField := 1.0, FieldPath
		for _, ft := range e.fields {
			w := idx.opts.Weights.of(ft.field)
			if w <= 0 {
				continue
			}

			s := weighted(scoreField(q, pattern, ft.text, ft.runes, idx.opts.Distance), w, idx.opts.FieldPenalty)
			if s < best {
				best, bestField = s, ft.field
			}
			if best == 0 {
				break
			}
		}

		if best <= idx.opts.Threshold {
			results = append(results, Result{
				Endpoint: e.endpoint,
				Score:    best,
				Field:    bestField,
				Position: pos,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if idx.cache != nil {
		idx.cache.Add(q, results)
	}

	return slices.Clone(results)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func weighted(score, weight, penalty float64) float64 {
	s := score/weight + (1-weight)*penalty
	if s > 1 {
		return 1
	}
	return s
}
