// Package catalog builds the immutable endpoint collection searched during a session.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"apiscout/internal/domain"
	"apiscout/internal/openapi"
)

var (
	// ErrNoSources is returned when Load is given nothing to load
	ErrNoSources = errors.New("no OpenAPI sources configured")
	// ErrDuplicateVersion is returned when two sources share a version id
	ErrDuplicateVersion = errors.New("duplicate version")
	// ErrMissingVersion is returned when one of several sources has no version id
	ErrMissingVersion = errors.New("missing version")
	// ErrMultipleDefaults is returned when more than one source is marked default
	ErrMultipleDefaults = errors.New("more than one default version")
)

// Source is one OpenAPI document loaded as one API version
type Source struct {
	Version string
	Path    string
	Label   string
	Default bool
}

type versionEntry struct {
	id        string
	label     string
	endpoints []domain.Endpoint
}

// Catalog holds every loaded version's endpoints. It is not modified after Load.
type Catalog struct {
	versions       map[string]*versionEntry
	defaultVersion string
	combined       []domain.Endpoint
}

// Load parses every source and tags its endpoints with the source's version.
// The first source is the default unless another is marked Default.
func Load(sources []Source) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	defaults := 0
	for _, src := range sources {
		if src.Version == "" && len(sources) > 1 {
			return nil, fmt.Errorf("%w: %s", ErrMissingVersion, src.Path)
		}
		if src.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return nil, ErrMultipleDefaults
	}

	c := &Catalog{versions: make(map[string]*versionEntry)}
	for _, src := range sources {
		doc, err := openapi.ParseFile(src.Path)
		if err != nil {
			return nil, err
		}

		id := src.Version
		if id == "" && len(sources) == 1 {
			id = doc.Info.Version
		}

		endpoints, err := doc.Endpoints()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}

		if err := c.add(id, src.Label, src.Default, endpoints); err != nil {
			return nil, err
		}
	}

	c.combine()
	return c, nil
}

// New builds a catalog from already-decoded endpoints keyed by version id.
// When defaultVersion is not a key, the lowest id becomes the default.
func New(defaultVersion string, byVersion map[string][]domain.Endpoint) (*Catalog, error) {
	if len(byVersion) == 0 {
		return nil, ErrNoSources
	}

	c := &Catalog{versions: make(map[string]*versionEntry)}
	ids := make([]string, 0, len(byVersion))
	for id := range byVersion {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := c.add(id, "", id == defaultVersion, byVersion[id]); err != nil {
			return nil, err
		}
	}

	c.combine()
	return c, nil
}

func (c *Catalog) add(id, label string, isDefault bool, endpoints []domain.Endpoint) error {
	if _, exists := c.versions[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVersion, id)
	}
	if label == "" {
		label = id
	}

	tagged := make([]domain.Endpoint, len(endpoints))
	for i, e := range endpoints {
		e.Version = id
		tagged[i] = e
	}

	c.versions[id] = &versionEntry{id: id, label: label, endpoints: tagged}
	if (c.defaultVersion == "" && len(c.versions) == 1) || isDefault {
		c.defaultVersion = id
	}
	return nil
}

// combine orders endpoints default version first, then the rest descending
func (c *Catalog) combine() {
	c.combined = nil
	if def, ok := c.versions[c.defaultVersion]; ok {
		c.combined = append(c.combined, def.endpoints...)
	}
	for _, id := range c.sortedIDs(true) {
		if id != c.defaultVersion {
			c.combined = append(c.combined, c.versions[id].endpoints...)
		}
	}
}

func (c *Catalog) sortedIDs(descending bool) []string {
	ids := make([]string, 0, len(c.versions))
	for id := range c.versions {
		ids = append(ids, id)
	}
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	} else {
		sort.Strings(ids)
	}
	return ids
}

// Endpoints returns the combined record collection.
// Callers must treat the slice as read-only.
func (c *Catalog) Endpoints() []domain.Endpoint {
	return c.combined
}

// ForVersion returns the endpoints of a single version
func (c *Catalog) ForVersion(id string) []domain.Endpoint {
	if v, ok := c.versions[id]; ok {
		return v.endpoints
	}
	return nil
}

// Default returns the default version id
func (c *Catalog) Default() string {
	return c.defaultVersion
}

// Len returns the total number of endpoints across versions
func (c *Catalog) Len() int {
	return len(c.combined)
}

// Versions returns version descriptors sorted by id, newest first
func (c *Catalog) Versions() []domain.Version {
	ids := c.sortedIDs(true)
	out := make([]domain.Version, 0, len(ids))
	for _, id := range ids {
		v := c.versions[id]
		out = append(out, domain.Version{
			ID:            v.id,
			Label:         v.label,
			IsDefault:     v.id == c.defaultVersion,
			EndpointCount: len(v.endpoints),
		})
	}
	return out
}

// VersionDiff lists what a version changed relative to the previous one
type VersionDiff struct {
	Version  string
	Previous string
	Count    int
	Added    []string
	Removed  []string
}

// Compare walks versions in ascending order and reports added and removed
// "METHOD path" keys against each predecessor. Nil when fewer than two versions.
func (c *Catalog) Compare() []VersionDiff {
	if len(c.versions) < 2 {
		return nil
	}

	ids := c.sortedIDs(false)
	diffs := make([]VersionDiff, 0, len(ids))
	var prevKeys map[string]bool
	for i, id := range ids {
		keys := make(map[string]bool)
		for _, e := range c.versions[id].endpoints {
			keys[e.Key()] = true
		}

		diff := VersionDiff{Version: id, Count: len(c.versions[id].endpoints)}
		if i > 0 {
			diff.Previous = ids[i-1]
			diff.Added = setDifference(keys, prevKeys)
			diff.Removed = setDifference(prevKeys, keys)
		}
		diffs = append(diffs, diff)
		prevKeys = keys
	}
	return diffs
}

func setDifference(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
