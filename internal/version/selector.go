// Package version tracks the active API version and answers whether
// version-tagged content is visible under it.
package version

import (
	"errors"
	"fmt"
	"sync"

	"apiscout/internal/domain"
	"apiscout/internal/eventbus"
)

// ErrUnknownVersion is returned by Set for ids that were never loaded
var ErrUnknownVersion = errors.New("unknown version")

// Selector holds the active version. Changes are announced on the bus.
type Selector struct {
	mu       sync.RWMutex
	versions []domain.Version
	current  string
	bus      eventbus.EventBus
}

// NewSelector creates a selector starting at defaultID, or at the first
// version when defaultID is empty or unknown. bus may be nil.
func NewSelector(versions []domain.Version, defaultID string, bus eventbus.EventBus) *Selector {
	s := &Selector{
		versions: append([]domain.Version(nil), versions...),
		bus:      bus,
	}
	if s.has(defaultID) {
		s.current = defaultID
	} else if len(versions) > 0 {
		s.current = versions[0].ID
	}
	return s
}

func (s *Selector) has(id string) bool {
	for _, v := range s.versions {
		if v.ID == id {
			return true
		}
	}
	return false
}

// Current returns the active version id
func (s *Selector) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentLabel returns the display label of the active version
func (s *Selector) CurrentLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.versions {
		if v.ID == s.current {
			return v.Label
		}
	}
	return s.current
}

// Versions returns the selectable versions
func (s *Selector) Versions() []domain.Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Version(nil), s.versions...)
}

// Set makes id the active version
func (s *Selector) Set(id string) error {
	s.mu.Lock()
	if !s.has(id) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownVersion, id)
	}
	prev := s.current
	s.current = id
	s.mu.Unlock()

	if prev != id && s.bus != nil {
		s.bus.Publish(eventbus.VersionChangedEvent{Previous: prev, Version: id})
	}
	return nil
}

// Next advances to the following version, wrapping around, and returns it
func (s *Selector) Next() string {
	s.mu.RLock()
	if len(s.versions) < 2 {
		cur := s.current
		s.mu.RUnlock()
		return cur
	}
	next := s.versions[0].ID
	for i, v := range s.versions {
		if v.ID == s.current {
			next = s.versions[(i+1)%len(s.versions)].ID
			break
		}
	}
	s.mu.RUnlock()

	_ = s.Set(next)
	return next
}

// Visible reports whether content tagged with regionVersion is shown under
// the active version. Untagged content is always visible.
func (s *Selector) Visible(regionVersion string) bool {
	if regionVersion == "" {
		return true
	}
	return regionVersion == s.Current()
}
