package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded    EventType = "CatalogLoaded"
	EventVersionChanged   EventType = "VersionChanged"
	EventSearchDispatched EventType = "SearchDispatched"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchCleared    EventType = "SearchCleared"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted once the endpoint catalog has been built
type CatalogLoadedEvent struct {
	Versions  []Version
	Endpoints int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// VersionChangedEvent is emitted when the active API version changes
type VersionChangedEvent struct {
	Previous string
	Version  string
}

func (e VersionChangedEvent) Type() EventType { return EventVersionChanged }

// SearchDispatchedEvent is emitted when a debounced query reaches the match engine
type SearchDispatchedEvent struct {
	Query string
}

func (e SearchDispatchedEvent) Type() EventType { return EventSearchDispatched }

// SearchCompletedEvent is emitted after a dispatch has been classified and rendered
type SearchCompletedEvent struct {
	Query string
	Phase string
	Shown int // results after the display cap
	Total int // results within the acceptance threshold
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchClearedEvent is emitted when the controller returns to idle
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Specs int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
