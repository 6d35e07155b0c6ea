package ui

import (
	"apiscout/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// dispatchMsg carries an expired debounce callback onto the update loop
type dispatchMsg struct {
	fn func()
}

// detailPagerMsg contains the result of an endpoint pager command
type detailPagerMsg struct {
	target string
	err    error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
