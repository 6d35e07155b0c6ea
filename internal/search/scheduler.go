package search

import "time"

// Task is a scheduled callback that can be cancelled
type Task interface {
	// Cancel guarantees the callback will not run if it has not started
	Cancel()
}

// Scheduler arms delayed callbacks for the controller. Callbacks must run on
// the same goroutine that calls the controller, and never before AfterFunc
// has returned.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// LoopScheduler delivers timer callbacks to an event loop through post.
// The callback is skipped on the loop if the task was cancelled meanwhile,
// so Cancel and the callback never race.
type LoopScheduler struct {
	post func(func())
}

// NewLoopScheduler creates a scheduler that hands expired callbacks to post.
// post must be safe to call from any goroutine.
func NewLoopScheduler(post func(func())) *LoopScheduler {
	return &LoopScheduler{post: post}
}

// AfterFunc arms fn to run on the loop after d
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Task {
	t := &loopTask{}
	t.timer = time.AfterFunc(d, func() {
		s.post(func() {
			if t.cancelled {
				return
			}
			t.cancelled = true
			fn()
		})
	})
	return t
}

type loopTask struct {
	timer     *time.Timer
	cancelled bool // only touched on the loop goroutine
}

func (t *loopTask) Cancel() {
	t.cancelled = true
	t.timer.Stop()
}
