package editor

import "time"

// Task is a deferred callback. Hosts deliver tasks back to the goroutine that
// owns the Session and hand them to Session.Tick.
type Task func()

// Timer is a pending scheduled task.
type Timer interface {
	// Stop prevents the task from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Scheduler runs tasks after a delay on the Session's goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, t Task) Timer
}

type postScheduler struct {
	post func(Task)
}

// NewScheduler returns a Scheduler backed by time.AfterFunc. When a timer
// fires the task is handed to post, which must forward it to the owner's
// event loop.
func NewScheduler(post func(Task)) Scheduler {
	return postScheduler{post: post}
}

func (s postScheduler) AfterFunc(d time.Duration, t Task) Timer {
	return time.AfterFunc(d, func() { s.post(t) })
}

// idleScheduler never fires. Headless sessions use it and settle pending
// commits with Session.Flush.
type idleScheduler struct{}

type idleTimer struct{ stopped bool }

func (t *idleTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (idleScheduler) AfterFunc(time.Duration, Task) Timer { return &idleTimer{} }
