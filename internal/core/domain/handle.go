package domain

import (
	"sync"
	"sync/atomic"
)

// Handle is the caller-held reference to a submitted build.
//
// It carries exactly two signals: a write-once result slot set by the
// background build goroutine, and an idempotent cancellation request
// settable from any goroutine at any time. The result is only observable
// after it has been committed, so "success before finished" is
// unrepresentable.
type Handle struct {
	success atomic.Bool

	finishOnce sync.Once
	done       chan struct{}

	cancelOnce sync.Once
	cancelled  chan struct{}
}

// NewHandle creates a handle for a build that has not finished.
func NewHandle() *Handle {
	return &Handle{
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
	}
}

// TryFinished reports the terminal result without blocking.
// The success value is meaningful only when finished is true.
func (h *Handle) TryFinished() (success, finished bool) {
	select {
	case <-h.done:
		return h.success.Load(), true
	default:
		return false, false
	}
}

// Done returns a channel that is closed once the build reaches a
// terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel requests cooperative cancellation. It is safe to call from any
// goroutine, before or during the build, and calling it more than once
// has no additional effect.
func (h *Handle) Cancel() {
	h.cancelOnce.Do(func() {
		close(h.cancelled)
	})
}

// Cancelled returns a channel that is closed once cancellation has been
// requested.
func (h *Handle) Cancelled() <-chan struct{} {
	return h.cancelled
}

// CancelRequested reports whether Cancel has been called.
func (h *Handle) CancelRequested() bool {
	select {
	case <-h.cancelled:
		return true
	default:
		return false
	}
}

// Finish commits the terminal result. It is called exactly once by the
// goroutine that owns the build; later calls are ignored.
func (h *Handle) Finish(success bool) {
	h.finishOnce.Do(func() {
		h.success.Store(success)
		close(h.done)
	})
}
