package ports

import (
	"context"

	"github.com/stellarforge/ubuild/internal/core/domain"
)

// Renderer is the abstraction for presenting a build to the user.
// It decouples the log stream from presentation, allowing the same
// lines to drive either a rich TUI or plain linear output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	LogSink

	// Start initializes the renderer. Asynchronous renderers may launch
	// background goroutines here.
	Start(ctx context.Context) error

	// Stop signals the renderer to flush buffered output and shut down.
	Stop() error

	// Wait blocks until the renderer has fully terminated. Synchronous
	// renderers return immediately.
	Wait() error

	// OnStateChange is called whenever the build transitions between
	// lifecycle states.
	OnStateChange(state domain.BuildState)
}
