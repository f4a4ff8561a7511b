package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer drives the bubbletea program and implements ports.Renderer.
type Renderer struct {
	program *tea.Program
	errCh   chan error
}

// NewRenderer creates a renderer around the model. Options are mainly
// used by tests to disable terminal I/O.
func NewRenderer(model Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI event loop in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop asks the program to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the event loop has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// Emit forwards a build output line to the model. Safe for concurrent
// use by both stream readers.
func (r *Renderer) Emit(line string) {
	r.program.Send(lineMsg(line))
}

// OnStateChange forwards a lifecycle transition to the model.
func (r *Renderer) OnStateChange(state domain.BuildState) {
	r.program.Send(stateMsg(state))
}
