package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"github.com/stellarforge/ubuild/internal/ui/output"
	"github.com/stellarforge/ubuild/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for CI/non-interactive runs. Lines
// are printed chronologically with a severity tint; state transitions go
// to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu sync.Mutex
}

// NewRenderer creates a new linear Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: termenv.NewOutput(stdout, termenv.WithProfile(output.ColorProfileANSI())),
	}
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op; lines are flushed as they arrive.
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op for the linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// Emit prints one build output line, tinted by its classified severity.
// Safe for concurrent use by both stream readers.
func (r *Renderer) Emit(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styled := r.output.String(line)
	switch Classify(line) {
	case LevelError:
		styled = styled.Foreground(termenv.ANSIRed)
	case LevelWarning:
		styled = styled.Foreground(termenv.ANSIYellow)
	case LevelSuccess:
		styled = styled.Foreground(termenv.ANSIGreen)
	case LevelInfo:
		// default terminal foreground
	}
	_, _ = fmt.Fprintln(r.stdout, styled.String())
}

// OnStateChange prints build lifecycle transitions to stderr.
func (r *Renderer) OnStateChange(state domain.BuildState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var symbol string
	switch state {
	case domain.StateSucceeded:
		symbol = r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	case domain.StateFailed:
		symbol = r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
	case domain.StateCancelled:
		symbol = r.output.String(style.Warning).Foreground(termenv.ANSIYellow).String()
	case domain.StateRunning, domain.StateIdle:
		symbol = r.output.String(style.Dot).Foreground(termenv.ANSIBlue).String()
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", symbol, state)
}
