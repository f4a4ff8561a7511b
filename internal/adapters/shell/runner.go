// Package shell launches toolchain processes with line-streamed output.
package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single toolchain output line. UBT can emit very
// long linker command lines.
const maxLineSize = 1024 * 1024

// Runner implements ports.Launcher using os/exec with captured pipes.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

type runResult struct {
	exitOK bool
	err    error
}

// Run spawns the command, streams stdout and stderr line-by-line to the
// sink, and waits for either process exit or context cancellation.
//
// Cancellation force-terminates the child's whole process tree, emits a
// "killed" line after the streamed output, and reports a plain failure
// rather than an error.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, sink ports.LogSink) (bool, error) {
	c := exec.Command(cmd.Path, cmd.Args...) //nolint:gosec // caller-assembled toolchain invocation
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	// Own process group: the toolchain spawns compiler children that
	// inherit the output pipes, and all of them must die on cancel.
	setProcessGroup(c)

	stdout, err := c.StdoutPipe()
	if err != nil {
		return false, errors.Join(domain.ErrProcessSpawnFailed, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return false, errors.Join(domain.ErrProcessSpawnFailed, err)
	}

	if err := c.Start(); err != nil {
		return false, zerr.With(errors.Join(domain.ErrProcessSpawnFailed, err), "command", cmd.Path)
	}

	// Two independent producers, one consumer. Ordering holds within each
	// stream; interleaving between the two is not guaranteed.
	var readers errgroup.Group
	readers.Go(func() error { return stream(stdout, sink) })
	readers.Go(func() error { return stream(stderr, sink) })

	// The readers must drain before Wait closes the pipes.
	resCh := make(chan runResult, 1)
	go func() {
		readErr := readers.Wait()
		waitErr := c.Wait()

		var exitErr *exec.ExitError
		switch {
		case waitErr == nil && readErr == nil:
			resCh <- runResult{exitOK: true}
		case errors.As(waitErr, &exitErr):
			// Non-zero exit is a toolchain failure, not a runner error.
			resCh <- runResult{exitOK: false}
		case waitErr != nil:
			resCh <- runResult{err: errors.Join(domain.ErrProcessWaitFailed, waitErr)}
		default:
			resCh <- runResult{err: errors.Join(domain.ErrStreamReadFailed, readErr)}
		}
	}()

	select {
	case <-ctx.Done():
		// Killing the whole group closes the pipes, so the readers see
		// EOF immediately and the drain below does not block on any
		// surviving descendant.
		killProcessTree(c)
		<-resCh // reap the child and let the readers settle
		sink.Emit("Build process killed.")
		return false, nil
	case res := <-resCh:
		return res.exitOK, res.err
	}
}

// stream forwards each line of r to the sink until EOF.
func stream(r io.Reader, sink ports.LogSink) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		sink.Emit(strings.TrimSuffix(sc.Text(), "\r"))
	}
	return sc.Err()
}
