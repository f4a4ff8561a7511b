// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/stellarforge/ubuild/internal/core/domain"
)

// Launcher runs one external process with captured output.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Run spawns the command and streams every stdout and stderr line to
	// the sink as it arrives. Lines within one stream keep their emission
	// order; the interleaving between the two streams is not guaranteed.
	//
	// When ctx is cancelled the child process is force-terminated, a
	// "killed" line is emitted, and Run returns (false, nil): cancellation
	// is a normal terminal outcome, not an error.
	//
	// On normal exit both streams are fully drained before returning, and
	// exitOK reflects the process exit status's success bit. A non-nil
	// error is only returned for spawn or wait failures.
	Run(ctx context.Context, cmd domain.Command, sink LogSink) (exitOK bool, err error)
}
