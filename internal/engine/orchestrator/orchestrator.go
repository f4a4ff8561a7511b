// Package orchestrator sequences the phases of an Unreal build: target
// resolution, optional artifact cleanup and project file regeneration,
// then compilation.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"github.com/stellarforge/ubuild/internal/engine/artifacts"
	"github.com/stellarforge/ubuild/internal/engine/target"
	"go.trai.ch/zerr"
)

const (
	// hostRuntime hosts UnrealBuildTool, which ships as a .NET assembly.
	hostRuntime = "dotnet"

	// ubtRelPath is the toolchain entry point relative to the engine root.
	ubtRelPath = "Engine/Binaries/DotNET/UnrealBuildTool/UnrealBuildTool.dll"
)

// Orchestrator submits builds and supervises their phase sequence on a
// background goroutine per build.
type Orchestrator struct {
	launcher ports.Launcher
	tracer   ports.Tracer
	cleaner  *artifacts.Cleaner
}

// New creates an Orchestrator.
func New(launcher ports.Launcher, tracer ports.Tracer) *Orchestrator {
	return &Orchestrator{
		launcher: launcher,
		tracer:   tracer,
		cleaner:  artifacts.NewCleaner(),
	}
}

// Submit validates the request, resolves the target, and starts the
// build on a background goroutine. The returned handle never blocks:
// the caller polls it for the terminal result and may cancel at any
// time. Log lines flow to the sink in emission order.
//
// Precondition failures (missing toolchain, missing project, ambiguous
// targets) are returned synchronously; no goroutine or handle is
// created for them.
func (o *Orchestrator) Submit(ctx context.Context, req domain.BuildRequest, sink ports.LogSink) (*domain.Handle, error) {
	req = req.Normalized()

	ubt := filepath.Join(req.EngineRoot, filepath.FromSlash(ubtRelPath))
	if _, err := os.Stat(ubt); err != nil {
		return nil, zerr.With(domain.ErrToolNotFound, "path", ubt)
	}
	if _, err := os.Stat(req.ProjectPath); err != nil {
		return nil, zerr.With(domain.ErrProjectNotFound, "path", req.ProjectPath)
	}

	targetName, err := target.Resolve(req.ProjectPath, req.TargetOverride)
	if err != nil {
		return nil, err
	}

	handle := domain.NewHandle()
	go o.run(ctx, req, ubt, targetName, sink, handle)

	return handle, nil
}

// run executes the phase sequence and commits the terminal result.
func (o *Orchestrator) run(ctx context.Context, req domain.BuildRequest, ubt, targetName string, sink ports.LogSink, handle *domain.Handle) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Propagate the handle's cancel signal into the context so an active
	// launcher invocation is interrupted promptly.
	go func() {
		select {
		case <-handle.Cancelled():
			cancel()
		case <-ctx.Done():
		}
	}()

	handle.Finish(o.execute(ctx, req, ubt, targetName, sink, handle))
}

// execute runs the phases in order. It returns the build's success:
// cancellation and phase failures both yield false, distinguished only
// by the emitted log lines.
func (o *Orchestrator) execute(ctx context.Context, req domain.BuildRequest, ubt, targetName string, sink ports.LogSink, handle *domain.Handle) bool {
	compile := domain.Command{
		Path: hostRuntime,
		Args: []string{ubt, targetName, req.Platform, req.Configuration, "-Project=" + req.ProjectPath, "-WaitMutex"},
		Dir:  req.ProjectDir(),
	}
	sink.Emit("Running: " + displayCommand(req.Mode, compile))

	if req.Mode == domain.ModeCleanRebuild {
		if handle.CancelRequested() {
			sink.Emit("Clean rebuild cancelled before starting.")
			return false
		}

		sink.Emit("Clean rebuild: removing temporary project files...")
		if !o.clean(ctx, req, sink) {
			return false
		}

		// Cleanup is non-interruptible mid-removal; cancellation is only
		// observed at this boundary.
		if handle.CancelRequested() {
			sink.Emit("Clean rebuild cancelled before project file generation.")
			return false
		}

		sink.Emit("Clean rebuild: regenerating project files...")
		if !o.regenerate(ctx, req, ubt, sink) {
			return false
		}
	}

	if handle.CancelRequested() {
		sink.Emit("Build cancelled before compile.")
		return false
	}

	sink.Emit(fmt.Sprintf("Compiling %s (%s %s)...", targetName, req.Platform, req.Configuration))
	return o.launch(ctx, "compile", compile, sink)
}

// clean runs the artifact cleanup phase.
func (o *Orchestrator) clean(ctx context.Context, req domain.BuildRequest, sink ports.LogSink) bool {
	_, span := o.tracer.Start(ctx, "clean")
	defer span.End()

	if err := o.cleaner.Clean(req.ProjectPath, sink); err != nil {
		span.RecordError(err)
		sink.Emit("Build error: " + err.Error())
		return false
	}
	return true
}

// regenerate invokes UnrealBuildTool's project file generation. Any
// non-zero exit aborts the remaining phases.
func (o *Orchestrator) regenerate(ctx context.Context, req domain.BuildRequest, ubt string, sink ports.LogSink) bool {
	ctx, span := o.tracer.Start(ctx, "regenerate")
	defer span.End()

	regen := domain.Command{
		Path: hostRuntime,
		Args: []string{ubt, "-ProjectFiles", "-Project=" + req.ProjectPath, "-Game", "-Engine"},
		Dir:  req.ProjectDir(),
	}

	exitOK, err := o.launcher.Run(ctx, regen, sink)
	if err != nil {
		span.RecordError(err)
		sink.Emit("Build error: " + err.Error())
		return false
	}
	if !exitOK {
		if ctx.Err() == nil {
			span.RecordError(domain.ErrRegenerationFailed)
			sink.Emit("Build error: " + domain.ErrRegenerationFailed.Error() + ".")
		}
		return false
	}
	return true
}

// launch runs one toolchain invocation inside a phase span.
func (o *Orchestrator) launch(ctx context.Context, phase string, cmd domain.Command, sink ports.LogSink) bool {
	ctx, span := o.tracer.Start(ctx, phase)
	defer span.End()

	exitOK, err := o.launcher.Run(ctx, cmd, sink)
	if err != nil {
		span.RecordError(err)
		sink.Emit("Build error: " + err.Error())
		return false
	}
	return exitOK
}

// displayCommand renders the invocation for the opening log line.
func displayCommand(mode domain.BuildMode, compile domain.Command) string {
	line := hostRuntime + " " + strings.Join(compile.Args, " ")
	if mode == domain.ModeCleanRebuild {
		return "Clean Rebuild -> clean temp files, regenerate project files, then: " + line
	}
	return line
}
