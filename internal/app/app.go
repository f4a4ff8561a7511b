// Package app implements the application layer for ubuild.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/stellarforge/ubuild/internal/adapters/detector"
	"github.com/stellarforge/ubuild/internal/adapters/linear"
	"github.com/stellarforge/ubuild/internal/adapters/tui"
	"github.com/stellarforge/ubuild/internal/adapters/watcher"
	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"github.com/stellarforge/ubuild/internal/engine/orchestrator"
)

// debounceWindow coalesces bursts of file events in watch mode.
const debounceWindow = 500 * time.Millisecond

// App represents the main application logic.
type App struct {
	store      ports.ConfigStore
	orch       *orchestrator.Orchestrator
	detect     ports.EngineDetector
	logger     ports.Logger
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	store ports.ConfigStore,
	orch *orchestrator.Orchestrator,
	detect ports.EngineDetector,
	log ports.Logger,
) *App {
	return &App{
		store:  store,
		orch:   orch,
		detect: detect,
		logger: log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Project is a registered project name or a direct .uproject path.
	// Empty selects the configured default project.
	Project string
	// Engine overrides the engine root for this run.
	Engine string
	// Clean requests a clean rebuild instead of a standard build.
	Clean bool
	// Target bypasses target discovery when non-blank.
	Target string
	// Platform and Configuration override the configured defaults.
	Platform      string
	Configuration string
	// OutputMode is one of auto, tui, or linear.
	OutputMode string
	// Watch rebuilds whenever source files under the project change.
	Watch bool
}

// Build runs a build for the resolved project, rendering output either
// interactively or linearly depending on the environment.
//
//nolint:cyclop // orchestration function
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	// 1. Load settings and resolve the request
	settings, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	req, err := a.resolveRequest(settings, opts)
	if err != nil {
		return err
	}

	// 2. Initialize Renderer
	// Watch mode forces linear output: the TUI terminates on the first
	// terminal state, which conflicts with a long-lived watch session.
	autoMode := detector.DetectEnvironment()
	mode := detector.ResolveMode(autoMode, opts.OutputMode)
	if opts.Watch {
		mode = detector.ModeLinear
	}

	// holder carries the in-flight build handle so the TUI cancel key and
	// the watch loop can reach it.
	var holder atomic.Pointer[domain.Handle]

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(func() {
			if h := holder.Load(); h != nil {
				h.Cancel()
			}
		})
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(model, optsTea...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// 3. Run Renderer and build loop concurrently
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if opts.Watch {
			return a.watchLoop(ctx, req, renderer, &holder)
		}
		return a.runOnce(ctx, req, renderer, &holder)
	})

	return g.Wait()
}

// runOnce submits one build and blocks until it reaches a terminal state.
func (a *App) runOnce(ctx context.Context, req domain.BuildRequest, renderer ports.Renderer, holder *atomic.Pointer[domain.Handle]) error {
	renderer.OnStateChange(domain.StateRunning)

	handle, err := a.orch.Submit(ctx, req, renderer)
	if err != nil {
		renderer.OnStateChange(domain.StateFailed)
		return err
	}
	holder.Store(handle)
	defer holder.Store(nil)

	// Forward context cancellation (signals, errgroup teardown) into the
	// build so the child process is killed promptly.
	stop := context.AfterFunc(ctx, handle.Cancel)
	defer stop()

	<-handle.Done()

	success, _ := handle.TryFinished()
	switch {
	case success:
		renderer.OnStateChange(domain.StateSucceeded)
		return nil
	case handle.CancelRequested():
		renderer.OnStateChange(domain.StateCancelled)
		return nil
	default:
		renderer.OnStateChange(domain.StateFailed)
		return domain.ErrBuildFailed
	}
}

// watchLoop builds once, then rebuilds whenever watched source files
// change. A change during a build cancels the in-flight build first.
func (a *App) watchLoop(ctx context.Context, req domain.BuildRequest, renderer ports.Renderer, holder *atomic.Pointer[domain.Handle]) error {
	w, err := watcher.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() {
		_ = w.Stop()
	}()

	rebuild := make(chan struct{}, 1)
	cache := watcher.NewHashCache()
	deb := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		if len(cache.Changed(paths)) == 0 {
			return
		}
		if h := holder.Load(); h != nil {
			h.Cancel()
		}
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})

	if err := w.Start(ctx, req.ProjectDir()); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	go func() {
		for event := range w.Events() {
			deb.Add(event.Path)
		}
	}()

	for {
		if err := a.runOnce(ctx, req, renderer, holder); err != nil && !errors.Is(err, domain.ErrBuildFailed) {
			return err
		}

		renderer.Emit("Watching for changes...")

		select {
		case <-ctx.Done():
			return nil
		case <-rebuild:
		}
	}
}

// resolveRequest turns user-facing options plus persisted settings into
// a concrete build request.
func (a *App) resolveRequest(settings *domain.Settings, opts BuildOptions) (domain.BuildRequest, error) {
	projectPath, err := a.resolveProject(settings, opts.Project)
	if err != nil {
		return domain.BuildRequest{}, err
	}

	engineRoot, err := a.resolveEngine(settings, opts.Engine)
	if err != nil {
		return domain.BuildRequest{}, err
	}

	mode := domain.ModeStandard
	if opts.Clean {
		mode = domain.ModeCleanRebuild
	}

	platform := opts.Platform
	if platform == "" {
		platform = settings.Platform
	}
	configuration := opts.Configuration
	if configuration == "" {
		configuration = settings.Configuration
	}

	return domain.BuildRequest{
		ProjectPath:    projectPath,
		EngineRoot:     engineRoot,
		Mode:           mode,
		TargetOverride: opts.Target,
		Platform:       platform,
		Configuration:  configuration,
	}.Normalized(), nil
}

// resolveProject maps a project argument to a .uproject path: a direct
// path wins, then a registered name, then the configured selection.
func (a *App) resolveProject(settings *domain.Settings, arg string) (string, error) {
	if arg != "" {
		if strings.EqualFold(filepath.Ext(arg), ".uproject") {
			return filepath.Abs(arg)
		}
		if p, ok := findProject(settings, arg); ok {
			return p.Path, nil
		}
		return "", zerr.With(domain.ErrProjectNotRegistered, "name", arg)
	}

	if settings.SelectedProject != "" {
		if p, ok := findProject(settings, settings.SelectedProject); ok {
			return p.Path, nil
		}
		return "", zerr.With(domain.ErrProjectNotRegistered, "name", settings.SelectedProject)
	}

	return "", domain.ErrNoProjectSelected
}

// resolveEngine picks the engine root: flag, then settings, then the
// newest detected installation.
func (a *App) resolveEngine(settings *domain.Settings, flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if settings.EnginePath != "" {
		return settings.EnginePath, nil
	}

	installs := a.detect.Detect()
	if len(installs) > 0 {
		a.logger.Info("using detected engine: " + installs[0].Path)
		return installs[0].Path, nil
	}

	return "", domain.ErrNoEnginePath
}

func findProject(settings *domain.Settings, name string) (domain.Project, bool) {
	for _, p := range settings.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Project{}, false
}

// Engines returns the detected engine installations.
func (a *App) Engines(_ context.Context) []domain.EngineInstall {
	return a.detect.Detect()
}

// Projects returns the registered projects and the selected name.
func (a *App) Projects(_ context.Context) ([]domain.Project, string, error) {
	settings, err := a.store.Load()
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load settings")
	}
	return settings.Projects, settings.SelectedProject, nil
}

// AddProject registers a .uproject under a name and selects it when it
// is the first registered project.
func (a *App) AddProject(_ context.Context, name, path string) error {
	settings, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if _, ok := findProject(settings, name); ok {
		return zerr.With(domain.ErrProjectAlreadyRegistered, "name", name)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve project path")
	}
	if _, err := os.Stat(abs); err != nil {
		return zerr.With(domain.ErrProjectNotFound, "path", abs)
	}

	settings.Projects = append(settings.Projects, domain.Project{Name: name, Path: abs})
	if settings.SelectedProject == "" {
		settings.SelectedProject = name
	}

	return a.store.Save(settings)
}

// RemoveProject drops a registered project, clearing the selection if it
// pointed at the removed entry.
func (a *App) RemoveProject(_ context.Context, name string) error {
	settings, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	kept := settings.Projects[:0]
	found := false
	for _, p := range settings.Projects {
		if p.Name == name {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return zerr.With(domain.ErrProjectNotRegistered, "name", name)
	}
	settings.Projects = kept

	if settings.SelectedProject == name {
		settings.SelectedProject = ""
		if len(settings.Projects) > 0 {
			settings.SelectedProject = settings.Projects[0].Name
		}
	}

	return a.store.Save(settings)
}

// SelectProject makes a registered project the default for builds.
func (a *App) SelectProject(_ context.Context, name string) error {
	settings, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	if _, ok := findProject(settings, name); !ok {
		return zerr.With(domain.ErrProjectNotRegistered, "name", name)
	}

	settings.SelectedProject = name
	return a.store.Save(settings)
}

// SetEngine persists an engine root as the default for builds.
func (a *App) SetEngine(_ context.Context, path string) error {
	settings, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve engine path")
	}

	settings.EnginePath = abs
	return a.store.Save(settings)
}
