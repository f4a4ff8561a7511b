package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stellarforge/ubuild/internal/adapters/telemetry"
	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"github.com/stellarforge/ubuild/internal/core/ports/mocks"
	"github.com/stellarforge/ubuild/internal/engine/orchestrator"
)

// syncSink records emitted lines under a mutex.
type syncSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *syncSink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *syncSink) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// gateSink blocks the first Emit until released, letting tests order
// cancellation deterministically against the build goroutine.
type gateSink struct {
	syncSink
	gate chan struct{}
	once sync.Once
}

func newGateSink() *gateSink {
	return &gateSink{gate: make(chan struct{})}
}

func (s *gateSink) Emit(line string) {
	s.once.Do(func() { <-s.gate })
	s.syncSink.Emit(line)
}

func (s *gateSink) release() { close(s.gate) }

// fakeEngine lays out a minimal engine root containing the UBT assembly.
func fakeEngine(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	ubtDir := filepath.Join(root, "Engine", "Binaries", "DotNET", "UnrealBuildTool")
	require.NoError(t, os.MkdirAll(ubtDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ubtDir, "UnrealBuildTool.dll"), []byte("dll"), 0o644))
	return root
}

// fakeProject lays out a .uproject with the given editor target descriptors.
func fakeProject(t *testing.T, stem string, targets ...string) string {
	t.Helper()
	dir := t.TempDir()
	projectPath := filepath.Join(dir, stem+".uproject")
	require.NoError(t, os.WriteFile(projectPath, []byte("{}"), 0o644))
	if len(targets) > 0 {
		sourceDir := filepath.Join(dir, "Source")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		for _, name := range targets {
			require.NoError(t, os.WriteFile(filepath.Join(sourceDir, name+".Target.cs"), []byte("//"), 0o644))
		}
	}
	return projectPath
}

func ubtPath(engineRoot string) string {
	return filepath.Join(engineRoot, "Engine", "Binaries", "DotNET", "UnrealBuildTool", "UnrealBuildTool.dll")
}

func waitDone(t *testing.T, h *domain.Handle) bool {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("build did not finish")
	}
	success, finished := h.TryFinished()
	require.True(t, finished)
	return success
}

func TestSubmit_StandardSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	launcher := mocks.NewMockLauncher(ctrl)
	launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ ports.LogSink) (bool, error) {
			assert.Equal(t, "dotnet", cmd.Path)
			assert.Equal(t, []string{
				ubtPath(engineRoot),
				"FooEditor",
				"Win64",
				"Development",
				"-Project=" + projectPath,
				"-WaitMutex",
			}, cmd.Args)
			assert.Equal(t, filepath.Dir(projectPath), cmd.Dir)
			return true, nil
		})

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := &syncSink{}

	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, sink)
	require.NoError(t, err)

	assert.True(t, waitDone(t, handle))

	lines := sink.all()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Running: dotnet")
	assert.Contains(t, lines, "Compiling FooEditor (Win64 Development)...")
}

func TestSubmit_CompileFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	launcher := mocks.NewMockLauncher(ctrl)
	launcher.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, &syncSink{})
	require.NoError(t, err)

	assert.False(t, waitDone(t, handle))
}

func TestSubmit_LauncherErrorEmitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	launcher := mocks.NewMockLauncher(ctrl)
	launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("exec format error"))

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := &syncSink{}
	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, sink)
	require.NoError(t, err)

	assert.False(t, waitDone(t, handle))
	assert.Contains(t, sink.all(), "Build error: exec format error")
}

func TestSubmit_CleanRebuildSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo", "FooEditor")
	projectDir := filepath.Dir(projectPath)
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "Intermediate"), 0o755))

	launcher := mocks.NewMockLauncher(ctrl)
	regen := launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ ports.LogSink) (bool, error) {
			assert.Equal(t, []string{
				ubtPath(engineRoot),
				"-ProjectFiles",
				"-Project=" + projectPath,
				"-Game",
				"-Engine",
			}, cmd.Args)
			return true, nil
		})
	compile := launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ ports.LogSink) (bool, error) {
			assert.Contains(t, cmd.Args, "-WaitMutex")
			return true, nil
		})
	gomock.InOrder(regen, compile)

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := &syncSink{}
	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
		Mode:        domain.ModeCleanRebuild,
	}, sink)
	require.NoError(t, err)

	assert.True(t, waitDone(t, handle))

	lines := sink.all()
	assert.Contains(t, lines, "Clean rebuild: removing temporary project files...")
	assert.Contains(t, lines, "Removing directory: "+filepath.Join(projectDir, "Intermediate"))
	assert.Contains(t, lines, "Clean rebuild: regenerating project files...")
	assert.Contains(t, lines, "Compiling FooEditor (Win64 Development)...")

	// Phases appear in order.
	idx := func(s string) int {
		for i, line := range lines {
			if line == s {
				return i
			}
		}
		return -1
	}
	assert.Less(t,
		idx("Clean rebuild: removing temporary project files..."),
		idx("Clean rebuild: regenerating project files..."))
	assert.Less(t,
		idx("Clean rebuild: regenerating project files..."),
		idx("Compiling FooEditor (Win64 Development)..."))
}

func TestSubmit_RegenerationFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	launcher := mocks.NewMockLauncher(ctrl)
	// Only the regeneration invocation runs; the compile never happens.
	launcher.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := &syncSink{}
	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
		Mode:        domain.ModeCleanRebuild,
	}, sink)
	require.NoError(t, err)

	assert.False(t, waitDone(t, handle))
	assert.Contains(t, sink.all(), "Build error: "+domain.ErrRegenerationFailed.Error()+".")
	assert.NotContains(t, sink.all(), "Compiling FooEditor (Win64 Development)...")
}

func TestSubmit_CancelBeforeStart_NeverSpawns(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	// No Run expectation: any launcher call fails the test.
	launcher := mocks.NewMockLauncher(ctrl)

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := newGateSink()

	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
		Mode:        domain.ModeCleanRebuild,
	}, sink)
	require.NoError(t, err)

	// The build goroutine is blocked on its first log line; cancel wins.
	handle.Cancel()
	sink.release()

	assert.False(t, waitDone(t, handle))
	assert.Contains(t, sink.all(), "Clean rebuild cancelled before starting.")
}

func TestSubmit_CancelBeforeCompile(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	launcher := mocks.NewMockLauncher(ctrl)

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := newGateSink()

	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, sink)
	require.NoError(t, err)

	handle.Cancel()
	sink.release()

	assert.False(t, waitDone(t, handle))
	assert.Contains(t, sink.all(), "Build cancelled before compile.")
}

func TestSubmit_ToolNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	projectPath := fakeProject(t, "Foo")

	o := orchestrator.New(mocks.NewMockLauncher(ctrl), telemetry.NewNoOpTracer())
	_, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  t.TempDir(), // no Engine/ tree inside
	}, &syncSink{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestSubmit_ProjectNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)

	o := orchestrator.New(mocks.NewMockLauncher(ctrl), telemetry.NewNoOpTracer())
	_, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: filepath.Join(t.TempDir(), "Missing.uproject"),
		EngineRoot:  engineRoot,
	}, &syncSink{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestSubmit_AmbiguousTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo", "BazEditor", "QuxEditor")

	o := orchestrator.New(mocks.NewMockLauncher(ctrl), telemetry.NewNoOpTracer())
	_, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, &syncSink{})

	require.Error(t, err)
	var ambiguous *domain.AmbiguousTargetsError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"BazEditor", "QuxEditor"}, ambiguous.Candidates)
}

func TestSubmit_ContextCancellationPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	started := make(chan struct{})
	launcher := mocks.NewMockLauncher(ctrl)
	launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Command, sink ports.LogSink) (bool, error) {
			close(started)
			<-ctx.Done()
			sink.Emit("Build process killed.")
			return false, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	sink := &syncSink{}
	handle, err := o.Submit(ctx, domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, sink)
	require.NoError(t, err)

	<-started
	cancel()

	assert.False(t, waitDone(t, handle))
	assert.Contains(t, sink.all(), "Build process killed.")
}

func TestSubmit_HandleCancelInterruptsLauncher(t *testing.T) {
	ctrl := gomock.NewController(t)
	engineRoot := fakeEngine(t)
	projectPath := fakeProject(t, "Foo")

	started := make(chan struct{})
	launcher := mocks.NewMockLauncher(ctrl)
	launcher.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Command, _ ports.LogSink) (bool, error) {
			close(started)
			<-ctx.Done()
			return false, nil
		})

	o := orchestrator.New(launcher, telemetry.NewNoOpTracer())
	handle, err := o.Submit(context.Background(), domain.BuildRequest{
		ProjectPath: projectPath,
		EngineRoot:  engineRoot,
	}, &syncSink{})
	require.NoError(t, err)

	<-started
	handle.Cancel()

	assert.False(t, waitDone(t, handle))
}
