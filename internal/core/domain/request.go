package domain

import (
	"path/filepath"
	"strings"
)

// BuildMode selects how much work a build request performs.
type BuildMode int

const (
	// ModeStandard compiles the resolved target without touching artifacts.
	ModeStandard BuildMode = iota
	// ModeCleanRebuild removes cached build artifacts and regenerates
	// project files before compiling.
	ModeCleanRebuild
)

// String returns a human-readable name for the mode.
func (m BuildMode) String() string {
	switch m {
	case ModeCleanRebuild:
		return "clean rebuild"
	default:
		return "standard"
	}
}

// Default toolchain arguments when the request leaves them empty.
// These match the stock UnrealBuildTool editor invocation.
const (
	DefaultPlatform      = "Win64"
	DefaultConfiguration = "Development"
)

// BuildRequest describes a single toolchain invocation. It is immutable
// once submitted to the orchestrator.
type BuildRequest struct {
	// ProjectPath is the absolute path to the .uproject file.
	ProjectPath string
	// EngineRoot is the engine installation root directory.
	EngineRoot string
	// Mode selects standard compile or clean rebuild.
	Mode BuildMode
	// TargetOverride, when non-blank, bypasses target discovery entirely.
	TargetOverride string
	// Platform and Configuration are passed through to the toolchain.
	// Empty values fall back to DefaultPlatform / DefaultConfiguration.
	Platform      string
	Configuration string
}

// Normalized returns a copy of the request with empty platform and
// configuration replaced by the defaults.
func (r BuildRequest) Normalized() BuildRequest {
	if r.Platform == "" {
		r.Platform = DefaultPlatform
	}
	if r.Configuration == "" {
		r.Configuration = DefaultConfiguration
	}
	return r
}

// ProjectDir returns the directory containing the project file.
func (r BuildRequest) ProjectDir() string {
	return filepath.Dir(r.ProjectPath)
}

// ProjectStem returns the project file name without its extension.
func (r BuildRequest) ProjectStem() string {
	base := filepath.Base(r.ProjectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Command is a single external process invocation: an executable, its
// argument list in exact order, and an optional working directory.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// BuildState is the lifecycle of a submitted build as observed by a renderer.
type BuildState int

const (
	// StateIdle means no build has been submitted yet.
	StateIdle BuildState = iota
	// StateRunning means a build is in flight.
	StateRunning
	// StateSucceeded means the last build finished successfully.
	StateSucceeded
	// StateFailed means the last build finished with a failure.
	StateFailed
	// StateCancelled means the last build was cancelled by the caller.
	StateCancelled
)

// String returns the display label for the state.
func (s BuildState) String() string {
	switch s {
	case StateRunning:
		return "Building..."
	case StateSucceeded:
		return "Build Succeeded"
	case StateFailed:
		return "Build Failed"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Idle"
	}
}

// Project is a registered .uproject entry in the user configuration.
type Project struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Settings is the persisted user configuration.
type Settings struct {
	Projects        []Project `yaml:"projects"`
	EnginePath      string    `yaml:"engine_path,omitempty"`
	SelectedProject string    `yaml:"selected_project,omitempty"`
	Platform        string    `yaml:"platform,omitempty"`
	Configuration   string    `yaml:"configuration,omitempty"`
}

// EngineInstall is a detected Unreal Engine installation.
type EngineInstall struct {
	ID      string
	Name    string
	Path    string
	Version string
}
