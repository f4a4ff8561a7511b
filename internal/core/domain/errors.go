package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrToolNotFound is returned when UnrealBuildTool does not exist under the engine root.
	ErrToolNotFound = zerr.New("UnrealBuildTool not found under engine root")

	// ErrProjectNotFound is returned when the project file does not exist.
	ErrProjectNotFound = zerr.New("project file not found")

	// ErrProcessSpawnFailed is returned when the toolchain process cannot be started.
	ErrProcessSpawnFailed = zerr.New("failed to spawn toolchain process")

	// ErrProcessWaitFailed is returned when waiting on the toolchain process fails.
	ErrProcessWaitFailed = zerr.New("failed to wait for toolchain process")

	// ErrStreamReadFailed is returned when reading a toolchain output stream fails.
	ErrStreamReadFailed = zerr.New("failed to read toolchain output stream")

	// ErrCleanStepFailed is returned when removing a build artifact fails.
	ErrCleanStepFailed = zerr.New("failed to remove build artifact")

	// ErrRegenerationFailed is returned when project file regeneration exits non-zero.
	ErrRegenerationFailed = zerr.New("project file regeneration failed")

	// ErrBuildFailed is a marker used by the CLI to suppress duplicate
	// error output when the failure was already streamed to the log.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoEnginePath is returned when no engine path is configured or detected.
	ErrNoEnginePath = zerr.New("no engine path set")

	// ErrNoProjectSelected is returned when a build is requested without a project.
	ErrNoProjectSelected = zerr.New("no project selected")

	// ErrProjectAlreadyRegistered is returned when adding a project whose name is taken.
	ErrProjectAlreadyRegistered = zerr.New("project already registered")

	// ErrProjectNotRegistered is returned when a named project is not in the configuration.
	ErrProjectNotRegistered = zerr.New("project not registered")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrConfigWriteFailed is returned when the settings file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write settings file")
)

// AmbiguousTargetsError is returned by target resolution when multiple
// editor targets exist and none matches the convention-derived name.
// The candidate list is sorted and deduplicated so a caller can drive a
// disambiguation flow and resubmit with an explicit override.
type AmbiguousTargetsError struct {
	Candidates []string
}

func (e *AmbiguousTargetsError) Error() string {
	return fmt.Sprintf("ambiguous editor targets, pass an explicit target: %s",
		strings.Join(e.Candidates, ", "))
}
