// Package artifacts removes transient Unreal build output for a project.
package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// transientDirs are removed in order on a clean rebuild.
var transientDirs = []string{"Binaries", "Intermediate", "Saved", ".vs"}

// Cleaner deletes the transient build directories and solution files of
// a project. Cleanup is not transactional: a removal failure aborts
// immediately and earlier removals are not rolled back.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes the project's transient directories and solution files,
// emitting one line per removed path. Missing paths are skipped silently.
func (c *Cleaner) Clean(projectPath string, sink ports.LogSink) error {
	projectDir := filepath.Dir(projectPath)

	for _, name := range transientDirs {
		full := filepath.Join(projectDir, name)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		sink.Emit("Removing directory: " + full)
		if err := os.RemoveAll(full); err != nil {
			return zerr.With(errors.Join(domain.ErrCleanStepFailed, err), "path", full)
		}
	}

	// The solution can be named after the project file or after the
	// containing directory, depending on how it was generated. Try both.
	solutionFiles := []string{
		strings.TrimSuffix(projectPath, filepath.Ext(projectPath)) + ".sln",
		filepath.Join(projectDir, filepath.Base(projectDir)+".sln"),
	}

	for _, file := range solutionFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		sink.Emit("Removing file: " + file)
		if err := os.Remove(file); err != nil {
			return zerr.With(errors.Join(domain.ErrCleanStepFailed, err), "path", file)
		}
	}

	return nil
}
