// Package target resolves the editor target name for an Unreal project.
package target

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/stellarforge/ubuild/internal/core/domain"
)

// targetSuffix is the file suffix UnrealBuildTool uses for editor target
// descriptors under <project>/Source.
const targetSuffix = "Editor.Target.cs"

// Resolve determines the compilation target for the given project file.
//
// An explicit non-blank override wins outright and skips discovery. With
// no override, editor target descriptors under Source/ are scanned: a
// lone candidate is trusted even if its name deviates from convention,
// but multiple candidates require either an exact match against the
// convention-derived name or an explicit override, in which case
// *domain.AmbiguousTargetsError lists the candidates.
func Resolve(projectPath, override string) (string, error) {
	if name := strings.TrimSpace(override); name != "" {
		return name, nil
	}

	candidates := discover(filepath.Join(filepath.Dir(projectPath), "Source"))
	expected := conventionTarget(projectStem(projectPath))

	switch len(candidates) {
	case 0:
		return expected, nil
	case 1:
		return candidates[0], nil
	default:
		if slices.Contains(candidates, expected) {
			return expected, nil
		}
		return "", &domain.AmbiguousTargetsError{Candidates: candidates}
	}
}

// discover returns the editor target names under sourceDir, sorted and
// deduplicated. A missing or unreadable directory yields no candidates.
func discover(sourceDir string) []string {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, targetSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".Target.cs"))
	}

	slices.Sort(names)
	return slices.Compact(names)
}

// conventionTarget appends "Editor" to the project stem unless the stem
// already ends in it.
func conventionTarget(stem string) string {
	if strings.HasSuffix(strings.ToLower(stem), "editor") {
		return stem
	}
	return stem + "Editor"
}

func projectStem(projectPath string) string {
	base := filepath.Base(projectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
