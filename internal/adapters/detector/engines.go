// Package detector discovers Unreal Engine installations and detects
// the output environment.
package detector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/stellarforge/ubuild/internal/core/domain"
)

// skipDirectories are launcher and redistributable directories that live
// next to engine installs but are never engine roots themselves.
var skipDirectories = map[string]bool{
	"launcher":             true,
	"epicgameslauncher":    true,
	"epic games launcher":  true,
	"epic online services": true,
	"directxredist":        true,
	"vcredist":             true,
}

var (
	ueVersionRe  = regexp.MustCompile(`(?i)UE[_-]([0-9]+(?:\.[0-9]+)*)`)
	anyVersionRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)*)`)
)

// Detector implements ports.EngineDetector by scanning the platform's
// conventional Epic Games directories and the Epic launcher manifest.
type Detector struct {
	baseDirs      []string
	launcherFiles []string
}

// NewDetector creates a detector for the current platform.
func NewDetector() *Detector {
	return &Detector{
		baseDirs:      platformBaseDirs(),
		launcherFiles: platformLauncherFiles(),
	}
}

// NewDetectorAt creates a detector scanning explicit directories and
// launcher manifest files. Used by tests.
func NewDetectorAt(baseDirs, launcherFiles []string) *Detector {
	return &Detector{baseDirs: baseDirs, launcherFiles: launcherFiles}
}

// Detect returns the discovered installations, deduplicated by path and
// sorted by version descending (unversioned installs last).
func (d *Detector) Detect() []domain.EngineInstall {
	var installs []domain.EngineInstall
	seen := make(map[string]bool)

	for _, base := range d.baseDirs {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(base, entry.Name())
			if install, ok := inspect(path, entry.Name(), "", seen); ok {
				installs = append(installs, install)
			}
		}
	}

	for _, file := range d.launcherFiles {
		installs = append(installs, readLauncherManifest(file, seen)...)
	}

	slices.SortStableFunc(installs, compareInstalls)
	return installs
}

// launcherManifest is the subset of LauncherInstalled.dat we read.
type launcherManifest struct {
	InstallationList []struct {
		InstallLocation string `json:"InstallLocation"`
		AppVersion      string `json:"AppVersion"`
		DisplayName     string `json:"DisplayName"`
	} `json:"InstallationList"`
}

func readLauncherManifest(path string, seen map[string]bool) []domain.EngineInstall {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var manifest launcherManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	var installs []domain.EngineInstall
	for _, item := range manifest.InstallationList {
		if item.InstallLocation == "" {
			continue
		}
		name := filepath.Base(item.InstallLocation)
		if item.DisplayName != "" {
			name = item.DisplayName
		}
		if install, ok := inspect(item.InstallLocation, name, item.AppVersion, seen); ok {
			installs = append(installs, install)
		}
	}
	return installs
}

// inspect validates a candidate engine root and builds its install entry.
func inspect(path, name, version string, seen map[string]bool) (domain.EngineInstall, bool) {
	if skipDirectories[strings.ToLower(name)] {
		return domain.EngineInstall{}, false
	}
	if seen[path] {
		return domain.EngineInstall{}, false
	}
	if !isEngineRoot(path) {
		return domain.EngineInstall{}, false
	}
	seen[path] = true

	if version == "" {
		version = parseVersion(name)
	}

	return domain.EngineInstall{
		ID:      path,
		Name:    formatLabel(name, version),
		Path:    path,
		Version: version,
	}, true
}

// isEngineRoot checks for the Engine/Binaries or Engine/Build layout
// that every real installation carries.
func isEngineRoot(path string) bool {
	engineDir := filepath.Join(path, "Engine")
	if info, err := os.Stat(engineDir); err != nil || !info.IsDir() {
		return false
	}
	for _, sub := range []string{"Binaries", "Build"} {
		if info, err := os.Stat(filepath.Join(engineDir, sub)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// parseVersion extracts a version from a directory name like "UE_5.4".
func parseVersion(name string) string {
	if m := ueVersionRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := anyVersionRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

func formatLabel(name, version string) string {
	switch {
	case version != "":
		return "Unreal Engine " + version
	case name != "":
		return "Unreal Engine (" + name + ")"
	default:
		return "Unreal Engine"
	}
}

// compareInstalls orders by version descending; unversioned entries sort
// after versioned ones.
func compareInstalls(a, b domain.EngineInstall) int {
	switch {
	case a.Version == "" && b.Version == "":
		return 0
	case a.Version == "":
		return 1
	case b.Version == "":
		return -1
	}
	return slices.Compare(versionParts(b.Version), versionParts(a.Version))
}

func versionParts(version string) []int {
	fields := strings.Split(version, ".")
	parts := make([]int, 0, len(fields))
	for _, field := range fields {
		if n, err := strconv.Atoi(field); err == nil {
			parts = append(parts, n)
		}
	}
	return parts
}

// platformBaseDirs returns the conventional Epic Games directories for
// the current platform.
func platformBaseDirs() []string {
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		if pf := os.Getenv("PROGRAMFILES"); pf != "" {
			dirs = append(dirs, filepath.Join(pf, "Epic Games"))
		}
		if pf86 := os.Getenv("PROGRAMFILES(X86)"); pf86 != "" {
			dirs = append(dirs, filepath.Join(pf86, "Epic Games"))
		}
	case "darwin":
		dirs = append(dirs, "/Users/Shared/Epic Games")
		if home := os.Getenv("HOME"); home != "" {
			dirs = append(dirs, filepath.Join(home, "Epic Games"))
		}
	default:
		if home := os.Getenv("HOME"); home != "" {
			dirs = append(dirs,
				filepath.Join(home, "Epic Games"),
				filepath.Join(home, ".local/share/Epic Games"),
			)
		}
		dirs = append(dirs, "/opt/Epic Games")
	}
	return dirs
}

// platformLauncherFiles returns the Epic launcher manifest locations.
func platformLauncherFiles() []string {
	if runtime.GOOS != "windows" {
		return nil
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return []string{
		filepath.Join(programData, "Epic", "UnrealEngineLauncher", "LauncherInstalled.dat"),
		filepath.Join(programData, "Epic", "EpicGamesLauncher", "LauncherInstalled.dat"),
	}
}
