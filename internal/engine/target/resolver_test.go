package target_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stellarforge/ubuild/internal/core/domain"
	"github.com/stellarforge/ubuild/internal/engine/target"
)

// writeProject creates a minimal project layout: a .uproject file and a
// Source directory containing the given target descriptor files.
func writeProject(t *testing.T, stem string, sourceFiles ...string) string {
	t.Helper()

	dir := t.TempDir()
	projectPath := filepath.Join(dir, stem+".uproject")
	require.NoError(t, os.WriteFile(projectPath, []byte("{}"), 0o644))

	if len(sourceFiles) > 0 {
		sourceDir := filepath.Join(dir, "Source")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		for _, name := range sourceFiles {
			require.NoError(t, os.WriteFile(filepath.Join(sourceDir, name), []byte("// target"), 0o644))
		}
	}

	return projectPath
}

func TestResolve_OverrideWins(t *testing.T) {
	projectPath := writeProject(t, "Foo", "BazEditor.Target.cs", "QuxEditor.Target.cs")

	name, err := target.Resolve(projectPath, "CustomEditor")
	require.NoError(t, err)
	assert.Equal(t, "CustomEditor", name)
}

func TestResolve_OverrideTrimmed(t *testing.T) {
	projectPath := writeProject(t, "Foo")

	name, err := target.Resolve(projectPath, "  CustomEditor  ")
	require.NoError(t, err)
	assert.Equal(t, "CustomEditor", name)
}

func TestResolve_BlankOverrideFallsThrough(t *testing.T) {
	projectPath := writeProject(t, "Foo", "FooEditor.Target.cs")

	name, err := target.Resolve(projectPath, "   ")
	require.NoError(t, err)
	assert.Equal(t, "FooEditor", name)
}

func TestResolve_NoCandidates_UsesConvention(t *testing.T) {
	projectPath := writeProject(t, "Foo")

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "FooEditor", name)
}

func TestResolve_MissingSourceDir(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "Bar.uproject")
	require.NoError(t, os.WriteFile(projectPath, []byte("{}"), 0o644))

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "BarEditor", name)
}

func TestResolve_SingleCandidateTrusted(t *testing.T) {
	// The lone descriptor deviates from the convention-derived name but
	// is trusted anyway.
	projectPath := writeProject(t, "Foo", "SomethingElseEditor.Target.cs")

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "SomethingElseEditor", name)
}

func TestResolve_MultipleCandidates_ConventionMatch(t *testing.T) {
	projectPath := writeProject(t, "Foo",
		"FooEditor.Target.cs",
		"ToolsEditor.Target.cs",
	)

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "FooEditor", name)
}

func TestResolve_MultipleCandidates_Ambiguous(t *testing.T) {
	projectPath := writeProject(t, "Foo",
		"BazEditor.Target.cs",
		"QuxEditor.Target.cs",
	)

	_, err := target.Resolve(projectPath, "")
	require.Error(t, err)

	var ambiguous *domain.AmbiguousTargetsError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"BazEditor", "QuxEditor"}, ambiguous.Candidates)
}

func TestResolve_StemAlreadyEndsInEditor(t *testing.T) {
	projectPath := writeProject(t, "LevelEditor")

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "LevelEditor", name)
}

func TestResolve_IgnoresNonEditorDescriptors(t *testing.T) {
	projectPath := writeProject(t, "Foo",
		"Foo.Target.cs",        // game target, not an editor target
		"FooServer.Target.cs",  // server target
		"FooEditor.Target.txt", // wrong extension
		"README.md",
	)

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "FooEditor", name)
}

func TestResolve_IgnoresDirectories(t *testing.T) {
	projectPath := writeProject(t, "Foo")
	sourceDir := filepath.Join(filepath.Dir(projectPath), "Source")
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "NestedEditor.Target.cs"), 0o755))

	name, err := target.Resolve(projectPath, "")
	require.NoError(t, err)
	assert.Equal(t, "FooEditor", name)
}
