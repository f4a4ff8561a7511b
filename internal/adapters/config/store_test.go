package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stellarforge/ubuild/internal/adapters/config"
	"github.com/stellarforge/ubuild/internal/core/domain"
)

func TestStore_Load_MissingFile(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "nope", "config.yaml"))

	settings, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Empty(t, settings.Projects)
	assert.Empty(t, settings.EnginePath)
}

func TestStore_SaveAndLoad_Roundtrip(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "ubuild", "config.yaml"))

	in := &domain.Settings{
		Projects: []domain.Project{
			{Name: "Foo", Path: "/games/Foo/Foo.uproject"},
			{Name: "Bar", Path: "/games/Bar/Bar.uproject"},
		},
		EnginePath:      "/opt/UE_5.4",
		SelectedProject: "Foo",
		Platform:        "Linux",
		Configuration:   "Shipping",
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_Save_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deeply", "nested", "config.yaml")
	store := config.NewStoreAt(path)

	require.NoError(t, store.Save(&domain.Settings{EnginePath: "/opt/UE_5.4"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_Load_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [unclosed"), 0o644))

	store := config.NewStoreAt(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestStore_Load_UnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored for root")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: []"), 0o000))

	store := config.NewStoreAt(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestStore_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.Equal(t, path, config.NewStoreAt(path).Path())
}
