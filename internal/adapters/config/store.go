// Package config persists user settings as YAML under the user config
// directory.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/stellarforge/ubuild/internal/core/domain"
)

const (
	dirName  = "ubuild"
	fileName = "config.yaml"
)

// Store implements ports.ConfigStore with a single YAML file.
type Store struct {
	path string
}

// NewStore creates a store rooted at the platform user config directory.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to locate user config directory")
	}
	return &Store{path: filepath.Join(base, dirName, fileName)}, nil
}

// NewStoreAt creates a store with an explicit file path. Used by tests.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings. A missing file yields empty defaults rather
// than an error, so a fresh install works without setup.
func (s *Store) Load() (*domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.Settings{}, nil
	}
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", s.path)
	}

	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", s.path)
	}
	return &settings, nil
}

// Save writes the settings, creating the config directory if needed.
func (s *Store) Save(settings *domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", s.path)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.Join(domain.ErrConfigWriteFailed, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", s.path)
	}
	return nil
}
