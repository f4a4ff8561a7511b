package ports

import "github.com/stellarforge/ubuild/internal/core/domain"

// ConfigStore persists user settings between runs.
//
//go:generate mockgen -source=config_store.go -destination=mocks/mock_config_store.go -package=mocks
type ConfigStore interface {
	// Load reads the settings, returning defaults if no file exists yet.
	Load() (*domain.Settings, error)

	// Save writes the settings, creating the config directory if needed.
	Save(settings *domain.Settings) error

	// Path returns the location of the settings file.
	Path() string
}
