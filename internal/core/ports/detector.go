package ports

import "github.com/stellarforge/ubuild/internal/core/domain"

// EngineDetector discovers Unreal Engine installations on this machine.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type EngineDetector interface {
	// Detect returns the discovered installations, deduplicated and
	// sorted by version descending.
	Detect() []domain.EngineInstall
}
