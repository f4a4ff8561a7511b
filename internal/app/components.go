package app

import (
	"github.com/stellarforge/ubuild/internal/core/ports"
	"github.com/stellarforge/ubuild/internal/engine/orchestrator"
)

// Components contains all the initialized application components.
// It is the root value resolved by the Graft dependency graph.
type Components struct {
	App          *App
	Logger       ports.Logger
	Store        ports.ConfigStore
	Detector     ports.EngineDetector
	Orchestrator *orchestrator.Orchestrator
}
