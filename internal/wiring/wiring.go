// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/stellarforge/ubuild/internal/adapters/config"
	_ "github.com/stellarforge/ubuild/internal/adapters/detector"
	_ "github.com/stellarforge/ubuild/internal/adapters/logger"
	_ "github.com/stellarforge/ubuild/internal/adapters/shell"
	_ "github.com/stellarforge/ubuild/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/stellarforge/ubuild/internal/app"
	_ "github.com/stellarforge/ubuild/internal/engine/orchestrator"
)
