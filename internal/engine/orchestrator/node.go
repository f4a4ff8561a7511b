package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/stellarforge/ubuild/internal/adapters/shell"
	"github.com/stellarforge/ubuild/internal/adapters/telemetry"
	"github.com/stellarforge/ubuild/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			launcher, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(launcher, tracer), nil
		},
	})
}
