package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/stellarforge/ubuild/internal/core/ports"
)

// NodeID is the unique identifier for the engine detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.EngineDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EngineDetector, error) {
			return NewDetector(), nil
		},
	})
}
