package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/stellarforge/ubuild/internal/core/ports"
)

// NodeID is the unique identifier for the config store Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigStore, error) {
			return NewStore()
		},
	})
}
