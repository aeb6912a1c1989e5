package hostenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/internal/core/ports"
)

// NodeID is the unique identifier for the environment prober Graft node.
const NodeID graft.ID = "adapter.env_prober"

func init() {
	graft.Register(graft.Node[ports.EnvProber]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvProber, error) {
			return NewProber(), nil
		},
	})
}
