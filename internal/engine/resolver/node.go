package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/internal/adapters/index"
	"go.trai.ch/pinset/internal/adapters/logger"
	"go.trai.ch/pinset/internal/adapters/reqfile"
	"go.trai.ch/pinset/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{index.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			idx, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(idx, log, reqfile.ParseLine), nil
		},
	})
}
