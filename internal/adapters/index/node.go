package index

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/internal/adapters/config"
	"go.trai.ch/pinset/internal/core/ports"
)

// NodeID is the unique identifier for the package index Graft node.
const NodeID graft.ID = "adapter.package_index"

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load(cwd)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg)
		},
	})
}
