package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/internal/adapters/config"
	"go.trai.ch/pinset/internal/adapters/fs"
	"go.trai.ch/pinset/internal/adapters/hostenv"
	"go.trai.ch/pinset/internal/adapters/lockstore"
	"go.trai.ch/pinset/internal/adapters/logger"
	"go.trai.ch/pinset/internal/adapters/reqfile"
	"go.trai.ch/pinset/internal/adapters/watcher"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/pinset/internal/engine/resolver"
)

// NodeID is the unique identifier for the App Graft node.
const NodeID graft.ID = "app"

// ComponentsNodeID is the unique identifier for the Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

// Components aggregates the top-level objects the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			reqfile.NodeID,
			reqfile.WriterNodeID,
			lockstore.NodeID,
			fs.HasherNodeID,
			hostenv.NodeID,
			watcher.NodeID,
			resolver.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			manifestLoader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			manifestWriter, err := graft.Dep[ports.ManifestWriter](ctx)
			if err != nil {
				return nil, err
			}
			lockStore, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			envProber, err := graft.Dep[ports.EnvProber](ctx)
			if err != nil {
				return nil, err
			}
			fileWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(configLoader, manifestLoader, manifestWriter, lockStore, hasher, envProber, fileWatcher, res, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
