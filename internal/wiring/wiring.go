// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pinset/internal/adapters/config"
	_ "go.trai.ch/pinset/internal/adapters/fs"
	_ "go.trai.ch/pinset/internal/adapters/hostenv"
	_ "go.trai.ch/pinset/internal/adapters/index"
	_ "go.trai.ch/pinset/internal/adapters/lockstore"
	_ "go.trai.ch/pinset/internal/adapters/logger"
	_ "go.trai.ch/pinset/internal/adapters/reqfile"
	_ "go.trai.ch/pinset/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/pinset/internal/app"
	_ "go.trai.ch/pinset/internal/engine/resolver"
)
