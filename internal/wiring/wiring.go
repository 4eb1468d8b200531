// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/canopy/internal/adapters/config"
	_ "go.trai.ch/canopy/internal/adapters/events"
	_ "go.trai.ch/canopy/internal/adapters/fs"
	_ "go.trai.ch/canopy/internal/adapters/logger"
	_ "go.trai.ch/canopy/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/canopy/internal/app"
)
