package fs

import (
	"os"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
)

// Opener selects the data source and child loader for a configuration.
type Opener struct {
	Logger ports.Logger
}

// NewOpener creates a new Opener.
func NewOpener(logger ports.Logger) *Opener {
	return &Opener{Logger: logger}
}

// Open returns the data source for cfg.DataPath and the child loader for lazy nodes.
// A directory is browsed as a DirTree; a file is decoded as node data with children
// from cfg.ChildrenDir. The loader is nil when lazy loading is not configured.
func (o *Opener) Open(cfg *domain.Config) (ports.DataSource, ports.ChildLoader, error) {
	info, err := os.Stat(cfg.DataPath)
	if err != nil {
		return nil, nil, readErr(err, "failed to open tree data", cfg.DataPath)
	}

	if info.IsDir() {
		tree := &DirTree{Root: cfg.DataPath, Ignores: cfg.Ignores, Fields: cfg.Fields, Logger: o.Logger}
		return tree, tree, nil
	}

	source := &File{Path: cfg.DataPath, Logger: o.Logger}
	if cfg.ChildrenDir == "" {
		return source, nil, nil
	}
	return source, &ChildrenDir{Dir: cfg.ChildrenDir, Logger: o.Logger}, nil
}
