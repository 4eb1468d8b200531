package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
)

var childExts = []string{".json", ".yaml", ".yml"}

// ChildrenDir loads lazy children from Dir/<id>.json, .yaml or .yml.
// A node without a children file has no children.
type ChildrenDir struct {
	Dir    string
	Logger ports.Logger
}

// LoadChildren implements ports.ChildLoader.
func (c *ChildrenDir) LoadChildren(ctx context.Context, req domain.LoadRequest) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := req.ID.String()
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrDataSourceRead, "node id cannot name a children file"),
			"node_id", id,
		)
	}

	for _, ext := range childExts {
		path := filepath.Join(c.Dir, id+ext)
		raw, err := os.ReadFile(path) //nolint:gosec // Path is confined to the children directory
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, readErr(err, "failed to read children", path)
		}

		children, err := Decode(path, raw)
		if err != nil {
			return nil, err
		}
		if c.Logger != nil {
			c.Logger.Debug("loaded children", "node_id", id, "path", path, "children", len(children))
		}
		return children, nil
	}

	return []any{}, nil
}
