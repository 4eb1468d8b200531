package fs

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
)

// File is a data source backed by a single JSON or YAML file.
type File struct {
	Path   string
	Logger ports.Logger
}

// Nodes reads and decodes the file on every call.
func (f *File) Nodes(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, readErr(err, "failed to read tree data", f.Path)
	}

	nodes, err := Decode(f.Path, raw)
	if err != nil {
		return nil, err
	}

	if f.Logger != nil {
		f.Logger.Debug("loaded tree data", "path", f.Path, "nodes", len(nodes))
	}
	return nodes, nil
}

// Save writes nodes back to the file, replacing it atomically.
func (f *File) Save(ctx context.Context, nodes []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := Encode(f.Path, nodes)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".canopy-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tree data"), "path", f.Path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write tree data"), "path", f.Path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tree data"), "path", f.Path)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace tree data"), "path", f.Path)
	}

	if f.Logger != nil {
		f.Logger.Debug("saved tree data", "path", f.Path, "nodes", len(nodes))
	}
	return nil
}
