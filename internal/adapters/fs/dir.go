package fs

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
)

const (
	// TypeKey holds the entry kind of directory tree nodes.
	TypeKey = "type"
	// TypeDir marks a directory node.
	TypeDir = "dir"
	// TypeFile marks a file node.
	TypeFile = "file"
)

// DirTree presents a directory as tree data. It is both the data source for the top
// level entries and the child loader for subdirectories, which are loaded lazily.
// Node ids are slash separated paths relative to Root.
type DirTree struct {
	Root    string
	Ignores []string
	Fields  domain.FieldNames
	Logger  ports.Logger
}

// Nodes lists the entries of Root.
func (d *DirTree) Nodes(ctx context.Context) ([]any, error) {
	return d.list(ctx, "")
}

// LoadChildren lists the entries of the directory named by the node id.
func (d *DirTree) LoadChildren(ctx context.Context, req domain.LoadRequest) ([]any, error) {
	rel := req.ID.String()
	if !fs.ValidPath(rel) {
		return nil, readErr(fs.ErrInvalid, "node id is not a path below the root", rel)
	}
	return d.list(ctx, rel)
}

func (d *DirTree) list(ctx context.Context, rel string) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(d.Root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, readErr(err, "failed to read directory", dir)
	}

	entries = slices.DeleteFunc(entries, d.skip)
	// Directories first, each group by name.
	slices.SortStableFunc(entries, func(a, b fs.DirEntry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	})

	fields := d.Fields.WithDefaults()
	nodes := make([]any, 0, len(entries))
	for _, e := range entries {
		kind := TypeFile
		if e.IsDir() {
			kind = TypeDir
		}
		nodes = append(nodes, map[string]any{
			fields.ID:          path.Join(rel, e.Name()),
			fields.Display:     e.Name(),
			fields.HasChildren: e.IsDir(),
			TypeKey:            kind,
		})
	}

	if d.Logger != nil {
		d.Logger.Debug("listed directory", "path", dir, "entries", len(nodes))
	}
	return nodes, nil
}

// skip reports whether an entry is hidden from the tree: VCS metadata directories
// and anything matching one of the ignore patterns.
func (d *DirTree) skip(e fs.DirEntry) bool {
	name := e.Name()
	if e.IsDir() && (name == ".git" || name == ".jj") {
		return true
	}
	for _, ignore := range d.Ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
