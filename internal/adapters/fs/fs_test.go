package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/adapters/fs"
	"go.trai.ch/canopy/internal/core/domain"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected []any
	}{
		{
			name:    "json list",
			file:    "tree.json",
			content: `[{"id": 1, "name": "a", "children": [{"id": "b"}]}]`,
			expected: []any{
				map[string]any{"id": float64(1), "name": "a", "children": []any{map[string]any{"id": "b"}}},
			},
		},
		{
			name:     "json object",
			file:     "tree.json",
			content:  `{"id": "root"}`,
			expected: []any{map[string]any{"id": "root"}},
		},
		{
			name:    "yaml list",
			file:    "tree.yaml",
			content: "- id: a\n  children:\n    - id: b\n",
			expected: []any{
				map[string]any{"id": "a", "children": []any{map[string]any{"id": "b"}}},
			},
		},
		{
			name:     "yaml non-string keys",
			file:     "tree.yml",
			content:  "- 1: one\n",
			expected: []any{map[string]any{"1": "one"}},
		},
		{
			name:     "empty",
			file:     "tree.json",
			content:  "  \n",
			expected: []any{},
		},
		{
			name:     "null",
			file:     "tree.json",
			content:  "null",
			expected: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.Decode(tt.file, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := fs.Decode("tree.json", []byte(`[{"id":`))
	require.ErrorIs(t, err, domain.ErrDataSourceRead)

	_, err = fs.Decode("tree.json", []byte(`"scalar"`))
	require.ErrorIs(t, err, domain.ErrDataSourceRead)
}

func TestFile_Nodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	write(t, path, "- id: a\n- id: b\n")

	source := &fs.File{Path: path}
	nodes, err := source.Nodes(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	missing := &fs.File{Path: filepath.Join(dir, "missing.json")}
	_, err = missing.Nodes(context.Background())
	require.ErrorIs(t, err, domain.ErrDataSourceRead)
}

func TestChildrenDir_LoadChildren(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.json"), `[{"id": "a1"}, {"id": "a2"}]`)
	write(t, filepath.Join(dir, "b.yml"), "- id: b1\n")
	write(t, filepath.Join(dir, "broken.json"), `{`)

	loader := &fs.ChildrenDir{Dir: dir}
	load := func(id string) ([]any, error) {
		return loader.LoadChildren(context.Background(), domain.LoadRequest{ID: domain.NewNodeID(id)})
	}

	children, err := load("a")
	require.NoError(t, err)
	assert.Len(t, children, 2)

	children, err = load("b")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "b1"}}, children)

	children, err = load("none")
	require.NoError(t, err)
	assert.NotNil(t, children)
	assert.Empty(t, children)

	_, err = load("broken")
	require.ErrorIs(t, err, domain.ErrDataSourceRead)

	for _, id := range []string{"../a", "x/y", ".."} {
		_, err = load(id)
		require.ErrorIs(t, err, domain.ErrDataSourceRead, id)
	}
}

func TestChildrenDir_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &fs.ChildrenDir{Dir: t.TempDir()}
	_, err := loader.LoadChildren(ctx, domain.LoadRequest{ID: domain.NewNodeID("a")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDirTree(t *testing.T) {
	// root/
	//   .git/config
	//   node_modules/pkg.js
	//   src/main.go
	//   README.md
	//   build/
	root := t.TempDir()
	write(t, filepath.Join(root, ".git", "config"), "git config")
	write(t, filepath.Join(root, "node_modules", "pkg.js"), "")
	write(t, filepath.Join(root, "src", "main.go"), "package main")
	write(t, filepath.Join(root, "README.md"), "# Readme")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build"), 0o750))

	tree := &fs.DirTree{Root: root, Ignores: []string{"node_modules"}}

	nodes, err := tree.Nodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"id": "build", "name": "build", "hasChildren": true, "type": fs.TypeDir},
		map[string]any{"id": "src", "name": "src", "hasChildren": true, "type": fs.TypeDir},
		map[string]any{"id": "README.md", "name": "README.md", "hasChildren": false, "type": fs.TypeFile},
	}, nodes)

	children, err := tree.LoadChildren(context.Background(), domain.LoadRequest{ID: domain.NewNodeID("src")})
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"id": "src/main.go", "name": "main.go", "hasChildren": false, "type": fs.TypeFile},
	}, children)

	_, err = tree.LoadChildren(context.Background(), domain.LoadRequest{ID: domain.NewNodeID("../etc")})
	require.ErrorIs(t, err, domain.ErrDataSourceRead)
}

func TestDirTree_FieldNames(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "")

	tree := &fs.DirTree{Root: root, Fields: domain.FieldNames{ID: "key", Display: "title"}}
	nodes, err := tree.Nodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"key": "a.txt", "title": "a.txt", "hasChildren": false, "type": fs.TypeFile},
	}, nodes)
}

func TestOpener_Open(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "tree.json")
	write(t, data, `[]`)

	opener := fs.NewOpener(nil)

	t.Run("file without children", func(t *testing.T) {
		source, loader, err := opener.Open(&domain.Config{DataPath: data})
		require.NoError(t, err)
		assert.IsType(t, &fs.File{}, source)
		assert.Nil(t, loader)
	})

	t.Run("file with children", func(t *testing.T) {
		source, loader, err := opener.Open(&domain.Config{DataPath: data, ChildrenDir: dir})
		require.NoError(t, err)
		assert.IsType(t, &fs.File{}, source)
		assert.IsType(t, &fs.ChildrenDir{}, loader)
	})

	t.Run("directory", func(t *testing.T) {
		source, loader, err := opener.Open(&domain.Config{DataPath: dir})
		require.NoError(t, err)
		assert.IsType(t, &fs.DirTree{}, source)
		assert.Same(t, source, loader)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := opener.Open(&domain.Config{DataPath: filepath.Join(dir, "nope.json")})
		require.ErrorIs(t, err, domain.ErrDataSourceRead)
	})
}

func TestFile_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"tree.json", "tree.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			write(t, path, "[]")

			source := &fs.File{Path: path}
			nodes := []any{map[string]any{"id": "a", "children": []any{map[string]any{"id": "b"}}}}
			require.NoError(t, source.Save(context.Background(), nodes))

			got, err := source.Nodes(context.Background())
			require.NoError(t, err)
			assert.Equal(t, nodes, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file is removed")
		})
	}
}
