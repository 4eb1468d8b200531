// Package fs provides file system adapters that supply tree data.
package fs

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Decode parses node data. Files ending in .yaml or .yml are read as YAML, everything
// else as JSON. The document is either a list of nodes or a single node object.
// An empty document yields an empty list.
func Decode(name string, raw []byte) ([]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []any{}, nil
	}

	var doc any
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
		doc = normalize(doc)
	default:
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, readErr(err, "failed to decode tree data", name)
	}

	switch v := doc.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	default:
		return nil, zerr.With(
			zerr.Wrap(domain.ErrDataSourceRead, "tree data must be a list or an object"),
			"path", name,
		)
	}
}

// Encode renders node data in the format selected by the file extension.
func Encode(name string, nodes []any) ([]byte, error) {
	var raw []byte
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(nodes)
	default:
		raw, err = json.MarshalIndent(nodes, "", "  ")
		raw = append(raw, '\n')
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to encode tree data"), "path", name)
	}
	return raw, nil
}

// normalize converts the map[any]any values yaml produces for non-string keys.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

func readErr(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrDataSourceRead, err), msg), "path", path)
}
