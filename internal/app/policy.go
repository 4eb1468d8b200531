package app

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

// dataValue reads an arbitrary key from map-shaped node data.
func dataValue(n *tree.Node, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	m, ok := n.Data().(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// nodeHeight returns cfg.NodeHeight, overridden per value of cfg.HeightField.
func nodeHeight(cfg *domain.Config) tree.HeightFunc {
	return func(n *tree.Node) int {
		if v, ok := dataValue(n, cfg.HeightField); ok {
			if s, ok := v.(string); ok {
				if h, ok := cfg.Heights[s]; ok {
					return h
				}
			}
		}
		return cfg.NodeHeight
	}
}

func nodeClass(cfg *domain.Config) tree.NodeClassFunc {
	return func(n *tree.Node) string {
		if v, ok := dataValue(n, cfg.ClassField); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
}

// dropPolicy rejects drops of a node into its own subtree and, when configured,
// drops in front of the first top-level node.
func dropPolicy(cfg *domain.Config) tree.AllowDropFunc {
	return func(dragged any, to tree.DropPosition) bool {
		if to.Parent == nil {
			return false
		}
		if n, ok := dragged.(*tree.Node); ok && to.Parent.IsDescendantOf(n) {
			return false
		}
		if cfg.DenyRootIndexZero && to.Parent.IsVirtual() && to.Index == 0 {
			return false
		}
		return true
	}
}

// Matcher returns the filter predicate for query: a case-insensitive substring
// match on the node label, or a fuzzy match.
func Matcher(fuzzyMatch bool) func(query string, n *tree.Node) bool {
	if fuzzyMatch {
		return func(query string, n *tree.Node) bool {
			return len(fuzzy.Find(query, []string{n.String()})) > 0
		}
	}
	return func(query string, n *tree.Node) bool {
		return strings.Contains(strings.ToLower(n.String()), strings.ToLower(query))
	}
}
