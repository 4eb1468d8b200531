// Package tree implements the node model of a tree widget: construction from host
// data, traversal, expansion and activation state, filtering, geometry for virtual
// scrolling, drag-and-drop policy and mouse action dispatch.
package tree

import (
	"iter"
	"sync"

	"go.trai.ch/canopy/internal/core/domain"
	"golang.org/x/sync/singleflight"
)

// Tree owns the nodes built from host data and the state shared by all of them.
type Tree struct {
	opts  Options
	state *store

	// mu serializes structural mutation and geometry cache access.
	mu       sync.Mutex
	root     *Node
	rootData []any
	index    map[domain.NodeID]*Node
	gen      uint64

	loads singleflight.Group
}

// New builds a tree over the given top-level node data.
func New(roots []any, opts Options) *Tree {
	t := &Tree{
		opts:  opts.withDefaults(),
		state: newStore(),
		index: make(map[domain.NodeID]*Node),
		gen:   1,
	}
	t.root = &Node{
		data:    map[string]any{"virtual": true},
		tree:    t,
		virtual: true,
	}
	t.SetData(roots)
	return t
}

// SetData replaces the top-level node data and rebuilds every node.
// State held by id survives, so nodes that keep their ids keep their flags.
// Nodes whose children come from the loader are rebuilt unloaded and collapsed.
func (t *Tree) SetData(roots []any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rootData = roots
	t.materializeLocked(t.root, roots)
	if t.opts.ChildLoader == nil {
		return
	}

	stack := append([]*Node(nil), t.root.children...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.loaded && n.HasChildren() {
			t.state.setExpanded(n.id, false)
		}
		stack = append(stack, n.children...)
	}
}

// Data returns the top-level node data. Moves rewrite the children arrays in
// place, so the result reflects the current structure.
func (t *Tree) Data() []any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rootData
}

// Options returns the resolved options.
func (t *Tree) Options() Options {
	return t.opts
}

// Root returns the virtual root. It is never rendered; its children are the roots.
func (t *Tree) Root() *Node {
	return t.root
}

// Roots returns the top-level nodes.
func (t *Tree) Roots() []*Node {
	return t.root.children
}

// GetNodeByID resolves a node id.
func (t *Tree) GetNodeByID(id domain.NodeID) (*Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.index[id]
	return n, ok
}

// FocusedNode returns the focused node, or nil.
func (t *Tree) FocusedNode() *Node {
	id := t.state.focusedID()
	if id.IsZero() {
		return nil
	}
	n, _ := t.GetNodeByID(id)
	return n
}

// ActiveNodes returns the active nodes ordered by id.
func (t *Tree) ActiveNodes() []*Node {
	return t.resolveAll(t.state.ids(t.state.active))
}

// ExpandedIDs returns the ids of expanded nodes ordered by id.
func (t *Tree) ExpandedIDs() []domain.NodeID {
	return t.state.ids(t.state.expanded)
}

// HasFocus reports whether the tree holds the input focus.
func (t *Tree) HasFocus() bool {
	return t.state.hasInputFocus()
}

// SetFocus sets or clears the tree input focus.
func (t *Tree) SetFocus(v bool) {
	t.state.setInputFocus(v)
}

func (t *Tree) resolveAll(ids []domain.NodeID) []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := t.index[id]; ok {
			res = append(res, n)
		}
	}
	return res
}

// resolve accepts a *Node, a NodeID or an id string.
func (t *Tree) resolve(v any) (*Node, bool) {
	switch n := v.(type) {
	case *Node:
		return n, n != nil && n.tree == t
	default:
		id, ok := domain.NodeIDFromValue(v)
		if !ok {
			return nil, false
		}
		return t.GetNodeByID(id)
	}
}

// Walk yields every materialized node in pre-order, regardless of expansion and
// visibility. The virtual root is not yielded.
func (t *Tree) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := reversed(t.root.children)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			stack = append(stack, reversed(n.children)...)
		}
	}
}

// VisibleNodes yields the nodes in display order: expanded subtrees only, hidden
// nodes skipped.
func (t *Tree) VisibleNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := t.FirstVisible(); n != nil; n = n.FindNextNode(true, true) {
			if !yield(n) {
				return
			}
		}
	}
}

// FirstVisible returns the first node in display order.
func (t *Tree) FirstVisible() *Node {
	return t.root.GetFirstChild(true)
}

// LastVisible returns the last node in display order.
func (t *Tree) LastVisible() *Node {
	last := t.root.GetLastChild(true)
	if last == nil {
		return nil
	}
	return last.lastOpenDescendant(true)
}

// FilterNodes filters every root. See Node.Filter.
func (t *Tree) FilterNodes(pred func(*Node) bool, autoShow bool) {
	for _, n := range t.Roots() {
		n.Filter(pred, autoShow)
	}
}

// ClearFilter shows every node.
func (t *Tree) ClearFilter() {
	for _, n := range t.Roots() {
		n.ClearFilter()
	}
}

func reversed(nodes []*Node) []*Node {
	res := make([]*Node, len(nodes))
	for i, n := range nodes {
		res[len(nodes)-1-i] = n
	}
	return res
}
