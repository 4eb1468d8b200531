package tree

import (
	"fmt"
	"strconv"

	"go.trai.ch/canopy/internal/core/domain"
)

// ChildrenState distinguishes unloaded children from loaded ones.
type ChildrenState int

const (
	// ChildrenUnloaded means the data carries no children field yet.
	ChildrenUnloaded ChildrenState = iota
	// ChildrenEmpty means children were loaded and there are none.
	ChildrenEmpty
	// ChildrenLoaded means at least one child was materialized.
	ChildrenLoaded
)

// Node is a view over one unit of host data and its position in the tree.
// Expansion, activation, visibility and focus live in the tree, keyed by id.
type Node struct {
	data     any
	id       domain.NodeID
	index    int
	parent   *Node
	tree     *Tree
	children []*Node
	loaded   bool
	virtual  bool

	geo geometry
}

// materializeLocked replaces parent's children with nodes built from raw.
// Grandchildren present in the data are built as well, breadth first.
func (t *Tree) materializeLocked(parent *Node, raw []any) {
	t.unregisterLocked(parent.children)

	type pending struct {
		node *Node
		raw  []any
	}
	queue := []pending{{node: parent, raw: raw}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		children := make([]*Node, len(p.raw))
		for i, data := range p.raw {
			c := t.newNodeLocked(data, p.node, i)
			children[i] = c
			if kids, ok := t.childrenData(c); ok {
				queue = append(queue, pending{node: c, raw: kids})
			}
		}
		p.node.children = children
		p.node.loaded = true
	}
	t.invalidateLocked(parent)
}

func (t *Tree) newNodeLocked(data any, parent *Node, index int) *Node {
	n := &Node{
		data:   data,
		parent: parent,
		tree:   t,
		index:  index,
	}
	id, ok := domain.NodeIDFromValue(n.field(domain.FieldID))
	if !ok {
		id = t.generateIDLocked(parent.id, index, n.DisplayField())
		t.opts.Accessor.Set(data, domain.FieldID, id.String())
	}
	n.id = id
	t.index[id] = n
	return n
}

// generateIDLocked asks the generator for an id no registered node uses. Retries
// vary the display input so deterministic generators move on as well.
func (t *Tree) generateIDLocked(parent domain.NodeID, index int, display string) domain.NodeID {
	id := t.opts.IDs.NextID(parent, index, display)
	for attempt := 1; t.index[id] != nil; attempt++ {
		id = t.opts.IDs.NextID(parent, index, display+"#"+strconv.Itoa(attempt))
	}
	return id
}

func (t *Tree) unregisterLocked(nodes []*Node) {
	stack := append([]*Node(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.index[n.id] == n {
			delete(t.index, n.id)
		}
		stack = append(stack, n.children...)
	}
}

func (t *Tree) childrenData(n *Node) ([]any, bool) {
	if n.virtual {
		return t.rootData, true
	}
	v, ok := t.opts.Accessor.Get(n.data, domain.FieldChildren)
	if !ok {
		return nil, false
	}
	return asSlice(v)
}

// writeChildrenLocked stores the data of n's children back into n's data.
func (t *Tree) writeChildrenLocked(n *Node) {
	raw := make([]any, len(n.children))
	for i, c := range n.children {
		raw[i] = c.data
	}
	if n.virtual {
		t.rootData = raw
		return
	}
	t.opts.Accessor.Set(n.data, domain.FieldChildren, raw)
}

func (n *Node) field(f domain.Field) any {
	v, _ := n.tree.opts.Accessor.Get(n.data, f)
	return v
}

// GetField reads a logical field from the node data.
func (n *Node) GetField(f domain.Field) (any, bool) {
	return n.tree.opts.Accessor.Get(n.data, f)
}

// SetField writes a logical field into the node data. Writing the id field
// re-registers the node under its new id. Writing the children field does not
// rebuild child nodes; use SetChildren for that.
func (n *Node) SetField(f domain.Field, v any) {
	n.tree.opts.Accessor.Set(n.data, f, v)
	if f != domain.FieldID {
		return
	}
	id, ok := domain.NodeIDFromValue(v)
	if !ok || id == n.id {
		return
	}
	t := n.tree
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.index[n.id] == n {
		delete(t.index, n.id)
	}
	n.id = id
	t.index[id] = n
}

// ID returns the node id.
func (n *Node) ID() domain.NodeID { return n.id }

// Data returns the host data backing the node.
func (n *Node) Data() any { return n.data }

// Index returns the position of the node among its siblings.
func (n *Node) Index() int { return n.index }

// Parent returns the parent node. Top-level nodes return the virtual root.
func (n *Node) Parent() *Node { return n.parent }

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

// Options returns the options of the owning tree.
func (n *Node) Options() Options { return n.tree.opts }

// Context returns the host context value from the options.
func (n *Node) Context() any { return n.tree.opts.Context }

// Children returns the materialized children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ChildrenState reports whether children are unloaded, loaded and empty, or loaded.
func (n *Node) ChildrenState() ChildrenState {
	switch {
	case !n.loaded:
		return ChildrenUnloaded
	case len(n.children) == 0:
		return ChildrenEmpty
	default:
		return ChildrenLoaded
	}
}

// VisibleChildren returns the children that are not hidden.
func (n *Node) VisibleChildren() []*Node {
	res := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if !c.IsHidden() {
			res = append(res, c)
		}
	}
	return res
}

// DisplayField returns the display label, or an empty string.
func (n *Node) DisplayField() string {
	v, ok := n.GetField(domain.FieldDisplay)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Level returns the depth of the node. The virtual root is level 0.
func (n *Node) Level() int {
	level := 0
	for p := n.parent; p != nil; p = p.parent {
		level++
	}
	return level
}

// Path returns the ids from the top-level ancestor down to the node.
func (n *Node) Path() []domain.NodeID {
	var path []domain.NodeID
	for cur := n; cur != nil && !cur.virtual; cur = cur.parent {
		path = append(path, cur.id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsHidden reports whether a filter hides the node.
func (n *Node) IsHidden() bool {
	return !n.virtual && n.tree.state.isHidden(n.id)
}

// IsExpanded reports whether the node is expanded. The virtual root always is.
func (n *Node) IsExpanded() bool {
	return n.virtual || n.tree.state.isExpanded(n.id)
}

// IsCollapsed is the negation of IsExpanded.
func (n *Node) IsCollapsed() bool { return !n.IsExpanded() }

// IsActive reports whether the node is active.
func (n *Node) IsActive() bool {
	return !n.virtual && n.tree.state.isActive(n.id)
}

// IsFocused reports whether the node holds the tree focus.
func (n *Node) IsFocused() bool {
	return !n.virtual && n.tree.state.focusedID() == n.id
}

// HasChildren reports whether the data declares children or children are loaded.
func (n *Node) HasChildren() bool {
	return truthy(n.GetField(domain.FieldHasChildren)) || len(n.children) > 0
}

// IsLeaf is the negation of HasChildren.
func (n *Node) IsLeaf() bool { return !n.HasChildren() }

// IsRoot reports whether the node is a top-level node.
func (n *Node) IsRoot() bool {
	return n.parent != nil && n.parent.virtual
}

// IsVirtual reports whether the node is the virtual root.
func (n *Node) IsVirtual() bool { return n.virtual }

// RealParent returns the parent, or nil for top-level nodes.
func (n *Node) RealParent() *Node {
	if n.parent == nil || n.parent.virtual {
		return nil
	}
	return n.parent
}

// Padding returns the indentation of the node.
func (n *Node) Padding() int {
	return n.tree.opts.LevelPadding * (n.Level() - 1)
}

// Class returns the presentation class computed by the options.
func (n *Node) Class() string {
	return n.tree.opts.NodeClass(n)
}

// String returns the display label, falling back to the id.
func (n *Node) String() string {
	if label := n.DisplayField(); label != "" {
		return label
	}
	return n.id.String()
}
