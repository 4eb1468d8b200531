package tree

// geometry caches derived heights and positions. Heights are valid while
// heightOK holds; positions are valid for the tree generation they were
// computed in.
type geometry struct {
	heightOK bool
	self     int
	children int

	relGen uint64
	rel    int
	posGen uint64
	pos    int
}

// invalidateLocked drops the cached heights of n and its ancestors and every
// cached position.
func (t *Tree) invalidateLocked(n *Node) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.geo.heightOK = false
	}
	t.gen++
}

func (t *Tree) invalidate(n *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.invalidateLocked(n)
}

// InvalidateHeights drops every cached height and position. Call it when the
// output of the height function changes.
func (t *Tree) InvalidateHeights() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root.geo.heightOK = false
	for n := range t.Walk() {
		n.geo.heightOK = false
	}
	t.gen++
}

// SelfHeight returns the height of the node's own row. The virtual root has none.
func (n *Node) SelfHeight() int {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	n.ensureHeightLocked()
	return n.geo.self
}

// ChildrenHeight returns the summed height of the visible children when the node
// is expanded, and 0 otherwise.
func (n *Node) ChildrenHeight() int {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	n.ensureHeightLocked()
	return n.geo.children
}

// Height returns the height of the node's subtree.
func (n *Node) Height() int {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	n.ensureHeightLocked()
	return n.geo.self + n.geo.children
}

// RelativePosition returns the offset of the node below its parent's row.
func (n *Node) RelativePosition() int {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	return n.relativePositionLocked()
}

// Position returns the absolute vertical offset of the node.
func (n *Node) Position() int {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	return n.positionLocked()
}

func (n *Node) ensureHeightLocked() {
	if n.geo.heightOK {
		return
	}
	self := 0
	if !n.virtual {
		self = n.tree.opts.NodeHeight(n)
	}
	children := 0
	if n.IsExpanded() {
		for _, c := range n.children {
			if c.IsHidden() {
				continue
			}
			c.ensureHeightLocked()
			children += c.geo.self + c.geo.children
		}
	}
	n.geo.self, n.geo.children, n.geo.heightOK = self, children, true
}

// relativePositionLocked fills the relative positions of every sibling up to n
// in one pass.
func (n *Node) relativePositionLocked() int {
	if n.virtual {
		return 0
	}
	gen := n.tree.gen
	if n.geo.relGen == gen {
		return n.geo.rel
	}
	acc := 0
	for _, s := range n.parent.children {
		s.geo.rel, s.geo.relGen = acc, gen
		if s == n {
			break
		}
		if !s.IsHidden() {
			s.ensureHeightLocked()
			acc += s.geo.self + s.geo.children
		}
	}
	return n.geo.rel
}

func (n *Node) positionLocked() int {
	if n.virtual {
		return 0
	}
	gen := n.tree.gen
	if n.geo.posGen == gen {
		return n.geo.pos
	}
	p := n.parent
	p.ensureHeightLocked()
	n.geo.pos = n.relativePositionLocked() + p.positionLocked() + p.geo.self
	n.geo.posGen = gen
	return n.geo.pos
}

// NodeAt returns the visible node whose own row covers offset, or nil.
func (t *Tree) NodeAt(offset int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	if offset < 0 {
		return nil
	}
	cur := t.root
	for {
		var next *Node
		if cur.IsExpanded() {
			for _, c := range cur.children {
				if c.IsHidden() {
					continue
				}
				top := c.positionLocked()
				c.ensureHeightLocked()
				if offset >= top && offset < top+c.geo.self+c.geo.children {
					next = c
					break
				}
			}
		}
		if next == nil {
			return nil
		}
		if offset < next.positionLocked()+next.geo.self {
			return next
		}
		cur = next
	}
}

// TotalHeight returns the height of everything in display order.
func (t *Tree) TotalHeight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root.ensureHeightLocked()
	return t.root.geo.children
}
