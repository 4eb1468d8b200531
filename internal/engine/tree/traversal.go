package tree

// FindAdjacentSibling returns the sibling steps positions away, or nil.
// With skipHidden, only visible siblings are counted, starting from the node's
// own position, so the lookup also works from a hidden node.
func (n *Node) FindAdjacentSibling(steps int, skipHidden bool) *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children

	if !skipHidden {
		i := n.index + steps
		if i < 0 || i >= len(siblings) {
			return nil
		}
		return siblings[i]
	}

	if steps == 0 {
		if n.IsHidden() {
			return nil
		}
		return n
	}
	dir := 1
	if steps < 0 {
		dir, steps = -1, -steps
	}
	for i := n.index + dir; i >= 0 && i < len(siblings); i += dir {
		if siblings[i].IsHidden() {
			continue
		}
		steps--
		if steps == 0 {
			return siblings[i]
		}
	}
	return nil
}

// FindNextSibling returns the next (visible) sibling, or nil.
func (n *Node) FindNextSibling(skipHidden bool) *Node {
	return n.FindAdjacentSibling(1, skipHidden)
}

// FindPreviousSibling returns the previous (visible) sibling, or nil.
func (n *Node) FindPreviousSibling(skipHidden bool) *Node {
	return n.FindAdjacentSibling(-1, skipHidden)
}

// GetFirstChild returns the first (visible) child, or nil.
func (n *Node) GetFirstChild(skipHidden bool) *Node {
	for _, c := range n.children {
		if !skipHidden || !c.IsHidden() {
			return c
		}
	}
	return nil
}

// GetLastChild returns the last (visible) child, or nil.
func (n *Node) GetLastChild(skipHidden bool) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if c := n.children[i]; !skipHidden || !c.IsHidden() {
			return c
		}
	}
	return nil
}

// FindNextNode returns the next node in display order, or nil after the last one.
// With goInside, an expanded node continues with its first child.
func (n *Node) FindNextNode(goInside, skipHidden bool) *Node {
	cur := n
	for cur != nil {
		if goInside && cur.IsExpanded() {
			if c := cur.GetFirstChild(skipHidden); c != nil {
				return c
			}
		}
		if s := cur.FindNextSibling(skipHidden); s != nil {
			return s
		}
		cur, goInside = cur.parent, false
	}
	return nil
}

// FindPreviousNode returns the previous node in display order. It is the inverse
// of FindNextNode; top-level nodes without a previous sibling return nil.
func (n *Node) FindPreviousNode(skipHidden bool) *Node {
	prev := n.FindPreviousSibling(skipHidden)
	if prev == nil {
		return n.RealParent()
	}
	return prev.lastOpenDescendant(skipHidden)
}

// lastOpenDescendant descends through last children while nodes are expanded.
func (n *Node) lastOpenDescendant(skipHidden bool) *Node {
	cur := n
	for cur.IsExpanded() {
		last := cur.GetLastChild(skipHidden)
		if last == nil {
			break
		}
		cur = last
	}
	return cur
}

// IsDescendantOf reports whether n is node or lies below it.
func (n *Node) IsDescendantOf(node *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == node {
			return true
		}
	}
	return false
}
