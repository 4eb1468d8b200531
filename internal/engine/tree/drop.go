package tree

import (
	"context"
	"slices"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/zerr"
)

// DropPosition is an insertion point: Index within the children of Parent.
type DropPosition struct {
	Parent *Node
	Index  int
}

// Target converts the position to its id-based form.
func (p DropPosition) Target() domain.DropTarget {
	var parent domain.NodeID
	if p.Parent != nil && !p.Parent.virtual {
		parent = p.Parent.id
	}
	return domain.DropTarget{Parent: parent, Index: p.Index}
}

// Drop is the data passed to the drop action handler.
type Drop struct {
	// From is the dragged element: a *Node for moves within a tree, or any host value.
	From any
	To   DropPosition
}

// DropEvent is a drop reported by the host's drag-and-drop layer.
type DropEvent struct {
	// Event is the raw host event.
	Event any
	// Element is the dragged element.
	Element any
}

// DropSlot is an insertion point at an explicit index among a node's children.
type DropSlot struct {
	node  *Node
	index int
}

// DropSlot returns the insertion point at index among the node's children.
func (n *Node) DropSlot(index int) DropSlot {
	return DropSlot{node: n, index: index}
}

// Node returns the node owning the slot.
func (s DropSlot) Node() *Node { return s.node }

// Index returns the insertion index.
func (s DropSlot) Index() int { return s.index }

func (s DropSlot) position() DropPosition {
	return DropPosition{Parent: s.node, Index: s.index}
}

// AllowDrop reports whether dragged may be dropped into the slot.
func (s DropSlot) AllowDrop(dragged any) bool {
	return s.node.tree.opts.AllowDrop(dragged, s.position())
}

// OnDrop dispatches the drop action for the slot. Drops the policy rejects are
// ignored.
func (s DropSlot) OnDrop(ctx context.Context, ev DropEvent) error {
	if !s.AllowDrop(ev.Element) {
		s.node.tree.opts.Logger.Debug("drop rejected", "node_id", s.node.id.String(), "index", s.index)
		return nil
	}
	return s.node.MouseAction(ctx, domain.ActionDrop, ev.Event, Drop{From: ev.Element, To: s.position()})
}

// AllowDrag reports whether nodes may be dragged.
func (n *Node) AllowDrag() bool {
	return n.tree.opts.AllowDrag
}

// AllowDrop reports whether dragged may be dropped as the node's first child.
func (n *Node) AllowDrop(dragged any) bool {
	return n.DropSlot(0).AllowDrop(dragged)
}

// OnDrop dispatches the drop action with the node's first child position as target.
func (n *Node) OnDrop(ctx context.Context, ev DropEvent) error {
	return n.DropSlot(0).OnDrop(ctx, ev)
}

// MoveNode moves node to the given position, updating both the nodes and the
// children arrays of the host data. Moving a node onto its current position does
// nothing; moving it below itself fails with domain.ErrInvalidDrop.
func (t *Tree) MoveNode(node *Node, to DropPosition) error {
	if node == nil || node.virtual || node.tree != t || to.Parent == nil || to.Parent.tree != t {
		return zerr.Wrap(domain.ErrInvalidDrop, "cannot move node outside of its tree")
	}
	if to.Parent.IsDescendantOf(node) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidDrop, "cannot move node into itself"),
			"node_id", node.id.String()), "parent_id", to.Parent.id.String())
	}

	t.mu.Lock()
	from, fromIndex := node.parent, node.index
	if from == to.Parent && (to.Index == fromIndex || to.Index == fromIndex+1) {
		t.mu.Unlock()
		return nil
	}

	from.children = slices.Delete(slices.Clone(from.children), fromIndex, fromIndex+1)
	toIndex := to.Index
	if from == to.Parent && toIndex > fromIndex {
		toIndex--
	}
	toIndex = min(max(toIndex, 0), len(to.Parent.children))
	to.Parent.children = slices.Insert(slices.Clone(to.Parent.children), toIndex, node)
	to.Parent.loaded = true
	node.parent = to.Parent

	renumber(from)
	renumber(to.Parent)
	t.writeChildrenLocked(from)
	t.writeChildrenLocked(to.Parent)
	t.invalidateLocked(from)
	t.invalidateLocked(to.Parent)
	t.mu.Unlock()

	target := DropPosition{Parent: to.Parent, Index: toIndex}.Target()
	t.opts.Logger.Debug("node moved", "node_id", node.id.String(),
		"parent_id", target.Parent.String(), "index", toIndex)
	t.publish(domain.Event{Name: domain.EventMoveNode, Node: node.id, To: target})
	return nil
}

func renumber(n *Node) {
	for i, c := range n.children {
		c.index = i
	}
}
