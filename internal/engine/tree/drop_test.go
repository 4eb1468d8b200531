package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

func TestNode_AllowDrop(t *testing.T) {
	var calls []tree.DropPosition
	tr := sample(tree.Options{
		AllowDrop: func(_ any, to tree.DropPosition) bool {
			calls = append(calls, to)
			return to.Index != 0
		},
	})
	a := mustNode(t, tr, "A")

	assert.False(t, a.AllowDrop("x"))
	assert.True(t, a.DropSlot(2).AllowDrop("x"))
	require.Len(t, calls, 2)
	assert.Same(t, a, calls[0].Parent)
	assert.Equal(t, 0, calls[0].Index)
	assert.Equal(t, 2, calls[1].Index)
}

func TestNode_OnDrop_RejectedDoesNothing(t *testing.T) {
	var dispatched []tree.Drop
	stub := func(_ context.Context, _ *tree.Tree, _ *tree.Node, _, data any) error {
		dispatched = append(dispatched, data.(tree.Drop))
		return nil
	}
	tr := sample(tree.Options{
		AllowDrop:     func(_ any, to tree.DropPosition) bool { return to.Index != 0 },
		ActionMapping: tree.ActionMapping{domain.ActionDrop: stub},
	})
	a := mustNode(t, tr, "A")
	e := mustNode(t, tr, "E")

	require.NoError(t, a.OnDrop(t.Context(), tree.DropEvent{Event: "raw", Element: e}))
	assert.Empty(t, dispatched)

	slot := a.DropSlot(1)
	assert.Same(t, a, slot.Node())
	assert.Equal(t, 1, slot.Index())
	require.NoError(t, slot.OnDrop(t.Context(), tree.DropEvent{Event: "raw", Element: e}))
	require.Len(t, dispatched, 1)
	assert.Same(t, e, dispatched[0].From)
	assert.Same(t, a, dispatched[0].To.Parent)
	assert.Equal(t, 1, dispatched[0].To.Index)

	assert.Equal(t, []string{"A", "E"}, ids(tr.Roots()), "stub handler leaves the tree untouched")
}

func TestNode_OnDrop_DefaultMovesNode(t *testing.T) {
	rec := &recorder{}
	tr := sample(tree.Options{Events: rec})
	a := mustNode(t, tr, "A")
	e := mustNode(t, tr, "E")

	require.NoError(t, a.OnDrop(t.Context(), tree.DropEvent{Element: e}))

	assert.Equal(t, []string{"E", "B", "C"}, ids(a.Children()))
	assert.Equal(t, []string{"A"}, ids(tr.Roots()))
	assert.Len(t, tr.Data(), 1)

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventMoveNode, events[0].Name)
	assert.Equal(t, domain.DropTarget{Parent: a.ID(), Index: 0}, events[0].To)
	assert.True(t, tr.HasFocus())
}

func TestTree_MoveNode(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")
	b := mustNode(t, tr, "B")
	e := mustNode(t, tr, "E")

	require.NoError(t, tr.MoveNode(e, tree.DropPosition{Parent: a, Index: 1}))
	assert.Equal(t, []string{"B", "E", "C"}, ids(a.Children()))
	assert.Equal(t, []any{"B", "E", "C"}, childIDs(a.Data()))
	assert.Equal(t, 2, e.Level())
	assert.Same(t, a, e.RealParent())
	for i, c := range a.Children() {
		assert.Equal(t, i, c.Index())
	}

	// Onto its own position: nothing happens.
	require.NoError(t, tr.MoveNode(b, tree.DropPosition{Parent: a, Index: 0}))
	require.NoError(t, tr.MoveNode(b, tree.DropPosition{Parent: a, Index: 1}))
	assert.Equal(t, []string{"B", "E", "C"}, ids(a.Children()))

	// Later in the same parent: the index counts the node itself.
	require.NoError(t, tr.MoveNode(b, tree.DropPosition{Parent: a, Index: 3}))
	assert.Equal(t, []string{"E", "C", "B"}, ids(a.Children()))

	// Back to the top level.
	require.NoError(t, tr.MoveNode(b, tree.DropPosition{Parent: tr.Root(), Index: 99}))
	assert.Equal(t, []string{"A", "B"}, ids(tr.Roots()))
	assert.True(t, b.IsRoot())
}

func TestTree_MoveNode_IntoDescendant(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")

	err := tr.MoveNode(a, tree.DropPosition{Parent: mustNode(t, tr, "D"), Index: 0})
	require.ErrorIs(t, err, domain.ErrInvalidDrop)

	err = tr.MoveNode(a, tree.DropPosition{Parent: a, Index: 0})
	require.ErrorIs(t, err, domain.ErrInvalidDrop)

	assert.Equal(t, []string{"B", "C"}, ids(a.Children()))
}

func TestTree_MoveNode_IntoLeaf(t *testing.T) {
	tr := sample(tree.Options{})
	b := mustNode(t, tr, "B")

	require.NoError(t, tr.MoveNode(mustNode(t, tr, "E"), tree.DropPosition{Parent: b, Index: 0}))
	assert.Equal(t, tree.ChildrenLoaded, b.ChildrenState())
	assert.True(t, b.HasChildren())
	assert.Equal(t, []any{"E"}, childIDs(b.Data()))
}

func TestDropPosition_Target(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")

	assert.Equal(t, domain.DropTarget{Parent: a.ID(), Index: 2}, tree.DropPosition{Parent: a, Index: 2}.Target())
	assert.True(t, tree.DropPosition{Parent: tr.Root()}.Target().Parent.IsZero())
}

func TestNode_AllowDrag(t *testing.T) {
	assert.True(t, mustNode(t, sample(tree.Options{AllowDrag: true}), "A").AllowDrag())
	assert.False(t, mustNode(t, sample(tree.Options{}), "A").AllowDrag())
}
