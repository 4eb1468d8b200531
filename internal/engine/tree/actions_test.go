package tree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

func TestNode_MouseAction_Unmapped(t *testing.T) {
	rec := &recorder{}
	tr := sample(tree.Options{Events: rec, ActionMapping: tree.ActionMapping{}})
	a := mustNode(t, tr, "A")

	require.False(t, tr.HasFocus())
	for _, action := range domain.Actions() {
		require.NoError(t, a.MouseAction(t.Context(), action, "raw", nil))
	}

	assert.True(t, tr.HasFocus())
	assert.Empty(t, rec.take(), "no handler, no notification")
	assert.False(t, a.IsActive())
}

func TestNode_MouseAction_RunsHandler(t *testing.T) {
	type call struct {
		tree *tree.Tree
		node *tree.Node
		raw  any
		data any
	}
	var calls []call
	record := func(_ context.Context, tr *tree.Tree, n *tree.Node, raw, data any) error {
		calls = append(calls, call{tr, n, raw, data})
		return nil
	}

	rec := &recorder{}
	tr := sample(tree.Options{
		Events: rec,
		ActionMapping: tree.ActionMapping{
			domain.ActionContextMenu: record,
			domain.ActionDblClick:    record,
			domain.ActionDragOver:    record,
		},
	})
	b := mustNode(t, tr, "B")

	require.NoError(t, b.MouseAction(t.Context(), domain.ActionContextMenu, "right", 7))
	require.NoError(t, b.MouseAction(t.Context(), domain.ActionDblClick, "double", nil))
	require.NoError(t, b.MouseAction(t.Context(), domain.ActionDragOver, "over", nil))

	require.Len(t, calls, 3)
	assert.Same(t, tr, calls[0].tree)
	assert.Same(t, b, calls[0].node)
	assert.Equal(t, "right", calls[0].raw)
	assert.Equal(t, 7, calls[0].data)

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, domain.Event{Name: domain.EventContextMenu, Node: b.ID(), RawEvent: "right"}, events[0])
	assert.Equal(t, domain.EventDoubleClick, events[1].Name)
	assert.Equal(t, "double", events[1].RawEvent)
	assert.NotEmpty(t, events[1].Warning)
}

func TestNode_MouseAction_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	tr := sample(tree.Options{ActionMapping: tree.ActionMapping{
		domain.ActionClick: func(context.Context, *tree.Tree, *tree.Node, any, any) error { return boom },
	}})

	err := mustNode(t, tr, "A").MouseAction(t.Context(), domain.ActionClick, nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestDefaultActionMapping(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")
	b := mustNode(t, tr, "B")
	ctx := t.Context()

	require.NoError(t, a.MouseAction(ctx, domain.ActionClick, nil, nil))
	assert.True(t, a.IsActive())
	require.NoError(t, b.MouseAction(ctx, domain.ActionClick, nil, nil))
	assert.False(t, a.IsActive())
	assert.True(t, b.IsActive())

	require.NoError(t, a.MouseAction(ctx, domain.ActionExpanderClick, nil, nil))
	assert.True(t, a.IsExpanded())
	require.NoError(t, b.MouseAction(ctx, domain.ActionExpanderClick, nil, nil))
	assert.False(t, b.IsExpanded(), "leaves do not expand")

	require.NoError(t, b.MouseAction(ctx, domain.ActionDblClick, nil, nil))
}

func TestBuiltinHandlers(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")
	e := mustNode(t, tr, "E")
	ctx := t.Context()

	require.NoError(t, tree.ToggleActiveMulti(ctx, tr, a, nil, nil))
	require.NoError(t, tree.ToggleActiveMulti(ctx, tr, e, nil, nil))
	assert.Equal(t, []string{"A", "E"}, ids(tr.ActiveNodes()))

	require.NoError(t, tree.Focus(ctx, tr, a, nil, nil))
	assert.True(t, a.IsFocused())

	require.NoError(t, tree.MoveNode(ctx, tr, a, nil, "not a drop"))
	require.NoError(t, tree.MoveNode(ctx, tr, a, nil, tree.Drop{From: struct{}{}, To: tree.DropPosition{Parent: a}}))
	err := tree.MoveNode(ctx, tr, a, nil, tree.Drop{From: "missing", To: tree.DropPosition{Parent: a}})
	require.ErrorIs(t, err, domain.ErrNodeNotFound)

	require.NoError(t, tree.MoveNode(ctx, tr, a, nil, tree.Drop{From: "E", To: tree.DropPosition{Parent: a}}))
	assert.Equal(t, []string{"E", "B", "C"}, ids(a.Children()))
}

func TestHandlerByName(t *testing.T) {
	for _, name := range tree.HandlerNames() {
		h, err := tree.HandlerByName(name)
		require.NoError(t, err)
		assert.NotNil(t, h, name)
	}

	h, err := tree.HandlerByName("none")
	require.NoError(t, err)
	assert.Nil(t, h)

	_, err = tree.HandlerByName("explode")
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestMappingFromNames(t *testing.T) {
	mapping, err := tree.MappingFromNames(map[domain.Action]string{
		domain.ActionClick:    "toggleActiveMulti",
		domain.ActionDblClick: "none",
	})
	require.NoError(t, err)
	assert.Len(t, mapping, 1)
	assert.Contains(t, mapping, domain.ActionClick)

	_, err = tree.MappingFromNames(map[domain.Action]string{domain.ActionDrop: "teleport"})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}
