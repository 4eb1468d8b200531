package tree_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

func TestNew_BuildsChildrenEagerly(t *testing.T) {
	tr := sample(tree.Options{})

	require.Len(t, tr.Roots(), 2)
	assert.Equal(t, 5, tr.IndexLen())

	a := mustNode(t, tr, "A")
	assert.Equal(t, []string{"B", "C"}, ids(a.Children()))
	for i, c := range a.Children() {
		assert.Same(t, a, c.Parent())
		assert.Equal(t, i, c.Index())
	}

	d := mustNode(t, tr, "D")
	assert.Equal(t, 3, d.Level())
	assert.Equal(t, domain.NewNodeIDs([]string{"A", "C", "D"}), d.Path())
	assert.Same(t, tr, d.Tree())
	assert.Equal(t, 0, tr.Root().Level())
	assert.Empty(t, tr.Root().Path())
}

func TestNode_RootAndParent(t *testing.T) {
	tr := sample(tree.Options{})
	a := mustNode(t, tr, "A")
	c := mustNode(t, tr, "C")

	assert.True(t, a.IsRoot())
	assert.Nil(t, a.RealParent())
	assert.Same(t, tr.Root(), a.Parent())
	assert.True(t, a.Parent().IsVirtual())

	assert.False(t, c.IsRoot())
	assert.Same(t, a, c.RealParent())
}

func TestNode_ChildrenState(t *testing.T) {
	tr := tree.New(list(
		lazy("lazy"),
		map[string]any{"id": "empty", "children": []any{}},
		item("full", item("child")),
	), tree.Options{})

	tests := []struct {
		id          string
		state       tree.ChildrenState
		hasChildren bool
	}{
		{"lazy", tree.ChildrenUnloaded, true},
		{"empty", tree.ChildrenEmpty, false},
		{"full", tree.ChildrenLoaded, true},
		{"child", tree.ChildrenUnloaded, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := mustNode(t, tr, tt.id)
			assert.Equal(t, tt.state, n.ChildrenState())
			assert.Equal(t, tt.hasChildren, n.HasChildren())
			assert.Equal(t, !tt.hasChildren, n.IsLeaf())
		})
	}
}

func TestNew_GeneratesMissingIDs(t *testing.T) {
	data := map[string]any{"name": "anonymous"}
	tr := tree.New([]any{data}, tree.Options{})

	root := tr.Roots()[0]
	_, err := uuid.Parse(root.ID().String())
	require.NoError(t, err)
	assert.Equal(t, root.ID().String(), data["id"])

	got, ok := tr.GetNodeByID(root.ID())
	require.True(t, ok)
	assert.Same(t, root, got)
}

func TestNew_SequenceIDs(t *testing.T) {
	x := map[string]any{"name": "x", "children": []any{map[string]any{"name": "z"}}}
	y := map[string]any{"name": "y"}

	tr := tree.New([]any{x, y}, tree.Options{IDs: &tree.SequenceGenerator{}})

	assert.Equal(t, "node-1", x["id"])
	assert.Equal(t, "node-2", y["id"])
	assert.Equal(t, "node-3", tr.Roots()[0].Children()[0].ID().String())
}

func TestNew_GeneratedIDsSkipTakenIDs(t *testing.T) {
	host := map[string]any{"id": "node-1", "name": "host"}
	x := map[string]any{"name": "x"}

	tr := tree.New([]any{host, x}, tree.Options{IDs: &tree.SequenceGenerator{}})

	assert.Equal(t, "node-2", x["id"])
	got, ok := tr.GetNodeByID(domain.NewNodeID("node-1"))
	require.True(t, ok)
	assert.Equal(t, "host", got.String())
	assert.Len(t, tr.Roots(), 2)
}

func TestNew_ContentIDsSkipTakenIDs(t *testing.T) {
	gen := tree.ContentGenerator{}
	plain := tree.New(list(map[string]any{"name": "other"}, map[string]any{"name": "x"}), tree.Options{IDs: gen})
	taken := plain.Roots()[1].ID().String()
	host := map[string]any{"id": taken, "name": "host"}
	x := map[string]any{"name": "x"}

	tr := tree.New([]any{host, x}, tree.Options{IDs: gen})

	assert.NotEqual(t, taken, x["id"])
	got, ok := tr.GetNodeByID(domain.NewNodeID(taken))
	require.True(t, ok)
	assert.Equal(t, "host", got.String())
}

func TestNew_ContentIDsAreStable(t *testing.T) {
	build := func() []string {
		tr := tree.New(list(
			map[string]any{"name": "docs", "children": list(map[string]any{"name": "readme"})},
			map[string]any{"name": "docs"},
		), tree.Options{IDs: tree.ContentGenerator{}})
		var res []string
		for n := range tr.Walk() {
			res = append(res, n.ID().String())
		}
		return res
	}

	first, second := build(), build()
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.NotEqual(t, first[0], first[2], "siblings with equal labels differ by index")
}

func TestNewIDGenerator(t *testing.T) {
	for _, strategy := range []domain.IDStrategy{domain.IDStrategyUUID, domain.IDStrategySequence, domain.IDStrategyContent} {
		gen, err := tree.NewIDGenerator(strategy)
		require.NoError(t, err)
		assert.False(t, gen.NextID(domain.NodeID{}, 0, "x").IsZero())
	}

	_, err := tree.NewIDGenerator("dice")
	assert.ErrorIs(t, err, domain.ErrUnknownIDStrategy)
}

func TestNew_DeepTreeDoesNotRecurse(t *testing.T) {
	const depth = 10000
	leaf := map[string]any{"id": fmt.Sprint(depth)}
	cur := leaf
	for i := depth - 1; i >= 1; i-- {
		cur = map[string]any{"id": fmt.Sprint(i), "children": []any{cur}}
	}

	tr := tree.New([]any{cur}, tree.Options{})

	n := mustNode(t, tr, fmt.Sprint(depth))
	assert.Equal(t, depth, n.Level())
	assert.Len(t, n.Path(), depth)
	assert.Equal(t, depth, tr.IndexLen())
}

func TestNode_FieldsAndPresentation(t *testing.T) {
	tr := sample(tree.Options{
		LevelPadding: 4,
		NodeClass: func(n *tree.Node) string {
			if n.HasChildren() {
				return "folder"
			}
			return "file"
		},
		Context: "ctx",
	})
	c := mustNode(t, tr, "C")
	d := mustNode(t, tr, "D")

	assert.Equal(t, 4, c.Padding())
	assert.Equal(t, 8, d.Padding())
	assert.Equal(t, "folder", c.Class())
	assert.Equal(t, "file", d.Class())
	assert.Equal(t, "ctx", d.Context())
	assert.Equal(t, "C", c.DisplayField())

	c.SetField(domain.FieldDisplay, "renamed")
	assert.Equal(t, "renamed", c.DisplayField())
	assert.Equal(t, "renamed", c.String())

	c.SetField(domain.FieldID, "C2")
	_, ok := tr.GetNodeByID(domain.NewNodeID("C"))
	assert.False(t, ok)
	assert.Same(t, c, mustNode(t, tr, "C2"))
}

func TestTree_Walk(t *testing.T) {
	tr := sample(tree.Options{})

	var got []string
	for n := range tr.Walk() {
		got = append(got, n.ID().String())
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, got)
}

func TestTree_SetDataKeepsStateByID(t *testing.T) {
	tr := sample(tree.Options{})
	require.NoError(t, mustNode(t, tr, "A").Expand(t.Context()))

	tr.SetData(list(item("A", item("X")), item("E")))

	a := mustNode(t, tr, "A")
	assert.True(t, a.IsExpanded())
	assert.Equal(t, []string{"A", "X", "E"}, visible(tr))
	_, ok := tr.GetNodeByID(domain.NewNodeID("D"))
	assert.False(t, ok)
}
