package tree_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

func item(id string, children ...map[string]any) map[string]any {
	m := map[string]any{"id": id, "name": id}
	if len(children) > 0 {
		m["children"] = list(children...)
	}
	return m
}

func lazy(id string) map[string]any {
	return map[string]any{"id": id, "name": id, "hasChildren": true}
}

func list(items ...map[string]any) []any {
	res := make([]any, len(items))
	for i, it := range items {
		res[i] = it
	}
	return res
}

// sample builds A -> [B, C -> [D]], E.
func sample(opts tree.Options) *tree.Tree {
	return tree.New(list(
		item("A", item("B"), item("C", item("D"))),
		item("E"),
	), opts)
}

func mustNode(t *testing.T, tr *tree.Tree, id string) *tree.Node {
	t.Helper()
	n, ok := tr.GetNodeByID(domain.NewNodeID(id))
	require.True(t, ok, "node %s not found", id)
	return n
}

func ids(nodes []*tree.Node) []string {
	res := make([]string, len(nodes))
	for i, n := range nodes {
		res[i] = n.ID().String()
	}
	return res
}

func visible(tr *tree.Tree) []string {
	var res []string
	for n := range tr.VisibleNodes() {
		res = append(res, n.ID().String())
	}
	return res
}

type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Publish(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, len(r.events))
	for i, e := range r.events {
		res[i] = string(e.Name) + ":" + e.Node.String()
	}
	r.events = nil
	return res
}

func (r *recorder) all() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}
