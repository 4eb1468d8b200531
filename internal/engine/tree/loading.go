package tree

import (
	"context"
	"errors"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// IsLoading reports whether a child load for the node is in flight.
func (n *Node) IsLoading() bool {
	return n.tree.state.isLoading(n.id)
}

// LoadRequest describes the node to a child loader.
func (n *Node) LoadRequest() domain.LoadRequest {
	return domain.LoadRequest{
		ID:    n.id,
		Path:  n.Path(),
		Level: n.Level(),
		Data:  n.data,
	}
}

// LoadChildren asks the child loader for the node's children and materializes
// them. Without a loader it does nothing. Concurrent calls for the same node share
// one load. Loaded children flagged as expanded in their data are expanded.
func (n *Node) LoadChildren(ctx context.Context) error {
	loader := n.tree.opts.ChildLoader
	if loader == nil || n.virtual {
		return nil
	}
	_, err, _ := n.tree.loads.Do(n.id.String(), func() (any, error) {
		return nil, n.load(ctx, loader)
	})
	return err
}

func (n *Node) load(ctx context.Context, loader ports.ChildLoader) error {
	t := n.tree
	t.state.setLoading(n.id, true)
	defer t.state.setLoading(n.id, false)

	ctx, span := t.opts.Tracer.Start(ctx, "tree.load_children",
		ports.WithAttribute("node_id", n.id.String()),
		ports.WithAttribute("level", n.Level()),
	)
	defer span.End()

	raw, err := loader.LoadChildren(ctx, n.LoadRequest())
	if err != nil {
		span.RecordError(err)
		err = zerr.With(zerr.Wrap(errors.Join(domain.ErrLoadFailed, err), "cannot load children"),
			"node_id", n.id.String())
		t.opts.Logger.Debug("child load failed", "node_id", n.id.String(), "error", err)
		return err
	}
	if raw == nil {
		return nil
	}
	span.SetAttribute("children", len(raw))

	n.SetChildren(raw)
	t.publish(domain.Event{Name: domain.EventLoadChildren, Node: n.id})

	for _, c := range n.children {
		if truthy(c.GetField(domain.FieldIsExpanded)) && c.HasChildren() {
			if err := c.Expand(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetChildren writes raw into the node's children field and rebuilds the children.
func (n *Node) SetChildren(raw []any) {
	t := n.tree
	t.mu.Lock()
	defer t.mu.Unlock()
	if n.virtual {
		t.rootData = raw
	} else {
		t.opts.Accessor.Set(n.data, domain.FieldChildren, raw)
	}
	t.materializeLocked(n, raw)
}

// ExpandAll expands every node that has children, level by level, loading the
// nodes of one level concurrently.
func (t *Tree) ExpandAll(ctx context.Context) error {
	level := t.Roots()
	for len(level) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(t.opts.LoadConcurrency)
		for _, n := range level {
			if !n.HasChildren() {
				continue
			}
			g.Go(func() error {
				return n.Expand(gctx)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var next []*Node
		for _, n := range level {
			next = append(next, n.children...)
		}
		level = next
	}
	return nil
}

// CollapseAll collapses every node.
func (t *Tree) CollapseAll() {
	for n := range t.Walk() {
		n.Collapse()
	}
}
