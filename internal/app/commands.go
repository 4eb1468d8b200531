package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/canopy/internal/adapters/events"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/canopy/internal/engine/tree"
	"go.trai.ch/zerr"
)

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	ConfigPath string
	ExpandAll  bool
	Filter     string
	Fuzzy      bool
	Positions  bool
	// Events appends the lifecycle events fired while building the listing.
	Events bool
}

// Show prints the visible nodes in display order.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	rec := events.NewRecorder()
	s, err := a.open(ctx, opts.ConfigPath, openOptions{sinks: []ports.EventSink{rec}})
	if err != nil {
		return err
	}

	if opts.ExpandAll {
		if err := s.Tree.ExpandAll(ctx); err != nil {
			return zerr.Wrap(err, "failed to expand tree")
		}
	}
	if opts.Filter != "" {
		match := Matcher(opts.Fuzzy)
		s.Tree.FilterNodes(func(n *tree.Node) bool { return match(opts.Filter, n) }, true)
	}

	if err := Render(a.out, s.Tree, opts.Positions); err != nil {
		return err
	}
	if !opts.Events {
		return nil
	}
	for _, e := range rec.Events() {
		if _, err := fmt.Fprintf(a.out, "%s %s\n", e.Name, e.Node); err != nil {
			return zerr.Wrap(err, "failed to write events")
		}
	}
	return nil
}

// Render writes one line per visible node: indentation, an expander marker
// ("-" expanded, "+" collapsed, blank for leaves) and the label. With positions
// each line starts with the node's vertical offset and self height.
func Render(w io.Writer, t *tree.Tree, positions bool) error {
	for n := range t.VisibleNodes() {
		line := strings.Repeat(" ", n.Padding()) + marker(n) + " " + n.String()
		if positions {
			line = fmt.Sprintf("%4d %2d  %s", n.Position(), n.SelfHeight(), line)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return zerr.Wrap(err, "failed to write listing")
		}
	}
	return nil
}

func marker(n *tree.Node) string {
	switch {
	case n.IsLeaf():
		return " "
	case n.IsExpanded():
		return "-"
	default:
		return "+"
	}
}

// NavOptions configuration for the Nav method.
type NavOptions struct {
	ConfigPath string
	ID         string
	Prev       bool
	ExpandAll  bool
}

// Nav prints the node after (or before) the given one in display order. The
// node is made visible first. Nothing is printed at either end of the tree.
func (a *App) Nav(ctx context.Context, opts NavOptions) error {
	s, err := a.Open(ctx, opts.ConfigPath, nil)
	if err != nil {
		return err
	}
	if opts.ExpandAll {
		if err := s.Tree.ExpandAll(ctx); err != nil {
			return zerr.Wrap(err, "failed to expand tree")
		}
	}

	n, err := lookup(s.Tree, opts.ID)
	if err != nil {
		return err
	}
	n.EnsureVisible()

	next := n.FindNextNode(true, true)
	if opts.Prev {
		next = n.FindPreviousNode(true)
	}
	if next == nil {
		return nil
	}

	if _, err := fmt.Fprintf(a.out, "%s\t%s\n", next.ID(), next.String()); err != nil {
		return zerr.Wrap(err, "failed to write node")
	}
	return nil
}

// MoveOptions configuration for the Move method.
type MoveOptions struct {
	ConfigPath string
	ID         string
	// Parent is the id of the new parent. Empty moves to the top level.
	Parent string
	Index  int
	// Write saves the moved data back to the data source.
	Write bool
}

type saver interface {
	Save(ctx context.Context, nodes []any) error
}

// Move drops a node at Index among the children of Parent through the
// configured drop policy and action mapping, then prints the tree.
func (a *App) Move(ctx context.Context, opts MoveOptions) error {
	s, err := a.Open(ctx, opts.ConfigPath, nil)
	if err != nil {
		return err
	}

	n, err := lookup(s.Tree, opts.ID)
	if err != nil {
		return err
	}

	parent := s.Tree.Root()
	if opts.Parent != "" {
		if parent, err = lookup(s.Tree, opts.Parent); err != nil {
			return err
		}
		if parent.ChildrenState() == tree.ChildrenUnloaded && parent.HasChildren() {
			if err := parent.LoadChildren(ctx); err != nil {
				return err
			}
		}
	}

	if !n.AllowDrag() {
		return zerr.With(zerr.Wrap(domain.ErrInvalidDrop, "dragging is disabled"), "node_id", opts.ID)
	}
	slot := parent.DropSlot(opts.Index)
	if !slot.AllowDrop(n) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidDrop, "drop not allowed"),
			"node_id", opts.ID), "index", opts.Index)
	}
	if err := slot.OnDrop(ctx, tree.DropEvent{Element: n}); err != nil {
		return zerr.Wrap(err, "failed to move node")
	}

	if opts.Write {
		store, ok := s.Source.(saver)
		if !ok {
			return zerr.With(zerr.New("data source is read-only"), "path", s.Config.DataPath)
		}
		if err := store.Save(ctx, s.Tree.Data()); err != nil {
			return err
		}
	}

	for p := n.RealParent(); p != nil; p = p.RealParent() {
		_ = p.Expand(ctx)
	}
	return Render(a.out, s.Tree, false)
}

func lookup(t *tree.Tree, id string) (*tree.Node, error) {
	n, ok := t.GetNodeByID(domain.NewNodeID(id))
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "unknown node"), "node_id", id)
	}
	return n, nil
}
