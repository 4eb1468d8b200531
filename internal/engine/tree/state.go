package tree

import (
	"context"

	"go.trai.ch/canopy/internal/core/domain"
)

const toggleWarning = "this event is deprecated, please use onToggleExpanded instead"

// Expand expands the node, loading unloaded children first. Expanding an
// expanded node does nothing.
func (n *Node) Expand(ctx context.Context) error {
	if n.virtual || !n.tree.state.setExpanded(n.id, true) {
		return nil
	}
	if err := n.settleExpanded(ctx, true); err != nil {
		return err
	}
	n.notifyToggled(true)
	return nil
}

// Collapse collapses the node if it is expanded.
func (n *Node) Collapse() {
	if n.virtual || !n.tree.state.setExpanded(n.id, false) {
		return
	}
	n.tree.invalidate(n)
	n.notifyToggled(false)
}

// ToggleExpanded flips the expansion state. Notifications are fired after any
// load triggered by the expansion settled; a failed load reverts the expansion
// and fires nothing.
func (n *Node) ToggleExpanded(ctx context.Context) error {
	if n.virtual {
		return nil
	}
	expanded := n.tree.state.toggleExpanded(n.id)
	if err := n.settleExpanded(ctx, expanded); err != nil {
		return err
	}
	n.notifyToggled(expanded)
	return nil
}

// Toggle is the deprecated name of ToggleExpanded.
//
// Deprecated: use ToggleExpanded.
func (n *Node) Toggle(ctx context.Context) error {
	n.tree.opts.Logger.Warn("toggle is deprecated, use toggleExpanded", "node_id", n.id.String())
	return n.ToggleExpanded(ctx)
}

// SetIsExpanded sets the expansion state without firing notifications, loading
// unloaded children when expanding.
func (n *Node) SetIsExpanded(ctx context.Context, v bool) error {
	if n.virtual || !n.tree.state.setExpanded(n.id, v) {
		return nil
	}
	return n.settleExpanded(ctx, v)
}

func (n *Node) settleExpanded(ctx context.Context, expanded bool) error {
	n.tree.invalidate(n)
	if !expanded || n.loaded || !n.HasChildren() {
		return nil
	}
	if err := n.LoadChildren(ctx); err != nil {
		n.tree.state.setExpanded(n.id, false)
		n.tree.invalidate(n)
		return err
	}
	return nil
}

func (n *Node) notifyToggled(expanded bool) {
	n.tree.publish(
		domain.Event{Name: domain.EventToggle, Node: n.id, IsExpanded: expanded, Warning: toggleWarning},
		domain.Event{Name: domain.EventToggleExpanded, Node: n.id, IsExpanded: expanded},
	)
}

// EnsureVisible expands every real ancestor. It never collapses anything and
// leaves the node's own expansion untouched.
func (n *Node) EnsureVisible() {
	for p := n.RealParent(); p != nil; p = p.RealParent() {
		// Ancestors of a materialized node have loaded children, so no load runs.
		_ = p.Expand(context.Background())
	}
}

// SetIsActive activates or deactivates the node. Unless multi is set, activation
// deactivates every other node. An activated node also receives the focus.
func (n *Node) SetIsActive(v, multi bool) {
	if n.virtual {
		return
	}
	activated, deactivated := n.tree.state.setActive(n.id, v, multi)
	events := make([]domain.Event, 0, len(activated)+len(deactivated))
	for _, id := range deactivated {
		events = append(events, domain.Event{Name: domain.EventDeactivate, Node: id})
	}
	for _, id := range activated {
		events = append(events, domain.Event{Name: domain.EventActivate, Node: id})
	}
	n.tree.publish(events...)
	if v {
		n.Focus()
	}
}

// ToggleActivated flips the active state.
func (n *Node) ToggleActivated(multi bool) {
	n.SetIsActive(!n.IsActive(), multi)
}

// SetActiveAndVisible activates the node, expands its ancestors and scrolls it
// into view.
func (n *Node) SetActiveAndVisible(multi bool) {
	n.SetIsActive(true, multi)
	n.EnsureVisible()
	n.ScrollIntoView(false)
}

// ScrollIntoView asks the scroller to bring the node into view.
func (n *Node) ScrollIntoView(force bool) {
	scroller := n.tree.opts.Scroller
	if scroller == nil || n.virtual {
		return
	}
	target := domain.ScrollTarget{
		ID:       n.id,
		Position: n.Position(),
		Height:   n.SelfHeight(),
	}
	scroller.ScrollIntoView(target, force)
}

// Focus moves the tree focus to the node, firing onBlur for the previously
// focused node and onFocus for this one.
func (n *Node) Focus() {
	if n.virtual {
		return
	}
	prev := n.tree.state.setFocused(n.id)
	n.ScrollIntoView(false)
	events := make([]domain.Event, 0, 2)
	if !prev.IsZero() {
		events = append(events, domain.Event{Name: domain.EventBlur, Node: prev})
	}
	events = append(events, domain.Event{Name: domain.EventFocus, Node: n.id})
	n.tree.publish(events...)
}

// Blur clears the tree focus. onBlur is fired for this node if anything was focused.
func (n *Node) Blur() {
	prev := n.tree.state.setFocused(domain.NodeID{})
	if !prev.IsZero() {
		n.tree.publish(domain.Event{Name: domain.EventBlur, Node: n.id})
	}
}

// Filter hides every node in the subtree for which neither the node nor a
// descendant satisfies pred. With autoShow, visible nodes get their ancestors
// expanded.
func (n *Node) Filter(pred func(*Node) bool, autoShow bool) {
	visible := pred(n)
	for _, c := range n.children {
		c.Filter(pred, autoShow)
		visible = visible || !c.IsHidden()
	}
	n.SetIsHidden(!visible)
	if autoShow && visible {
		n.EnsureVisible()
	}
}

// ClearFilter shows the node and its whole subtree.
func (n *Node) ClearFilter() {
	n.Show()
	for _, c := range n.children {
		c.ClearFilter()
	}
}

// SetIsHidden hides or shows the node.
func (n *Node) SetIsHidden(v bool) {
	if n.virtual {
		return
	}
	if n.tree.state.setHidden(n.id, v) {
		n.tree.invalidate(n)
	}
}

// Hide hides the node.
func (n *Node) Hide() { n.SetIsHidden(true) }

// Show shows the node.
func (n *Node) Show() { n.SetIsHidden(false) }
