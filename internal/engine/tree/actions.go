package tree

import (
	"context"
	"sort"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/zerr"
)

const dblClickWarning = "this event is deprecated, please use actionMapping to handle double clicks"

// MouseAction sets the tree input focus and runs the handler mapped to action.
// An unmapped action does nothing. The contextMenu and dblClick actions also
// fire onContextMenu and onDoubleClick once their handler ran.
func (n *Node) MouseAction(ctx context.Context, action domain.Action, rawEvent, data any) error {
	t := n.tree
	t.state.setInputFocus(true)

	handler := t.opts.ActionMapping[action]
	if handler == nil {
		return nil
	}
	if err := handler(ctx, t, n, rawEvent, data); err != nil {
		return zerr.With(zerr.Wrap(err, "action handler failed"), "action", action.String())
	}

	switch action {
	case domain.ActionContextMenu:
		t.publish(domain.Event{Name: domain.EventContextMenu, Node: n.id, RawEvent: rawEvent})
	case domain.ActionDblClick:
		t.publish(domain.Event{Name: domain.EventDoubleClick, Node: n.id, RawEvent: rawEvent, Warning: dblClickWarning})
	default:
	}
	return nil
}

// ToggleActive toggles the node's active state exclusively.
func ToggleActive(_ context.Context, _ *Tree, n *Node, _, _ any) error {
	n.ToggleActivated(false)
	return nil
}

// ToggleActiveMulti toggles the node's active state, keeping other active nodes.
func ToggleActiveMulti(_ context.Context, _ *Tree, n *Node, _, _ any) error {
	n.ToggleActivated(true)
	return nil
}

// ToggleExpanded toggles the expansion of nodes that have children.
func ToggleExpanded(ctx context.Context, _ *Tree, n *Node, _, _ any) error {
	if !n.HasChildren() {
		return nil
	}
	return n.ToggleExpanded(ctx)
}

// Focus focuses the node.
func Focus(_ context.Context, _ *Tree, n *Node, _, _ any) error {
	n.Focus()
	return nil
}

// MoveNode handles a drop by moving the dragged node. data must be a Drop whose
// From is a node of the tree or its id; other dragged elements are ignored.
func MoveNode(_ context.Context, t *Tree, _ *Node, _, data any) error {
	drop, ok := data.(Drop)
	if !ok {
		return nil
	}
	node, ok := t.resolve(drop.From)
	if ok {
		return t.MoveNode(node, drop.To)
	}
	if id, isID := domain.NodeIDFromValue(drop.From); isID {
		return zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "cannot move node"), "node_id", id.String())
	}
	return nil
}

var handlers = map[string]ActionHandler{
	"toggleActive":      ToggleActive,
	"toggleActiveMulti": ToggleActiveMulti,
	"toggleExpanded":    ToggleExpanded,
	"focus":             Focus,
	"moveNode":          MoveNode,
}

// HandlerNames returns the names accepted by HandlerByName, sorted.
func HandlerNames() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandlerByName resolves a built-in handler. The name "none" maps to no handler.
func HandlerByName(name string) (ActionHandler, error) {
	if name == "none" {
		return nil, nil
	}
	h, ok := handlers[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownAction, "unknown action handler"), "handler", name)
	}
	return h, nil
}

// DefaultActionMapping toggles activation on click, expansion on expander click
// and moves nodes on drop.
func DefaultActionMapping() ActionMapping {
	return ActionMapping{
		domain.ActionClick:         ToggleActive,
		domain.ActionExpanderClick: ToggleExpanded,
		domain.ActionDrop:          MoveNode,
	}
}

// MappingFromNames builds an action mapping from built-in handler names.
func MappingFromNames(names map[domain.Action]string) (ActionMapping, error) {
	mapping := make(ActionMapping, len(names))
	for action, name := range names {
		h, err := HandlerByName(name)
		if err != nil {
			return nil, zerr.With(err, "action", action.String())
		}
		if h != nil {
			mapping[action] = h
		}
	}
	return mapping, nil
}
