package domain

import "go.trai.ch/zerr"

// Action is a mouse interaction kind that can be mapped to a handler.
type Action int

const (
	// ActionClick is a single click on the node.
	ActionClick Action = iota
	// ActionDblClick is a double click on the node.
	ActionDblClick
	// ActionContextMenu is a context menu request on the node.
	ActionContextMenu
	// ActionExpanderClick is a click on the node's expander toggle.
	ActionExpanderClick
	// ActionDragStart starts dragging the node.
	ActionDragStart
	// ActionDrag is fired while the node is dragged.
	ActionDrag
	// ActionDragEnd ends dragging the node.
	ActionDragEnd
	// ActionDragOver is fired while something is dragged over the node.
	ActionDragOver
	// ActionDragLeave is fired when a drag leaves the node.
	ActionDragLeave
	// ActionDragEnter is fired when a drag enters the node.
	ActionDragEnter
	// ActionDrop is a drop on the node or one of its drop slots.
	ActionDrop
)

var actionNames = [...]string{
	ActionClick:         "click",
	ActionDblClick:      "dblClick",
	ActionContextMenu:   "contextMenu",
	ActionExpanderClick: "expanderClick",
	ActionDragStart:     "dragStart",
	ActionDrag:          "drag",
	ActionDragEnd:       "dragEnd",
	ActionDragOver:      "dragOver",
	ActionDragLeave:     "dragLeave",
	ActionDragEnter:     "dragEnter",
	ActionDrop:          "drop",
}

// String returns the action name used in configuration files.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction resolves an action name such as "dblClick" to its Action.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrUnknownAction, "cannot parse action"), "action", name)
}

// Actions returns every known action in declaration order.
func Actions() []Action {
	all := make([]Action, len(actionNames))
	for i := range actionNames {
		all[i] = Action(i)
	}
	return all
}
