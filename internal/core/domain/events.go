package domain

import "strings"

// EventName identifies a lifecycle notification fired by the tree.
type EventName string

const (
	// EventToggleExpanded is fired after a node's expansion state changed and any load settled.
	EventToggleExpanded EventName = "onToggleExpanded"
	// EventToggle is the deprecated alias of EventToggleExpanded.
	EventToggle EventName = "onToggle"
	// EventFocus is fired when a node receives the tree focus.
	EventFocus EventName = "onFocus"
	// EventBlur is fired when a node loses the tree focus.
	EventBlur EventName = "onBlur"
	// EventContextMenu is fired after the contextMenu action handler ran.
	EventContextMenu EventName = "onContextMenu"
	// EventDoubleClick is fired after the dblClick action handler ran. Deprecated.
	EventDoubleClick EventName = "onDoubleClick"
	// EventActivate is fired when a node becomes active.
	EventActivate EventName = "onActivate"
	// EventDeactivate is fired when a node stops being active.
	EventDeactivate EventName = "onDeactivate"
	// EventMoveNode is fired after a node was moved to a new parent or index.
	EventMoveNode EventName = "onMoveNode"
	// EventLoadChildren is fired after children were loaded for a node.
	EventLoadChildren EventName = "onLoadChildren"
)

// IsDeprecated reports whether the event only exists for compatibility.
func (n EventName) IsDeprecated() bool {
	switch n {
	case EventToggle, EventDoubleClick:
		return true
	default:
		return false
	}
}

// Event is a lifecycle notification. Nodes are referenced by id since node values
// may be reconstructed; consumers resolve them through the tree.
type Event struct {
	Name EventName
	Node NodeID

	// IsExpanded carries the new state for toggle events.
	IsExpanded bool

	// RawEvent is the host input event that triggered the notification, if any.
	RawEvent any

	// Warning is set on deprecated events.
	Warning string

	// To describes the destination of a move event.
	To DropTarget
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a level name to a LogLevel, defaulting to info if unknown.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
