package domain

import "go.trai.ch/zerr"

var (
	// ErrLoadFailed is returned when the child loader fails to provide children for a node.
	ErrLoadFailed = zerr.New("failed to load children")

	// ErrNodeNotFound is returned when a node id does not resolve to a node in the tree.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrInvalidDrop is returned when a node would be moved into itself or one of its descendants.
	ErrInvalidDrop = zerr.New("invalid drop target")

	// ErrUnknownAction is returned when an action name does not name a known mouse action.
	ErrUnknownAction = zerr.New("unknown action")

	// ErrUnknownIDStrategy is returned when the configured id strategy is not supported.
	ErrUnknownIDStrategy = zerr.New("unknown id strategy")

	// ErrInvalidConfig is returned when the configuration file contains invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDataSourceRead is returned when the tree data cannot be read or decoded.
	ErrDataSourceRead = zerr.New("failed to read tree data")
)
