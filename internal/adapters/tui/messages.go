package tui

import "go.trai.ch/canopy/internal/core/domain"

// MsgReload carries freshly read top-level node data.
type MsgReload struct {
	Nodes []any
	Err   error
}

// msgFetched reports that the children of a node were fetched. The result
// waits in the Prefetcher.
type msgFetched struct {
	ID domain.NodeID
}
