package domain

// LoadRequest describes the node whose children are requested from a child loader.
type LoadRequest struct {
	ID    NodeID
	Path  []NodeID
	Level int

	// Data is the node's raw data as supplied by the host.
	Data any
}

// ScrollTarget describes the node a virtual scroll collaborator should bring into view.
type ScrollTarget struct {
	ID NodeID

	// Position is the node's absolute vertical offset in the expanded, visible tree.
	Position int

	// Height is the node's own row height.
	Height int
}

// DropTarget is an insertion point: Index within the children of Parent.
// A zero Parent denotes the virtual root.
type DropTarget struct {
	Parent NodeID
	Index  int
}
