package domain

import (
	"strconv"
	"unique"
)

// NodeID is the stable identity of a tree node.
// It wraps a unique.Handle[string] so that the tree-level state sets, which are keyed by
// node identity, compare ids by handle instead of by string contents.
type NodeID struct {
	h unique.Handle[string]
}

// NewNodeID creates a NodeID from its string form.
func NewNodeID(s string) NodeID {
	return NodeID{
		h: unique.Make(s),
	}
}

// NodeIDFromValue converts a raw id value read from node data into a NodeID.
// Numbers decoded from JSON arrive as float64 and are rendered without an exponent,
// so 42 and 42.0 map to the same id. It reports false for nil and unsupported values.
func NodeIDFromValue(v any) (NodeID, bool) {
	switch id := v.(type) {
	case nil:
		return NodeID{}, false
	case NodeID:
		return id, !id.IsZero()
	case string:
		if id == "" {
			return NodeID{}, false
		}
		return NewNodeID(id), true
	case int:
		return NewNodeID(strconv.Itoa(id)), true
	case int64:
		return NewNodeID(strconv.FormatInt(id, 10)), true
	case uint64:
		return NewNodeID(strconv.FormatUint(id, 10)), true
	case float64:
		return NewNodeID(strconv.FormatFloat(id, 'f', -1, 64)), true
	default:
		return NodeID{}, false
	}
}

// String returns the underlying string value.
func (id NodeID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the id is unset.
func (id NodeID) IsZero() bool {
	var zero unique.Handle[string]
	return id.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(text []byte) error {
	id.h = unique.Make(string(text))
	return nil
}

// NewNodeIDs converts a slice of strings to NodeIDs.
func NewNodeIDs(ids []string) []NodeID {
	res := make([]NodeID, len(ids))
	for i, s := range ids {
		res[i] = NewNodeID(s)
	}
	return res
}
