package tree

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/zerr"
)

// IDGenerator assigns ids to nodes whose data carries none.
type IDGenerator interface {
	NextID(parent domain.NodeID, index int, display string) domain.NodeID
}

// NewIDGenerator returns the generator for the given strategy.
func NewIDGenerator(strategy domain.IDStrategy) (IDGenerator, error) {
	switch strategy {
	case domain.IDStrategyUUID, "":
		return UUIDGenerator{}, nil
	case domain.IDStrategySequence:
		return &SequenceGenerator{}, nil
	case domain.IDStrategyContent:
		return ContentGenerator{}, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownIDStrategy, "cannot create id generator"),
			"id_strategy", string(strategy))
	}
}

// UUIDGenerator assigns random version 4 UUIDs.
type UUIDGenerator struct{}

// NextID implements IDGenerator.
func (UUIDGenerator) NextID(domain.NodeID, int, string) domain.NodeID {
	return domain.NewNodeID(uuid.NewString())
}

// SequenceGenerator assigns ids from a monotonic counter scoped to one tree.
type SequenceGenerator struct {
	next atomic.Uint64
}

// NextID implements IDGenerator.
func (g *SequenceGenerator) NextID(domain.NodeID, int, string) domain.NodeID {
	return domain.NewNodeID("node-" + strconv.FormatUint(g.next.Add(1), 10))
}

// ContentGenerator derives ids from the parent id, the sibling index and the
// display label, so a node rebuilt from the same data keeps its id.
type ContentGenerator struct{}

// NextID implements IDGenerator.
func (ContentGenerator) NextID(parent domain.NodeID, index int, display string) domain.NodeID {
	sum := xxhash.Sum64String(parent.String() + "/" + strconv.Itoa(index) + "/" + display)
	return domain.NewNodeID(fmt.Sprintf("%016x", sum))
}
