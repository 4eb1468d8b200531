package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/canopy/internal/adapters/logger"
	"go.trai.ch/canopy/internal/core/ports"
)

// OpenerNodeID is the unique identifier for the data opener Graft node.
const OpenerNodeID graft.ID = "adapter.fs.opener"

func init() {
	graft.Register(graft.Node[*Opener]{
		ID:        OpenerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Opener, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(log), nil
		},
	})
}
