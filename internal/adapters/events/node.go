package events

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/canopy/internal/adapters/logger"
	"go.trai.ch/canopy/internal/core/ports"
)

// LogSinkNodeID is the unique identifier for the logging event sink Graft node.
const LogSinkNodeID graft.ID = "adapter.events.log"

func init() {
	graft.Register(graft.Node[*LogSink]{
		ID:        LogSinkNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*LogSink, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLogSink(log), nil
		},
	})
}
