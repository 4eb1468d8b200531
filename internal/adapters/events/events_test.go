package events_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/canopy/internal/adapters/events"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRecorder(t *testing.T) {
	r := events.NewRecorder()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			r.Publish(domain.Event{Name: domain.EventFocus})
		})
	}
	wg.Wait()

	assert.Len(t, r.Events(), 10)
	assert.Len(t, r.Drain(), 10)
	assert.Empty(t, r.Events())
}

func TestLogSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	sink := events.NewLogSink(log)

	a := domain.NewNodeID("a")
	p := domain.NewNodeID("p")

	log.EXPECT().Debug("tree event", "event", "onToggleExpanded", "node_id", "a", "expanded", true)
	sink.Publish(domain.Event{Name: domain.EventToggleExpanded, Node: a, IsExpanded: true})

	log.EXPECT().Warn("onToggle is deprecated", "event", "onToggle", "node_id", "a", "expanded", false)
	sink.Publish(domain.Event{Name: domain.EventToggle, Node: a, Warning: "onToggle is deprecated"})

	log.EXPECT().Debug("tree event", "event", "onMoveNode", "node_id", "a", "to_parent", "p", "to_index", 2)
	sink.Publish(domain.Event{Name: domain.EventMoveNode, Node: a, To: domain.DropTarget{Parent: p, Index: 2}})

	log.EXPECT().Debug("tree event", "event", "onBlur", "node_id", "a")
	sink.Publish(domain.Event{Name: domain.EventBlur, Node: a})
}

func TestFanout(t *testing.T) {
	first, second := events.NewRecorder(), events.NewRecorder()
	fan := events.Fanout{first, nil, second}

	ev := domain.Event{Name: domain.EventActivate, Node: domain.NewNodeID("x")}
	fan.Publish(ev)

	assert.Equal(t, []domain.Event{ev}, first.Events())
	assert.Equal(t, []domain.Event{ev}, second.Events())
}
