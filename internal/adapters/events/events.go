// Package events provides event sinks for tree lifecycle notifications.
package events

import (
	"slices"
	"sync"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
)

// Recorder keeps every published event in order.
type Recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish implements ports.EventSink.
func (r *Recorder) Publish(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.events
	r.events = nil
	return events
}

// LogSink writes every event through a logger at debug level.
// Deprecated events are written at warn level with their warning.
type LogSink struct {
	Logger ports.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger ports.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Publish implements ports.EventSink.
func (s *LogSink) Publish(event domain.Event) {
	args := []any{"event", string(event.Name), "node_id", event.Node.String()}
	switch event.Name {
	case domain.EventToggleExpanded, domain.EventToggle:
		args = append(args, "expanded", event.IsExpanded)
	case domain.EventMoveNode:
		args = append(args, "to_parent", event.To.Parent.String(), "to_index", event.To.Index)
	}

	if event.Warning != "" {
		s.Logger.Warn(event.Warning, args...)
		return
	}
	s.Logger.Debug("tree event", args...)
}

// Fanout delivers each event to every sink in order.
type Fanout []ports.EventSink

// Publish implements ports.EventSink.
func (f Fanout) Publish(event domain.Event) {
	for _, sink := range f {
		if sink != nil {
			sink.Publish(event)
		}
	}
}
