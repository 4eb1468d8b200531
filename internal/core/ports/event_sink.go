package ports

import "go.trai.ch/canopy/internal/core/domain"

// EventSink receives the lifecycle notifications fired by the tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=event_sink.go -destination=mocks/mock_event_sink.go -package=mocks
type EventSink interface {
	// Publish delivers a single event. It is never called while the tree holds a lock,
	// so implementations may call back into the tree.
	Publish(event domain.Event)
}
