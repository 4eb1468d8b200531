package ports

import "go.trai.ch/canopy/internal/core/domain"

// Scroller is the virtual scroll collaborator that keeps a node inside the viewport.
//
//go:generate go run go.uber.org/mock/mockgen -source=scroller.go -destination=mocks/mock_scroller.go -package=mocks
type Scroller interface {
	// ScrollIntoView moves the viewport so that the target is visible.
	// With force set the target is scrolled to even when it is already visible.
	ScrollIntoView(target domain.ScrollTarget, force bool)
}
