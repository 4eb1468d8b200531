// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/canopy/internal/core/domain"
)

// ChildLoader provides the children of nodes that declare children without carrying them.
//
//go:generate go run go.uber.org/mock/mockgen -source=child_loader.go -destination=mocks/mock_child_loader.go -package=mocks
type ChildLoader interface {
	// LoadChildren returns the raw child data for the requested node.
	//
	// A nil slice with a nil error means the node has no children to add; the node
	// stays unloaded. Errors are propagated to the caller that expanded the node.
	LoadChildren(ctx context.Context, req domain.LoadRequest) ([]any, error)
}
