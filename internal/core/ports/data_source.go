package ports

import "context"

// DataSource provides the raw data of the top-level nodes.
//
//go:generate go run go.uber.org/mock/mockgen -source=data_source.go -destination=mocks/mock_data_source.go -package=mocks
type DataSource interface {
	// Nodes returns the top-level node data in display order.
	Nodes(ctx context.Context) ([]any, error)
}
