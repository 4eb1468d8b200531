package tree

import (
	"context"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
)

// HeightFunc returns the self height of a node. It runs while the tree's
// geometry cache is locked and must not call geometry getters.
type HeightFunc func(n *Node) int

// NodeClassFunc returns the presentation class of a node.
type NodeClassFunc func(n *Node) string

// AllowDropFunc decides whether the dragged element may be dropped at to.
type AllowDropFunc func(dragged any, to DropPosition) bool

// ActionHandler handles a mouse action on a node.
type ActionHandler func(ctx context.Context, t *Tree, n *Node, rawEvent, data any) error

// ActionMapping maps mouse actions to handlers. An absent entry is a no-op.
type ActionMapping map[domain.Action]ActionHandler

// Options configures a Tree. Zero values select the defaults.
type Options struct {
	// Accessor maps logical fields onto node data. Defaults to a MapAccessor
	// with the default field names.
	Accessor Accessor

	// IDs generates missing node ids. Defaults to UUIDGenerator.
	IDs IDGenerator

	// NodeHeight computes self heights. Defaults to one row per node.
	NodeHeight HeightFunc

	// NodeClass computes presentation classes.
	NodeClass NodeClassFunc

	// LevelPadding is the indentation per level.
	LevelPadding int

	// AllowDrag enables dragging nodes.
	AllowDrag bool

	// AllowDrop decides drop permission. Nil allows every drop.
	AllowDrop AllowDropFunc

	// ActionMapping maps mouse actions to handlers. Nil selects DefaultActionMapping.
	ActionMapping ActionMapping

	// ChildLoader loads children lazily. Nil means all data is in memory.
	ChildLoader ports.ChildLoader

	// Scroller brings nodes into view.
	Scroller ports.Scroller

	// Events receives lifecycle notifications.
	Events ports.EventSink

	Logger ports.Logger
	Tracer ports.Tracer

	// LoadConcurrency bounds concurrent loads in ExpandAll. Defaults to 4.
	LoadConcurrency int

	// Context is an arbitrary host value exposed through Node.Context.
	Context any
}

const defaultLoadConcurrency = 4

func (o Options) withDefaults() Options {
	if o.Accessor == nil {
		o.Accessor = NewMapAccessor(domain.DefaultFieldNames())
	}
	if o.IDs == nil {
		o.IDs = UUIDGenerator{}
	}
	if o.NodeHeight == nil {
		o.NodeHeight = func(*Node) int { return 1 }
	}
	if o.NodeClass == nil {
		o.NodeClass = func(*Node) string { return "" }
	}
	if o.AllowDrop == nil {
		o.AllowDrop = func(any, DropPosition) bool { return true }
	}
	if o.ActionMapping == nil {
		o.ActionMapping = DefaultActionMapping()
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Tracer == nil {
		o.Tracer = nopTracer{}
	}
	if o.LoadConcurrency <= 0 {
		o.LoadConcurrency = defaultLoadConcurrency
	}
	return o
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(error)          {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}
