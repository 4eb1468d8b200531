package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NodeIDKey is the span attribute holding the id of the node a span belongs to.
const NodeIDKey = "node_id"

// Sender delivers messages to a running bubbletea program.
type Sender interface {
	Send(msg tea.Msg)
}

// MsgSpanStart is sent when a span starts.
type MsgSpanStart struct {
	SpanID    string
	Name      string
	NodeID    string
	StartTime time.Time
}

// MsgSpanEnd is sent when a span ends. Err is set when the span failed.
type MsgSpanEnd struct {
	SpanID  string
	Name    string
	NodeID  string
	EndTime time.Time
	Err     error
}

// TUIBridge implements sdktrace.SpanProcessor to bridge OTel spans to Bubble Tea messages.
// Messages are queued and delivered in order by a background goroutine, so spans
// may start and end on the program's own goroutine.
type TUIBridge struct {
	sender Sender

	mu     sync.Mutex
	queue  []tea.Msg
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewTUIBridge returns a new TUIBridge. Shutdown stops its delivery goroutine.
func NewTUIBridge(sender Sender) *TUIBridge {
	b := &TUIBridge{
		sender: sender,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if sender == nil {
		close(b.done)
		return b
	}
	go b.run()
	return b
}

func (b *TUIBridge) run() {
	defer close(b.done)
	for {
		b.mu.Lock()
		msgs, closed := b.queue, b.closed
		b.queue = nil
		b.mu.Unlock()

		for _, msg := range msgs {
			b.sender.Send(msg)
		}
		if len(msgs) > 0 {
			continue
		}
		if closed {
			return
		}
		<-b.wake
	}
}

func (b *TUIBridge) enqueue(msg tea.Msg) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// OnStart is called when a span starts.
func (b *TUIBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.sender == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.enqueue(MsgSpanStart{
		SpanID:    sc.SpanID().String(),
		Name:      s.Name(),
		NodeID:    nodeID(s.Attributes()),
		StartTime: s.StartTime(),
	})
}

// OnEnd is called when a span ends.
func (b *TUIBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.sender == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		err = errors.New(desc)
	}

	b.enqueue(MsgSpanEnd{
		SpanID:  sc.SpanID().String(),
		Name:    s.Name(),
		NodeID:  nodeID(s.Attributes()),
		EndTime: s.EndTime(),
		Err:     err,
	})
}

// ForceFlush does nothing.
func (b *TUIBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown delivers the queued messages and stops the delivery goroutine.
func (b *TUIBridge) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func nodeID(attrs []attribute.KeyValue) string {
	for _, kv := range attrs {
		if kv.Key == NodeIDKey {
			return kv.Value.Emit()
		}
	}
	return ""
}
