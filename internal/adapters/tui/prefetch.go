package tui

import (
	"context"
	"sync"

	"go.trai.ch/canopy/internal/adapters/telemetry"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"golang.org/x/sync/semaphore"
)

// Prefetcher moves child loads off the UI goroutine. The browser fetches
// children in commands and the tree, which uses the Prefetcher as its child
// loader, materializes them during Update.
//
// A load the tree asks for before it was fetched is deferred: LoadChildren
// returns no children, the node stays unloaded and the model fetches it.
type Prefetcher struct {
	loader ports.ChildLoader
	tracer ports.Tracer
	sem    *semaphore.Weighted

	mu      sync.Mutex
	fetched map[domain.NodeID]fetchResult
}

type fetchResult struct {
	raw []any
	err error
}

// NewPrefetcher wraps loader. At most concurrency fetches run at once.
func NewPrefetcher(loader ports.ChildLoader, tracer ports.Tracer, concurrency int) *Prefetcher {
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}
	return &Prefetcher{
		loader:  loader,
		tracer:  tracer,
		sem:     semaphore.NewWeighted(int64(max(concurrency, 1))),
		fetched: make(map[domain.NodeID]fetchResult),
	}
}

// Fetch calls the wrapped loader and keeps the result until the tree asks for it.
// It is safe to call from any goroutine.
func (p *Prefetcher) Fetch(ctx context.Context, req domain.LoadRequest) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.store(req.ID, fetchResult{err: err})
		return err
	}
	defer p.sem.Release(1)

	ctx, span := p.tracer.Start(ctx, "tui.fetch_children",
		ports.WithAttribute(telemetry.NodeIDKey, req.ID.String()),
	)
	defer span.End()

	raw, err := p.loader.LoadChildren(ctx, req)
	if err != nil {
		span.RecordError(err)
	}
	p.store(req.ID, fetchResult{raw: raw, err: err})
	return err
}

func (p *Prefetcher) store(id domain.NodeID, res fetchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetched[id] = res
}

// LoadChildren implements ports.ChildLoader. It hands out a fetched result once.
func (p *Prefetcher) LoadChildren(_ context.Context, req domain.LoadRequest) ([]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.fetched[req.ID]
	if !ok {
		return nil, nil
	}
	delete(p.fetched, req.ID)
	return res.raw, res.err
}

// Discard drops fetched results the tree did not take.
func (p *Prefetcher) Discard(ids ...domain.NodeID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		delete(p.fetched, id)
	}
}
