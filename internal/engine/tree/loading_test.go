package tree_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/canopy/internal/core/ports/mocks"
	"go.trai.ch/canopy/internal/engine/tree"
	"go.uber.org/mock/gomock"
)

func TestNode_LoadChildren_WithoutLoader(t *testing.T) {
	tr := tree.New(list(lazy("L")), tree.Options{})
	n := mustNode(t, tr, "L")

	require.NoError(t, n.LoadChildren(t.Context()))
	assert.Equal(t, tree.ChildrenUnloaded, n.ChildrenState())

	require.NoError(t, n.Expand(t.Context()))
	assert.True(t, n.IsExpanded())
}

func TestNode_Expand_LoadsOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockChildLoader(ctrl)
		rec := &recorder{}

		started := make(chan struct{})
		release := make(chan struct{})
		loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req domain.LoadRequest) ([]any, error) {
				assert.Equal(t, "L", req.ID.String())
				assert.Equal(t, 1, req.Level)
				assert.Equal(t, domain.NewNodeIDs([]string{"L"}), req.Path)
				close(started)
				<-release
				return list(item("L1"), item("L2")), nil
			}).Times(1)

		tr := tree.New(list(lazy("L")), tree.Options{ChildLoader: loader, Events: rec})
		n := mustNode(t, tr, "L")

		var wg sync.WaitGroup
		wg.Go(func() {
			assert.NoError(t, n.Expand(t.Context()))
		})
		<-started
		assert.True(t, n.IsLoading())

		// Already expanded: returns at once without a second load.
		require.NoError(t, n.Expand(t.Context()))

		// A direct load joins the one in flight.
		wg.Go(func() {
			assert.NoError(t, n.LoadChildren(t.Context()))
		})
		synctest.Wait()
		assert.Empty(t, rec.take(), "notifications wait for the load")

		close(release)
		wg.Wait()

		assert.False(t, n.IsLoading())
		assert.Equal(t, []string{"L1", "L2"}, ids(n.Children()))
		assert.Equal(t, []any{"L1", "L2"}, childIDs(n.Data()))
		assert.Equal(t, []string{"onLoadChildren:L", "onToggle:L", "onToggleExpanded:L"}, rec.take())
	})
}

func childIDs(data any) []any {
	var res []any
	for _, c := range data.(map[string]any)["children"].([]any) {
		res = append(res, c.(map[string]any)["id"])
	}
	return res
}

func TestNode_Expand_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockChildLoader(ctrl)
	sink := mocks.NewMockEventSink(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	boom := errors.New("boom")
	loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).Return(nil, boom)
	tracer.EXPECT().Start(gomock.Any(), "tree.load_children", gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, opts ...ports.SpanOption) (context.Context, ports.Span) {
			cfg := ports.SpanConfig{}
			for _, opt := range opts {
				opt(&cfg)
			}
			assert.Equal(t, "L", cfg.Attributes["node_id"])
			assert.Equal(t, 1, cfg.Attributes["level"])
			return ctx, span
		})
	span.EXPECT().RecordError(boom)
	span.EXPECT().End()

	tr := tree.New(list(lazy("L")), tree.Options{ChildLoader: loader, Events: sink, Tracer: tracer})
	n := mustNode(t, tr, "L")

	err := n.Expand(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, boom)
	assert.False(t, n.IsExpanded(), "a failed load reverts the expansion")
	assert.False(t, n.IsLoading())
	assert.Equal(t, tree.ChildrenUnloaded, n.ChildrenState())
}

func TestNode_LoadChildren_ExpandsFlaggedChildren(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockChildLoader(ctrl)
	loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).Return(list(
		map[string]any{"id": "open", "isExpanded": true, "children": list(item("inner"))},
		map[string]any{"id": "flagged-leaf", "isExpanded": true},
		item("closed", item("x")),
	), nil)

	tr := tree.New(list(lazy("L")), tree.Options{ChildLoader: loader})
	n := mustNode(t, tr, "L")

	require.NoError(t, n.Expand(t.Context()))

	assert.True(t, mustNode(t, tr, "open").IsExpanded())
	assert.False(t, mustNode(t, tr, "flagged-leaf").IsExpanded())
	assert.False(t, mustNode(t, tr, "closed").IsExpanded())
	assert.Equal(t, []string{"L", "open", "inner", "flagged-leaf", "closed"}, visible(tr))
}

func TestNode_LoadChildren_NilResultKeepsUnloaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockChildLoader(ctrl)
	loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).Return(nil, nil)

	tr := tree.New(list(lazy("L")), tree.Options{ChildLoader: loader})
	n := mustNode(t, tr, "L")

	require.NoError(t, n.LoadChildren(t.Context()))
	assert.Equal(t, tree.ChildrenUnloaded, n.ChildrenState())
}

func TestTree_ExpandAll_LoadsConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockChildLoader(ctrl)

		var (
			mu       sync.Mutex
			once     sync.Once
			inFlight int
			peak     int
		)
		paired := make(chan struct{})
		children := map[string][]any{
			"A":  list(lazy("A1")),
			"B":  {},
			"C":  list(item("C1")),
			"A1": list(item("A1a")),
		}
		loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req domain.LoadRequest) ([]any, error) {
				mu.Lock()
				inFlight++
				peak = max(peak, inFlight)
				if inFlight == 2 {
					once.Do(func() { close(paired) })
				}
				mu.Unlock()

				// The first loads wait for a sibling load to run beside them.
				<-paired

				mu.Lock()
				inFlight--
				mu.Unlock()
				return children[req.ID.String()], nil
			}).Times(4)

		tr := tree.New(list(lazy("A"), lazy("B"), lazy("C")), tree.Options{
			ChildLoader:     loader,
			LoadConcurrency: 2,
		})

		require.NoError(t, tr.ExpandAll(t.Context()))

		assert.Equal(t, 2, peak)
		assert.Equal(t, domain.NewNodeIDs([]string{"A", "A1", "B", "C"}), tr.ExpandedIDs())
		assert.Equal(t, []string{"A", "A1", "A1a", "B", "C", "C1"}, visible(tr))
	})
}

func TestTree_ExpandAll_StopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockChildLoader(ctrl)
	loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))

	tr := tree.New(list(lazy("A")), tree.Options{ChildLoader: loader})

	err := tr.ExpandAll(t.Context())
	require.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Empty(t, tr.ExpandedIDs())
}

func TestTree_SetData_CollapsesLazyNodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockChildLoader(ctrl)
	loader.EXPECT().LoadChildren(gomock.Any(), gomock.Any()).Return(list(item("L1"), item("L2")), nil).Times(2)

	tr := tree.New(list(lazy("L"), item("E")), tree.Options{ChildLoader: loader})
	require.NoError(t, mustNode(t, tr, "L").Expand(t.Context()))
	require.Equal(t, []string{"L", "L1", "L2", "E"}, visible(tr))

	tr.SetData(list(lazy("L"), item("E")))

	n := mustNode(t, tr, "L")
	assert.Equal(t, tree.ChildrenUnloaded, n.ChildrenState())
	assert.False(t, n.IsExpanded(), "an unloaded lazy node is not left expanded")
	assert.Equal(t, []string{"L", "E"}, visible(tr))

	require.NoError(t, n.Expand(t.Context()))
	assert.Equal(t, []string{"L", "L1", "L2", "E"}, visible(tr))
}

func TestTree_SetData_KeepsExpandedWithoutLoader(t *testing.T) {
	tr := tree.New(list(lazy("L")), tree.Options{})
	require.NoError(t, mustNode(t, tr, "L").Expand(t.Context()))

	tr.SetData(list(lazy("L")))

	assert.True(t, mustNode(t, tr, "L").IsExpanded())
}
