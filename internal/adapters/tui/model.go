// Package tui provides the interactive tree browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/canopy/internal/adapters/telemetry"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

// headerLines is the number of rows used by the title and the status line.
const headerLines = 2

// Matcher reports whether a node matches a filter query.
type Matcher func(query string, n *tree.Node) bool

// Model is the Bubble Tea model of the tree browser.
type Model struct {
	ctx      context.Context
	tree     *tree.Tree
	scroller *Scroller
	match    Matcher

	viewport viewport.Model
	filter   textinput.Model
	editing  bool
	loading  map[string]bool
	status   string
	err      error
	width    int

	fetcher   *Prefetcher
	fetching  map[domain.NodeID]bool
	stale     map[domain.NodeID]bool
	expandAll bool
	restoring []domain.NodeID
}

// NewModel creates a browser over t. The scroller must be the one the tree was
// built with so that focus changes scroll the window. When the tree loads
// children, fetcher must be its child loader; nil means every child is present
// in the data.
func NewModel(ctx context.Context, t *tree.Tree, scroller *Scroller, fetcher *Prefetcher, match Matcher) *Model {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "filter"

	m := &Model{
		ctx:      ctx,
		tree:     t,
		scroller: scroller,
		match:    match,
		viewport: viewport.New(0, 0),
		filter:   input,
		loading:  make(map[string]bool),
		fetcher:  fetcher,
		fetching: make(map[domain.NodeID]bool),
		stale:    make(map[domain.NodeID]bool),
	}
	if first := t.FirstVisible(); first != nil && t.FocusedNode() == nil {
		first.Focus()
	}
	t.SetFocus(true)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines, 0)
		m.scroller.SetHeight(m.viewport.Height)
		if n := m.tree.FocusedNode(); n != nil {
			n.ScrollIntoView(false)
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)

	case msgFetched:
		return m, m.settle(msg.ID)

	case MsgReload:
		if msg.Err != nil {
			m.err = msg.Err
			break
		}
		m.err = nil
		m.restoring = m.tree.ExpandedIDs()
		m.tree.SetData(msg.Nodes)
		clear(m.stale)
		m.restore()
		if query := m.filter.Value(); query != "" {
			m.applyFilter(query)
		}
		if m.tree.FocusedNode() == nil {
			if first := m.tree.FirstVisible(); first != nil {
				first.Focus()
			}
		}
		m.status = "reloaded"
		return m, m.sweep()

	case telemetry.MsgSpanStart:
		if msg.NodeID != "" {
			m.loading[msg.NodeID] = true
		}

	case telemetry.MsgSpanEnd:
		delete(m.loading, msg.NodeID)
		if msg.Err != nil {
			m.err = msg.Err
		}

	default:
		if m.editing {
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.tree.FocusedNode()

	switch msg.String() {
	case "q", "ctrl+c":
		m.tree.SetFocus(false)
		return m, tea.Quit
	case "/":
		m.editing = true
		m.filter.Focus()
		return m, textinput.Blink
	case "esc":
		m.filter.SetValue("")
		m.tree.ClearFilter()
		m.status = ""
	case "g", "home":
		m.focus(m.tree.FirstVisible())
	case "G", "end":
		m.focus(m.tree.LastVisible())
	case "E":
		m.expandAll = true
		clear(m.stale)
		m.report(m.tree.ExpandAll(m.ctx))
		return m, m.sweep()
	case "C":
		m.tree.CollapseAll()
		m.refocus()
	}

	if focused == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.focus(focused.FindPreviousNode(true))
	case "down", "j":
		m.focus(focused.FindNextNode(true, true))
	case "right", "l":
		if focused.HasChildren() && focused.IsCollapsed() {
			delete(m.stale, focused.ID())
			m.report(focused.Expand(m.ctx))
			return m, m.sweep()
		}
		m.focus(focused.GetFirstChild(true))
	case "left", "h":
		if focused.HasChildren() && focused.IsExpanded() {
			focused.Collapse()
			break
		}
		m.focus(focused.RealParent())
	case "enter":
		return m, m.act(focused, domain.ActionExpanderClick)
	case " ":
		return m, m.act(focused, domain.ActionClick)
	}

	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.editing = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.applyFilter(m.filter.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

func (m *Model) applyFilter(query string) {
	if query == "" || m.match == nil {
		m.tree.ClearFilter()
		m.status = ""
		m.refocus()
		return
	}
	m.tree.FilterNodes(func(n *tree.Node) bool { return m.match(query, n) }, true)
	m.status = "filter: " + query
	m.refocus()
}

// refocus moves the focus to the first visible node when the focused node
// is no longer displayed.
func (m *Model) refocus() {
	if n := m.tree.FocusedNode(); n != nil && displayed(n) {
		n.ScrollIntoView(false)
		return
	}
	m.focus(m.tree.FirstVisible())
}

func (m *Model) focus(n *tree.Node) {
	if n == nil || n.IsVirtual() {
		return
	}
	n.Focus()
}

// act runs the mapped handler for action on n. Loads the handler triggers are
// deferred to the fetch commands.
func (m *Model) act(n *tree.Node, action domain.Action) tea.Cmd {
	delete(m.stale, n.ID())
	m.report(n.MouseAction(m.ctx, action, nil, nil))
	return m.sweep()
}

func (m *Model) report(err error) {
	if err != nil {
		m.err = err
	}
}

// sweep starts a fetch for every expanded node whose children are still to be
// loaded. The commands call the loader alone and never touch the tree.
func (m *Model) sweep() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	var cmds []tea.Cmd
	for n := range m.tree.Walk() {
		id := n.ID()
		if !n.IsExpanded() || !n.HasChildren() || n.ChildrenState() != tree.ChildrenUnloaded ||
			m.fetching[id] || m.stale[id] {
			continue
		}
		m.fetching[id] = true
		cmds = append(cmds, m.fetch(n.LoadRequest()))
	}
	if len(m.fetching) == 0 {
		m.expandAll = false
		m.restoring = nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetch(req domain.LoadRequest) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		_ = fetcher.Fetch(ctx, req)
		return msgFetched{ID: req.ID}
	}
}

// settle materializes fetched children and continues whatever asked for them.
func (m *Model) settle(id domain.NodeID) tea.Cmd {
	delete(m.fetching, id)
	defer m.fetcher.Discard(id)

	n, ok := m.tree.GetNodeByID(id)
	if ok && n.ChildrenState() == tree.ChildrenUnloaded {
		if err := n.LoadChildren(m.ctx); err != nil {
			m.err = err
			m.report(n.SetIsExpanded(m.ctx, false))
		} else if n.ChildrenState() == tree.ChildrenUnloaded {
			// The loader had nothing; leave the node until it is asked for again.
			m.stale[id] = true
		}
	}

	if m.expandAll {
		m.report(m.tree.ExpandAll(m.ctx))
	}
	m.restore()
	return m.sweep()
}

// restore re-expands nodes that were expanded before a reload once they exist.
func (m *Model) restore() {
	pending := m.restoring[:0]
	for _, id := range m.restoring {
		n, ok := m.tree.GetNodeByID(id)
		if !ok {
			pending = append(pending, id)
			continue
		}
		m.report(n.Expand(m.ctx))
	}
	m.restoring = pending
}

// displayed reports whether n is shown: it and every real ancestor are
// visible and the ancestors are expanded.
func displayed(n *tree.Node) bool {
	if n.IsHidden() {
		return false
	}
	for p := n.RealParent(); p != nil; p = p.RealParent() {
		if p.IsHidden() || p.IsCollapsed() {
			return false
		}
	}
	return true
}
