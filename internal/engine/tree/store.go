package tree

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/canopy/internal/core/domain"
)

// store holds the tree-wide node state keyed by node id.
// Nodes never cache these flags; every read goes through the store.
type store struct {
	mu sync.RWMutex

	expanded map[domain.NodeID]struct{}
	active   map[domain.NodeID]struct{}
	hidden   map[domain.NodeID]struct{}
	loading  map[domain.NodeID]struct{}

	focused    domain.NodeID
	inputFocus bool
}

func newStore() *store {
	return &store{
		expanded: make(map[domain.NodeID]struct{}),
		active:   make(map[domain.NodeID]struct{}),
		hidden:   make(map[domain.NodeID]struct{}),
		loading:  make(map[domain.NodeID]struct{}),
	}
}

func (s *store) has(set map[domain.NodeID]struct{}, id domain.NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := set[id]
	return ok
}

// put adds or removes id and reports whether the set changed.
func (s *store) put(set map[domain.NodeID]struct{}, id domain.NodeID, v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := set[id]
	if ok == v {
		return false
	}
	if v {
		set[id] = struct{}{}
	} else {
		delete(set, id)
	}
	return true
}

func (s *store) isExpanded(id domain.NodeID) bool { return s.has(s.expanded, id) }
func (s *store) isActive(id domain.NodeID) bool   { return s.has(s.active, id) }
func (s *store) isHidden(id domain.NodeID) bool   { return s.has(s.hidden, id) }
func (s *store) isLoading(id domain.NodeID) bool  { return s.has(s.loading, id) }

func (s *store) setExpanded(id domain.NodeID, v bool) bool { return s.put(s.expanded, id, v) }
func (s *store) setHidden(id domain.NodeID, v bool) bool   { return s.put(s.hidden, id, v) }
func (s *store) setLoading(id domain.NodeID, v bool) bool  { return s.put(s.loading, id, v) }

// toggleExpanded flips the expanded flag and returns the new value.
func (s *store) toggleExpanded(id domain.NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expanded[id]; ok {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// setActive updates the active set. Unless multi is set, activating a node
// deactivates every other node. It returns the ids whose state changed.
func (s *store) setActive(id domain.NodeID, v, multi bool) (activated, deactivated []domain.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !v {
		if _, ok := s.active[id]; ok {
			delete(s.active, id)
			deactivated = append(deactivated, id)
		}
		return nil, deactivated
	}

	if !multi {
		for other := range s.active {
			if other != id {
				delete(s.active, other)
				deactivated = append(deactivated, other)
			}
		}
	}
	if _, ok := s.active[id]; !ok {
		s.active[id] = struct{}{}
		activated = append(activated, id)
	}
	sortIDs(deactivated)
	return activated, deactivated
}

// setFocused replaces the focused id and returns the previous one.
func (s *store) setFocused(id domain.NodeID) domain.NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.focused
	s.focused = id
	return prev
}

func (s *store) focusedID() domain.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}

func (s *store) setInputFocus(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputFocus = v
}

func (s *store) hasInputFocus() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputFocus
}

func (s *store) ids(set map[domain.NodeID]struct{}) []domain.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.NodeID, 0, len(set))
	for id := range set {
		res = append(res, id)
	}
	sortIDs(res)
	return res
}

func sortIDs(ids []domain.NodeID) {
	slices.SortFunc(ids, func(a, b domain.NodeID) int {
		return strings.Compare(a.String(), b.String())
	})
}
