package tui

import (
	"sync"

	"go.trai.ch/canopy/internal/core/domain"
)

// Scroller is the virtual scroll window of the browser. The tree calls
// ScrollIntoView when a node should become visible; the model renders only the
// rows between Offset and Offset+Height.
type Scroller struct {
	mu     sync.Mutex
	offset int
	height int
}

// NewScroller creates a Scroller with an empty window.
func NewScroller() *Scroller {
	return &Scroller{}
}

// ScrollIntoView implements ports.Scroller. A forced scroll puts the target at
// the top of the window.
func (s *Scroller) ScrollIntoView(target domain.ScrollTarget, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case force, target.Position < s.offset:
		s.offset = target.Position
	case target.Position+target.Height > s.offset+s.height:
		s.offset = min(target.Position+target.Height-s.height, target.Position)
	}
}

// Offset returns the first row of the window.
func (s *Scroller) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Height returns the number of rows in the window.
func (s *Scroller) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// SetHeight resizes the window.
func (s *Scroller) SetHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = max(h, 0)
}

// Clamp keeps the window inside content of the given total height.
func (s *Scroller) Clamp(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = min(s.offset, max(total-s.height, 0))
	s.offset = max(s.offset, 0)
}
