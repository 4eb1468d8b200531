package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/canopy/internal/adapters/tui"
	"go.trai.ch/canopy/internal/core/domain"
)

func TestScroller_ScrollIntoView(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		target   domain.ScrollTarget
		force    bool
		expected int
	}{
		{"already visible", 0, domain.ScrollTarget{Position: 3, Height: 1}, false, 0},
		{"above window", 0, domain.ScrollTarget{Position: 6, Height: 1}, false, 2},
		{"below window", 10, domain.ScrollTarget{Position: 4, Height: 1}, false, 4},
		{"forced", 0, domain.ScrollTarget{Position: 2, Height: 1}, true, 2},
		{"taller than window", 0, domain.ScrollTarget{Position: 8, Height: 9}, false, 8},
		{"partially below", 0, domain.ScrollTarget{Position: 4, Height: 2}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tui.NewScroller()
			s.SetHeight(5)
			if tt.offset > 0 {
				s.ScrollIntoView(domain.ScrollTarget{Position: tt.offset}, true)
			}

			s.ScrollIntoView(tt.target, tt.force)
			assert.Equal(t, tt.expected, s.Offset())
		})
	}
}

func TestScroller_Clamp(t *testing.T) {
	s := tui.NewScroller()
	s.SetHeight(4)
	s.ScrollIntoView(domain.ScrollTarget{Position: 20}, true)

	s.Clamp(10)
	assert.Equal(t, 6, s.Offset())

	s.Clamp(2)
	assert.Equal(t, 0, s.Offset())

	s.SetHeight(-1)
	assert.Equal(t, 0, s.Height())
}
