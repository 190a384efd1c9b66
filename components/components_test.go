package components

import "testing"

func TestAlignOffset(t *testing.T) {
	tests := []struct {
		name   string
		align  Align
		dx, dy float32
	}{
		{"center", AlignCenter, -20, -5},
		{"left of", AlignLeftOf, -40, -5},
		{"right of", AlignRightOf, 0, -5},
		{"above", AlignAbove, -20, -10},
		{"below", AlignBelow, -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := tt.align.Offset(40, 10)
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Offset(40, 10) = (%v, %v), want (%v, %v)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}
