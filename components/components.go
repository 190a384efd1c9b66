// Package components defines ECS components for the plot scene.
package components

// Position is a scene coordinate in pixels before the camera pan is applied.
type Position struct {
	X, Y float32
}

// Dot is one individual of one generation.
type Dot struct {
	Iteration int
	Value     int
}

// Best marks the best-so-far value published with a generation.
type Best struct {
	Iteration int
	Value     int
}

// Align places a label relative to its anchor position.
type Align uint8

const (
	AlignCenter  Align = iota // Centered on the anchor
	AlignLeftOf               // Ends at the anchor, vertically centered
	AlignRightOf              // Starts at the anchor, vertically centered
	AlignAbove                // Bottom edge on the anchor, horizontally centered
	AlignBelow                // Top edge on the anchor, horizontally centered
)

// Offset returns the top-left displacement for a label of the given size.
func (a Align) Offset(w, h float32) (dx, dy float32) {
	switch a {
	case AlignLeftOf:
		return -w, -h / 2
	case AlignRightOf:
		return 0, -h / 2
	case AlignAbove:
		return -w / 2, -h
	case AlignBelow:
		return -w / 2, 0
	default:
		return -w / 2, -h / 2
	}
}

// Tone selects the palette entry a label is drawn with.
type Tone uint8

const (
	ToneIteration Tone = iota
	ToneBest
	TonePopulation
)

// Label is a line of text attached to a generation.
type Label struct {
	Iteration int
	Text      string
	Align     Align
	Tone      Tone
}
