package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numevo/telemetry"
)

const (
	panelWidth   = 220
	panelHeight  = 170
	panelMargin  = 10
	buttonHeight = 24
)

// Panel is the screen-space control and status box in the top-right corner.
type Panel struct{}

// NewPanel creates a panel.
func NewPanel() *Panel {
	return &Panel{}
}

// bounds returns the panel rectangle for the given screen width.
func (p *Panel) bounds(screenWidth float32) rl.Rectangle {
	return rl.Rectangle{
		X:      screenWidth - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: panelHeight,
	}
}

// Contains reports whether a screen point lies on the panel.
func (p *Panel) Contains(point rl.Vector2, screenWidth float32) bool {
	return rl.CheckCollisionPointRec(point, p.bounds(screenWidth))
}

// Draw renders the panel and applies button actions to the viewer.
func (p *Panel) Draw(v *Viewer) {
	b := p.bounds(v.screenWidth)
	rl.DrawRectangleRec(b, rl.Fade(rl.DarkGray, 0.85))
	rl.DrawRectangleLinesEx(b, 1, rl.Gray)

	x := b.X + 10
	y := b.Y + 8
	w := b.Width - 20

	status := "evolving"
	if v.evolver.Converged() {
		status = "target reached"
	}
	rl.DrawText(status, int32(x), int32(y), 16, rl.White)
	y += 22

	if latest, ok := v.scene.Latest(); ok {
		stats := telemetry.ComputeGenerationStats(latest, v.evolver.Desired())
		rl.DrawText(fmt.Sprintf("gen %d | best %d | target %d", stats.Iteration, stats.Best, stats.Desired),
			int32(x), int32(y), 12, rl.LightGray)
		y += 16
		rl.DrawText(fmt.Sprintf("mean %.1f | std %.1f | err %.1f", stats.PopMean, stats.PopStd, stats.MeanError),
			int32(x), int32(y), 12, rl.LightGray)
		y += 16
	} else {
		rl.DrawText("waiting for first generation", int32(x), int32(y), 12, rl.LightGray)
		y += 32
	}

	if v.hovering {
		rl.DrawText(fmt.Sprintf("cursor: gen %d | value %.0f | best %d", v.hover.Iteration, v.hover.Value, v.hover.Record.Best),
			int32(x), int32(y), 12, rl.Yellow)
	}
	y += 16

	y += 6
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}, "Reset view") {
		v.camera.Reset()
		v.follow = false
	}
	y += buttonHeight + 6
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}, toggleText(v.follow, "Follow: on", "Follow: off")) {
		v.follow = !v.follow
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
