package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numevo/components"
)

// Palette
var (
	colorBackground = rl.Black
	colorZeroLine   = rl.NewColor(255, 255, 0, 255)
	colorMaxLine    = rl.NewColor(0, 255, 0, 255)
	colorTarget     = rl.NewColor(150, 0, 0, 255)
	colorAxisLabel  = rl.NewColor(255, 0, 255, 255)
	colorDot        = rl.White
	colorBest       = rl.NewColor(255, 0, 0, 255)
	colorBestText   = rl.NewColor(255, 50, 50, 255)
	colorText       = rl.NewColor(250, 250, 250, 255)
)

// Draw renders the full accumulated history plus the control panel.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	v.drawThresholds()
	v.drawGenerations()
	v.panel.Draw(v)

	rl.EndDrawing()
}

// drawThresholds renders the 0, max and target lines across the history width.
func (v *Viewer) drawThresholds() {
	plot := v.cfg.Plot
	x0 := plot.OriginX
	x1 := x0 + v.scene.Width()

	levelZero := v.band.Y(0)
	levelMax := v.band.Y(v.evolver.Params().MaxNumber)
	levelTarget := v.band.Y(v.evolver.Desired())

	v.drawLine(x0, levelZero, x1, levelZero, colorZeroLine)
	v.drawLine(x0, levelMax, x1, levelMax, colorMaxLine)
	v.drawLine(x0, levelTarget, x1, levelTarget, colorTarget)

	v.drawText(v.maxText, x0, levelMax, plot.LabelFontSize, components.AlignLeftOf, colorAxisLabel)
	v.drawText(v.zeroText, x0, levelZero, plot.LabelFontSize, components.AlignLeftOf, colorAxisLabel)
	v.drawText(v.desiredText, x0, levelTarget, plot.LabelFontSize, components.AlignLeftOf, colorAxisLabel)
	v.drawText("best", x0, plot.BestLabelY, plot.DataFontSize, components.AlignLeftOf, colorAxisLabel)
	v.drawText("iteration", x0, plot.IterationLabelY, plot.DataFontSize, components.AlignLeftOf, colorAxisLabel)
}

// drawGenerations walks every scene entity.
func (v *Viewer) drawGenerations() {
	plot := v.cfg.Plot

	v.scene.EachDot(func(pos components.Position, _ components.Dot) {
		v.drawCircle(pos.X, pos.Y, plot.DotRadius, colorDot)
	})

	v.scene.EachBest(func(pos components.Position, _ components.Best) {
		v.drawCircle(pos.X, pos.Y, plot.BestRadius, colorBest)
	})

	v.scene.EachLabel(func(pos components.Position, label components.Label) {
		color := colorText
		if label.Tone == components.ToneBest {
			color = colorBestText
		}
		v.drawText(label.Text, pos.X, pos.Y, plot.DataFontSize, label.Align, color)
	})
}

func (v *Viewer) drawLine(x0, y0, x1, y1 float32, color rl.Color) {
	sx0, sy0 := v.camera.WorldToScreen(x0, y0)
	sx1, sy1 := v.camera.WorldToScreen(x1, y1)
	rl.DrawLineV(rl.Vector2{X: sx0, Y: sy0}, rl.Vector2{X: sx1, Y: sy1}, color)
}

func (v *Viewer) drawCircle(x, y, radius float32, color rl.Color) {
	if !v.camera.IsVisible(x, y, radius) {
		return
	}
	sx, sy := v.camera.WorldToScreen(x, y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
}

// drawText draws text anchored at a scene position.
func (v *Viewer) drawText(text string, x, y float32, size int32, align components.Align, color rl.Color) {
	w := float32(rl.MeasureText(text, size))
	h := float32(size)
	dx, dy := align.Offset(w, h)
	x += dx
	y += dy

	// Cull on the label's bounding circle
	if !v.camera.IsVisible(x+w/2, y+h/2, w/2+h) {
		return
	}
	sx, sy := v.camera.WorldToScreen(x, y)
	rl.DrawText(text, int32(sx), int32(sy), size, color)
}
