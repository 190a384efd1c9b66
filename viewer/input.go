package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes mouse and keyboard input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF) {
		v.follow = !v.follow
	}

	v.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(w, h)
}

// handleCameraInput processes drag and key panning.
func (v *Viewer) handleCameraInput() {
	mouse := rl.GetMousePosition()
	wx, wy := v.camera.ScreenToWorld(mouse.X, mouse.Y)
	v.hover, v.hovering = v.scene.At(wx, wy)

	// Click-drag pans the whole scene; clicks on the panel belong to the panel
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !v.panel.Contains(mouse, v.screenWidth) {
		v.camera.BeginDrag(mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.camera.EndDrag()
	}
	if v.camera.Dragging() {
		v.camera.DragTo(mouse.X, mouse.Y)
		v.follow = false
	}

	panSpeed := v.cfg.Plot.PanSpeed
	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(-panSpeed, 0)
		v.follow = false
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(panSpeed, 0)
		v.follow = false
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, panSpeed)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
		v.follow = false
	}
}
