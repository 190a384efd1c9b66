// Package camera provides the 2D pan offset and value scaling for the plot view.
package camera

// Camera controls the viewport into the plot.
// The plot is laid out in scene coordinates; panning shifts the whole scene
// without touching the underlying data.
type Camera struct {
	// Pan offset in screen pixels, added to every scene coordinate
	OffsetX, OffsetY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Drag state
	dragging         bool
	cursorX, cursorY float32
}

// New creates a camera with no pan offset.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// WorldToScreen converts scene coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return wx + c.OffsetX, wy + c.OffsetY
}

// ScreenToWorld converts screen coordinates to scene coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return sx - c.OffsetX, sy - c.OffsetY
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	return sx+radius >= 0 && sx-radius <= c.ViewportW &&
		sy+radius >= 0 && sy-radius <= c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the scene by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// BeginDrag starts a drag at the given cursor position.
func (c *Camera) BeginDrag(x, y float32) {
	c.dragging = true
	c.cursorX, c.cursorY = x, y
}

// DragTo pans by the cursor movement since the last call. No-op when not dragging.
func (c *Camera) DragTo(x, y float32) {
	if !c.dragging {
		return
	}
	c.Pan(x-c.cursorX, y-c.cursorY)
	c.cursorX, c.cursorY = x, y
}

// EndDrag stops dragging.
func (c *Camera) EndDrag() {
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Camera) Dragging() bool {
	return c.dragging
}

// Follow pans horizontally so that scene x coordinate right stays within
// margin pixels of the viewport's right edge. It never pans right of zero.
func (c *Camera) Follow(right, margin float32) {
	target := c.ViewportW - margin - right
	c.OffsetX = min(target, 0)
}

// Reset removes any pan offset.
func (c *Camera) Reset() {
	c.OffsetX = 0
	c.OffsetY = 0
	c.dragging = false
}

// Band maps values in [0, Max] linearly onto a vertical pixel range.
// Max maps to Top and 0 maps to Bottom.
type Band struct {
	Max    float32
	Top    float32
	Bottom float32
}

// Y returns the vertical position of value n.
func (b Band) Y(n int) float32 {
	return float32(Level(float64(n), float64(b.Max), float64(b.Top), float64(b.Bottom)))
}

// Value is the inverse of Y: the value plotted at vertical position y.
func (b Band) Value(y float32) float64 {
	if b.Bottom == b.Top {
		return 0
	}
	return float64(b.Max) * float64(b.Bottom-y) / float64(b.Bottom-b.Top)
}

// Contains reports whether y lies within the band.
func (b Band) Contains(y float32) bool {
	return y >= min(b.Top, b.Bottom) && y <= max(b.Top, b.Bottom)
}

// Level rescales n from [0, maxNum] onto [lo, hi], inverted so larger values sit higher.
func Level(n, maxNum, lo, hi float64) float64 {
	return ((maxNum-n)/maxNum)*(hi-lo) + lo
}
