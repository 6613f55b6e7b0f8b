// Package camera provides a 2D follow camera for viewport control.
package camera

import "math"

// Camera controls the viewport into the game world.
// It follows a target, stays inside the world bounds, and supports zoom and
// rotation about the viewport centre.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Rotation in degrees, in (-180, 180]
	Rotation float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (for clamping). Zero disables clamping on that axis.
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Smoothing is the fraction of the distance to the target covered per
	// Follow call. 1 snaps.
	Smoothing float32
}

// New creates a camera at the top-left of the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
		Smoothing: 1.0,
	}
	c.clampToWorld()
	return c
}

// Follow moves the camera toward the target and clamps it to the world.
func (c *Camera) Follow(tx, ty float32) {
	s := clamp(c.Smoothing, 0, 1)
	c.X += (tx - c.X) * s
	c.Y += (ty - c.Y) * s
	c.clampToWorld()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := (wx - c.X) * c.Zoom
	dy := (wy - c.Y) * c.Zoom
	sin, cos := c.sinCos()
	sx = c.ViewportW/2 + dx*cos - dy*sin
	sy = c.ViewportH/2 + dx*sin + dy*cos
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := sx - c.ViewportW/2
	dy := sy - c.ViewportH/2
	sin, cos := c.sinCos()
	// inverse rotation, then inverse zoom
	rx := dx*cos + dy*sin
	ry := -dx*sin + dy*cos
	return c.X + rx/c.Zoom, c.Y + ry/c.Zoom
}

// IsVisible returns true if the box (x, y, w, h) could be visible on screen
// (conservative check for culling).
func (c *Camera) IsVisible(x, y, w, h float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return x < maxX && x+w > minX && y < maxY && y+h > minY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampToWorld()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampToWorld()
}

// ZoomBy adds delta to the current zoom.
func (c *Camera) ZoomBy(delta float32) {
	c.SetZoom(c.Zoom + delta)
}

// Rotate adds degrees to the rotation, wrapping into (-180, 180].
func (c *Camera) Rotate(degrees float32) {
	r := float32(math.Mod(float64(c.Rotation+degrees), 360))
	if r > 180 {
		r -= 360
	} else if r <= -180 {
		r += 360
	}
	c.Rotation = r
}

// Reset returns the camera to 1:1 zoom without rotation.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.Rotation = 0
	c.clampToWorld()
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates. With rotation the
// bounds cover the rotated viewport.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	sin, cos := c.sinCos()
	sin, cos = absf(sin), absf(cos)
	extX := halfW*cos + halfH*sin
	extY := halfW*sin + halfH*cos

	minX = c.X - extX
	maxX = c.X + extX
	minY = c.Y - extY
	maxY = c.Y + extY
	return
}

// clampToWorld keeps the unrotated view inside the world, centring it on an
// axis where the world is smaller than the view.
func (c *Camera) clampToWorld() {
	if c.WorldW > 0 {
		c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	}
	if c.WorldH > 0 {
		c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
	}
}

func clampAxis(v, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(v, half, size-half)
}

func (c *Camera) sinCos() (sin, cos float32) {
	s, co := math.Sincos(float64(c.Rotation) * math.Pi / 180)
	return float32(s), float32(co)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp is geom.Clamp for float32, the unit raylib works in.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
