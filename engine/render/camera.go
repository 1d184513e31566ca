package render

import (
	"math"

	"github.com/1siamBot/adventure-engine/engine/core"
)

// Camera is the viewport into the top-down world. X, Y is the world position
// of the screen's top-left corner, in unscaled world units.
type Camera struct {
	X, Y    float64
	ScreenW int // viewport width in world units
	ScreenH int // viewport height in world units

	// World bounds for clamping, zero means unbounded
	WorldW int
	WorldH int

	// Target is the entity followed by Follow
	Target core.EntityID
}

// NewCamera creates a camera with the given viewport size
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{ScreenW: screenW, ScreenH: screenH}
}

// SetWorldBounds sets the world size for camera clamping
func (c *Camera) SetWorldBounds(w, h int) {
	c.WorldW = w
	c.WorldH = h
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X = wx - float64(c.ScreenW)/2
	c.Y = wy - float64(c.ScreenH)/2
	c.clamp()
}

// Follow centers the camera on the middle of the target's sprite. Returns
// false when the target is gone or has no position.
func (c *Camera) Follow(w *core.World) bool {
	pos, ok := core.Get[*core.Position](w, c.Target)
	if !ok {
		return false
	}
	cx, cy := pos.X, pos.Y
	if r, ok := core.Get[*core.Renderable](w, c.Target); ok {
		cx += float64(r.W) / 2
		cy += float64(r.H) / 2
	}
	c.CenterOn(cx, cy)
	return true
}

// WorldToScreen converts a world position to viewport coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return math.Round(wx - c.X), math.Round(wy - c.Y)
}

// ScreenToWorld converts viewport coordinates to a world position
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx + c.X, sy + c.Y
}

// Visible reports whether a world rectangle intersects the viewport
func (c *Camera) Visible(x, y float64, w, h int) bool {
	return x+float64(w) > c.X && x < c.X+float64(c.ScreenW) &&
		y+float64(h) > c.Y && y < c.Y+float64(c.ScreenH)
}

// VisibleTileRange returns the inclusive range of tiles on screen
func (c *Camera) VisibleTileRange(tileSize, mapW, mapH int) (minX, minY, maxX, maxY int) {
	if tileSize <= 0 {
		return 0, 0, -1, -1
	}
	minX = max(int(math.Floor(c.X/float64(tileSize))), 0)
	minY = max(int(math.Floor(c.Y/float64(tileSize))), 0)
	maxX = min(int(math.Floor((c.X+float64(c.ScreenW))/float64(tileSize))), mapW-1)
	maxY = min(int(math.Floor((c.Y+float64(c.ScreenH))/float64(tileSize))), mapH-1)
	return
}

// clamp keeps the viewport inside the world. A world smaller than the
// viewport is centered.
func (c *Camera) clamp() {
	if c.WorldW > 0 {
		c.X = clampAxis(c.X, c.ScreenW, c.WorldW)
	}
	if c.WorldH > 0 {
		c.Y = clampAxis(c.Y, c.ScreenH, c.WorldH)
	}
}

func clampAxis(v float64, view, world int) float64 {
	if world <= view {
		return -float64(view-world) / 2
	}
	return math.Max(0, math.Min(v, float64(world-view)))
}
