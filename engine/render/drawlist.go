package render

import (
	"cmp"
	"slices"

	"github.com/1siamBot/adventure-engine/engine/core"
)

// Sprite is one entry of a frame's draw list, in viewport coordinates
type Sprite struct {
	Entity core.EntityID
	Image  string
	X, Y   float64
	Depth  int
	W, H   int
}

// Box is a hitbox outline for the debug overlay, in viewport coordinates
type Box struct {
	X, Y, W, H float64
	Solid      bool
}

// CollectSprites builds the draw list for the visible entities. Lower depth
// draws first; equal depths draw by their bottom edge so sprites further
// down the screen overlap the ones above. Relative positions are screen
// space and ignore the camera.
func CollectSprites(w *core.World, cam *Camera, dst []Sprite) []Sprite {
	dst = dst[:0]
	for id, c := range core.Query2[*core.Position, *core.Renderable](w) {
		pos, r := c.First, c.Second
		if r.Image == "" {
			continue
		}
		sx, sy := pos.X, pos.Y
		if !pos.Relative {
			if !cam.Visible(pos.X, pos.Y, r.W, r.H) {
				continue
			}
			sx, sy = cam.WorldToScreen(pos.X, pos.Y)
		}
		dst = append(dst, Sprite{Entity: id, Image: r.Image, X: sx, Y: sy, Depth: r.Depth, W: r.W, H: r.H})
	}
	slices.SortStableFunc(dst, func(a, b Sprite) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Y+float64(a.H), b.Y+float64(b.H))
	})
	return dst
}

// CollectHitboxes lists the visible hitboxes for the debug overlay
func CollectHitboxes(w *core.World, cam *Camera, dst []Box) []Box {
	dst = dst[:0]
	for _, hb := range core.Query1[*core.HitBox](w) {
		if !cam.Visible(float64(hb.X), float64(hb.Y), hb.W, hb.H) {
			continue
		}
		x, y := cam.WorldToScreen(float64(hb.X), float64(hb.Y))
		dst = append(dst, Box{X: x, Y: y, W: float64(hb.W), H: float64(hb.H), Solid: hb.Solid})
	}
	return dst
}
