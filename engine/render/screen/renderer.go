package screen

import (
	"image/color"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/maplib"
	"github.com/1siamBot/adventure-engine/engine/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	solidColor  = color.RGBA{255, 64, 64, 200}
	sensorColor = color.RGBA{64, 255, 64, 200}
	groundColor = color.RGBA{40, 90, 40, 255}
	wallColor   = color.RGBA{90, 90, 90, 255}
)

// Renderer draws a scene: the ground layer, the sprites by depth, the
// foreground layer, then the optional hitbox overlay and HUD text. It only
// reads the world.
type Renderer struct {
	Camera       *render.Camera
	Res          *Resources
	Scale        int
	ShowHitboxes bool
	HUD          string

	sprites []render.Sprite
	boxes   []render.Box
}

func NewRenderer(cam *render.Camera, res *Resources) *Renderer {
	return &Renderer{Camera: cam, Res: res, Scale: res.Scale}
}

// Draw renders one frame. tm may be nil for scenes without a map.
func (r *Renderer) Draw(dst *ebiten.Image, w *core.World, tm *maplib.TileMap) {
	r.Camera.Follow(w)
	if tm != nil {
		r.drawLayer(dst, tm, false)
	}
	r.sprites = render.CollectSprites(w, r.Camera, r.sprites)
	for _, s := range r.sprites {
		r.drawImage(dst, r.Res.MustImage(s.Image), s.X, s.Y)
	}
	if tm != nil {
		r.drawLayer(dst, tm, true)
	}
	if r.ShowHitboxes {
		r.drawHitboxes(dst, w)
	}
	if r.HUD != "" {
		ebitenutil.DebugPrint(dst, r.HUD)
	}
}

func (r *Renderer) drawImage(dst, img *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x*float64(r.Scale), y*float64(r.Scale))
	dst.DrawImage(img, op)
}

// drawLayer draws the visible tiles of the ground or foreground layer.
// Without a tileset the ground is drawn as flat colors.
func (r *Renderer) drawLayer(dst *ebiten.Image, tm *maplib.TileMap, foreground bool) {
	if foreground && len(tm.Foreground) == 0 {
		return
	}
	var tiles []*ebiten.Image
	if tm.Tileset != "" {
		tiles, _ = r.Res.Tileset(tm.Tileset, tm.TileSize)
	}
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(tm.TileSize, tm.Width, tm.Height)
	s := float32(r.Scale)
	size := float32(tm.TileSize) * s
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sprite := tm.At(x, y).Sprite
			if foreground {
				sprite = tm.Foreground[y*tm.Width+x]
			}
			sx, sy := r.Camera.WorldToScreen(float64(x*tm.TileSize), float64(y*tm.TileSize))
			if sprite >= 0 && sprite < len(tiles) {
				r.drawImage(dst, tiles[sprite], sx, sy)
				continue
			}
			if foreground || sprite < 0 {
				continue
			}
			clr := groundColor
			if tm.At(x, y).Solid {
				clr = wallColor
			}
			vector.DrawFilledRect(dst, float32(sx)*s, float32(sy)*s, size, size, clr, false)
		}
	}
}

func (r *Renderer) drawHitboxes(dst *ebiten.Image, w *core.World) {
	s := float32(r.Scale)
	r.boxes = render.CollectHitboxes(w, r.Camera, r.boxes)
	for _, b := range r.boxes {
		clr := sensorColor
		if b.Solid {
			clr = solidColor
		}
		vector.StrokeRect(dst, float32(b.X)*s, float32(b.Y)*s, float32(b.W)*s, float32(b.H)*s, 1, clr, false)
	}
}
