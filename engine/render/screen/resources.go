package screen

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/render"
	"github.com/hajimehoshi/ebiten/v2"
)

// Resources loads and caches images by key. A key names a PNG file
// relative to Dir without its extension, e.g. "sprites/player-down-0".
type Resources struct {
	Dir   string
	Scale int
	Log   *log.Logger

	images   map[string]*ebiten.Image
	tilesets map[string][]*ebiten.Image
	missing  *ebiten.Image
}

// NewResources creates a cache over dir. An empty dir searches the usual
// asset locations next to the executable and the source tree.
func NewResources(dir string, scale int, logger *log.Logger) *Resources {
	if dir == "" {
		dir = AssetsDir()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resources{
		Dir:      dir,
		Scale:    max(scale, 1),
		Log:      logger,
		images:   make(map[string]*ebiten.Image),
		tilesets: make(map[string][]*ebiten.Image),
	}
}

// Image returns the image for key, loading it on first use
func (r *Resources) Image(key string) (*ebiten.Image, error) {
	if img, ok := r.images[key]; ok {
		return img, nil
	}
	src, err := render.LoadPNG(filepath.Join(r.Dir, key+".png"))
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(render.Scale(src, r.Scale))
	r.images[key] = img
	return img, nil
}

// MustImage returns the image for key or a placeholder. Load failures are
// logged once per key.
func (r *Resources) MustImage(key string) *ebiten.Image {
	img, err := r.Image(key)
	if err == nil {
		return img
	}
	if errors.Is(err, core.ErrResourceNotFound) {
		r.Log.Printf("image %q missing, using placeholder", key)
	} else {
		r.Log.Printf("image %q: %v", key, err)
	}
	r.images[key] = r.placeholder()
	return r.images[key]
}

// Tileset returns the tiles cut from the named sheet, scaled
func (r *Resources) Tileset(name string, tileSize int) ([]*ebiten.Image, error) {
	if ts, ok := r.tilesets[name]; ok {
		return ts, nil
	}
	sheet, err := render.LoadPNG(filepath.Join(r.Dir, name+".png"))
	if err != nil {
		return nil, fmt.Errorf("tileset: %w", err)
	}
	tiles := render.Tiles(sheet, tileSize)
	out := make([]*ebiten.Image, len(tiles))
	for i, t := range tiles {
		out[i] = ebiten.NewImageFromImage(render.Scale(t, r.Scale))
	}
	r.tilesets[name] = out
	r.Log.Printf("tileset %s: %d tiles of %dpx", name, len(out), tileSize)
	return out, nil
}

func (r *Resources) placeholder() *ebiten.Image {
	if r.missing == nil {
		r.missing = ebiten.NewImage(8*r.Scale, 8*r.Scale)
		r.missing.Fill(color.RGBA{255, 0, 255, 255})
	}
	return r.missing
}

// AssetsDir finds the assets directory next to the executable, in the
// source tree or in the working directory
func AssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}
