package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/1siamBot/adventure-engine/engine/core"
	xdraw "golang.org/x/image/draw"
)

// LoadPNG decodes an image file. A missing file is reported as a
// core.ResourceError wrapping core.ErrResourceNotFound.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &core.ResourceError{Kind: "image", Name: path, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Scale enlarges src by an integer factor with nearest-neighbor sampling so
// pixel art stays crisp
func Scale(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	factor = max(factor, 1)
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Tiles cuts a tileset into square tiles, row by row. A partial tile at the
// right or bottom edge is dropped.
func Tiles(sheet image.Image, tileSize int) []image.Image {
	if tileSize <= 0 {
		return nil
	}
	sub, ok := sheet.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil
	}
	b := sheet.Bounds()
	var out []image.Image
	for y := b.Min.Y; y+tileSize <= b.Max.Y; y += tileSize {
		for x := b.Min.X; x+tileSize <= b.Max.X; x += tileSize {
			out = append(out, sub.SubImage(image.Rect(x, y, x+tileSize, y+tileSize)))
		}
	}
	return out
}
