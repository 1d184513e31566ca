// Command genassets writes the placeholder sprites, the tileset and the demo
// maps the game starts with.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
)

const tileSize = 16

// Tileset sprite indexes
const (
	TileGrass = iota
	TilePath
	TileWall
	TileWater
	TileCanopy
	tileCount
)

var palette = map[string]color.RGBA{
	"grass":  {76, 140, 60, 255},
	"path":   {170, 140, 90, 255},
	"wall":   {110, 110, 120, 255},
	"water":  {50, 90, 180, 255},
	"canopy": {30, 90, 40, 200},
	"tunic":  {40, 160, 70, 255},
	"skin":   {240, 200, 160, 255},
	"slime":  {90, 200, 220, 255},
	"gold":   {240, 200, 40, 255},
	"wood":   {120, 80, 40, 255},
	"heart":  {220, 40, 60, 255},
}

func main() {
	out := flag.String("out", "assets", "output directory")
	flag.Parse()

	if err := os.MkdirAll(filepath.Join(*out, "maps"), 0o755); err != nil {
		log.Fatal(err)
	}
	if err := writeSprites(*out); err != nil {
		log.Fatal(err)
	}
	for _, tm := range demoMaps() {
		path := filepath.Join(*out, "maps", tm.Name+".json")
		if err := tm.SaveJSON(path); err != nil {
			log.Fatal(err)
		}
		fmt.Println("  →", path)
	}
}

func writeSprites(dir string) error {
	rng := rand.New(rand.NewSource(1))
	sheet := image.NewRGBA(image.Rect(0, 0, tileCount*tileSize, tileSize))
	for i, name := range []string{"grass", "path", "wall", "water", "canopy"} {
		fillNoisy(sheet, i*tileSize, 0, tileSize, tileSize, palette[name], 0.12, rng)
	}
	if err := savePNG(filepath.Join(dir, "tiles.png"), sheet); err != nil {
		return err
	}

	for _, dir4 := range []string{"down", "up", "left", "right"} {
		for frame := range 2 {
			img := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
			drawHero(img, dir4, frame)
			if err := savePNG(filepath.Join(dir, fmt.Sprintf("player-%s-%d.png", dir4, frame)), img); err != nil {
				return err
			}
		}
	}

	props := map[string]func(*image.RGBA){
		"slime": func(img *image.RGBA) {
			fillEllipse(img, 8, 10, 7, 5, palette["slime"])
			fillRect(img, 5, 8, 2, 2, color.RGBA{0, 0, 0, 255})
			fillRect(img, 9, 8, 2, 2, color.RGBA{0, 0, 0, 255})
		},
		"coin": func(img *image.RGBA) { fillCircle(img, 8, 8, 4, palette["gold"]) },
		"heart_piece": func(img *image.RGBA) {
			fillCircle(img, 6, 7, 3, palette["heart"])
			fillCircle(img, 10, 7, 3, palette["heart"])
			fillRect(img, 5, 8, 6, 3, palette["heart"])
		},
		"sign": func(img *image.RGBA) {
			fillRect(img, 2, 3, 12, 7, palette["wood"])
			fillRect(img, 7, 10, 2, 5, palette["wood"])
		},
		"chest": func(img *image.RGBA) {
			fillRect(img, 1, 4, 14, 10, palette["wood"])
			fillRect(img, 7, 7, 2, 3, palette["gold"])
		},
		"door": func(img *image.RGBA) { fillRect(img, 2, 0, 12, 16, color.RGBA{20, 15, 10, 255}) },
	}
	for name, draw := range props {
		img := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
		draw(img)
		if err := savePNG(filepath.Join(dir, name+".png"), img); err != nil {
			return err
		}
	}
	return nil
}

// drawHero draws the player facing dir; frame 1 swaps the legs
func drawHero(img *image.RGBA, dir string, frame int) {
	fillCircle(img, 8, 5, 4, palette["skin"])
	fillRect(img, 4, 8, 8, 5, palette["tunic"])
	left, right := 5, 9
	if frame == 1 {
		left, right = 6, 8
	}
	fillRect(img, left, 13, 2, 3, palette["wood"])
	fillRect(img, right, 13, 2, 3, palette["wood"])

	eye := color.RGBA{0, 0, 0, 255}
	switch dir {
	case "down":
		fillRect(img, 6, 5, 1, 1, eye)
		fillRect(img, 9, 5, 1, 1, eye)
	case "left":
		fillRect(img, 5, 5, 1, 1, eye)
	case "right":
		fillRect(img, 10, 5, 1, 1, eye)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Println("  →", path)
	return nil
}

func clampU8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

func fillNoisy(img *image.RGBA, x, y, w, h int, base color.RGBA, amount float64, rng *rand.Rand) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			bright := 1 + (rng.Float64()*2-1)*amount
			img.SetRGBA(px, py, color.RGBA{
				R: clampU8(float64(base.R) * bright),
				G: clampU8(float64(base.G) * bright),
				B: clampU8(float64(base.B) * bright),
				A: base.A,
			})
		}
	}
}

func setPixelBlend(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return
	}
	existing := img.RGBAAt(x, y)
	if existing.A == 0 {
		img.SetRGBA(x, y, c)
		return
	}
	alpha := float64(c.A) / 255.0
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(existing.R)*(1-alpha) + float64(c.R)*alpha),
		G: uint8(float64(existing.G)*(1-alpha) + float64(c.G)*alpha),
		B: uint8(float64(existing.B)*(1-alpha) + float64(c.B)*alpha),
		A: 255,
	})
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			setPixelBlend(img, px, py, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	fillEllipse(img, cx, cy, r, r, c)
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	for py := cy - ry; py <= cy+ry; py++ {
		for px := cx - rx; px <= cx+rx; px++ {
			dx := float64(px-cx) / float64(rx)
			dy := float64(py-cy) / float64(ry)
			if dx*dx+dy*dy <= 1.0 {
				setPixelBlend(img, px, py, c)
			}
		}
	}
}
