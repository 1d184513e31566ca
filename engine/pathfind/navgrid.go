package pathfind

import (
	"iter"
	"math"

	"github.com/1siamBot/adventure-engine/engine/maplib"
)

// Point is a cell of the navigation grid
type Point struct{ X, Y int }

// NavGrid is the walkable view of a tile map: solid tiles and cells covered
// by solid objects are blocked, everything else costs one step.
type NavGrid struct {
	Width, Height int
	TileSize      int
	blocked       []bool
}

// NewNavGrid builds a navigation grid from the solid flags of a tile map
func NewNavGrid(tm *maplib.TileMap) *NavGrid {
	ng := &NavGrid{
		Width:    tm.Width,
		Height:   tm.Height,
		TileSize: tm.TileSize,
		blocked:  make([]bool, tm.Width*tm.Height),
	}
	for i, t := range tm.Tiles {
		ng.blocked[i] = t.Solid
	}
	return ng
}

func (ng *NavGrid) index(p Point) int { return p.Y*ng.Width + p.X }

// InBounds reports whether p is a cell of the grid
func (ng *NavGrid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < ng.Width && p.Y < ng.Height
}

// Passable reports whether the cell at (x, y) can be walked through.
// Outside the grid is never passable.
func (ng *NavGrid) Passable(x, y int) bool {
	p := Point{x, y}
	return ng.InBounds(p) && !ng.blocked[ng.index(p)]
}

// BlockArea blocks every cell overlapped by a world rectangle, for solid
// objects placed on top of walkable tiles
func (ng *NavGrid) BlockArea(x, y, w, h int) {
	if ng.TileSize <= 0 || w <= 0 || h <= 0 {
		return
	}
	for cy := y / ng.TileSize; cy <= (y+h-1)/ng.TileSize; cy++ {
		for cx := x / ng.TileSize; cx <= (x+w-1)/ng.TileSize; cx++ {
			if p := (Point{cx, cy}); ng.InBounds(p) {
				ng.blocked[ng.index(p)] = true
			}
		}
	}
}

var stepDirs = [8]Point{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// steps yields the walkable neighbors of p with the cost of stepping there.
// A diagonal step needs both orthogonal cells free, since a hitbox cannot
// squeeze between two blocked corners.
func (ng *NavGrid) steps(p Point) iter.Seq2[Point, float64] {
	return func(yield func(Point, float64) bool) {
		for _, d := range stepDirs {
			n := Point{p.X + d.X, p.Y + d.Y}
			if !ng.Passable(n.X, n.Y) {
				continue
			}
			cost := 1.0
			if d.X != 0 && d.Y != 0 {
				if !ng.Passable(p.X+d.X, p.Y) || !ng.Passable(p.X, p.Y+d.Y) {
					continue
				}
				cost = math.Sqrt2
			}
			if !yield(n, cost) {
				return
			}
		}
	}
}

// Cell converts world units to the containing cell
func (ng *NavGrid) Cell(wx, wy float64) Point {
	if ng.TileSize <= 0 {
		return Point{int(wx), int(wy)}
	}
	return Point{int(math.Floor(wx)) / ng.TileSize, int(math.Floor(wy)) / ng.TileSize}
}

// Center returns the world coordinates of a cell's center
func (ng *NavGrid) Center(p Point) (x, y float64) {
	half := float64(ng.TileSize) / 2
	return float64(p.X*ng.TileSize) + half, float64(p.Y*ng.TileSize) + half
}
