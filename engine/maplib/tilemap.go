package maplib

import (
	"encoding/json"
	"fmt"
	"os"
)

// Depths used for the map layers; sprites sit between them
const (
	GroundDepth     = 0
	ForegroundDepth = 1000
)

// Tile represents a single map tile. Sprite indexes the map tileset, -1 is empty.
type Tile struct {
	Sprite int  `json:"sprite"`
	Solid  bool `json:"solid,omitempty"`
}

// ObjectKind tells what an object on the map turns into when populated
type ObjectKind string

const (
	ObjectSign  ObjectKind = "sign"
	ObjectItem  ObjectKind = "item"
	ObjectDoor  ObjectKind = "door"
	ObjectEnemy ObjectKind = "enemy"
	ObjectProp  ObjectKind = "prop"
)

// Object is a placed entity: doors, signs, chests, enemies, props.
// Coordinates are in world units.
type Object struct {
	ID    int        `json:"id"`
	Kind  ObjectKind `json:"kind"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	W     int        `json:"w"`
	H     int        `json:"h"`
	Image string     `json:"image,omitempty"`
	Solid bool       `json:"solid,omitempty"`

	Text      string `json:"text,omitempty"`
	Item      string `json:"item,omitempty"`
	Value     int    `json:"value,omitempty"`
	TargetMap string `json:"target_map,omitempty"`
	TargetX   int    `json:"target_x,omitempty"`
	TargetY   int    `json:"target_y,omitempty"`
	Enemy     string `json:"enemy,omitempty"`
}

// TileMap is a top-down map: a ground layer with solid flags, an optional
// foreground layer drawn above sprites, and placed objects.
type TileMap struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	TileSize int    `json:"tile_size"`
	Tileset  string `json:"tileset"`

	// Start position in tile coordinates
	StartX int `json:"start_x"`
	StartY int `json:"start_y"`

	Tiles      []Tile   `json:"tiles"`
	Foreground []int    `json:"foreground,omitempty"`
	Objects    []Object `json:"objects,omitempty"`
}

// NewTileMap creates a new empty map
func NewTileMap(name string, width, height, tileSize int) *TileMap {
	tm := &TileMap{
		Name:     name,
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    make([]Tile, width*height),
	}
	for i := range tm.Tiles {
		tm.Tiles[i] = Tile{Sprite: 0}
	}
	return tm
}

// At returns a pointer to the tile at (x, y)
func (tm *TileMap) At(x, y int) *Tile {
	if !tm.InBounds(x, y) {
		return nil
	}
	return &tm.Tiles[y*tm.Width+x]
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Width && y < tm.Height
}

// IsSolid reports whether a tile blocks movement. Outside the map counts as solid.
func (tm *TileMap) IsSolid(x, y int) bool {
	t := tm.At(x, y)
	return t == nil || t.Solid
}

// SetSolid marks a rectangular region of tiles, corners inclusive
func (tm *TileMap) SetSolid(x1, y1, x2, y2 int, solid bool) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := tm.At(x, y); t != nil {
				t.Solid = solid
			}
		}
	}
}

// PixelSize returns the map extent in world units
func (tm *TileMap) PixelSize() (w, h int) {
	return tm.Width * tm.TileSize, tm.Height * tm.TileSize
}

// StartPosition returns the start tile in world units
func (tm *TileMap) StartPosition() (x, y float64) {
	return float64(tm.StartX * tm.TileSize), float64(tm.StartY * tm.TileSize)
}

// TileCenter returns the world coordinates of a tile's center
func (tm *TileMap) TileCenter(tx, ty int) (x, y float64) {
	half := float64(tm.TileSize) / 2
	return float64(tx*tm.TileSize) + half, float64(ty*tm.TileSize) + half
}

// WorldToTile converts world units to tile coordinates
func (tm *TileMap) WorldToTile(x, y float64) (tx, ty int) {
	if tm.TileSize <= 0 {
		return 0, 0
	}
	return int(x) / tm.TileSize, int(y) / tm.TileSize
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file, validating it first
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tm, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tm, nil
}

// Parse validates raw map JSON against the map schema and decodes it
func Parse(data []byte) (*TileMap, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, err
	}
	if len(tm.Tiles) != tm.Width*tm.Height {
		return nil, fmt.Errorf("map %q: %d tiles for a %dx%d grid", tm.Name, len(tm.Tiles), tm.Width, tm.Height)
	}
	if len(tm.Foreground) != 0 && len(tm.Foreground) != len(tm.Tiles) {
		return nil, fmt.Errorf("map %q: foreground has %d tiles, want %d", tm.Name, len(tm.Foreground), len(tm.Tiles))
	}
	return &tm, nil
}
