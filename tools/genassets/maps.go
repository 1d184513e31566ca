package main

import "github.com/1siamBot/adventure-engine/engine/maplib"

// demoMaps builds a meadow with a cave behind a door, and the cave leading
// back out
func demoMaps() []*maplib.TileMap {
	meadow := maplib.NewTileMap("start", 24, 16, tileSize)
	meadow.Tileset = "tiles"
	meadow.StartX, meadow.StartY = 3, 8
	border(meadow)
	for x := 1; x < 23; x++ {
		meadow.At(x, 8).Sprite = TilePath
	}
	pond := func(x1, y1, x2, y2 int) {
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				*meadow.At(x, y) = maplib.Tile{Sprite: TileWater, Solid: true}
			}
		}
	}
	pond(14, 2, 18, 5)
	meadow.Foreground = make([]int, len(meadow.Tiles))
	for i := range meadow.Foreground {
		meadow.Foreground[i] = -1
	}
	for x := 6; x <= 9; x++ {
		meadow.Foreground[11*meadow.Width+x] = TileCanopy
	}
	meadow.Objects = []maplib.Object{
		{ID: 1, Kind: maplib.ObjectSign, X: 5 * tileSize, Y: 6 * tileSize, W: tileSize, H: tileSize,
			Image: "sign", Solid: true, Text: "East lies the old cave. Mind the slimes."},
		{ID: 2, Kind: maplib.ObjectItem, X: 8 * tileSize, Y: 4 * tileSize, W: tileSize, H: tileSize,
			Image: "coin", Item: "coin", Value: 1},
		{ID: 3, Kind: maplib.ObjectItem, X: 10 * tileSize, Y: 4 * tileSize, W: tileSize, H: tileSize,
			Image: "coin", Item: "coin", Value: 1},
		{ID: 4, Kind: maplib.ObjectItem, X: 20 * tileSize, Y: 12 * tileSize, W: tileSize, H: tileSize,
			Image: "chest", Solid: true, Item: "heart_piece", Value: 1},
		{ID: 5, Kind: maplib.ObjectEnemy, X: 12 * tileSize, Y: 11 * tileSize, W: tileSize, H: tileSize,
			Enemy: "slime"},
		{ID: 6, Kind: maplib.ObjectDoor, X: 23 * tileSize, Y: 8 * tileSize, W: tileSize, H: tileSize,
			Image: "door", TargetMap: "cave", TargetX: 2, TargetY: 5},
	}
	// the door replaces the east wall
	*meadow.At(23, 8) = maplib.Tile{Sprite: TilePath}

	cave := maplib.NewTileMap("cave", 12, 10, tileSize)
	cave.Tileset = "tiles"
	cave.StartX, cave.StartY = 2, 5
	border(cave)
	for y := 1; y < 9; y++ {
		for x := 1; x < 11; x++ {
			cave.At(x, y).Sprite = TilePath
		}
	}
	cave.SetSolid(5, 3, 6, 6, true)
	for y := 3; y <= 6; y++ {
		for x := 5; x <= 6; x++ {
			cave.At(x, y).Sprite = TileWall
		}
	}
	*cave.At(0, 5) = maplib.Tile{Sprite: TilePath}
	cave.Objects = []maplib.Object{
		{ID: 1, Kind: maplib.ObjectDoor, X: 0, Y: 5 * tileSize, W: tileSize, H: tileSize,
			Image: "door", TargetMap: "start", TargetX: 22, TargetY: 8},
		{ID: 2, Kind: maplib.ObjectEnemy, X: 9 * tileSize, Y: 2 * tileSize, W: tileSize, H: tileSize, Enemy: "slime"},
		{ID: 3, Kind: maplib.ObjectEnemy, X: 9 * tileSize, Y: 7 * tileSize, W: tileSize, H: tileSize, Enemy: "slime"},
		{ID: 4, Kind: maplib.ObjectItem, X: 9 * tileSize, Y: 5 * tileSize, W: tileSize, H: tileSize,
			Image: "heart_piece", Item: "heart_piece", Value: 1},
	}
	return []*maplib.TileMap{meadow, cave}
}

// border surrounds the map with solid wall tiles
func border(tm *maplib.TileMap) {
	for y := range tm.Height {
		for x := range tm.Width {
			if x == 0 || y == 0 || x == tm.Width-1 || y == tm.Height-1 {
				*tm.At(x, y) = maplib.Tile{Sprite: TileWall, Solid: true}
			}
		}
	}
}
