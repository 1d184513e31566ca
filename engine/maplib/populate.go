package maplib

import (
	"log"

	"github.com/1siamBot/adventure-engine/engine/core"
)

// ObjectDepth is the render depth of map objects
const ObjectDepth = 100

// Populated lists what Populate created
type Populated struct {
	Solids  []core.EntityID
	Objects []core.EntityID
	// Enemies are spawn points left to the scene, which knows the enemy templates
	Enemies []Object
}

// Populate inserts the map's colliders and objects into the world. Horizontal
// runs of solid tiles become a single solid hitbox so entities sliding along
// a wall do not catch on tile seams.
func Populate(w *core.World, tm *TileMap, logger *log.Logger) Populated {
	if logger == nil {
		logger = log.Default()
	}
	var out Populated
	ts := tm.TileSize
	for y := range tm.Height {
		x := 0
		for x < tm.Width {
			if !tm.At(x, y).Solid {
				x++
				continue
			}
			start := x
			for x < tm.Width && tm.At(x, y).Solid {
				x++
			}
			hb := &core.HitBox{X: start * ts, Y: y * ts, W: (x - start) * ts, H: ts, Solid: true}
			out.Solids = append(out.Solids, w.CreateEntity(hb))
		}
	}

	for _, obj := range tm.Objects {
		if obj.Kind == ObjectEnemy {
			out.Enemies = append(out.Enemies, obj)
			continue
		}
		comps := []core.Component{
			core.NewPosition(float64(obj.X), float64(obj.Y)),
			&core.HitBox{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H, Solid: obj.Solid},
		}
		if obj.Image != "" {
			comps = append(comps, &core.Renderable{Image: obj.Image, Depth: ObjectDepth, W: obj.W, H: obj.H})
		}
		switch obj.Kind {
		case ObjectSign:
			if obj.Text == "" {
				logger.Printf("map %s: sign %d has no text", tm.Name, obj.ID)
			}
			comps = append(comps, &core.Sign{Text: obj.Text})
		case ObjectItem:
			comps = append(comps, &core.Collectable{Item: obj.Item, Value: max(obj.Value, 1), InChest: obj.Solid})
		case ObjectDoor:
			comps = append(comps, &core.Door{TargetMap: obj.TargetMap, TargetX: obj.TargetX, TargetY: obj.TargetY})
		}
		out.Objects = append(out.Objects, w.CreateEntity(comps...))
	}
	logger.Printf("map %s: %d solid runs, %d objects, %d enemy spawns",
		tm.Name, len(out.Solids), len(out.Objects), len(out.Enemies))
	return out
}
