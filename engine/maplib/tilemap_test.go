package maplib

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/core"
)

const sampleMap = `{
  "name": "meadow",
  "width": 4,
  "height": 2,
  "tile_size": 16,
  "start_x": 1,
  "start_y": 1,
  "tiles": [
    {"sprite": 3, "solid": true}, {"sprite": 3, "solid": true}, {"sprite": 0}, {"sprite": 3, "solid": true},
    {"sprite": 0}, {"sprite": 0}, {"sprite": 0}, {"sprite": 0}
  ],
  "objects": [
    {"id": 1, "kind": "sign", "x": 32, "y": 16, "w": 16, "h": 16, "text": "Welcome", "solid": true},
    {"id": 2, "kind": "door", "x": 48, "y": 16, "w": 16, "h": 16, "target_map": "cave", "target_x": 2, "target_y": 3},
    {"id": 3, "kind": "enemy", "x": 0, "y": 16, "w": 16, "h": 16, "enemy": "slime"}
  ]
}`

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestParseValidMap(t *testing.T) {
	tm, err := Parse([]byte(sampleMap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !tm.IsSolid(0, 0) || tm.IsSolid(2, 0) || !tm.IsSolid(-1, 0) {
		t.Error("solid flags wrong")
	}
	if x, y := tm.StartPosition(); x != 16 || y != 16 {
		t.Errorf("start position (%v,%v)", x, y)
	}
	if w, h := tm.PixelSize(); w != 64 || h != 32 {
		t.Errorf("pixel size %dx%d", w, h)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	bad := []struct {
		name string
		data string
	}{
		{"missing tiles", `{"name": "x", "width": 1, "height": 1, "tile_size": 16}`},
		{"zero width", `{"name": "x", "width": 0, "height": 1, "tile_size": 16, "tiles": []}`},
		{"sign without text", `{"name": "x", "width": 1, "height": 1, "tile_size": 16, "tiles": [{"sprite": 0}],
			"objects": [{"kind": "sign", "x": 0, "y": 0, "w": 1, "h": 1}]}`},
		{"unknown kind", `{"name": "x", "width": 1, "height": 1, "tile_size": 16, "tiles": [{"sprite": 0}],
			"objects": [{"kind": "dragon", "x": 0, "y": 0, "w": 1, "h": 1}]}`},
		{"tile count", `{"name": "x", "width": 2, "height": 1, "tile_size": 16, "tiles": [{"sprite": 0}]}`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPopulateMergesSolidRuns(t *testing.T) {
	tm, err := Parse([]byte(sampleMap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := core.NewWorld()
	p := Populate(w, tm, quiet())

	if len(p.Solids) != 2 {
		t.Fatalf("expected 2 solid runs, got %d", len(p.Solids))
	}
	first, _ := core.Get[*core.HitBox](w, p.Solids[0])
	if first.X != 0 || first.W != 32 || first.H != 16 || !first.Solid {
		t.Errorf("first run %+v", *first)
	}
	if len(p.Objects) != 2 || len(p.Enemies) != 1 {
		t.Fatalf("objects %d enemies %d", len(p.Objects), len(p.Enemies))
	}
	if sign, ok := core.Get[*core.Sign](w, p.Objects[0]); !ok || sign.Text != "Welcome" {
		t.Errorf("sign not created: %+v", sign)
	}
	door, ok := core.Get[*core.Door](w, p.Objects[1])
	if !ok || door.TargetMap != "cave" || door.TargetX != 2 {
		t.Errorf("door not created: %+v", door)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tm := NewTileMap("room", 3, 3, 8)
	tm.SetSolid(0, 0, 2, 0, true)
	path := filepath.Join(t.TempDir(), "room.json")
	if err := tm.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if !got.IsSolid(2, 0) || got.IsSolid(1, 1) {
		t.Error("solid flags lost in round trip")
	}
}
