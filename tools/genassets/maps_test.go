package main

import (
	"path/filepath"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/maplib"
)

func TestDemoMapsLoad(t *testing.T) {
	dir := t.TempDir()
	names := map[string]bool{}
	for _, tm := range demoMaps() {
		path := filepath.Join(dir, tm.Name+".json")
		if err := tm.SaveJSON(path); err != nil {
			t.Fatalf("SaveJSON: %v", err)
		}
		if _, err := maplib.LoadJSON(path); err != nil {
			t.Errorf("%s does not load: %v", tm.Name, err)
		}
		names[tm.Name] = true
	}
	for _, tm := range demoMaps() {
		for _, obj := range tm.Objects {
			if obj.Kind == maplib.ObjectDoor && !names[obj.TargetMap] {
				t.Errorf("%s: door to unknown map %q", tm.Name, obj.TargetMap)
			}
		}
		if tm.IsSolid(tm.StartX, tm.StartY) {
			t.Errorf("%s: start tile is solid", tm.Name)
		}
	}
}

func TestWriteSprites(t *testing.T) {
	if err := writeSprites(t.TempDir()); err != nil {
		t.Fatalf("writeSprites: %v", err)
	}
}
