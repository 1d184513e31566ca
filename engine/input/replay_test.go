package input

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReplayReproducesInputs(t *testing.T) {
	frames := [][]Button{{ButtonDPadRight}, {ButtonDPadRight, ButtonDPadUp}, nil, {ButtonA}, {ButtonDebug}}
	path := filepath.Join(t.TempDir(), "run.replay")

	rec, err := NewRecorder(&Scripted{Frames: frames}, path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	var recorded []bool
	for range len(frames) {
		rec.Update()
		recorded = append(recorded, rec.IsPressed(ButtonA), rec.IsDown(ButtonDPadUp))
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	replay, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if len(replay.Frames) != len(frames) {
		t.Fatalf("%d frames replayed, want %d", len(replay.Frames), len(frames))
	}
	for i := range frames {
		replay.Update()
		if replay.IsPressed(ButtonA) != recorded[2*i] || replay.IsDown(ButtonDPadUp) != recorded[2*i+1] {
			t.Errorf("frame %d differs", i)
		}
		if replay.IsDown(ButtonDebug) != (i == 4) {
			t.Errorf("frame %d: debug button", i)
		}
	}
}

func TestLoadReplayErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadReplay(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("missing file: %v", err)
	}
	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("not zstd at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadReplay(bad); err == nil {
		t.Error("garbage accepted")
	}
}
