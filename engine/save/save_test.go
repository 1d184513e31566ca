package save

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/core"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func sample() PlayerState {
	inv := NewInventory()
	inv.Collect("coin", 5)
	inv.Collect("bow", 1)
	return PlayerState{Inventory: inv, LastMap: "meadow", X: 32, Y: 48}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "files"), quiet())
	if err != nil {
		t.Fatal(err)
	}
	db, err := OpenSQLite(filepath.Join(dir, "saves.db"), quiet())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Store{"file": fs, "sqlite": db}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := sample()
			if err := s.Save(ctx, "slot-1", want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Load(ctx, "slot-1")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want.Version = CurrentVersion
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %+v, want %+v", got, want)
			}

			// overwrite
			want.Inventory.Coins = 99
			if err := s.Save(ctx, "slot-1", want); err != nil {
				t.Fatal(err)
			}
			got, _ = s.Load(ctx, "slot-1")
			if got.Inventory.Coins != 99 {
				t.Errorf("overwrite lost: %d coins", got.Inventory.Coins)
			}

			s.Save(ctx, "another", want)
			slots, err := s.Slots(ctx)
			if err != nil || !reflect.DeepEqual(slots, []string{"another", "slot-1"}) {
				t.Errorf("slots %v, %v", slots, err)
			}
			if err := s.Delete(ctx, "another"); err != nil {
				t.Errorf("Delete: %v", err)
			}
		})
	}
}

func TestStoreMissingSlot(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(ctx, "nothing"); !errors.Is(err, core.ErrResourceNotFound) {
				t.Errorf("Load: expected resource-not-found, got %v", err)
			}
			if err := s.Delete(ctx, "nothing"); !errors.Is(err, core.ErrResourceNotFound) {
				t.Errorf("Delete: expected resource-not-found, got %v", err)
			}
		})
	}
}

func TestStoreRejectsBadSlotNames(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, slot := range []string{"", "../escape", "a b"} {
				if err := s.Save(ctx, slot, sample()); !errors.Is(err, core.ErrConfiguration) {
					t.Errorf("slot %q accepted: %v", slot, err)
				}
			}
		})
	}
}

func TestFileStoreCorruptData(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.save"), []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = s.Load(context.Background(), "broken")
	if err == nil || errors.Is(err, core.ErrResourceNotFound) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestInventory(t *testing.T) {
	inv := NewInventory()
	if inv.MaxHealth() != 6 {
		t.Errorf("max health %d", inv.MaxHealth())
	}
	inv.Collect("heart_piece", 4)
	inv.Collect("key", 1)
	inv.Collect("key", 1)
	if inv.MaxHealth() != 8 || inv.Items["key"] != 2 {
		t.Errorf("inventory %+v", inv)
	}
}
