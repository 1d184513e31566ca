package save

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const fileExt = ".save"

// FileStore keeps each slot in <Dir>/<slot>.save as zstd-compressed JSON
type FileStore struct {
	Dir string
	Log *log.Logger
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{Dir: dir, Log: logger}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.Dir, slot+fileExt)
}

// Save writes the slot through a temporary file so a crash never leaves a
// truncated save behind
func (s *FileStore) Save(_ context.Context, slot string, st PlayerState) error {
	if err := ValidSlot(slot); err != nil {
		return err
	}
	data, err := encode(st)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, slot+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return err
	}
	s.Log.Printf("saved slot %s (%d bytes uncompressed)", slot, len(data))
	return nil
}

func (s *FileStore) Load(_ context.Context, slot string) (PlayerState, error) {
	if err := ValidSlot(slot); err != nil {
		return PlayerState{}, err
	}
	f, err := os.Open(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PlayerState{}, notFound(slot, err)
		}
		return PlayerState{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return PlayerState{}, err
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return PlayerState{}, fmt.Errorf("save slot %q: decompress: %w", slot, err)
	}
	st, err := decode(slot, data)
	if err != nil {
		return st, err
	}
	s.Log.Printf("loaded slot %s: map %s", slot, st.LastMap)
	return st, nil
}

func (s *FileStore) Slots(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), fileExt); ok && !e.IsDir() {
			slots = append(slots, name)
		}
	}
	slices.Sort(slots)
	return slots, nil
}

func (s *FileStore) Delete(_ context.Context, slot string) error {
	if err := ValidSlot(slot); err != nil {
		return err
	}
	err := os.Remove(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(slot, err)
	}
	return err
}

func (s *FileStore) Close() error { return nil }
