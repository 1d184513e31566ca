package input

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Recorder wraps a controller and writes the buttons held every frame to a
// zstd-compressed replay file. Replaying the file through LoadReplay drives
// the game through exactly the same inputs.
type Recorder struct {
	Controller
	Frames int

	file   *os.File
	enc    *zstd.Encoder
	writer *bufio.Writer
	err    error
}

// NewRecorder creates the replay file at path
func NewRecorder(c Controller, path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Recorder{Controller: c, file: f, enc: enc, writer: bufio.NewWriter(enc)}, nil
}

func (r *Recorder) Update() {
	r.Controller.Update()
	var mask uint16
	for b := range ButtonCount {
		if r.IsDown(b) {
			mask |= 1 << b
		}
	}
	if r.err == nil {
		r.err = binary.Write(r.writer, binary.LittleEndian, mask)
	}
	r.Frames++
}

// Close flushes and closes the replay file, reporting the first write error
func (r *Recorder) Close() error {
	err := r.err
	if ferr := r.writer.Flush(); err == nil {
		err = ferr
	}
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// LoadReplay reads a replay file into a scripted controller
func LoadReplay(path string) (*Scripted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	reader := bufio.NewReader(dec)
	s := &Scripted{}
	for {
		var mask uint16
		if err := binary.Read(reader, binary.LittleEndian, &mask); err != nil {
			if errors.Is(err, io.EOF) {
				return s, nil
			}
			return nil, fmt.Errorf("replay %s frame %d: %w", path, len(s.Frames), err)
		}
		var held []Button
		for b := range ButtonCount {
			if mask&(1<<b) != 0 {
				held = append(held, b)
			}
		}
		s.Frames = append(s.Frames, held)
	}
}
