package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/go-drift/visualds/pkg/board"
)

// lockName guards an output directory against concurrent dsviz runs.
const lockName = ".dsviz.lock"

// frameWriter writes numbered frames into a locked output directory.
type frameWriter struct {
	dir    string
	format string
	lock   *flock.Flock
}

func openFrames(dir, format string) (*frameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s is in use by another dsviz process", dir)
	}
	return &frameWriter{dir: dir, format: format, lock: lock}, nil
}

// path returns the file name of frame i.
func (w *frameWriter) path(i int) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame-%05d.%s", i, w.format))
}

// Write renders b as frame i.
func (w *frameWriter) Write(i int, b *board.Board) error {
	return w.writeFile(w.path(i), b)
}

func (w *frameWriter) writeFile(path string, b *board.Board) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	buf := bufio.NewWriter(f)
	switch w.format {
	case "png":
		err = b.RenderPNG(buf)
	default:
		err = b.RenderSVG(buf)
	}
	if err != nil {
		return err
	}
	return buf.Flush()
}

func (w *frameWriter) Close() error {
	return w.lock.Unlock()
}
