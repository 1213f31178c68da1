package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AtomicFile collects output in a hidden sibling of its destination and
// moves it into place on Commit. Closing an uncommitted file removes it, so
// a failed run leaves no partial output behind.
type AtomicFile struct {
	f         *os.File
	path      string
	sealed    bool
	committed bool
}

// CreateAtomic opens a temporary file next to path
func CreateAtomic(path string) (*AtomicFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create file: %w", err)
	}
	return &AtomicFile{f: f, path: path}, nil
}

// Path returns the final destination
func (a *AtomicFile) Path() string {
	return a.path
}

// TempPath returns where the content lives until Commit
func (a *AtomicFile) TempPath() string {
	return a.f.Name()
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Seal closes the temporary file and gives it its final mode. The content
// stays hidden until Commit.
func (a *AtomicFile) Seal() error {
	if a.sealed {
		return nil
	}
	if err := a.f.Close(); err != nil {
		return err
	}
	a.sealed = true
	return os.Chmod(a.f.Name(), 0o644)
}

// Commit seals the file and renames it to the destination
func (a *AtomicFile) Commit() error {
	if err := a.Seal(); err != nil {
		return err
	}
	if err := os.Rename(a.f.Name(), a.path); err != nil {
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	a.committed = true
	return nil
}

// Close discards the file unless it was committed
func (a *AtomicFile) Close() error {
	if a.committed {
		return nil
	}
	if !a.sealed {
		a.f.Close()
		a.sealed = true
	}
	err := os.Remove(a.f.Name())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// CommitAll moves every file into place or none of them. All files are
// sealed before the first rename; if a rename fails, the destinations
// already written in this call are removed again.
func CommitAll(files ...*AtomicFile) error {
	for _, f := range files {
		if err := f.Seal(); err != nil {
			return fmt.Errorf("output %s: %w", f.Path(), err)
		}
	}
	for i, f := range files {
		if err := f.Commit(); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.Path())
			}
			return fmt.Errorf("output %s: %w", f.Path(), err)
		}
	}
	return nil
}
