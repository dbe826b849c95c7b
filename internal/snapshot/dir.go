package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pocketscore/pocketscore/internal/fsatomic"
	"github.com/pocketscore/pocketscore/internal/share"
)

// DirLocation is a filesystem-backed Location. All four backup backends
// (internal, linked folder, sync, downloads) are DirLocation instances
// pointed at different directories.
type DirLocation struct {
	label string
	dir   string
}

// NewDirLocation creates a Location rooted at dir. The directory is created
// lazily on first write.
func NewDirLocation(label, dir string) *DirLocation {
	return &DirLocation{label: label, dir: dir}
}

// Label identifies the location.
func (l *DirLocation) Label() string {
	return l.label
}

// path maps a snapshot name to its on-disk path.
func (l *DirLocation) path(name string) string {
	return filepath.Join(l.dir, SanitizeName(name)+share.FileExt)
}

// Write stores blob under name, atomically replacing any previous blob.
func (l *DirLocation) Write(name string, blob []byte) error {
	if err := fsatomic.WriteFile(l.path(name), blob); err != nil {
		return fmt.Errorf("write snapshot %q to %s: %w", name, l.label, err)
	}
	return nil
}

// List enumerates snapshots at this location. A missing directory is an
// empty location, not an error.
func (l *DirLocation) List() ([]Entry, error) {
	dirents, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list snapshots at %s: %w", l.label, err)
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), share.FileExt) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    strings.TrimSuffix(de.Name(), share.FileExt),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// Read returns the blob stored under name.
func (l *DirLocation) Read(name string) ([]byte, error) {
	blob, err := os.ReadFile(l.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q from %s: %w", name, l.label, err)
	}
	return blob, nil
}

// Delete removes the blob stored under name.
func (l *DirLocation) Delete(name string) error {
	err := os.Remove(l.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete snapshot %q from %s: %w", name, l.label, err)
	}
	return nil
}
