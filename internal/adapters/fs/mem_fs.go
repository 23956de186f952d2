package fs

import (
	iofs "io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"testing/fstest"
)

// MemFileSystem holds virtual modules that never touch disk. Paths are
// cleaned and slash-separated.
type MemFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS
}

func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{files: fstest.MapFS{}}
}

func memKey(p string) string {
	return strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
}

func (fs *MemFileSystem) ReadFile(p string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f, ok := fs.files[memKey(p)]
	if !ok || f.Mode.IsDir() {
		return nil, &iofs.PathError{Op: "read", Path: p, Err: iofs.ErrNotExist}
	}
	return append([]byte(nil), f.Data...), nil
}

func (fs *MemFileSystem) ReadDir(p string) ([]iofs.DirEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	key := memKey(p)
	if key == "" {
		key = "."
	}
	return iofs.ReadDir(fs.files, key)
}

func (fs *MemFileSystem) FileExists(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[memKey(p)]
	return ok
}

func (fs *MemFileSystem) WriteFile(p string, data []byte, perm iofs.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[memKey(p)] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm}
	return nil
}

func (fs *MemFileSystem) MkdirAll(p string, perm iofs.FileMode) error {
	return nil
}

func (fs *MemFileSystem) Remove(p string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	key := memKey(p)
	if _, ok := fs.files[key]; !ok {
		return &iofs.PathError{Op: "remove", Path: p, Err: iofs.ErrNotExist}
	}
	delete(fs.files, key)
	return nil
}

// Paths lists stored files in sorted order.
func (fs *MemFileSystem) Paths() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, "/"+p)
	}
	sort.Strings(paths)
	return paths
}
