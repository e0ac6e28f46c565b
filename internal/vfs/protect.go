package vfs

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// ProtectedPathError is returned when a mutation targets a read-only subtree.
type ProtectedPathError struct {
	Path string
}

func (e *ProtectedPathError) Error() string {
	return fmt.Sprintf("%s: Operation not permitted (managed by the session)", e.Path)
}
func (e *ProtectedPathError) InvalidInput() bool { return true }

// ProtectedFS leaves a set of subtrees readable but refuses to modify them.
// Removing an ancestor of a protected subtree removes everything around it.
type ProtectedFS struct {
	inner FileSystem
	dirs  []string
}

// Protect wraps fs so that dirs and everything below them are read-only.
func Protect(fs FileSystem, dirs ...string) *ProtectedFS {
	if fs == nil {
		panic("fs is required")
	}
	cleaned := make([]string, len(dirs))
	for i, d := range dirs {
		cleaned[i] = Clean(d)
	}
	return &ProtectedFS{inner: fs, dirs: cleaned}
}

func (p *ProtectedFS) protected(target string) bool {
	target = Clean(target)
	for _, d := range p.dirs {
		if target == d || strings.HasPrefix(target, d+"/") {
			return true
		}
	}
	return false
}

func (p *ProtectedFS) encloses(target string) bool {
	target = Clean(target)
	for _, d := range p.dirs {
		if target == "/" || strings.HasPrefix(d, target+"/") {
			return true
		}
	}
	return false
}

func (p *ProtectedFS) guard(paths ...string) error {
	for _, t := range paths {
		if p.protected(t) {
			return &ProtectedPathError{Path: Clean(t)}
		}
	}
	return nil
}

func (p *ProtectedFS) ReadFile(path string) ([]byte, error) { return p.inner.ReadFile(path) }

func (p *ProtectedFS) Stat(path string) (os.FileInfo, error) { return p.inner.Stat(path) }

func (p *ProtectedFS) ReadDir(path string) ([]os.FileInfo, error) { return p.inner.ReadDir(path) }

func (p *ProtectedFS) WriteFile(path string, data []byte) error {
	if err := p.guard(path); err != nil {
		return err
	}
	return p.inner.WriteFile(path, data)
}

func (p *ProtectedFS) MkdirAll(path string) error {
	if err := p.guard(path); err != nil {
		return err
	}
	return p.inner.MkdirAll(path)
}

func (p *ProtectedFS) Remove(path string) error {
	if err := p.guard(path); err != nil {
		return err
	}
	return p.inner.Remove(path)
}

func (p *ProtectedFS) RemoveAll(target string) error {
	if err := p.guard(target); err != nil {
		return err
	}
	if !p.encloses(target) {
		return p.inner.RemoveAll(target)
	}
	entries, err := p.inner.ReadDir(target)
	if err != nil {
		return err
	}
	for _, e := range entries {
		child := path.Join(Clean(target), e.Name())
		if p.protected(child) {
			continue
		}
		if err := p.RemoveAll(child); err != nil {
			return err
		}
	}
	return nil
}

func (p *ProtectedFS) Rename(oldPath, newPath string) error {
	if err := p.guard(oldPath, newPath); err != nil {
		return err
	}
	if p.encloses(oldPath) {
		return &ProtectedPathError{Path: oldPath}
	}
	return p.inner.Rename(oldPath, newPath)
}
