// Package vfs provides the virtual filesystem the shell operates on.
//
// All paths handed to a FileSystem are absolute, slash separated virtual
// paths rooted at "/". The default implementation is backed by go-billy, so
// the same code runs against an in-memory tree or a host directory.
package vfs

import (
	"errors"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileSystem is the capability set commands depend on.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	MkdirAll(path string) error
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldPath, newPath string) error
}

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// BillyFS adapts a billy.Filesystem to FileSystem.
type BillyFS struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem. The root directory is created if
// the backing store does not have one yet.
func New(fs billy.Filesystem) *BillyFS {
	if fs == nil {
		panic("fs is required")
	}
	_ = fs.MkdirAll("/", dirPerm)
	return &BillyFS{fs: fs}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *BillyFS {
	return New(memfs.New())
}

// NewHost returns a filesystem rooted at a host directory. Virtual "/" maps
// to root.
func NewHost(root string) *BillyFS {
	return New(osfs.New(root))
}

// Billy exposes the underlying billy filesystem, e.g. for go-git storage.
func (b *BillyFS) Billy() billy.Filesystem {
	return b.fs
}

func (b *BillyFS) ReadFile(path string) ([]byte, error) {
	info, err := b.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &IsDirectoryError{Path: path}
	}
	data, err := util.ReadFile(b.fs, path)
	if err != nil {
		return nil, wrap("read", path, err)
	}
	return data, nil
}

func (b *BillyFS) WriteFile(path string, data []byte) error {
	if info, err := b.fs.Stat(path); err == nil && info.IsDir() {
		return &IsDirectoryError{Path: path}
	}
	if err := util.WriteFile(b.fs, path, data, filePerm); err != nil {
		return wrap("write", path, err)
	}
	return nil
}

func (b *BillyFS) Stat(path string) (os.FileInfo, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, wrap("stat", path, err)
	}
	return info, nil
}

// ReadDir lists a directory sorted by name.
func (b *BillyFS) ReadDir(path string) ([]os.FileInfo, error) {
	info, err := b.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &NotDirectoryError{Path: path}
	}
	entries, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, wrap("readdir", path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (b *BillyFS) MkdirAll(path string) error {
	if info, err := b.fs.Stat(path); err == nil && !info.IsDir() {
		return &NotDirectoryError{Path: path}
	}
	if err := b.fs.MkdirAll(path, dirPerm); err != nil {
		return wrap("mkdir", path, err)
	}
	return nil
}

// Remove deletes a file or an empty directory.
func (b *BillyFS) Remove(path string) error {
	info, err := b.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		entries, err := b.fs.ReadDir(path)
		if err != nil {
			return wrap("remove", path, err)
		}
		if len(entries) > 0 {
			return &DirectoryNotEmptyError{Path: path}
		}
	}
	if err := b.fs.Remove(path); err != nil {
		return wrap("remove", path, err)
	}
	return nil
}

func (b *BillyFS) RemoveAll(path string) error {
	if _, err := b.Stat(path); err != nil {
		return err
	}
	if err := util.RemoveAll(b.fs, path); err != nil {
		return wrap("remove", path, err)
	}
	return nil
}

func (b *BillyFS) Rename(oldPath, newPath string) error {
	if _, err := b.Stat(oldPath); err != nil {
		return err
	}
	if err := b.fs.Rename(oldPath, newPath); err != nil {
		return wrap("rename", oldPath, err)
	}
	return nil
}

func wrap(op, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return &FileMissingError{Path: path}
	}
	return &IOError{Op: op, Path: path, Cause: err}
}
