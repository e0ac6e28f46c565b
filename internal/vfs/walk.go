package vfs

import (
	"errors"
	"os"
)

// SkipDir can be returned from a WalkFunc to skip a directory's contents.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for every visited path. depth is 0 for the root.
type WalkFunc func(path string, info os.FileInfo, depth int) error

// Walk visits root and everything below it depth first, in name order.
// Errors reading a subdirectory abort the walk.
func Walk(fs FileSystem, root string, fn WalkFunc) error {
	info, err := fs.Stat(root)
	if err != nil {
		return err
	}
	return walk(fs, Clean(root), info, 0, fn)
}

func walk(fs FileSystem, path string, info os.FileInfo, depth int, fn WalkFunc) error {
	if err := fn(path, info, depth); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}
	entries, err := fs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := walk(fs, join(path, entry.Name()), entry, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func join(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
