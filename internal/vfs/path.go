package vfs

import (
	"path"
	"strings"
)

// Resolve turns p into a clean absolute virtual path, interpreting relative
// paths against cwd. ".." never climbs above "/".
func Resolve(cwd, p string) string {
	if p == "" {
		return Clean(cwd)
	}
	if strings.HasPrefix(p, "/") {
		return Clean(p)
	}
	return Clean(path.Join(cwd, p))
}

// Clean normalises an absolute virtual path.
func Clean(p string) string {
	return path.Clean("/" + p)
}

// Rel returns target relative to base, or target unchanged when it is not
// below base. The base itself yields ".".
func Rel(base, target string) string {
	base, target = Clean(base), Clean(target)
	if base == target {
		return "."
	}
	if base == "/" {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, base+"/") {
		return strings.TrimPrefix(target, base+"/")
	}
	return target
}

// RepoPath converts an absolute virtual path to the slash separated form
// used by git, with no leading slash. The root maps to "".
func RepoPath(p string) string {
	return strings.TrimPrefix(Clean(p), "/")
}

// Segments splits a path into its non-empty components.
func Segments(p string) []string {
	var segments []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
