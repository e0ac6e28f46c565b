package mocks

import (
	"os"
	"sync"

	"github.com/Cyclone1070/vsh/internal/vfs"
)

// MockFileSystem wraps a real in-memory vfs and lets tests inject failures
// per operation.
type MockFileSystem struct {
	Mu       sync.Mutex
	Inner    vfs.FileSystem
	OpErrors map[string]error // "Op" or "Op path" -> error to return
	Calls    []string         // "Op path" in call order
}

// NewMockFileSystem creates a mock backed by an empty memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Inner:    vfs.NewMemory(),
		OpErrors: make(map[string]error),
	}
}

// SetOperationError makes every call of operation fail with err.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// SetPathError makes operation fail with err only for path.
func (f *MockFileSystem) SetPathError(operation, path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation+" "+path] = err
}

// CreateFile seeds a file, creating parents.
func (f *MockFileSystem) CreateFile(path string, content string) {
	if err := f.Inner.WriteFile(path, []byte(content)); err != nil {
		panic(err)
	}
}

// CreateDir seeds a directory.
func (f *MockFileSystem) CreateDir(path string) {
	if err := f.Inner.MkdirAll(path); err != nil {
		panic(err)
	}
}

func (f *MockFileSystem) check(op, path string) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Calls = append(f.Calls, op+" "+path)
	if err, ok := f.OpErrors[op+" "+path]; ok {
		return err
	}
	return f.OpErrors[op]
}

func (f *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if err := f.check("ReadFile", path); err != nil {
		return nil, err
	}
	return f.Inner.ReadFile(path)
}

func (f *MockFileSystem) WriteFile(path string, data []byte) error {
	if err := f.check("WriteFile", path); err != nil {
		return err
	}
	return f.Inner.WriteFile(path, data)
}

func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	if err := f.check("Stat", path); err != nil {
		return nil, err
	}
	return f.Inner.Stat(path)
}

func (f *MockFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	if err := f.check("ReadDir", path); err != nil {
		return nil, err
	}
	return f.Inner.ReadDir(path)
}

func (f *MockFileSystem) MkdirAll(path string) error {
	if err := f.check("MkdirAll", path); err != nil {
		return err
	}
	return f.Inner.MkdirAll(path)
}

func (f *MockFileSystem) Remove(path string) error {
	if err := f.check("Remove", path); err != nil {
		return err
	}
	return f.Inner.Remove(path)
}

func (f *MockFileSystem) RemoveAll(path string) error {
	if err := f.check("RemoveAll", path); err != nil {
		return err
	}
	return f.Inner.RemoveAll(path)
}

func (f *MockFileSystem) Rename(oldPath, newPath string) error {
	if err := f.check("Rename", oldPath); err != nil {
		return err
	}
	return f.Inner.Rename(oldPath, newPath)
}
