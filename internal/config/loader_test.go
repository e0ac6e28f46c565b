package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const testConfigPath = "/home/user/.config/vsh/config.json"

func loaderWith(content string) *Loader {
	return NewLoaderWithFS(&MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(content)},
	})
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "/", cfg.Shell.InitialCwd)
	assert.Equal(t, int64(20*1024*1024), cfg.Tools.MaxFileSize)
	assert.Equal(t, "origin", cfg.Git.Remote)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"shell": {"initial_cwd": "/work", "history_size": 10},
		"tools": {"max_file_size": 1024, "max_grep_matches": 5, "respect_gitignore": false},
		"git": {"author_name": "bot", "author_email": "bot@example.com", "remote": "upstream", "checkpoint_prefix": "cp: "},
		"log": {"level": "debug", "format": "json"}
	}`

	cfg, err := loaderWith(configJSON).Load()

	require.NoError(t, err)
	assert.Equal(t, "/work", cfg.Shell.InitialCwd)
	assert.Equal(t, 10, cfg.Shell.HistorySize)
	assert.Equal(t, int64(1024), cfg.Tools.MaxFileSize)
	assert.Equal(t, 5, cfg.Tools.MaxGrepMatches)
	assert.False(t, cfg.Tools.RespectGitignore)
	assert.Equal(t, "bot", cfg.Git.AuthorName)
	assert.Equal(t, "upstream", cfg.Git.Remote)
	assert.Equal(t, "cp: ", cfg.Git.CheckpointPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	cfg, err := loaderWith(`{"git": {"author_name": "alice"}}`).Load()

	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Git.AuthorName)
	assert.Equal(t, "vsh@localhost", cfg.Git.AuthorEmail)
	assert.True(t, cfg.Tools.RespectGitignore)
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	cfg, err := loaderWith(`{}`).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ExplicitFalse_OverridesDefault(t *testing.T) {
	cfg, err := loaderWith(`{"tools": {"respect_gitignore": false}}`).Load()

	require.NoError(t, err)
	assert.False(t, cfg.Tools.RespectGitignore)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	fs := &MockFileSystem{
		Files: map[string][]byte{"/etc/vsh.json": []byte(`{"log": {"level": "info"}}`)},
	}

	cfg, err := NewLoaderWithFS(fs).LoadFile("/etc/vsh.json")

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	cfg, err := loaderWith(`{invalid json`).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	cfg, err := loaderWith(`["not", "an", "object"]`).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_NegativeValues_Rejected(t *testing.T) {
	cfg, err := loaderWith(`{"tools": {"max_find_results": -1}}`).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFile_Missing_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{Files: map[string][]byte{}}

	cfg, err := NewLoaderWithFS(fs).LoadFile("/nope.json")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// --- EDGE CASE TESTS ---

func TestLoad_UnknownFields_Ignored(t *testing.T) {
	cfg, err := loaderWith(`{"shell": {"history_size": 42}, "unknown_field": "ignored"}`).Load()

	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Shell.HistorySize)
}

func TestLoad_UnicodeInStrings_Handled(t *testing.T) {
	cfg, err := loaderWith(`{"git": {"author_name": "Zoë 🎨"}}`).Load()

	require.NoError(t, err)
	assert.Equal(t, "Zoë 🎨", cfg.Git.AuthorName)
}
