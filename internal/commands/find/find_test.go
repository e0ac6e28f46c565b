package find

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// spawnRecorder stands in for the executor: it records invocations and
// echoes the arguments back.
type spawnRecorder struct {
	calls [][]string
	fail  bool
}

func (s *spawnRecorder) spawn(_ context.Context, name string, args []string, _ *string) command.Result {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.fail {
		return command.Result{ExitCode: command.ExitNotFound, Stderr: name + ": command not found"}
	}
	return command.OK(strings.Join(args, " "))
}

func newEnv(t *testing.T) (*command.Env, *spawnRecorder) {
	t.Helper()
	fs := vfs.NewMemory()
	for p, content := range map[string]string{
		"/src/a.go":      "package a",
		"/src/b.go":      "package b",
		"/src/sub/c.go":  "package sub",
		"/src/README.md": "# readme",
		"/.git/HEAD":     "ref: refs/heads/main",
	} {
		require.NoError(t, fs.WriteFile(p, []byte(content)))
	}
	rec := &spawnRecorder{}
	return &command.Env{FS: fs, Cwd: "/", Spawn: rec.spawn}, rec
}

func run(t *testing.T, env *command.Env, c command.Command, args ...string) command.Result {
	t.Helper()
	res, err := c.Run(context.Background(), env, args)
	require.NoError(t, err)
	return res
}

func TestParseFind(t *testing.T) {
	depth := 2
	tests := []struct {
		name string
		args []string
		want FindArgs
	}{
		{"no arguments", nil, FindArgs{}},
		{"paths and filters", []string{"a", "b", "-name", "*.go", "-type", "f"}, FindArgs{Paths: []string{"a", "b"}, Name: "*.go", Type: "f"}},
		{"maxdepth and iname", []string{"-maxdepth", "2", "-iname", "X*"}, FindArgs{MaxDepth: &depth, IName: "X*"}},
		{"exec per match", []string{".", "-exec", "cat", "{}", ";"}, FindArgs{Paths: []string{"."}, Exec: []string{"cat", "{}"}}},
		{"exec batch", []string{"-exec", "grep", "-l", "x", "{}", "+"}, FindArgs{Exec: []string{"grep", "-l", "x", "{}"}, ExecBatch: true}},
		{"exec without terminator", []string{"-exec", "cat", "{}"}, FindArgs{Exec: []string{"cat", "{}"}}},
		{"predicates after exec", []string{"-exec", "cat", "{}", ";", "-type", "f"}, FindArgs{Exec: []string{"cat", "{}"}, Type: "f"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFind(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, args := range [][]string{
		{"-name"},
		{"-maxdepth", "deep"},
		{"-size", "+1k"},
		{"-exec", ";"},
		{"-type", "f", "stray"},
	} {
		_, err := parseFind(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestFind_Filters(t *testing.T) {
	env, _ := newEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"everything below a path", []string{"src"}, "src\nsrc/README.md\nsrc/a.go\nsrc/b.go\nsrc/sub\nsrc/sub/c.go"},
		{"name glob", []string{"src", "-name", "*.go"}, "src/a.go\nsrc/b.go\nsrc/sub/c.go"},
		{"case-insensitive name", []string{"-iname", "*.MD"}, "./src/README.md"},
		{"directories skip .git", []string{".", "-type", "d"}, ".\n./src\n./src/sub"},
		{"maxdepth one", []string{"src", "-maxdepth", "1", "-type", "f"}, "src/README.md\nsrc/a.go\nsrc/b.go"},
		{"maxdepth zero", []string{"src", "-maxdepth", "0"}, "src"},
		{"absolute root", []string{"/src/sub"}, "/src/sub\n/src/sub/c.go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, command.OK(tt.want), run(t, env, Find(), tt.args...))
		})
	}
}

func TestFind_Exec(t *testing.T) {
	t.Run("plus batches all matches into one invocation", func(t *testing.T) {
		env, rec := newEnv(t)
		res := run(t, env, Find(), "src", "-name", "*.go", "-exec", "echo", "{}", "+")
		require.Len(t, rec.calls, 1)
		assert.Equal(t, []string{"echo", "src/a.go", "src/b.go", "src/sub/c.go"}, rec.calls[0])
		assert.Equal(t, command.OK("src/a.go src/b.go src/sub/c.go"), res)
	})

	t.Run("semicolon invokes once per match", func(t *testing.T) {
		env, rec := newEnv(t)
		res := run(t, env, Find(), "src", "-name", "*.go", "-exec", "echo", "{}", ";")
		assert.Len(t, rec.calls, 3)
		assert.Equal(t, []string{"echo", "src/b.go"}, rec.calls[1])
		assert.Equal(t, "src/a.go\nsrc/b.go\nsrc/sub/c.go", res.Stdout)
	})

	t.Run("missing terminator degrades to per match", func(t *testing.T) {
		env, rec := newEnv(t)
		run(t, env, Find(), "src", "-name", "*.go", "-exec", "echo", "{}")
		assert.Len(t, rec.calls, 3)
	})

	t.Run("embedded placeholder gets joined paths", func(t *testing.T) {
		env, rec := newEnv(t)
		run(t, env, Find(), "src", "-name", "*.go", "-exec", "echo", "files={}", "+")
		assert.Equal(t, [][]string{{"echo", "files=src/a.go src/b.go src/sub/c.go"}}, rec.calls)
	})

	t.Run("no matches spawns nothing", func(t *testing.T) {
		env, rec := newEnv(t)
		res := run(t, env, Find(), "src", "-name", "*.rs", "-exec", "echo", "{}", "+")
		assert.Empty(t, rec.calls)
		assert.Equal(t, command.OK(""), res)
	})

	t.Run("failing invocation fails find", func(t *testing.T) {
		env, rec := newEnv(t)
		rec.fail = true
		res := run(t, env, Find(), "src", "-name", "a.go", "-exec", "nope", "{}", ";")
		assert.Equal(t, 1, res.ExitCode)
		assert.Equal(t, "nope: command not found", res.Stderr)
	})

	t.Run("unavailable without spawn", func(t *testing.T) {
		env, _ := newEnv(t)
		env.Spawn = nil
		res := run(t, env, Find(), "-exec", "echo", "{}", "+")
		assert.Equal(t, 1, res.ExitCode)
	})
}

func TestFind_Errors(t *testing.T) {
	env, _ := newEnv(t)

	res := run(t, env, Find(), "missing", "src/sub")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "src/sub\nsrc/sub/c.go", res.Stdout)
	assert.Contains(t, res.Stderr, "use ls to list available paths")

	res = run(t, env, Find(), "-type", "x")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid arguments")

	res = run(t, env, Find(), "-maxdepth", "-1")
	assert.Equal(t, 2, res.ExitCode)

	res = run(t, env, Find(), "-name", "[")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid pattern")
}

func TestFind_ResultCap(t *testing.T) {
	env, _ := newEnv(t)
	cfg := config.DefaultConfig()
	cfg.Tools.MaxFindResults = 2
	env.Config = cfg

	res := run(t, env, Find(), "src", "-type", "f")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "src/README.md\nsrc/a.go", res.Stdout)
	assert.Contains(t, res.Stderr, "stopped after 2 results")
}

func TestXargs(t *testing.T) {
	t.Run("appends stdin words", func(t *testing.T) {
		env, rec := newEnv(t)
		stdin := "a b\nc\n"
		env.Stdin = &stdin
		res := run(t, env, Xargs(), "grep", "-l", "x")
		assert.Equal(t, [][]string{{"grep", "-l", "x", "a", "b", "c"}}, rec.calls)
		assert.Equal(t, command.OK("-l x a b c"), res)
	})

	t.Run("batches with -n and defaults to echo", func(t *testing.T) {
		env, rec := newEnv(t)
		stdin := "1 2 3"
		env.Stdin = &stdin
		res := run(t, env, Xargs(), "-n", "2")
		assert.Equal(t, [][]string{{"echo", "1", "2"}, {"echo", "3"}}, rec.calls)
		assert.Equal(t, "1 2\n3", res.Stdout)
	})

	t.Run("empty input runs once", func(t *testing.T) {
		env, rec := newEnv(t)
		run(t, env, Xargs(), "echo")
		assert.Equal(t, [][]string{{"echo"}}, rec.calls)
	})

	t.Run("propagates failure", func(t *testing.T) {
		env, rec := newEnv(t)
		rec.fail = true
		res := run(t, env, Xargs(), "nope")
		assert.Equal(t, 127, res.ExitCode)
	})

	t.Run("bad batch size", func(t *testing.T) {
		env, _ := newEnv(t)
		res := run(t, env, Xargs(), "-n", "0", "echo")
		assert.Equal(t, 2, res.ExitCode)
	})
}
