package grep

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/testing/mocks"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

func newEnv(t *testing.T, files map[string]string) *command.Env {
	t.Helper()
	fs := vfs.NewMemory()
	for p, content := range files {
		require.NoError(t, fs.WriteFile(p, []byte(content)))
	}
	return &command.Env{FS: fs, Cwd: "/"}
}

func run(t *testing.T, env *command.Env, args ...string) command.Result {
	t.Helper()
	res, err := Grep().Run(context.Background(), env, args)
	require.NoError(t, err)
	return res
}

func pipe(t *testing.T, stdin string, args ...string) command.Result {
	t.Helper()
	env := newEnv(t, nil)
	env.Stdin = &stdin
	return run(t, env, args...)
}

func TestParseGrep(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want GrepArgs
	}{
		{
			name: "pattern then paths",
			args: []string{"foo", "a.txt", "b.txt"},
			want: GrepArgs{Patterns: []string{"foo"}, Paths: []string{"a.txt", "b.txt"}},
		},
		{
			name: "combined short flags",
			args: []string{"-rn", "foo"},
			want: GrepArgs{Patterns: []string{"foo"}, Recursive: true, LineNumber: true},
		},
		{
			name: "fused numeric flag",
			args: []string{"-A5", "foo"},
			want: GrepArgs{Patterns: []string{"foo"}, After: 5},
		},
		{
			name: "context fills both sides",
			args: []string{"-C", "2", "foo"},
			want: GrepArgs{Patterns: []string{"foo"}, Before: 2, After: 2},
		},
		{
			name: "explicit side wins over context",
			args: []string{"-A1", "-C3", "foo"},
			want: GrepArgs{Patterns: []string{"foo"}, Before: 3, After: 1},
		},
		{
			name: "multiple -e leaves positionals as paths",
			args: []string{"-e", "foo", "-e", "bar", "x.go"},
			want: GrepArgs{Patterns: []string{"foo", "bar"}, Paths: []string{"x.go"}},
		},
		{
			name: "double dash ends flags",
			args: []string{"-i", "--", "-x", "f"},
			want: GrepArgs{Patterns: []string{"-x"}, Paths: []string{"f"}, IgnoreCase: true},
		},
		{
			name: "flags after operands",
			args: []string{"foo", "f", "-v", "-R", "-E"},
			want: GrepArgs{Patterns: []string{"foo"}, Paths: []string{"f"}, Invert: true, Recursive: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGrep(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing pattern", func(t *testing.T) {
		_, err := parseGrep([]string{"-n"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing pattern")
	})
}

func TestGrep_Stdin(t *testing.T) {
	res := pipe(t, "foo\nbar\nfood\n", "foo")
	assert.Equal(t, command.OK("foo\nfood"), res)

	res = pipe(t, "foo\nbar", "zzz")
	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, res.Stdout)

	res = pipe(t, "Foo\nbar", "-i", "foo")
	assert.Equal(t, "Foo", res.Stdout)

	res = pipe(t, "foo\nbar", "-v", "foo")
	assert.Equal(t, "bar", res.Stdout)

	res = pipe(t, "concat\nthe cat", "-w", "cat")
	assert.Equal(t, "the cat", res.Stdout)

	res = pipe(t, "a.b\naxb", "-F", "a.b")
	assert.Equal(t, "a.b", res.Stdout)

	res = pipe(t, "one\ntwo\nthree", "-e", "one", "-e", "three")
	assert.Equal(t, "one\nthree", res.Stdout)

	res = pipe(t, "x\nx\ny", "-c", "x")
	assert.Equal(t, "2", res.Stdout)

	res = pipe(t, "x", "-l", "x")
	assert.Equal(t, "(standard input)", res.Stdout)
}

func TestGrep_ContextLines(t *testing.T) {
	env := newEnv(t, map[string]string{
		"/f.txt": "a\nmatch1\nb\nc\nd\ne\nmatch2\nf\n",
		"/g.txt": "x\nmatch3\n",
	})

	t.Run("separated groups", func(t *testing.T) {
		res := run(t, env, "-n", "-C1", "match", "f.txt")
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "1-a\n2:match1\n3-b\n--\n6-e\n7:match2\n8-f", res.Stdout)
	})

	t.Run("two hits in a twelve line file", func(t *testing.T) {
		env := newEnv(t, map[string]string{
			"/twelve.txt": "l1\nhit2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nhit10\nl11\nl12\n",
		})
		res := run(t, env, "-n", "-B1", "-A1", "hit", "twelve.txt")
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "1-l1\n2:hit2\n3-l3\n--\n9-l9\n10:hit10\n11-l11", res.Stdout)
		assert.Equal(t, 1, strings.Count(res.Stdout, "--"))
	})

	t.Run("overlapping windows merge", func(t *testing.T) {
		res := run(t, env, "-n", "-A3", "match1", "f.txt")
		assert.Equal(t, "2:match1\n3-b\n4-c\n5-d", res.Stdout)

		res = run(t, env, "-B5", "-A1", "match", "f.txt")
		assert.Equal(t, "a\nmatch1\nb\nc\nd\ne\nmatch2\nf", res.Stdout)
	})

	t.Run("windows clip to file bounds", func(t *testing.T) {
		res := run(t, env, "-n", "-B3", "match1", "f.txt")
		assert.Equal(t, "1-a\n2:match1", res.Stdout)
	})

	t.Run("filename prefixes and separator between files", func(t *testing.T) {
		res := run(t, env, "-n", "-A1", "match2|match3", "f.txt", "g.txt")
		assert.Equal(t, "f.txt:7:match2\nf.txt-8-f\n--\ng.txt:2:match3", res.Stdout)
	})

	t.Run("no context keeps plain prefixes", func(t *testing.T) {
		res := run(t, env, "match", "f.txt", "g.txt")
		assert.Equal(t, "f.txt:match1\nf.txt:match2\ng.txt:match3", res.Stdout)
	})

	t.Run("negative context fails validation", func(t *testing.T) {
		res := run(t, env, "-A", "-1", "match", "f.txt")
		assert.Equal(t, 2, res.ExitCode)
		assert.Contains(t, res.Stderr, "invalid arguments")
	})

	t.Run("bad numeric flag", func(t *testing.T) {
		res := run(t, env, "-A", "many", "match", "f.txt")
		assert.Equal(t, 2, res.ExitCode)
	})
}

func TestGrep_Recursive(t *testing.T) {
	env := newEnv(t, map[string]string{
		"/.gitignore":    "build/\n",
		"/.git/config":   "needle",
		"/build/out.txt": "needle",
		"/bin.dat":       "needle\x00",
		"/src/a.go":      "package a\n// needle here\n",
		"/notes.txt":     "nothing",
	})

	res := run(t, env, "-r", "needle")
	assert.Equal(t, command.OK("src/a.go:// needle here"), res)

	res = run(t, env, "-rn", "needle", "src")
	assert.Equal(t, "src/a.go:2:// needle here", res.Stdout)

	res = run(t, env, "-rl", "needle", ".")
	assert.Equal(t, "src/a.go", res.Stdout)

	res = run(t, env, "-c", "needle", "src/a.go", "notes.txt")
	assert.Equal(t, command.OK("src/a.go:1\nnotes.txt:0"), res)

	t.Run("gitignore can be disabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.RespectGitignore = false
		env.Config = cfg
		defer func() { env.Config = nil }()

		res := run(t, env, "-rl", "needle")
		assert.Equal(t, "build/out.txt\nsrc/a.go", res.Stdout)
	})

	t.Run("relative to cwd", func(t *testing.T) {
		env.Cwd = "/src"
		defer func() { env.Cwd = "/" }()

		res := run(t, env, "-r", "needle")
		assert.Equal(t, "a.go:// needle here", res.Stdout)
	})
}

func TestGrep_Errors(t *testing.T) {
	env := newEnv(t, map[string]string{"/a.txt": "hello", "/dir/b.txt": "hello"})

	res := run(t, env)
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "missing pattern")

	res = run(t, env, "(", "a.txt")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid pattern")

	res = run(t, env, "hello", "missing.txt", "a.txt")
	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, "a.txt:hello", res.Stdout)
	assert.Contains(t, res.Stderr, "use ls to list available paths")

	res = run(t, env, "hello", "dir")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "dir: Is a directory")
}

func TestGrep_MatchCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxGrepMatches = 2
	cfg.Tools.MaxLineLength = 5
	stdin := "hit 1\nhit 2\nhit 3 is long\n"
	env := &command.Env{FS: vfs.NewMemory(), Cwd: "/", Stdin: &stdin, Config: cfg}

	res := run(t, env, "hit")
	assert.Equal(t, "hit 1\nhit 2", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stderr, "stopped after 2 matches")

	res = run(t, env, "long")
	assert.Equal(t, "hit 3...[truncated]", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 5, 6, 7}, window([]int{1, 6}, 8, 1, 1))
	assert.Equal(t, []int{0, 1, 2, 3}, window([]int{0, 2}, 4, 0, 1))
	assert.Nil(t, window(nil, 4, 2, 2))
}

func TestGrep_FilesystemErrors(t *testing.T) {
	diskFull := errors.New("disk full")
	newMockEnv := func() (*command.Env, *mocks.MockFileSystem) {
		fs := mocks.NewMockFileSystem()
		fs.CreateFile("/a.txt", "hello")
		fs.CreateFile("/src/one.txt", "hello one")
		fs.CreateFile("/src/two.txt", "hello two")
		return &command.Env{FS: fs, Cwd: "/"}, fs
	}

	t.Run("stat error on named file", func(t *testing.T) {
		env, fs := newMockEnv()
		fs.SetPathError("Stat", "/a.txt", &vfs.IOError{Op: "stat", Path: "/a.txt", Cause: diskFull})

		res := run(t, env, "hello", "a.txt")
		assert.Equal(t, 2, res.ExitCode)
		assert.Empty(t, res.Stdout)
		assert.Equal(t, "grep: stat a.txt: disk full", res.Stderr)
	})

	t.Run("read error during recursive walk keeps other matches", func(t *testing.T) {
		env, fs := newMockEnv()
		fs.SetPathError("ReadFile", "/src/two.txt", &vfs.IOError{Op: "read", Path: "/src/two.txt", Cause: diskFull})

		res := run(t, env, "-r", "hello", "src")
		assert.Equal(t, 2, res.ExitCode)
		assert.Equal(t, "src/one.txt:hello one", res.Stdout)
		assert.Contains(t, res.Stderr, "disk full")
	})
}
