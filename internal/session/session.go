// Package session wires a workspace filesystem, its git repository, the
// executor and the tool catalogue into one shell session.
package session

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/vsh/internal/commands"
	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/shell/executor"
	"github.com/Cyclone1070/vsh/internal/shell/toolset"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// Options configures Open.
type Options struct {
	// Root is a host directory to operate on. Empty means a fresh in-memory
	// workspace.
	Root   string
	Config *config.Config
	// Clock overrides commit timestamps, for reproducible hashes in tests.
	Clock func() time.Time
	// NoGit opens the session without a repository.
	NoGit bool
}

// Session is one shell session over a workspace.
type Session struct {
	Config *config.Config
	FS     *vfs.BillyFS
	Repo   *vcs.GoGit // nil when git is unavailable
	Exec   *executor.Executor
	Tools  *toolset.Toolset
}

// Open builds a session. A repository that cannot be opened or created is
// logged and the session continues without git.
func Open(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var backing billy.Filesystem
	if opts.Root != "" {
		backing = osfs.New(opts.Root)
	} else {
		backing = memfs.New()
	}
	fs := vfs.New(backing)

	s := &Session{Config: cfg, FS: fs}
	var git vcs.Repository
	if !opts.NoGit {
		repo, err := vcs.OpenOrInit(backing, vcs.Signature{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
		if err != nil {
			logrus.WithError(err).Warn("git is unavailable in this session")
		} else {
			if opts.Clock != nil {
				repo.SetClock(opts.Clock)
			}
			s.Repo = repo
			git = repo
		}
	}

	var shellFS vfs.FileSystem = fs
	if git != nil {
		shellFS = vfs.Protect(fs, "/"+vcs.GitDir)
	}
	s.Exec = executor.New(commands.NewRegistry(), shellFS, git, cfg)
	s.Tools = toolset.New(s.Exec)
	logrus.WithFields(logrus.Fields{
		"root":  opts.Root,
		"tools": len(s.Tools.Tools()),
		"git":   s.Repo != nil,
	}).Debug("session opened")
	return s
}
