package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Shell validation
	if !strings.HasPrefix(c.Shell.InitialCwd, "/") {
		errs = append(errs, "shell.initial_cwd must be an absolute path")
	}
	if c.Shell.HistorySize < 1 {
		errs = append(errs, "shell.history_size must be >= 1")
	}

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.MaxLineLength < 1 {
		errs = append(errs, "tools.max_line_length must be >= 1")
	}
	if c.Tools.MaxGrepMatches < 1 {
		errs = append(errs, "tools.max_grep_matches must be >= 1")
	}
	if c.Tools.MaxFindResults < 1 {
		errs = append(errs, "tools.max_find_results must be >= 1")
	}

	// Git validation
	if c.Git.AuthorName == "" {
		errs = append(errs, "git.author_name must not be empty")
	}
	if c.Git.AuthorEmail == "" {
		errs = append(errs, "git.author_email must not be empty")
	}
	if c.Git.Remote == "" {
		errs = append(errs, "git.remote must not be empty")
	}
	if strings.TrimSpace(c.Git.CheckpointPrefix) == "" {
		errs = append(errs, "git.checkpoint_prefix must not be blank")
	}

	// Log validation
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be \"text\" or \"json\"")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
