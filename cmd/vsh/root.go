package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/session"
)

// exitError carries a non-zero shell exit code out of a command without
// printing anything further.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// globals are the persistent flags and the config they resolve to.
type globals struct {
	root       string
	configPath string
	debug      bool
	cfg        *config.Config
}

func newApp() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:     "vsh",
		Short:   "A virtual shell for sandboxed file, search and version control operations",
		Version: Version,
		Example: `  Run one command line against the current directory:
  $ vsh --root . run 'grep -rn TODO src | head -n 5'

  Call a typed tool:
  $ vsh --root . call grep '{"patterns": ["TODO"], "recursive": true}'

  Serve every tool over MCP:
  $ vsh --root . mcp`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.root, "root", "", "Host directory to operate on (default: a fresh in-memory workspace)")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: ~/.config/vsh/config.json)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Debug mode")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return g.init()
	}

	rootCmd.AddCommand(
		newRunCommand(g),
		newReplCommand(g),
		newToolsCommand(g),
		newDescribeCommand(g),
		newCallCommand(g),
		newMcpCommand(g),
	)
	return rootCmd
}

// init loads the config and applies its logging settings. --debug wins
// over the configured level.
func (g *globals) init() error {
	loader := config.NewLoader()
	var err error
	if g.configPath != "" {
		g.cfg, err = loader.LoadFile(g.configPath)
	} else {
		g.cfg, err = loader.Load()
	}
	if err != nil {
		return err
	}
	return configureLogging(g.cfg.Log, g.debug)
}

func configureLogging(c config.LogConfig, debug bool) error {
	lvl, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)

	switch c.Format {
	case "json":
		logrus.StandardLogger().SetFormatter(new(logrus.JSONFormatter))
	case "text", "":
		logrus.StandardLogger().SetFormatter(new(logrus.TextFormatter))
	default:
		return fmt.Errorf("unsupported log format: %q", c.Format)
	}
	return nil
}

func (g *globals) open() *session.Session {
	return session.Open(session.Options{Root: g.root, Config: g.cfg})
}
