package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Shell ShellConfig `json:"shell"`
	Tools ToolsConfig `json:"tools"`
	Git   GitConfig   `json:"git"`
	Log   LogConfig   `json:"log"`
}

type ShellConfig struct {
	InitialCwd  string `json:"initial_cwd"`  // Default: "/"
	HistorySize int    `json:"history_size"` // Default: 500 (REPL scrollback entries)
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)

	// Search
	MaxLineLength    int  `json:"max_line_length"`   // Default: 10000
	MaxGrepMatches   int  `json:"max_grep_matches"`  // Default: 10000
	MaxFindResults   int  `json:"max_find_results"`  // Default: 10000
	RespectGitignore bool `json:"respect_gitignore"` // Default: true
}

type GitConfig struct {
	AuthorName       string `json:"author_name"`       // Default: "vsh"
	AuthorEmail      string `json:"author_email"`      // Default: "vsh@localhost"
	Remote           string `json:"remote"`            // Default: "origin"
	CheckpointPrefix string `json:"checkpoint_prefix"` // Default: "checkpoint: "
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "warn"
	Format string `json:"format"` // Default: "text" ("text" or "json")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			InitialCwd:  "/",
			HistorySize: 500,
		},
		Tools: ToolsConfig{
			MaxFileSize:      20 * 1024 * 1024,
			MaxLineLength:    10000,
			MaxGrepMatches:   10000,
			MaxFindResults:   10000,
			RespectGitignore: true,
		},
		Git: GitConfig{
			AuthorName:       "vsh",
			AuthorEmail:      "vsh@localhost",
			Remote:           "origin",
			CheckpointPrefix: "checkpoint: ",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
