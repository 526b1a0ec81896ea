package config

// Config represents the gitignore-assist configuration.
type Config struct {
	// Source configures where templates are fetched from.
	Source SourceConfig `json:"source" yaml:"source"`
	// Output configures display.
	Output OutputConfig `json:"output" yaml:"output"`
	// Workspace configures how files are opened after writing.
	Workspace WorkspaceConfig `json:"workspace" yaml:"workspace"`
}

// SourceConfig represents remote template source settings.
type SourceConfig struct {
	// URL is the JSON endpoint listing the templates.
	URL string `json:"url" yaml:"url"`
	// Timeout is the request timeout in seconds (0 = no timeout).
	Timeout int `json:"timeout" yaml:"timeout"`
	// UserAgent is sent with the request.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// NoColor disables colored terminal output.
	NoColor bool `json:"no_color" yaml:"no_color"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// WorkspaceConfig represents settings for written files.
type WorkspaceConfig struct {
	// Editor is the command used to open files; $VISUAL/$EDITOR otherwise.
	Editor string `json:"editor,omitempty" yaml:"editor,omitempty"`
	// NoOpen disables opening the file after it is written.
	NoOpen bool `json:"no_open" yaml:"no_open"`
}
