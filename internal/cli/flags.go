package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagDir       = "dir"
	FlagConfig    = "config"
	FlagSourceURL = "source-url"
	FlagEditor    = "editor"
	FlagNoOpen    = "no-open"
	FlagDryRun    = "dry-run"
	FlagNoColor   = "no-color"
	FlagQuiet     = "quiet"
	FlagDebug     = "debug"
	FlagJSON      = "json"

	// Flag descriptions
	DescDir       = "Workspace directory containing the .gitignore"
	DescConfig    = "Path to config file"
	DescSourceURL = "URL of the JSON template list"
	DescEditor    = "Command used to open the written file"
	DescNoOpen    = "Do not open the file after writing it"
	DescDryRun    = "Show the rules that would be added without writing"
	DescNoColor   = "Disable colored output"
	DescQuiet     = "Suppress non-error output"
	DescDebug     = "Enable debug logging"
	DescJSON      = "Output as JSON"
)
