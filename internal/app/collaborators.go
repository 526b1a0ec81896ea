package app

// Workspace is the filesystem the flows operate on.
type Workspace interface {
	// Root returns the workspace root directory.
	Root() string
	// FindFiles returns paths matching glob relative to the root.
	FindFiles(glob string) ([]string, error)
	// ReadFile returns the full text of a file.
	ReadFile(path string) (string, error)
	// WriteFile replaces a file's contents, creating it if absent.
	WriteFile(path, content string) error
	// OpenFile displays a file to the user.
	OpenFile(path string) error
	// Lock serialises modifications of path. The returned func releases it.
	Lock(path string) (func(), error)
}

// UI is how the flows talk to the user.
type UI interface {
	// Select presents options and waits for a choice. ok is false when the
	// user dismissed the prompt.
	Select(message string, options []string) (choice string, ok bool, err error)
	// Info shows an informational message.
	Info(msg string)
	// Error shows an error message.
	Error(msg string)
}
