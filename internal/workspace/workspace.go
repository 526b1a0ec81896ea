// Package workspace gives the flows access to a project directory on the
// local filesystem: finding, reading, writing and opening files.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mattn/go-shellwords"
)

// skipDirs are never descended into by FindFiles.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Dir is a workspace rooted at a directory.
type Dir struct {
	root string

	// Editor overrides $VISUAL and $EDITOR when opening files.
	Editor string
	// Interactive enables launching an editor from Open.
	Interactive bool
	// Stdin, Stdout and Stderr are attached to the editor process.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	// Locks serialises writers of the same file.
	Locks *Locker
}

// Open returns a workspace rooted at root, which must be an existing
// directory.
func Open(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace is not a directory: %s", abs)
	}
	return &Dir{
		root:   abs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Locks:  NewLocker(),
	}, nil
}

// Root returns the absolute workspace path.
func (d *Dir) Root() string {
	return d.root
}

// FindFiles returns the absolute paths matching glob relative to the root.
// A leading "**/" matches the rest of the pattern against file names at any
// depth.
func (d *Dir) FindFiles(glob string) ([]string, error) {
	if rest, ok := strings.CutPrefix(glob, "**/"); ok {
		return d.walkMatch(rest)
	}
	matches, err := filepath.Glob(filepath.Join(d.root, glob))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", glob, err)
	}
	return matches, nil
}

func (d *Dir) walkMatch(pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matches []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != d.root && skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search workspace: %w", err)
	}
	return matches, nil
}

// ReadFile returns the full text of path.
func (d *Dir) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the contents of path, creating it if absent. The write
// goes to a temporary file that is renamed into place.
func (d *Dir) WriteFile(path, content string) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Lock takes the write lock for path.
func (d *Dir) Lock(path string) (func(), error) {
	if d.Locks == nil {
		d.Locks = NewLocker()
	}
	return d.Locks.Acquire(path)
}

// ErrNoEditor is returned by EditorCommand when no editor is configured.
var ErrNoEditor = errors.New("no editor configured")

// EditorCommand builds the command that opens path in the configured
// editor: Editor, then $VISUAL, then $EDITOR.
func (d *Dir) EditorCommand(path string) (*exec.Cmd, error) {
	line := d.Editor
	if line == "" {
		line = os.Getenv("VISUAL")
	}
	if line == "" {
		line = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(line) == "" {
		return nil, ErrNoEditor
	}

	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, ErrNoEditor
	}
	args = append(args, path)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = d.Stdin, d.Stdout, d.Stderr
	return cmd, nil
}

// OpenFile displays path to the user. Non-interactive workspaces do nothing.
// Without an editor the platform's default opener is started.
func (d *Dir) OpenFile(path string) error {
	if !d.Interactive {
		return nil
	}

	cmd, err := d.EditorCommand(path)
	if errors.Is(err, ErrNoEditor) {
		return systemOpen(path)
	}
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

func systemOpen(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}
