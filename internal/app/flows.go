// Package app implements the user-triggered operations: creating an empty
// .gitignore, creating one from a template, and merging a template into an
// existing one.
//
// Every operation reports its result to the user through UI and returns an
// Outcome; failures are carried in Outcome.Err and never returned as a
// separate error.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tacogips/gitignore-assist/internal/catalog"
	"github.com/tacogips/gitignore-assist/internal/debug"
	"github.com/tacogips/gitignore-assist/internal/merge"
)

const (
	// FileName is the file the flows manage, at the workspace root.
	FileName = ".gitignore"
	// DefaultHeader starts every file created by the flows.
	DefaultHeader = "# Auto-generated .gitignore\n"
	// SelectPrompt is the message shown above the template list.
	SelectPrompt = "Select a .gitignore template"
)

// Status is how an operation ended.
type Status int

const (
	// Written means the file was created or changed.
	Written Status = iota
	// Unchanged means the operation ran but there was nothing to write.
	Unchanged
	// Previewed means a dry run computed changes without writing them.
	Previewed
	// Cancelled means the user dismissed the selection prompt.
	Cancelled
	// Aborted means a precondition or failure stopped the operation.
	Aborted
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case Unchanged:
		return "unchanged"
	case Previewed:
		return "previewed"
	case Cancelled:
		return "cancelled"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome describes the result of an operation.
type Outcome struct {
	// Status is how the operation ended.
	Status Status
	// Path is the .gitignore the operation targeted.
	Path string
	// Template is the display name of the chosen template, if any.
	Template string
	// Added holds the template lines appended (or, for a dry run, that
	// would be appended) by Update.
	Added []string
	// Err is set when Status is Aborted.
	Err error
}

// Options tune the template operations.
type Options struct {
	// TemplateName selects a template by display name or key and skips
	// the prompt.
	TemplateName string
	// DryRun reports what Update would add without writing.
	DryRun bool
	// Open displays the file after it is written.
	Open bool
	// Now overrides the clock used for the merge header.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func abort(ui UI, path string, err *AppError) *Outcome {
	debug.Debug("[app] aborted: %v", err)
	switch err.Type {
	case PreconditionFailed:
		ui.Info(err.Message)
	default:
		ui.Error(err.Error())
	}
	return &Outcome{Status: Aborted, Path: path, Err: err}
}

// findExisting returns the workspace-root .gitignore, or "" if absent.
func findExisting(ws Workspace) (string, error) {
	matches, err := ws.FindFiles(FileName)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

// missingFileError explains an absent root .gitignore, naming a nested one
// when the workspace has any.
func missingFileError(ws Workspace) *AppError {
	nested, err := ws.FindFiles("**/" + FileName)
	if err == nil && len(nested) > 0 {
		if dir, relErr := filepath.Rel(ws.Root(), filepath.Dir(nested[0])); relErr == nil {
			return NewPreconditionError(fmt.Sprintf(
				"No %s at the workspace root, but %s has one. Run update from that directory to change it.",
				FileName, dir), nil)
		}
	}
	return NewPreconditionError("No "+FileName+" found. Create one first.", nil)
}

// selectTemplate resolves the template for an operation: from
// opts.TemplateName when given, otherwise by prompting with the catalog's
// sorted names. A nil template with a nil error means the user cancelled.
func selectTemplate(ui UI, cat *catalog.Catalog, opts Options) (*catalog.Template, *AppError) {
	if opts.TemplateName != "" {
		tmpl, ok := cat.Resolve(opts.TemplateName)
		if !ok {
			return nil, NewTemplateNotFoundError(opts.TemplateName)
		}
		return &tmpl, nil
	}

	names := cat.Names()
	debug.DebugValue("[app] templates offered", len(names))
	if len(names) == 0 {
		ui.Info("No templates available.")
		return nil, nil
	}

	choice, ok, err := ui.Select(SelectPrompt, names)
	if err != nil {
		return nil, NewPromptError("failed to show template list", err)
	}
	if !ok {
		debug.Debug("[app] selection cancelled")
		return nil, nil
	}

	// The list came from this snapshot, so a miss is an internal error.
	tmpl, found := cat.Find(choice)
	if !found {
		return nil, NewTemplateNotFoundError(choice)
	}
	return &tmpl, nil
}

func openWritten(ws Workspace, ui UI, path string, opts Options) {
	if !opts.Open {
		return
	}
	if err := ws.OpenFile(path); err != nil {
		ui.Error(fmt.Sprintf("Could not open %s: %v", filepath.Base(path), err))
	}
}

func lockError(err error) *AppError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewIOError("operation interrupted", err)
	}
	return NewPreconditionError(FileName+" is busy, try again shortly", err)
}

// CreateEmpty writes a .gitignore holding only DefaultHeader at the
// workspace root. An existing file is left untouched.
func CreateEmpty(ctx context.Context, ws Workspace, ui UI, opts Options) *Outcome {
	debug.DebugSection("[app] CreateEmpty")
	path := filepath.Join(ws.Root(), FileName)

	existing, err := findExisting(ws)
	if err != nil {
		return abort(ui, path, NewIOError("failed to search workspace", err))
	}
	if existing != "" {
		return abort(ui, existing, NewPreconditionError(FileName+" already exists.", nil))
	}

	if err := ctx.Err(); err != nil {
		return &Outcome{Status: Cancelled, Path: path}
	}

	return create(ws, ui, path, DefaultHeader, "", opts)
}

// CreateWithTemplate creates a .gitignore from a template chosen by the
// user. It refuses to touch an existing file.
func CreateWithTemplate(ctx context.Context, ws Workspace, ui UI, cat *catalog.Catalog, opts Options) *Outcome {
	debug.DebugSection("[app] CreateWithTemplate")
	path := filepath.Join(ws.Root(), FileName)

	existing, err := findExisting(ws)
	if err != nil {
		return abort(ui, path, NewIOError("failed to search workspace", err))
	}
	if existing != "" {
		return abort(ui, existing, NewPreconditionError(
			FileName+" already exists. Use update to add template rules to it.", nil))
	}

	tmpl, appErr := selectTemplate(ui, cat, opts)
	if appErr != nil {
		return abort(ui, path, appErr)
	}
	if tmpl == nil || ctx.Err() != nil {
		return &Outcome{Status: Cancelled, Path: path}
	}
	debug.DebugValue("[app] template", tmpl.Name)

	return create(ws, ui, path, DefaultHeader+tmpl.Contents, tmpl.Name, opts)
}

func create(ws Workspace, ui UI, path, content, templateName string, opts Options) *Outcome {
	out := writeNew(ws, ui, path, content, templateName)
	if out.Status == Written {
		openWritten(ws, ui, path, opts)
	}
	return out
}

// writeNew writes a new .gitignore under the file lock. The lock is released
// before the file is opened for the user.
func writeNew(ws Workspace, ui UI, path, content, templateName string) *Outcome {
	unlock, err := ws.Lock(path)
	if err != nil {
		return abort(ui, path, lockError(err))
	}
	defer unlock()

	// Another invocation may have created the file while we were prompting.
	existing, err := findExisting(ws)
	if err != nil {
		return abort(ui, path, NewIOError("failed to search workspace", err))
	}
	if existing != "" {
		return abort(ui, existing, NewPreconditionError(FileName+" already exists.", nil))
	}

	if err := ws.WriteFile(path, content); err != nil {
		return abort(ui, path, NewIOError("Failed to create "+FileName, err))
	}

	if templateName != "" {
		ui.Info(fmt.Sprintf("Created %s with the %s template.", FileName, templateName))
	} else {
		ui.Info(fmt.Sprintf("Created %s.", FileName))
	}
	return &Outcome{Status: Written, Path: path, Template: templateName}
}

// Update merges the rules of a template chosen by the user into the
// existing workspace .gitignore. It never creates the file.
func Update(ctx context.Context, ws Workspace, ui UI, cat *catalog.Catalog, opts Options) *Outcome {
	debug.DebugSection("[app] Update")
	debug.DebugValue("[app] DryRun", opts.DryRun)

	path, err := findExisting(ws)
	if err != nil {
		return abort(ui, filepath.Join(ws.Root(), FileName), NewIOError("failed to search workspace", err))
	}
	if path == "" {
		return abort(ui, filepath.Join(ws.Root(), FileName), missingFileError(ws))
	}

	tmpl, appErr := selectTemplate(ui, cat, opts)
	if appErr != nil {
		return abort(ui, path, appErr)
	}
	if tmpl == nil || ctx.Err() != nil {
		return &Outcome{Status: Cancelled, Path: path}
	}
	debug.DebugValue("[app] template", tmpl.Name)

	out := mergeInto(ws, ui, path, tmpl, opts)
	if out.Status == Written {
		openWritten(ws, ui, path, opts)
	}
	return out
}

// mergeInto performs the read-merge-write cycle of Update under the file
// lock.
func mergeInto(ws Workspace, ui UI, path string, tmpl *catalog.Template, opts Options) *Outcome {
	unlock, err := ws.Lock(path)
	if err != nil {
		return abort(ui, path, lockError(err))
	}
	defer unlock()

	existing, err := ws.ReadFile(path)
	if err != nil {
		return abort(ui, path, NewIOError("Failed to read "+FileName, err))
	}

	merged := merge.MergeAt(existing, tmpl.Contents, tmpl.Name, opts.now())
	if merged == existing {
		ui.Info(fmt.Sprintf("No new rules to add from the %s template.", tmpl.Name))
		return &Outcome{Status: Unchanged, Path: path, Template: tmpl.Name}
	}

	added := merge.NewRules(existing, tmpl.Contents)
	debug.DebugValue("[app] rules added", len(added))

	if opts.DryRun {
		ui.Info(fmt.Sprintf("Would add %d %s from the %s template:\n%s",
			len(added), plural(len(added), "rule", "rules"), tmpl.Name, strings.Join(added, "\n")))
		return &Outcome{Status: Previewed, Path: path, Template: tmpl.Name, Added: added}
	}

	if err := ws.WriteFile(path, merged); err != nil {
		return abort(ui, path, NewIOError("Failed to update "+FileName, err))
	}

	ui.Info(fmt.Sprintf("Updated %s with %d new %s from the %s template.",
		FileName, len(added), plural(len(added), "rule", "rules"), tmpl.Name))
	return &Outcome{Status: Written, Path: path, Template: tmpl.Name, Added: added}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
