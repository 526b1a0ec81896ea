package cli

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tacogips/gitignore-assist/internal/app"
	"golang.org/x/term"
)

// selectPageSize is the number of templates visible at once.
const selectPageSize = 15

var errNotInteractive = errors.New("no terminal available for the template list; pass the template name as an argument")

// terminalUI implements app.UI on the controlling terminal.
type terminalUI struct {
	interactive bool
	// ask runs a survey prompt; replaced in tests.
	ask func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

var _ app.UI = (*terminalUI)(nil)

func newTerminalUI() *terminalUI {
	return &terminalUI{
		interactive: isInteractive(),
		ask:         survey.AskOne,
	}
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Select shows a filterable single-choice list. Ctrl-C cancels.
func (u *terminalUI) Select(message string, options []string) (string, bool, error) {
	if !u.interactive {
		return "", false, errNotInteractive
	}

	var choice string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: selectPageSize,
	}
	if err := u.ask(prompt, &choice); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, true, nil
}

// Info shows an informational message.
func (u *terminalUI) Info(msg string) {
	printInfo(msg)
}

// Error shows an error message.
func (u *terminalUI) Error(msg string) {
	printErrorMsg(msg)
}
