package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tacogips/gitignore-assist/internal/app"
)

const templateList = `{
  "node": {"key": "node", "name": "Node", "contents": "node_modules/\n*.log\n"},
  "go": {"key": "go", "name": "Go", "contents": "# Binaries\n*.exe\n*.test\n"},
  "c": {"key": "c", "name": "c", "contents": "*.o\n"}
}`

// fakeUI answers the selection prompt without a terminal.
type fakeUI struct {
	choice  string
	cancel  bool
	offered []string
}

func (u *fakeUI) Select(_ string, options []string) (string, bool, error) {
	u.offered = options
	if u.cancel {
		return "", false, nil
	}
	return u.choice, true, nil
}

func (u *fakeUI) Info(msg string)  { printInfo(msg) }
func (u *fakeUI) Error(msg string) { printErrorMsg(msg) }

type result struct {
	stdout string
	stderr string
	err    error
}

func newTemplateServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// run executes the root command with fresh global state.
func run(t *testing.T, ui app.UI, args ...string) result {
	t.Helper()

	globalDir, globalConfig, globalSourceURL, globalEditor = ".", "", "", ""
	globalNoOpen, globalNoColor, globalQuiet, globalDebug = false, false, false, false
	updateDryRun, listJSON, versionShort, versionJSON = false, false, false, false

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	prevUI := newUI
	if ui != nil {
		newUI = func() app.UI { return ui }
	}
	t.Cleanup(func() {
		stdout, stderr = os.Stdout, os.Stderr
		newUI = prevUI
	})

	configPath := filepath.Join(t.TempDir(), "config.json")
	rootCmd.SetArgs(append([]string{"--config", configPath, "--no-color", "--no-open"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func readGitignore(t *testing.T, dir string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatal(err)
	}
	return string(data), true
}

func TestCreateCommand(t *testing.T) {
	dir := t.TempDir()

	res := run(t, nil, "create", "-C", dir)
	if res.err != nil {
		t.Fatalf("create error = %v, stderr = %s", res.err, res.stderr)
	}
	content, ok := readGitignore(t, dir)
	if !ok || content != app.DefaultHeader {
		t.Errorf(".gitignore = %q, %v", content, ok)
	}
}

func TestCreateCommand_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("keep\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res := run(t, nil, "create", "-C", dir)
	if !errors.Is(res.err, errReported) {
		t.Fatalf("create error = %v, want errReported", res.err)
	}
	if !strings.Contains(res.stdout, "already exists") {
		t.Errorf("stdout = %q, want already-exists notice", res.stdout)
	}
	if content, _ := readGitignore(t, dir); content != "keep\n" {
		t.Errorf(".gitignore changed to %q", content)
	}
}

func TestNewCommand_WithArgument(t *testing.T) {
	dir := t.TempDir()
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "new", "go", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("new error = %v, stderr = %s", res.err, res.stderr)
	}
	content, _ := readGitignore(t, dir)
	if content != app.DefaultHeader+"# Binaries\n*.exe\n*.test\n" {
		t.Errorf(".gitignore = %q", content)
	}
}

func TestNewCommand_Prompt(t *testing.T) {
	dir := t.TempDir()
	url := newTemplateServer(t, http.StatusOK, templateList)
	ui := &fakeUI{choice: "Node"}

	res := run(t, ui, "init", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("init error = %v", res.err)
	}
	if got := strings.Join(ui.offered, ","); got != "c,Go,Node" {
		t.Errorf("offered %s, want locale-sorted names", got)
	}
	if content, _ := readGitignore(t, dir); !strings.HasSuffix(content, "node_modules/\n*.log\n") {
		t.Errorf(".gitignore = %q", content)
	}
}

func TestUpdateCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules/\n"), 0644); err != nil {
		t.Fatal(err)
	}
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "update", "Node", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("update error = %v, stderr = %s", res.err, res.stderr)
	}
	content, _ := readGitignore(t, dir)
	if strings.Count(content, "node_modules/") != 1 {
		t.Errorf("node_modules/ duplicated: %q", content)
	}
	if !strings.Contains(content, "# Node (Added: ") || !strings.HasSuffix(content, "\n*.log\n") {
		t.Errorf(".gitignore = %q", content)
	}
	if !strings.Contains(res.stdout, "Node") {
		t.Errorf("stdout = %q, want template named", res.stdout)
	}

	// Same template again adds nothing.
	res = run(t, nil, "update", "Node", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("second update error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "No new rules") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if again, _ := readGitignore(t, dir); again != content {
		t.Error("second update changed the file")
	}
}

func TestUpdateCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	original := "*.exe\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(original), 0644); err != nil {
		t.Fatal(err)
	}
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "update", "Go", "--dry-run", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("update --dry-run error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "*.test") {
		t.Errorf("stdout = %q, want previewed rule", res.stdout)
	}
	if content, _ := readGitignore(t, dir); content != original {
		t.Errorf("dry run wrote the file: %q", content)
	}
}

func TestUpdateCommand_CatalogUnavailable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	url := newTemplateServer(t, http.StatusInternalServerError, "down")
	ui := &fakeUI{cancel: true}

	res := run(t, ui, "update", "-C", dir, "--source-url", url)
	if res.err != nil {
		t.Fatalf("update error = %v, want silent no-op", res.err)
	}
	if len(ui.offered) != 0 {
		t.Errorf("offered %v, want nothing", ui.offered)
	}
	if content, _ := readGitignore(t, dir); content != "a\n" {
		t.Errorf(".gitignore changed to %q", content)
	}
}

func TestUpdateCommand_NoFile(t *testing.T) {
	dir := t.TempDir()
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "update", "Node", "-C", dir, "--source-url", url)
	if !errors.Is(res.err, errReported) {
		t.Fatalf("update error = %v, want errReported", res.err)
	}
	if _, ok := readGitignore(t, dir); ok {
		t.Error("update created a .gitignore")
	}
}

func TestListCommand(t *testing.T) {
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "list", "--source-url", url)
	if res.err != nil {
		t.Fatalf("list error = %v", res.err)
	}
	if res.stdout != "c\nGo\nNode\n" {
		t.Errorf("list output = %q", res.stdout)
	}

	res = run(t, nil, "list", "--json", "--source-url", url)
	if res.err != nil {
		t.Fatalf("list --json error = %v", res.err)
	}
	if !strings.Contains(res.stdout, `"Go"`) {
		t.Errorf("list --json output = %q", res.stdout)
	}
}

func TestShowCommand(t *testing.T) {
	url := newTemplateServer(t, http.StatusOK, templateList)

	res := run(t, nil, "show", "Node", "--source-url", url)
	if res.err != nil {
		t.Fatalf("show error = %v", res.err)
	}
	if res.stdout != "node_modules/\n*.log\n" {
		t.Errorf("show output = %q", res.stdout)
	}

	res = run(t, nil, "show", "Cobol", "--source-url", url)
	if res.err == nil {
		t.Error("show of unknown template should fail")
	}
}

func TestInvalidSourceURL(t *testing.T) {
	res := run(t, nil, "list", "--source-url", "ftp://example.com/list")
	if res.err == nil || !strings.Contains(res.err.Error(), "source.url") {
		t.Errorf("error = %v, want source.url validation failure", res.err)
	}
}

func TestVersionCommand(t *testing.T) {
	prev := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = prev })

	res := run(t, nil, "version", "--short")
	if res.err != nil {
		t.Fatalf("version error = %v", res.err)
	}
	if res.stdout != "1.2.3\n" {
		t.Errorf("version --short = %q", res.stdout)
	}
}

func TestTerminalUI_Select(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		askErr      error
		answer      string
		wantChoice  string
		wantOK      bool
		wantErr     error
	}{
		{name: "choice", interactive: true, answer: "Go", wantChoice: "Go", wantOK: true},
		{name: "interrupt cancels", interactive: true, askErr: terminal.InterruptErr},
		{name: "not a terminal", interactive: false, wantErr: errNotInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &terminalUI{
				interactive: tt.interactive,
				ask: func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
					if tt.askErr != nil {
						return tt.askErr
					}
					sel, ok := p.(*survey.Select)
					if !ok || len(sel.Options) != 2 {
						t.Errorf("prompt = %#v", p)
					}
					*(response.(*string)) = tt.answer
					return nil
				},
			}

			choice, ok, err := ui.Select("pick", []string{"Go", "Node"})
			if !errors.Is(err, tt.wantErr) && err != tt.wantErr {
				t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if choice != tt.wantChoice || ok != tt.wantOK {
				t.Errorf("Select() = %q, %v; want %q, %v", choice, ok, tt.wantChoice, tt.wantOK)
			}
		})
	}
}
