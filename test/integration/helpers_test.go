package integration

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tacogips/gitignore-assist/internal/catalog"
	"github.com/tacogips/gitignore-assist/internal/workspace"
)

// serveFixture starts a template list server backed by a fixture file and
// returns a source pointing at it.
func serveFixture(t *testing.T, fixtureName string) *catalog.HTTPSource {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("../fixtures", fixtureName))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	return catalog.NewHTTPSource(srv.URL, 5*time.Second)
}

// newWorkspace opens a non-interactive workspace over a fresh directory.
func newWorkspace(t *testing.T) *workspace.Dir {
	t.Helper()

	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open workspace: %v", err)
	}
	return ws
}

// writeGitignore seeds the workspace root with a .gitignore.
func writeGitignore(t *testing.T, ws *workspace.Dir, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(ws.Root(), ".gitignore"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .gitignore: %v", err)
	}
}

func readGitignore(t *testing.T, ws *workspace.Dir) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(ws.Root(), ".gitignore"))
	if err != nil {
		t.Fatalf("failed to read .gitignore: %v", err)
	}
	return string(data)
}

// recordingUI picks a fixed template and records the messages shown.
type recordingUI struct {
	mu     sync.Mutex
	choice string
	infos  []string
	errors []string
}

func (u *recordingUI) Select(message string, options []string) (string, bool, error) {
	if u.choice == "" {
		return "", false, nil
	}
	return u.choice, true, nil
}

func (u *recordingUI) Info(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.infos = append(u.infos, msg)
}

func (u *recordingUI) Error(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errors = append(u.errors, msg)
}
