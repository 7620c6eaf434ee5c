package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// findBinary locates the habitual binary from HABITUAL_BIN_DIR or ../../bin.
func findBinary(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("HABITUAL_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "habitual")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/habitual ./cmd/habitual'", cliPath)
	}
	return cliPath
}

type env struct {
	t       *testing.T
	cliPath string
	vars    []string
	args    []string
}

func newEnv(t *testing.T) *env {
	cliPath := findBinary(t)
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var vars []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "HABITUAL_") {
			continue
		}
		vars = append(vars, e)
	}
	vars = append(vars,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HABITUAL_TRAY_DIR=%s", filepath.Join(tempDir, "tray")),
	)

	return &env{
		t:       t,
		cliPath: cliPath,
		vars:    vars,
		args: []string{
			"--config", filepath.Join(tempDir, "habitual", "habitual.db"),
			"--notify-db", filepath.Join(tempDir, "habitual", "notifications.db"),
		},
	}
}

func (e *env) run(args ...string) string {
	e.t.Helper()
	out, err := e.exec(args...)
	if err != nil {
		e.t.Fatalf("Command habitual %v failed: %v\nOutput: %s", args, err, out)
	}
	return out
}

func (e *env) exec(args ...string) (string, error) {
	cmd := exec.Command(e.cliPath, append(append([]string{}, e.args...), args...)...)
	cmd.Env = e.vars
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func expectContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	e := newEnv(t)

	// Commands before init fail with a hint.
	if out, err := e.exec("habit", "list"); err == nil {
		t.Fatalf("expected failure before init, got:\n%s", out)
	}

	e.run("init")

	// A reminder for the current minute so notify finds it due.
	now := time.Now()
	at := now.Format("3:04 PM")
	day := now.Format("Mon")
	t.Logf("Scheduling reminder for %s on %s", at, day)
	out := e.run("habit", "add", "Drink water", "--per-day", "2", "--remind-at", at, "--days", day)
	expectContains(t, out, "Added habit: Drink water")

	out = e.run("reminder", "list", "Drink water")
	expectContains(t, out, day+"  scheduled")

	expectContains(t, e.run("mark", "drink water"), "1/2")
	expectContains(t, e.run("mark", "drink water"), "complete")

	out = e.run("habit", "list")
	expectContains(t, out, "Drink water  2/2 today")

	out = e.run("calendar", "Drink water")
	expectContains(t, out, now.Format("January 2006"))

	out = e.run("notify", "--dry-run")
	if !strings.Contains(out, "[DryRun] Drink water") && time.Now().Minute() == now.Minute() {
		t.Fatalf("expected a due reminder, got:\n%s", out)
	}

	// Export, wipe, and import back.
	exportPath := filepath.Join(t.TempDir(), "habits.yaml")
	e.run("export", "-o", exportPath)
	e.run("habit", "delete", "Drink water", "--yes")
	expectContains(t, e.run("habit", "list"), "No habits found")

	out = e.run("import", exportPath)
	expectContains(t, out, "Imported 1 habit(s); 1 reminder notification(s) scheduled")
	expectContains(t, e.run("habit", "list"), "Drink water  2/2 today")

	out = e.run("doctor")
	expectContains(t, out, "✓ Scheduled reminders: OK")
}
