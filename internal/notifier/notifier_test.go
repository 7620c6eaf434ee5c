package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitual/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withSetup(t *testing.T) {
	t.Helper()
	resetForTest()
	if err := Setup(DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(resetForTest)
}

func withProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, constants.NotifierLockfileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return tempDir, nil }

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != trayDir {
		t.Errorf("GetTrayAppConfigDir() = %s, want %s", dir, trayDir)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	settings := `{"settings": {"lockfile_dir": "/custom/tray"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}
	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/custom/tray" {
		t.Errorf("GetTrayAppConfigDir() = %s, want /custom/tray", dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	tests := []struct {
		name       string
		lockfile   string
		executable string
		wantErr    string
	}{
		{"valid", "8080|1234|secret", "habitual-tray", ""},
		{"malformed", "8080|1234", "habitual-tray", "malformed"},
		{"bad port", "abc|1234|secret", "habitual-tray", "invalid port"},
		{"port out of range", "70000|1234|secret", "habitual-tray", "outside valid range"},
		{"bad pid", "8080|x|secret", "habitual-tray", "invalid process ID"},
		{"empty secret", "8080|1234| ", "habitual-tray", "secret"},
		{"process gone", "8080|1234|secret", "", "not running"},
		{"wrong process", "8080|1234|secret", "bash", "is not habitual-tray"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLockfile(t, dir, tt.lockfile)
			withProcess(t, tt.executable)

			port, secret, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if port != "8080" || secret != "secret" {
					t.Errorf("got port %q secret %q", port, secret)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "missing.lock")); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile error = %v, want %v", err, ErrTrayNotRunning)
	}
}

func TestCheckTray(t *testing.T) {
	dir := t.TempDir()
	if err := CheckTray(dir); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("CheckTray() without lockfile = %v, want %v", err, ErrTrayNotRunning)
	}

	writeLockfile(t, dir, "9000|77|secret")
	withProcess(t, "habitual-tray")
	if err := CheckTray(dir); err != nil {
		t.Errorf("CheckTray() = %v", err)
	}
}

func TestNotify(t *testing.T) {
	withSetup(t)
	withProcess(t, "habitual-tray")

	var got WebhookPayload
	var gotSecret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Habitual-Secret")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	port := server.URL[strings.LastIndex(server.URL, ":")+1:]
	dir := t.TempDir()
	writeLockfile(t, dir, fmt.Sprintf("%s|4321|s3cret", port))

	if err := New(dir).Notify(context.Background(), "Drink water", constants.ReminderBody); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q", gotSecret)
	}
	if got.Title != "Drink water" || got.Text != constants.ReminderBody {
		t.Errorf("payload = %+v", got)
	}
	if got.Channel != constants.DefaultChannelID || !got.Urgent || got.LightColor != "#22c55e" {
		t.Errorf("channel settings not forwarded: %+v", got)
	}
	if len(got.Vibration) != 4 || got.Vibration[1] != 250 {
		t.Errorf("vibration = %v", got.Vibration)
	}
}

func TestNotify_ServerError(t *testing.T) {
	withSetup(t)
	withProcess(t, "habitual-tray")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad secret", http.StatusUnauthorized)
	}))
	defer server.Close()

	port := server.URL[strings.LastIndex(server.URL, ":")+1:]
	dir := t.TempDir()
	writeLockfile(t, dir, port+"|1|secret")

	err := New(dir).Notify(context.Background(), "Read", "body")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Notify() error = %v, want status 401", err)
	}
}

func TestNotify_RequiresSetup(t *testing.T) {
	resetForTest()
	if err := New(t.TempDir()).Notify(context.Background(), "x", "y"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Notify() error = %v, want %v", err, ErrNotInitialized)
	}
}

func TestSetup(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	bad := DefaultConfig()
	bad.Channel.LightColor = "green"
	if err := Setup(bad); err == nil {
		t.Error("Setup() should reject a non-hex light color")
	}
	if Initialized() {
		t.Fatal("failed Setup() must not mark the notifier initialized")
	}

	if err := Setup(DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	other := DefaultConfig()
	other.Channel.Name = "Other"
	if err := Setup(other); err != nil {
		t.Fatal(err)
	}
	cfg, err := ActiveConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Channel.Name != constants.DefaultChannelName {
		t.Errorf("second Setup() replaced config: %q", cfg.Channel.Name)
	}
}
