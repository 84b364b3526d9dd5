package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/emit"
)

func TestNew_NilRegistry(t *testing.T) {
	if _, err := New[string](nil); !errors.Is(err, ErrNilRegistry) {
		t.Errorf("New(nil) error = %v, want ErrNilRegistry", err)
	}
}

func TestWatcher_WatchErrors(t *testing.T) {
	reg := emit.New[string, map[string]any]()
	w, err := New(reg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := w.Watch(filepath.Join(t.TempDir(), "missing.yaml"), "k"); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("Watch(missing) error = %v, want ErrPathNotExist", err)
	}

	path := writeFile(t, "settings.yaml", "a: 1\n")
	if err := w.Watch(path, "k"); err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}
	if err := w.Watch(path, "k"); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second Watch() error = %v, want ErrAlreadyWatching", err)
	}
	if !w.IsWatching(path) {
		t.Error("IsWatching() = false for watched path")
	}
	if got := w.WatchedPaths(); len(got) != 1 {
		t.Errorf("WatchedPaths() = %v, want one entry", got)
	}

	if err := w.Unwatch(path); err != nil {
		t.Errorf("Unwatch() failed: %v", err)
	}
	if err := w.Unwatch(path); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Unwatch() error = %v, want ErrNotWatching", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
	if err := w.Watch(path, "k"); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch() after Close error = %v, want ErrWatcherClosed", err)
	}
	if err := w.Unwatch(path); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Unwatch() after Close error = %v, want ErrWatcherClosed", err)
	}
}

func TestWatcher_DispatchOnWrite(t *testing.T) {
	reg := emit.New[string, map[string]any]()

	payloads := make(chan map[string]any, 8)
	reg.Subscribe("config:changed", func(payload map[string]any) {
		payloads <- payload
	})

	w, err := New(reg, WithSource("test"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Close()

	path := writeFile(t, "settings.yaml", "port: 8080\n")
	if err := w.Watch(path, "config:changed"); err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("port: 9090\nname: app\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	payload := waitPayload(t, payloads)

	if payload["path"] != path {
		t.Errorf("payload path = %v, want %v", payload["path"], path)
	}
	if payload["source"] != "test" {
		t.Errorf("payload source = %v, want test", payload["source"])
	}
	if id, ok := payload["id"].(string); !ok || id == "" {
		t.Errorf("payload id = %v, want non-empty string", payload["id"])
	}
	if op, ok := payload["op"].(string); !ok || op == "" || op == "unknown" {
		t.Errorf("payload op = %v, want a change op", payload["op"])
	}

	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("payload data = %v, want decoded document", payload["data"])
	}
	if data["port"] != 9090 {
		t.Errorf("decoded port = %v, want 9090", data["port"])
	}
	if data["name"] != "app" {
		t.Errorf("decoded name = %v, want app", data["name"])
	}
}

func TestWatcher_WithoutDecode(t *testing.T) {
	reg := emit.New[string, map[string]any]()

	payloads := make(chan map[string]any, 8)
	reg.Subscribe("raw:changed", func(payload map[string]any) {
		payloads <- payload
	})

	w, err := New(reg, WithoutDecode())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Close()

	path := writeFile(t, "settings.yaml", "a: 1\n")
	if err := w.Watch(path, "raw:changed"); err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	payload := waitPayload(t, payloads)
	if _, ok := payload["data"]; ok {
		t.Errorf("payload carries data = %v with decoding disabled", payload["data"])
	}
}

func TestDecodeFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantKey string
		wantVal any
		wantNil bool
	}{
		{name: "yaml", file: "c.yaml", content: "host: local\n", wantKey: "host", wantVal: "local"},
		{name: "yml", file: "c.yml", content: "n: 3\n", wantKey: "n", wantVal: 3},
		{name: "toml", file: "c.toml", content: "host = \"local\"\n", wantKey: "host", wantVal: "local"},
		{name: "other extension", file: "c.txt", content: "plain text", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			doc, err := decodeFile(path)
			if err != nil {
				t.Fatalf("decodeFile() failed: %v", err)
			}
			if tt.wantNil {
				if doc != nil {
					t.Errorf("decodeFile() = %v, want nil", doc)
				}
				return
			}
			if doc[tt.wantKey] != tt.wantVal {
				t.Errorf("doc[%q] = %v, want %v", tt.wantKey, doc[tt.wantKey], tt.wantVal)
			}
		})
	}
}

func TestDecodeFile_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", ":\n  - {")
	if _, err := decodeFile(path); err == nil {
		t.Error("decodeFile() succeeded on malformed document")
	}
}

func TestOpString(t *testing.T) {
	// The zero op has no recognizable change bits.
	if got := opString(0); got != "unknown" {
		t.Errorf("opString(0) = %q, want unknown", got)
	}
}

// writeFile creates a file in a test temp dir and returns its cleaned
// absolute path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Abs() failed: %v", err)
	}
	return filepath.Clean(abs)
}

// waitPayload receives one dispatched payload or fails the test.
func waitPayload(t *testing.T, payloads <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case payload := <-payloads:
		return payload
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for dispatched payload")
		return nil
	}
}
