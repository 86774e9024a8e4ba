package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/touch"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	// Install a plugin that echoes the request it receives into a file,
	// so the test can observe that the bound action really ran.
	pluginDir := filepath.Join(tmpDir, "plugins")
	outFile := filepath.Join(tmpDir, "plugin-out.json")
	installRecorderPlugin(t, pluginDir, outFile)

	application := app.New(app.Config{
		Store:     s,
		PluginDir: pluginDir,
	})
	defer application.Close()

	if err := application.DiscoverPlugins(); err != nil {
		t.Fatalf("DiscoverPlugins() error = %v", err)
	}

	srv := server.New(server.Config{
		Store:   s,
		Surface: application.Surface(),
	})
	application.Subscribe(srv.Events().Publish)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateBinding", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/bindings",
			"application/json",
			strings.NewReader(`{"gesture_type": "TAP", "plugin_name": "recorder", "action_name": "record"}`),
		)
		if err != nil {
			t.Fatalf("create binding error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")

	events, _, err := websocket.DefaultDialer.Dial(wsURL+"/api/events", nil)
	if err != nil {
		t.Fatalf("failed to connect to events endpoint: %v", err)
	}
	defer events.Close()

	input, _, err := websocket.DefaultDialer.Dial(wsURL+"/api/input", nil)
	if err != nil {
		t.Fatalf("failed to connect to input endpoint: %v", err)
	}
	defer input.Close()

	t.Run("RecognizeTap", func(t *testing.T) {
		for _, ev := range touch.TapSequence(120, 80, 1000) {
			if err := input.WriteJSON(ev); err != nil {
				t.Fatalf("failed to send input event: %v", err)
			}
		}

		events.SetReadDeadline(time.Now().Add(2 * time.Second))
		var g touch.GestureEvent
		if err := events.ReadJSON(&g); err != nil {
			t.Fatalf("failed to read broadcast gesture: %v", err)
		}

		if g.Type != touch.TypeTap {
			t.Fatalf("expected TAP broadcast, got %s", g.Type)
		}
	})

	t.Run("GestureIsLogged", func(t *testing.T) {
		records, err := s.Events().ListRecent(10)
		if err != nil {
			t.Fatalf("ListRecent() error = %v", err)
		}
		if len(records) != 1 || records[0].GestureType != "TAP" {
			t.Fatalf("expected one logged TAP event, got %+v", records)
		}
	})

	t.Run("BoundPluginRan", func(t *testing.T) {
		// Plugin execution is asynchronous; poll for its output file.
		deadline := time.Now().Add(2 * time.Second)
		var data []byte
		for time.Now().Before(deadline) {
			var err error
			data, err = os.ReadFile(outFile)
			if err == nil && len(data) > 0 {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		if len(data) == 0 {
			t.Fatal("plugin output file was never written")
		}

		var recorded struct {
			Gesture string `json:"gesture"`
			Action  string `json:"action"`
		}
		if err := json.Unmarshal(data, &recorded); err != nil {
			t.Fatalf("failed to parse plugin output: %v", err)
		}
		if recorded.Gesture != "TAP" || recorded.Action != "record" {
			t.Errorf("unexpected recorded request: %+v", recorded)
		}
	})

	t.Run("ToggleDisablesRecognition", func(t *testing.T) {
		application.SetEnabled(false)

		for _, ev := range touch.TapSequence(100, 100, 10000) {
			if err := input.WriteJSON(ev); err != nil {
				t.Fatalf("failed to send input event: %v", err)
			}
		}

		events.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		var g touch.GestureEvent
		if err := events.ReadJSON(&g); err == nil {
			t.Fatalf("expected no broadcast while disabled, got %s", g.Type)
		}
	})
}

// installRecorderPlugin writes a shell-script plugin that copies its stdin
// to outFile and reports success.
func installRecorderPlugin(t *testing.T, pluginDir, outFile string) {
	t.Helper()

	dir := filepath.Join(pluginDir, "recorder")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	manifest := `{"name": "recorder", "version": "1.0.0", "executable": "recorder.sh", "actions": ["record"]}`
	if err := os.WriteFile(filepath.Join(dir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	script := "#!/bin/sh\ncat > " + outFile + "\necho '{\"success\":true}'\n"
	if err := os.WriteFile(filepath.Join(dir, "recorder.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write plugin script: %v", err)
	}
}
