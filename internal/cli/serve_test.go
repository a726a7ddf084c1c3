package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/pipeline"
)

func testServer(t *testing.T, boardPath string) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(newServer(pipeline.NewRunner(nil, nil, logger), boardPath, logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServer_Routes(t *testing.T) {
	srv := testServer(t, "")

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/healthz", "text/plain; charset=utf-8", "ok"},
		{"/", "text/html; charset=utf-8", "<title>Deluge</title>"},
		{"/pinmap.svg", "image/svg+xml", `id="highlight"`},
		{"/pinmap.json", "application/json", `"modules"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestServer_NoHighlight(t *testing.T) {
	srv := testServer(t, "")
	_, body := get(t, srv.URL+"/pinmap.svg?highlight=0")
	if strings.Contains(body, `id="highlight"`) {
		t.Error("highlight=0 response still has the highlight group")
	}
}

func TestServer_JSON(t *testing.T) {
	srv := testServer(t, "")
	_, body := get(t, srv.URL+"/pinmap.json")
	var out struct {
		Modules []json.RawMessage `json:"modules"`
		Wires   []json.RawMessage `json:"wires"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Modules) != 17 || len(out.Wires) != 93 {
		t.Errorf("json = %d modules, %d wires", len(out.Modules), len(out.Wires))
	}
}

func TestServer_Errors(t *testing.T) {
	missing := testServer(t, filepath.Join(t.TempDir(), "missing.toml"))
	if resp, _ := get(t, missing.URL+"/pinmap.svg"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing board status = %d, want 404", resp.StatusCode)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	bad := strings.Replace(string(mustExport(t)), `package_pins = 176`, `package_pins = 177`, 1)
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	faulty := testServer(t, path)
	resp, body := get(t, faulty.URL+"/pinmap.svg")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("faulty board status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, "missing definition for physical pin 177") {
		t.Errorf("body = %q", body)
	}

	if resp, _ := get(t, faulty.URL+"/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", resp.StatusCode)
	}
}

func mustExport(t *testing.T) []byte {
	t.Helper()
	data, err := exportBoard("")
	if err != nil {
		t.Fatal(err)
	}
	return data
}
