package sdk

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func dbPathJSON(t *testing.T) string {
	return strings.ReplaceAll(filepath.Join(t.TempDir(), "sdk.db"), "\\", "/")
}

// TestNew tests the New function with various configurations
func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		missing     bool
		expectError bool
	}{
		{
			name: "valid config",
			content: `{
				"store": {"db_path": "` + dbPathJSON(t) + `"},
				"api": {"host": "localhost", "port": 8086}
			}`,
		},
		{
			name: "seeded config",
			content: `{
				"store": {"db_path": "` + dbPathJSON(t) + `"},
				"seed": {"enabled": true, "seed": 3, "folders": 1, "max_files": 2}
			}`,
		},
		{
			name:        "missing config",
			missing:     true,
			expectError: true,
		},
		{
			name:        "invalid config",
			content:     `{"api": {"port": -1}}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}

			p, err := New(path)
			if tt.expectError {
				if err == nil {
					p.Close()
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer p.Close()

			if len(p.Standards()) != 6 {
				t.Errorf("Expected 6 standards, got %d", len(p.Standards()))
			}
		})
	}
}

// TestPortalOperations tests the SDK wrappers end to end
func TestPortalOperations(t *testing.T) {
	p, err := New(writeConfig(t, `{"store": {"db_path": "`+dbPathJSON(t)+`"}}`))
	if err != nil {
		t.Fatalf("Failed to create portal: %v", err)
	}
	defer p.Close()

	scope := Scope{Standard: "10th", Board: "ICSE"}
	file := FileEntry{Name: "notes.pdf", Size: FormatSize(3 * 1024 * 1024), Date: "10/15/2026", Type: KindDocument}

	if err := p.Upload(scope, KindDocument, "Optics", Attached(file)); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if err := p.Upload(scope, KindDocument, "", LinkOnly("")); err != ErrFolderNameRequired {
		t.Errorf("Expected ErrFolderNameRequired, got %v", err)
	}

	folders, err := p.Resources(scope, KindDocument)
	if err != nil {
		t.Fatalf("Resources failed: %v", err)
	}
	if len(folders) != 1 || folders[0].Files[0].Size != "3.00 MB" {
		t.Errorf("Unexpected resources: %+v", folders)
	}

	info, err := p.GetTableInfo()
	if err != nil || len(info) != 2 {
		t.Errorf("Unexpected table info: %v, %v", info, err)
	}

	data, err := fs.ReadFile(p.AsFS(), "10th/ICSE/Optics/notes.pdf")
	if err != nil {
		t.Errorf("Failed to read through AsFS: %v", err)
	} else if !strings.Contains(string(data), "size: 3.00 MB") {
		t.Errorf("Unexpected placeholder content: %s", data)
	}

	if err := p.DeleteFolder(scope, KindDocument, "Optics"); err != nil {
		t.Errorf("DeleteFolder failed: %v", err)
	}
	if err := p.Reset(); err != nil {
		t.Errorf("Reset failed: %v", err)
	}

	if p.GetConfig().Paths.ResourceBase != "/NRJT-EDU-PLATFROM" {
		t.Errorf("Unexpected resource base %q", p.GetConfig().Paths.ResourceBase)
	}
}

// TestHandler tests that the SDK exposes the HTTP surface
func TestHandler(t *testing.T) {
	p, err := New(writeConfig(t, `{"store": {"db_path": "`+dbPathJSON(t)+`"}}`))
	if err != nil {
		t.Fatalf("Failed to create portal: %v", err)
	}
	defer p.Close()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/standards", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Errorf("Unexpected response: %s", rec.Body.String())
	}

	if got := p.NewServer().Addr(); got != "localhost:8086" {
		t.Errorf("Expected default address, got %s", got)
	}
}
