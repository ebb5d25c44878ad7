package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kredmint/bureauscrub/internal/config"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = dir
	return NewServer(cfg), dir
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
}

func TestListViews(t *testing.T) {
	srv, dir := newTestServer(t)

	// Only one view has been generated.
	if err := os.WriteFile(filepath.Join(dir, "overview.json"), []byte(`{"totalCustomers":3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, srv, "/api/v1/views")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success bool         `json:"success"`
		Data    []ViewStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 8 {
		t.Fatalf("views listed = %d, want 8", len(resp.Data))
	}

	for _, v := range resp.Data {
		wantAvailable := v.Name == "overview"
		if v.Available != wantAvailable {
			t.Errorf("view %s available = %v, want %v", v.Name, v.Available, wantAvailable)
		}
	}
}

func TestGetView(t *testing.T) {
	srv, dir := newTestServer(t)

	payload := `{"totalCustomers":42}`
	if err := os.WriteFile(filepath.Join(dir, "overview.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, srv, "/api/v1/views/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != payload {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGetViewUnknownName(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/api/v1/views/portfolio")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetViewNotGenerated(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/api/v1/views/risk")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("expected error envelope")
	}
}
