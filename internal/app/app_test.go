package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"daylog/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	vaultDir := filepath.Join(dir, "Personal")
	if err := os.MkdirAll(filepath.Join(vaultDir, "Daily Notes"), 0755); err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "daylog.db")
	cfg.VaultPath = vaultDir
	return cfg
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	if err := a.Store.Ping(context.Background()); err != nil {
		t.Errorf("Store.Ping() error = %v", err)
	}
	status := a.Journal.VaultStatus()
	if !status.Configured || status.Name != "Personal" {
		t.Errorf("VaultStatus() = %+v", status)
	}
}

func TestApp_Router(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	router := a.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/health status = %d, want 200", w.Code)
	}

	// No health provider is configured, so sync is a no-op.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/metrics/sync", nil))
	if w.Code != http.StatusOK {
		t.Errorf("POST /api/metrics/sync status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
