package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/f4ah6o/webserve-go/internal/config"
	"github.com/f4ah6o/webserve-go/internal/mimetype"
)

func startServer(t *testing.T, root string) *Server {
	t.Helper()
	captureLog(t)

	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.Root = root

	srv, err := New(cfg, mimetype.NewTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
		if err := <-done; err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	})
	return srv
}

func TestServerEndToEnd(t *testing.T) {
	srv := startServer(t, makeSite(t))

	if !strings.HasPrefix(srv.URL(), "http://127.0.0.1:") || !strings.HasSuffix(srv.URL(), "/") {
		t.Fatalf("URL() = %q", srv.URL())
	}

	resp, err := http.Get(srv.URL() + "app.wasm")
	if err != nil {
		t.Fatalf("GET app.wasm: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/wasm" {
		t.Errorf("Content-Type = %q, want %q", got, "application/wasm")
	}
	if string(body) != "\x00asm\x01\x00\x00\x00" {
		t.Errorf("body = %q", body)
	}

	resp, err = http.Get(srv.URL() + "missing.txt")
	if err != nil {
		t.Fatalf("GET missing.txt: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing.txt status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestServerURLWildcard(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.Root = t.TempDir()

	srv, err := New(cfg, mimetype.NewTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer srv.Shutdown(context.Background())

	if got := srv.URL(); !strings.HasPrefix(got, "http://localhost:") {
		t.Errorf("URL() = %q, want localhost", got)
	}
}

func TestNewListenError(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:-1"
	cfg.Root = t.TempDir()

	if _, err := New(cfg, mimetype.NewTable()); err == nil {
		t.Error("New() should fail on an invalid address")
	}
}
