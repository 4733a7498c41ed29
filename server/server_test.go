package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

var assets = fstest.MapFS{
	"index.html":      {Data: []byte("<html>index</html>")},
	"images/moon.jpg": {Data: []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01, 0x02}},
	"js/app.js":       {Data: []byte("console.log('hi')")},
}

func get(t *testing.T, h http.Handler, method, target string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec.Result()
}

func TestServesFilesVerbatim(t *testing.T) {
	h := New(WithFS(assets)).Handler()

	tests := []struct {
		path        string
		want        []byte
		contentType string
	}{
		{"/images/moon.jpg", assets["images/moon.jpg"].Data, "image/jpeg"},
		{"/js/app.js", assets["js/app.js"].Data, "javascript"},
		{"/index.html", assets["index.html"].Data, "text/html"},
	}
	for _, tt := range tests {
		resp := get(t, h, http.MethodGet, tt.path)
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d", tt.path, resp.StatusCode)
		}
		if string(body) != string(tt.want) {
			t.Errorf("GET %s body = %q, want %q", tt.path, body, tt.want)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
			t.Errorf("GET %s content type = %q, want %q", tt.path, ct, tt.contentType)
		}
	}
}

func TestCatchAllServesIndex(t *testing.T) {
	h := New(WithFS(assets)).Handler()

	for _, p := range []string{"/", "/globe", "/deep/link/here", "/images", "/images/", "/../../etc/passwd", "/images/missing.png"} {
		resp := get(t, h, http.MethodGet, p)
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK || string(body) != "<html>index</html>" {
			t.Errorf("GET %s = %d %q, want the index document", p, resp.StatusCode, body)
		}
	}
}

func TestCustomIndex(t *testing.T) {
	fsys := fstest.MapFS{"app.html": {Data: []byte("app")}}
	resp := get(t, New(WithFS(fsys), WithIndex("app.html")).Handler(), http.MethodGet, "/somewhere")
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "app" {
		t.Errorf("body = %q, want custom index", body)
	}
}

func TestNonGetIsNotFound(t *testing.T) {
	resp := get(t, New(WithFS(assets)).Handler(), http.MethodPost, "/images/moon.jpg")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("POST status = %d, want 404", resp.StatusCode)
	}
}

func TestPublicDirFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("disk index"), 0o644); err != nil {
		t.Fatal(err)
	}
	resp := get(t, New(WithPublicDir(dir)).Handler(), http.MethodGet, "/anything")
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "disk index" {
		t.Errorf("body = %q, want the on-disk index", body)
	}
}

func TestMissingPublicDirUsesEmbeddedIndex(t *testing.T) {
	h := New(WithPublicDir(filepath.Join(t.TempDir(), "nope"))).Handler()
	resp := get(t, h, http.MethodGet, "/")
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "oxy-globe") {
		t.Errorf("GET / = %d %q, want the built-in index", resp.StatusCode, body)
	}
}

func TestServeAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(WithFS(assets))
	done := make(chan error, 1)
	go func() { done <- s.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/images/moon.jpg")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve returned %v after Shutdown, want nil", err)
	}
}

func TestListenFailsWhenPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	if err := New(WithFS(assets), WithAddr(l.Addr().String())).ListenAndServe(); err == nil {
		t.Fatal("ListenAndServe on a used port returned nil")
	}
}

func TestDefaults(t *testing.T) {
	s := New(WithFS(assets))
	if s.Addr() != ":9000" {
		t.Errorf("Addr() = %q, want :9000", s.Addr())
	}
}
