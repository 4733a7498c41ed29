// Package server serves the public asset directory over HTTP. Existing files are served as-is
// and every other GET falls back to the index document. The desktop globe reads its textures
// from disk or remote URLs directly and does not go through this server.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

//go:embed static/index.html
var embedded embed.FS

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":9000"

// Server is a static asset server with an index-document catch-all.
type Server interface {
	// Handler returns the HTTP handler serving the assets.
	Handler() http.Handler

	// Addr returns the configured listen address.
	Addr() string

	// ListenAndServe listens on Addr and serves until Shutdown.
	//
	// Returns:
	//   - error: the listen error, or nil after a clean Shutdown
	ListenAndServe() error

	// Serve serves on an existing listener until Shutdown.
	//
	// Parameters:
	//   - l: the listener to accept connections on
	//
	// Returns:
	//   - error: the serve error, or nil after a clean Shutdown
	Serve(l net.Listener) error

	// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
	//
	// Parameters:
	//   - ctx: bounds how long to wait
	//
	// Returns:
	//   - error: ctx's error if requests were still running when it expired
	Shutdown(ctx context.Context) error
}

type server struct {
	addr      string
	publicDir string
	index     string
	fsys      fs.FS

	httpServer *http.Server
}

var _ Server = &server{}

// New creates a Server. Defaults: listen on :9000, serve the public directory from disk, and
// use index.html as the index document. When the public directory is missing a built-in index
// page is served instead.
//
// Parameters:
//   - opts: functional options to configure the server
//
// Returns:
//   - Server: the configured server
func New(opts ...ServerOption) Server {
	s := &server{
		addr:      DefaultAddr,
		publicDir: "public",
		index:     "index.html",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = resolveFS(s.publicDir)
	}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// resolveFS returns the on-disk public directory, or the embedded fallback if it does not exist.
func resolveFS(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	log.Printf("[Server] public directory %q not found, serving built-in index", dir)
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(fmt.Sprintf("server: %v", err))
	}
	return sub
}

func (s *server) Handler() http.Handler {
	return http.HandlerFunc(s.serve)
}

func (s *server) Addr() string {
	return s.addr
}

func (s *server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.addr, err)
	}
	return s.Serve(l)
}

func (s *server) Serve(l net.Listener) error {
	log.Printf("[Server] server listening on port %s", port(l.Addr()))
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// serve writes the requested file when it exists and the index document otherwise.
func (s *server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" {
		if info, err := fs.Stat(s.fsys, name); err == nil && info.Mode().IsRegular() {
			s.serveFile(w, r, name, info)
			return
		}
	}
	s.serveIndex(w, r)
}

func (s *server) serveFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo) {
	f, err := s.fsys.Open(name)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
		return
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(data))
}

func (s *server) serveIndex(w http.ResponseWriter, r *http.Request) {
	info, err := fs.Stat(s.fsys, s.index)
	if err != nil || !info.Mode().IsRegular() {
		log.Printf("[Server] index document %q missing: %v", s.index, err)
		http.NotFound(w, r)
		return
	}
	s.serveFile(w, r, s.index, info)
}

func port(addr net.Addr) string {
	_, p, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return p
}
