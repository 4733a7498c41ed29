package server

import "io/fs"

// ServerOption is a functional option for configuring a Server via New.
type ServerOption func(*server)

// WithAddr sets the listen address, e.g. ":9000".
//
// Parameters:
//   - addr: the TCP address to listen on
//
// Returns:
//   - ServerOption: option function to apply
func WithAddr(addr string) ServerOption {
	return func(s *server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithPublicDir sets the on-disk directory assets are served from.
func WithPublicDir(dir string) ServerOption {
	return func(s *server) {
		s.publicDir = dir
	}
}

// WithIndex sets the document served for paths that are not files.
func WithIndex(name string) ServerOption {
	return func(s *server) {
		if name != "" {
			s.index = name
		}
	}
}

// WithFS serves assets from fsys instead of the public directory.
//
// Parameters:
//   - fsys: the file system to serve
//
// Returns:
//   - ServerOption: option function to apply
func WithFS(fsys fs.FS) ServerOption {
	return func(s *server) {
		s.fsys = fsys
	}
}
