// Package davtest runs an in-memory WebDAV server for transport and service
// tests. It serves golang.org/x/net/webdav behind a chi router with Basic-Auth
// and lets tests inject failing responses.
package davtest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/webdav"
)

// Default credentials and directory of a [Server].
const (
	DefaultUsername = "alice"
	DefaultPassword = "secret"
	DefaultDir      = "sessions"
)

func init() {
	for _, m := range []string{"PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE", "LOCK", "UNLOCK"} {
		chi.RegisterMethod(m)
	}
}

// Request is a request the server received.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

type fault struct {
	method    string
	suffix    string
	status    int
	remaining int
}

// Server is a WebDAV endpoint backed by an in-memory file system.
type Server struct {
	*httptest.Server

	Username string
	Password string
	Dir      string

	fs webdav.FileSystem

	mu       sync.Mutex
	faults   []*fault
	requests []Request
}

// Option customizes a [Server].
type Option func(*Server)

// WithCredentials sets the accepted Basic-Auth credentials.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.Username = username
		s.Password = password
	}
}

// WithDir sets the session directory name below the server root.
func WithDir(dir string) Option {
	return func(s *Server) {
		s.Dir = strings.Trim(dir, "/")
	}
}

// New starts a server. The session directory does not exist until a client
// creates it or a test seeds a file. Call Close when done.
func New(opts ...Option) *Server {
	s := &Server{
		Username: DefaultUsername,
		Password: DefaultPassword,
		Dir:      DefaultDir,
		fs:       webdav.NewMemFS(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dav := &webdav.Handler{
		FileSystem: s.fs,
		LockSystem: webdav.NewMemLS(),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.record)
	router.Use(middleware.BasicAuth("davtest", map[string]string{s.Username: s.Password}))
	router.Use(s.inject)
	router.Handle("/*", dav)

	s.Server = httptest.NewServer(router)
	return s
}

// BaseURL returns the session directory URL with a trailing slash.
func (s *Server) BaseURL() string {
	return s.Server.URL + "/" + s.Dir + "/"
}

// Fail makes the next times requests with method whose path ends with
// suffix answer status. An empty method or suffix matches any. times <= 0
// fails every matching request.
func (s *Server) Fail(method, suffix string, status, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, &fault{method: method, suffix: suffix, status: status, remaining: times})
}

// ClearFaults removes every injected failure.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = nil
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests returns how many received requests used method on a path
// ending with suffix.
func (s *Server) CountRequests(method, suffix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasSuffix(r.Path, suffix) {
			n++
		}
	}
	return n
}

// ReadFile returns the content of name inside the session directory.
func (s *Server) ReadFile(name string) ([]byte, error) {
	f, err := s.fs.OpenFile(context.Background(), s.filePath(name), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Exists reports whether name exists inside the session directory.
func (s *Server) Exists(name string) bool {
	_, err := s.fs.Stat(context.Background(), s.filePath(name))
	return err == nil
}

// DirExists reports whether the session directory exists.
func (s *Server) DirExists() bool {
	fi, err := s.fs.Stat(context.Background(), "/"+s.Dir)
	return err == nil && fi.IsDir()
}

// WriteFile stores data as name inside the session directory, creating the
// directory when needed.
func (s *Server) WriteFile(name string, data []byte) error {
	ctx := context.Background()
	if err := s.fs.Mkdir(ctx, "/"+s.Dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	f, err := s.fs.OpenFile(ctx, s.filePath(name), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *Server) filePath(name string) string {
	return path.Join("/", s.Dir, name)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.takeFault(r); ok {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) takeFault(r *http.Request) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.faults {
		if f.method != "" && f.method != r.Method {
			continue
		}
		if f.suffix != "" && !strings.HasSuffix(r.URL.Path, f.suffix) {
			continue
		}

		if f.remaining > 0 {
			f.remaining--
			if f.remaining == 0 {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
			}
		}
		return f.status, true
	}
	return 0, false
}
