package solvers

import (
	"encoding/base64"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/v2"
)

// ProtocolSolver resolves the part of a value after "<protocol>://".
type ProtocolSolver func(f fs.FS, uri string) (string, error)

type uris struct {
	fs         fs.FS
	delimiters *delimiters
	protocols  map[string]ProtocolSolver
}

// NewURISolver resolves values such as @file://box.size relative to the
// working directory.
func NewURISolver(s, e string) ConfigSolver {
	return NewURISolverWithFS(s, e, os.DirFS("."))
}

func NewURISolverWithFS(s, e string, f fs.FS) ConfigSolver {
	return &uris{
		fs: f,
		delimiters: &delimiters{
			Start: s,
			End:   e,
		},
		protocols: map[string]ProtocolSolver{
			"file":   SolveFileProtocol,
			"base64": SolveBase64DecodeProtocol,
		},
	}
}

// WithProtocol registers an extra protocol on a solver built by this package.
func WithProtocol(solver ConfigSolver, name string, fn ProtocolSolver) ConfigSolver {
	if u, ok := solver.(*uris); ok && fn != nil {
		u.protocols[name] = fn
	}
	return solver
}

func (s uris) Solve(config *koanf.Koanf) *koanf.Koanf {
	eachString(config, func(key, val string) {
		protocol, uri, ok := s.split(val)
		if !ok {
			return
		}
		fn, ok := s.protocols[protocol]
		if !ok {
			return
		}
		if content, err := fn(s.fs, uri); err == nil {
			config.Set(key, content)
		}
	})
	return config
}

func (s uris) split(val string) (protocol, uri string, ok bool) {
	if !strings.HasPrefix(val, s.delimiters.Start) {
		return "", "", false
	}
	rest := val[len(s.delimiters.Start):]
	end := strings.Index(rest, s.delimiters.End)
	if end <= 0 {
		return "", "", false
	}
	return rest[:end], rest[end+len(s.delimiters.End):], true
}

func SolveFileProtocol(f fs.FS, uri string) (string, error) {
	b, err := fs.ReadFile(f, uri)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func SolveBase64DecodeProtocol(_ fs.FS, uri string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(uri)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
