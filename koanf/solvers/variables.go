package solvers

import (
	"strings"

	"github.com/knadh/koanf/v2"
)

type variables struct {
	delimiters *delimiters
}

// NewVariablesSolver replaces references such as ${width} with the value
// stored at that key. A value made only of a reference takes the referenced
// value as is, otherwise references are interpolated as text.
func NewVariablesSolver(s, e string) ConfigSolver {
	return &variables{
		delimiters: &delimiters{
			Start: s,
			End:   e,
		},
	}
}

func (s variables) Solve(config *koanf.Koanf) *koanf.Koanf {
	eachString(config, func(key, val string) {
		if out, ok := s.resolve(val, config); ok {
			config.Set(key, out)
		}
	})
	return config
}

func (s variables) resolve(val string, config *koanf.Koanf) (any, bool) {
	var (
		b       strings.Builder
		changed bool
		rest    = val
	)

	for {
		start := strings.Index(rest, s.delimiters.Start)
		if start == -1 {
			break
		}
		end := strings.Index(rest[start+len(s.delimiters.Start):], s.delimiters.End)
		if end == -1 {
			break
		}
		end += start + len(s.delimiters.Start)

		path := rest[start+len(s.delimiters.Start) : end]
		next := end + len(s.delimiters.End)
		if path == "" || !config.Exists(path) {
			b.WriteString(rest[:next])
			rest = rest[next:]
			continue
		}

		value := config.Get(path)
		if start == 0 && next == len(val) && rest == val {
			return value, true
		}

		b.WriteString(rest[:start])
		b.WriteString(ToString(value))
		rest = rest[next:]
		changed = true
	}

	if !changed {
		return nil, false
	}
	b.WriteString(rest)
	return b.String(), true
}
