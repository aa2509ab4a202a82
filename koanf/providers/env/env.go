package env

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-lasercut/logger"
	"github.com/tidwall/sjson"
)

// Env is a koanf provider that turns prefixed environment variables into a
// JSON document. Numeric path segments become array indexes:
//
//	LASERCUT_LAYERS__0__NAME=outline
//	LASERCUT_LAYERS__1__NAME=engrave
type Env struct {
	prefix string
	delim  string
	cb     func(key string, value string) (string, any)
	logger logger.Logger
}

// Provider captures the variables starting with prefix (case sensitive, an
// empty prefix captures everything). cb maps a variable name to a key path
// using delim as separator; returning an empty key skips the variable.
func Provider(prefix, delim string, cb func(s string) string) *Env {
	e := &Env{
		prefix: prefix,
		delim:  delim,
		logger: logger.Nop(),
	}
	if cb != nil {
		e.cb = func(key string, value string) (string, any) {
			return cb(key), value
		}
	}
	return e
}

// ProviderWithValue is like Provider but cb may also rewrite the value.
func ProviderWithValue(prefix, delim string, cb func(key string, value string) (string, any)) *Env {
	return &Env{
		prefix: prefix,
		delim:  delim,
		cb:     cb,
		logger: logger.Nop(),
	}
}

func (e *Env) SetLogger(l logger.Logger) {
	if l != nil {
		e.logger = l
	}
}

// ReadBytes returns the captured variables as a JSON object.
func (e *Env) ReadBytes() ([]byte, error) {
	out := "{}"
	for _, kv := range e.environ() {
		key, value := kv[0], any(kv[1])
		if e.cb != nil {
			key, value = e.cb(kv[0], kv[1])
			if key == "" {
				continue
			}
		}

		path := strings.ReplaceAll(key, e.delim, ".")
		next, err := sjson.Set(out, path, value)
		if err != nil {
			e.logger.Error("env provider failed to set key", "key", kv[0], "error", err)
			return []byte{}, err
		}
		e.logger.Debug("env provider captured variable", "key", kv[0], "path", path)
		out = next
	}
	return []byte(out), nil
}

// Read is not supported, koanf falls back to ReadBytes with a parser.
func (e *Env) Read() (map[string]any, error) {
	return nil, errors.New("env provider does not support this method")
}

// environ returns sorted name/value pairs so that array indexes are set in order.
func (e *Env) environ() [][2]string {
	var pairs [][2]string
	for _, kv := range os.Environ() {
		if e.prefix != "" && !strings.HasPrefix(kv, e.prefix) {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		pairs = append(pairs, [2]string{parts[0], parts[1]})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return pairs
}
