package solvers

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/knadh/koanf/v2"
)

// ConfigSolver rewrites values in place, typically references between options.
type ConfigSolver interface {
	Solve(config *koanf.Koanf) *koanf.Koanf
}

func ToString(v any) string {
	return fmt.Sprintf("%v", reflect.ValueOf(v))
}

type delimiters struct {
	Start string
	End   string
}

// eachString calls fn for every string leaf, in key order.
func eachString(k *koanf.Koanf, fn func(key, val string)) {
	if k == nil {
		return
	}
	all := k.All()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if s, ok := all[key].(string); ok {
			fn(key, s)
		}
	}
}
