package solvers

import (
	"strings"

	"github.com/goliatone/go-lasercut/logger"
	opts "github.com/goliatone/go-options"
	"github.com/knadh/koanf/v2"
)

const (
	defaultExpressionStart = "{{"
	defaultExpressionEnd   = "}}"
)

// EvalErrorHandler handles a failed evaluation. Return true to mark the
// error as handled.
type EvalErrorHandler func(key string, expr string, err error, cfg *koanf.Koanf) bool

type expression struct {
	delimiters *delimiters
	evaluator  opts.Evaluator
	onError    EvalErrorHandler
}

// NewExpressionSolver evaluates values wholly wrapped by the delimiters,
// e.g. depth: "{{ width / 2 }}". Other options are visible by key.
func NewExpressionSolver(start, end string) ConfigSolver {
	return NewExpressionSolverWithEvaluator(start, end, nil, nil)
}

func NewExpressionSolverWithEvaluator(start, end string, eval opts.Evaluator, onErr EvalErrorHandler) ConfigSolver {
	if eval == nil {
		eval = opts.NewExprEvaluator()
	}
	if onErr == nil {
		onErr = OnEvalLeaveUnchanged()
	}
	if start == "" {
		start = defaultExpressionStart
	}
	if end == "" {
		end = defaultExpressionEnd
	}

	return &expression{
		delimiters: &delimiters{Start: start, End: end},
		evaluator:  eval,
		onError:    onErr,
	}
}

func (s expression) Solve(config *koanf.Koanf) *koanf.Koanf {
	eachString(config, func(key, val string) {
		expr, ok := s.fullMatch(val)
		if !ok {
			return
		}

		expr = strings.TrimSpace(expr)
		result, err := s.evaluator.Evaluate(opts.RuleContext{Snapshot: config.Raw()}, expr)
		if err != nil {
			s.onError(key, expr, err, config)
			return
		}
		config.Set(key, result)
	})
	return config
}

func (s expression) fullMatch(input string) (string, bool) {
	if !strings.HasPrefix(input, s.delimiters.Start) || !strings.HasSuffix(input, s.delimiters.End) {
		return "", false
	}
	start := len(s.delimiters.Start)
	end := len(input) - len(s.delimiters.End)
	if end < start {
		return "", false
	}
	return input[start:end], true
}

// OnEvalLog logs the failure and keeps the original value.
func OnEvalLog(l logger.Logger) EvalErrorHandler {
	if l == nil {
		l = logger.Nop()
	}
	return func(key string, expr string, err error, _ *koanf.Koanf) bool {
		l.Warn("expression evaluation failed", "key", key, "expr", expr, "error", err)
		return true
	}
}

// OnEvalLeaveUnchanged keeps the original value.
func OnEvalLeaveUnchanged() EvalErrorHandler {
	return func(_ string, _ string, _ error, _ *koanf.Koanf) bool {
		return true
	}
}

// OnEvalRemove deletes the key so that a default can apply.
func OnEvalRemove() EvalErrorHandler {
	return func(key string, _ string, _ error, cfg *koanf.Koanf) bool {
		if cfg != nil {
			cfg.Delete(key)
		}
		return true
	}
}
