package source

import (
	"context"
	goerrors "errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-lasercut/config"
	"github.com/goliatone/go-lasercut/koanf/solvers"
	"github.com/goliatone/go-lasercut/logger"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/copystructure"
)

var (
	DefaultDelimiter      = "."
	DefaultConfigFilepath = "lasercut.yaml"
	DefaultLoadTimeout    = 30 * time.Second
)

// Loader collects raw box options from its providers in priority order,
// resolves references between them and builds a config.Configuration.
type Loader struct {
	K            *koanf.Koanf
	providers    []Provider
	static       []Provider
	loaders      []ProviderBuilder
	validate     bool
	buildOptions []config.Option
	loadTimeout  time.Duration
	delimiter    string
	configPath   string
	solvers      []solvers.ConfigSolver
	solverPasses int
	transformers map[string][]StringTransformer
	logger       logger.Logger
}

// New returns a Loader with the default solvers and transformers. Options
// are applied in order; the first failing option aborts construction.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		delimiter:    DefaultDelimiter,
		loadTimeout:  DefaultLoadTimeout,
		configPath:   DefaultConfigFilepath,
		logger:       logger.NewDefaultLogger("lasercut.source"),
		solverPasses: 1,
		solvers: []solvers.ConfigSolver{
			solvers.NewVariablesSolver("${", "}"),
			solvers.NewURISolver("@", "://"),
			solvers.NewExpressionSolver("{{", "}}"),
		},
		transformers: DefaultTransformers(),
	}
	l.newConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Loader) newConfig() {
	l.K = koanf.NewWithConf(koanf.Conf{
		Delim: l.delimiter,
	})
}

func (l *Loader) WithProvider(factories ...ProviderBuilder) *Loader {
	for _, factory := range factories {
		if factory != nil {
			l.loaders = append(l.loaders, factory)
		}
	}
	return l
}

// WithValidation makes Load call Validate on the built record.
func (l *Loader) WithValidation(v bool) *Loader {
	l.validate = v
	return l
}

func (l *Loader) WithBuildOptions(opts ...config.Option) *Loader {
	l.buildOptions = append(l.buildOptions, opts...)
	return l
}

func (l *Loader) WithTimeout(timeout time.Duration) *Loader {
	l.loadTimeout = timeout
	return l
}

func (l *Loader) WithConfigPath(p string) *Loader {
	l.configPath = p
	return l
}

func (l *Loader) WithSolver(slvrs ...solvers.ConfigSolver) *Loader {
	l.solvers = append(l.solvers, slvrs...)
	return l
}

// WithSolvers replaces the solver list, allowing explicit ordering.
func (l *Loader) WithSolvers(slvrs ...solvers.ConfigSolver) *Loader {
	l.solvers = append([]solvers.ConfigSolver{}, slvrs...)
	return l
}

// WithSolverPasses sets the maximum number of solver passes (minimum 1).
func (l *Loader) WithSolverPasses(passes int) *Loader {
	if passes < 1 {
		passes = 1
	}
	l.solverPasses = passes
	return l
}

// WithTransformer appends string transformers for a top level option key.
func (l *Loader) WithTransformer(key string, fns ...StringTransformer) *Loader {
	for _, fn := range fns {
		if fn != nil {
			l.transformers[key] = append(l.transformers[key], fn)
		}
	}
	return l
}

// WithoutTransformers drops every registered transformer, including the defaults.
func (l *Loader) WithoutTransformers() *Loader {
	l.transformers = map[string][]StringTransformer{}
	return l
}

func (l *Loader) WithLogger(lgr logger.Logger) *Loader {
	if lgr != nil {
		l.logger = lgr
	}
	return l
}

// MustLoad panics when Load fails.
func (l *Loader) MustLoad(ctx context.Context) *config.Configuration {
	cfg, err := l.Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("Failed to load box configuration: %v", err))
	}
	return cfg
}

// Load runs every provider, the solvers and the transformers, then builds
// the record. Each call starts from an empty option tree.
func (l *Loader) Load(ctx context.Context) (*config.Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, l.loadTimeout)
	defer cancel()

	l.newConfig()

	if err := l.resolveProviders(); err != nil {
		return nil, err
	}

	for i, src := range l.providers {
		if err := src.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "invalid provider source type").
				WithTextCode("INVALID_PROVIDER_TYPE").
				WithMetadata(map[string]any{
					"source_type":    string(src.Type()),
					"provider_index": i,
				})
		}
	}

	sort.SliceStable(l.providers, func(i, j int) bool {
		return l.providers[i].Priority() < l.providers[j].Priority()
	})

	for i, src := range l.providers {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "loading box options interrupted").
				WithTextCode("CONFIG_LOAD_CANCELLED").
				WithMetadata(map[string]any{
					"source_index": i,
				})
		}
		l.logger.Debug("loading source", "source_type", src.Type(), "priority", src.Priority())
		if err := src.Load(ctx, l.K); err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load box options from source").
				WithTextCode("CONFIG_LOAD_FAILED").
				WithMetadata(map[string]any{
					"source_type":   string(src.Type()),
					"source_index":  i,
					"total_sources": len(l.providers),
				})
		}
	}

	l.runSolvers()

	raw, err := l.applyTransformers(l.K.Raw())
	if err != nil {
		return nil, err
	}

	cfg, err := config.Build(raw, l.buildOptions...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to build box configuration").
			WithTextCode("CONFIG_BUILD_FAILED").
			WithMetadata(map[string]any{
				"keys": l.K.Keys(),
			})
	}

	if l.validate {
		if err := cfg.Validate(); err != nil {
			meta := map[string]any{}
			var optErr *config.OptionError
			if goerrors.As(err, &optErr) {
				meta["fields"] = optErr.Fields
			}
			return nil, errors.Wrap(err, errors.CategoryValidation, "box configuration validation failed").
				WithTextCode("CONFIG_VALIDATION_FAILED").
				WithMetadata(meta)
		}
	}

	return cfg, nil
}

func (l *Loader) resolveProviders() error {
	l.providers = append([]Provider{}, l.static...)
	if len(l.loaders) > 0 {
		for i, factory := range l.loaders {
			provider, err := factory(l)
			if err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to create provider").
					WithTextCode("PROVIDER_CREATION_FAILED").
					WithMetadata(map[string]any{
						"factory_index":   i,
						"total_factories": len(l.loaders),
					})
			}
			l.providers = append(l.providers, provider)
		}
	}

	if len(l.providers) == 0 && l.configPath != "" {
		l.logger.Debug("no providers specified, loading default file provider", "filepath", l.configPath)
		p, err := OptionalProvider(FileProvider(l.configPath))(l)
		if err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to create default file provider").
				WithTextCode("DEFAULT_PROVIDER_FAILED").
				WithMetadata(map[string]any{
					"config_path": l.configPath,
				})
		}
		l.providers = append(l.providers, p)
	}
	return nil
}

func (l *Loader) runSolvers() {
	if len(l.solvers) == 0 {
		return
	}
	for pass := 0; pass < l.solverPasses; pass++ {
		before, ok := snapshotConfig(l.K)
		for _, solver := range l.solvers {
			solver.Solve(l.K)
		}
		if !ok {
			continue
		}
		if reflect.DeepEqual(before, l.K.Raw()) {
			l.logger.Debug("solvers settled", "pass", pass+1)
			break
		}
	}
}

func snapshotConfig(k *koanf.Koanf) (any, bool) {
	if k == nil {
		return nil, false
	}
	raw := k.Raw()
	cloned, err := copystructure.Copy(raw)
	if err != nil {
		return raw, false
	}
	return cloned, true
}
