package source

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-lasercut/config"
	"github.com/goliatone/go-lasercut/koanf/solvers"
	"github.com/goliatone/go-lasercut/logger"
)

type Option func(l *Loader) error

func WithValidation(v bool) Option {
	return func(l *Loader) error {
		l.validate = v
		return nil
	}
}

func WithConfigPath(p string) Option {
	return func(l *Loader) error {
		l.configPath = p
		return nil
	}
}

func WithoutDefaultConfigPath() Option {
	return WithConfigPath("")
}

func WithSolver(srcs ...solvers.ConfigSolver) Option {
	return func(l *Loader) error {
		l.solvers = append(l.solvers, srcs...)
		return nil
	}
}

func WithBuildOptions(opts ...config.Option) Option {
	return func(l *Loader) error {
		l.buildOptions = append(l.buildOptions, opts...)
		return nil
	}
}

// WithProviders builds the providers eagerly, failing New on the first error.
func WithProviders(factories ...ProviderBuilder) Option {
	return func(l *Loader) error {
		for i, factory := range factories {
			provider, err := factory(l)
			if err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to create provider").
					WithTextCode("PROVIDER_CREATION_FAILED").
					WithMetadata(map[string]any{
						"factory_index":   i,
						"total_factories": len(factories),
					})
			}
			l.static = append(l.static, provider)
		}
		return nil
	}
}

func WithLogger(lgr logger.Logger) Option {
	return func(l *Loader) error {
		if lgr != nil {
			l.logger = lgr
		}
		return nil
	}
}

// Options is a typed set of box options for StructProvider. Nil and empty
// fields are not loaded, so lower priority sources still apply.
type Options struct {
	Units      string   `koanf:"units,omitempty"`
	PageSize   string   `koanf:"page_size,omitempty"`
	PageLayout string   `koanf:"page_layout,omitempty"`
	Metadata   *bool    `koanf:"metadata,omitempty"`
	Size       string   `koanf:"size,omitempty"`
	Width      *float64 `koanf:"width,omitempty"`
	Height     *float64 `koanf:"height,omitempty"`
	Depth      *float64 `koanf:"depth,omitempty"`
	Thickness  *float64 `koanf:"thickness,omitempty"`
	Notch      *float64 `koanf:"notch,omitempty"`
	Margin     *float64 `koanf:"margin,omitempty"`
	Padding    *float64 `koanf:"padding,omitempty"`
	Stroke     *float64 `koanf:"stroke,omitempty"`
	File       string   `koanf:"file,omitempty"`
}

// Float returns a pointer to v, for filling Options literals.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for filling Options literals.
func Bool(v bool) *bool { return &v }
