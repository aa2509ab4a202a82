package source

import (
	"context"
	goerrors "errors"
	"os"
	"strings"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-lasercut/config"
	"github.com/goliatone/go-lasercut/koanf/providers/env"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type ProviderBuilder func(*Loader) (Provider, error)

type ProviderType string

// Provider loads raw box options into a koanf instance.
type Provider interface {
	Type() ProviderType
	Priority() int
	Validate() error
	Load(context.Context, *koanf.Koanf) error
}

type provider struct {
	order        int
	providerType ProviderType
	load         func(context.Context, *koanf.Koanf) error
}

func (p *provider) Priority() int {
	return p.order
}

func (p *provider) Type() ProviderType {
	return p.providerType
}

func (p *provider) Load(ctx context.Context, k *koanf.Koanf) error {
	return p.load(ctx, k)
}

func (p *provider) Validate() error {
	return p.providerType.validate()
}

const (
	ProviderTypeDefault   ProviderType = "default"
	ProviderTypeLocalFile ProviderType = "file"
	ProviderTypeEnv       ProviderType = "env"
	ProviderTypeFlag      ProviderType = "pflag"
	ProviderTypeStruct    ProviderType = "struct"
)

type Priority int

// loader.WithProvider(FileProvider("box.yaml", PriorityConfig.WithOffset(-5).Int()))
func (p Priority) WithOffset(offset int) Priority {
	return Priority(int(p) + offset)
}

func (p Priority) Int() int {
	return int(p)
}

var (
	PriorityDefaults Priority = 0
	PriorityStruct   Priority = 10
	PriorityConfig   Priority = 20
	PriorityEnv      Priority = 30
	PriorityFlags    Priority = 40
)

var (
	DefaultEnvPrefix    = "LASERCUT_"
	DefaultEnvDelimiter = "__"
)

func (s ProviderType) String() string {
	return string(s)
}

func (p ProviderType) validate() error {
	switch p {
	case ProviderTypeDefault, ProviderTypeLocalFile, ProviderTypeEnv, ProviderTypeFlag, ProviderTypeStruct:
		return nil
	default:
		return errors.New("invalid provider type", errors.CategoryValidation).
			WithTextCode("INVALID_PROVIDER_TYPE").
			WithMetadata(map[string]any{
				"provider_type": string(p),
				"valid_types": []string{
					string(ProviderTypeDefault),
					string(ProviderTypeLocalFile),
					string(ProviderTypeEnv),
					string(ProviderTypeFlag),
					string(ProviderTypeStruct),
				},
			})
	}
}

func mergeFunc() koanf.Option {
	return koanf.WithMergeFunc(MergeIgnoringNullValues)
}

// DefaultValuesProvider loads a flat option map. With no map it loads the
// general box defaults.
func DefaultValuesProvider(def map[string]any, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		if def == nil {
			def = config.Defaults()
		}
		kprovider := confmap.Provider(def, l.delimiter)

		return &provider{
			providerType: ProviderTypeDefault,
			order:        getOrder(PriorityDefaults, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				if err := k.Load(kprovider, nil); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load default values").
						WithTextCode("DEFAULT_VALUES_LOAD_FAILED").
						WithMetadata(map[string]any{
							"values_count": len(def),
						})
				}
				return nil
			},
		}, nil
	}
}

func FileProvider(filepath string, orders ...int) ProviderBuilder {
	filetype := inferConfigFiletype(filepath)

	return func(l *Loader) (Provider, error) {
		parser := filetype.Parser()
		kprovider := file.Provider(filepath)

		return &provider{
			providerType: ProviderTypeLocalFile,
			order:        getOrder(PriorityConfig, orders...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				l.logger.Debug("file provider", "filepath", filepath)
				if err := k.Load(kprovider, parser, mergeFunc()); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load box options from file").
						WithTextCode("FILE_LOAD_FAILED").
						WithMetadata(map[string]any{
							"filepath":  filepath,
							"file_type": string(filetype),
						})
				}
				return nil
			},
		}, nil
	}
}

// EnvProvider reads variables such as LASERCUT_PAGE_SIZE or LASERCUT_WIDTH.
// The delimiter separates nested keys, so single underscores stay in names.
func EnvProvider(prefix, delim string, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		return &provider{
			providerType: ProviderTypeEnv,
			order:        getOrder(PriorityEnv, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				kprov := env.Provider(prefix, ".", func(s string) string {
					return strings.Replace(strings.ToLower(
						strings.TrimPrefix(s, prefix)), strings.ToLower(delim), ".", -1)
				})
				kprov.SetLogger(l.logger)

				l.logger.Debug("env provider", "prefix", prefix)
				if err := k.Load(kprov, json.Parser(), mergeFunc()); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load environment variables").
						WithTextCode("ENV_LOAD_FAILED").
						WithMetadata(map[string]any{
							"prefix":    prefix,
							"delimiter": delim,
						})
				}
				return nil
			},
		}, nil
	}
}

// FlagsProvider loads the flags that were set on the command line. Flag
// names use dashes, option keys use underscores.
func FlagsProvider(flagset *pflag.FlagSet, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		if flagset == nil {
			return &provider{}, errors.New("flagset cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_FLAGSET")
		}

		return &provider{
			providerType: ProviderTypeFlag,
			order:        getOrder(PriorityFlags, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				l.logger.Debug("flags provider")
				prv := posflag.ProviderWithFlag(flagset, l.delimiter, k, func(f *pflag.Flag) (string, any) {
					key := flagKey(f.Name)
					if !f.Changed || key == "" {
						return "", nil
					}
					return key, posflag.FlagVal(flagset, f)
				})
				if err := k.Load(prv, nil); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load box options from flags").
						WithTextCode("FLAGS_LOAD_FAILED").
						WithMetadata(map[string]any{
							"delimiter": l.delimiter,
						})
				}
				return nil
			},
		}, nil
	}
}

// StructProvider loads an Options value. Nil fields are skipped.
func StructProvider(v *Options, order ...int) ProviderBuilder {
	if v == nil {
		return func(l *Loader) (Provider, error) {
			return &provider{}, errors.New("struct cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_STRUCT")
		}
	}

	return func(l *Loader) (Provider, error) {
		kprv := structs.Provider(v, "koanf")

		return &provider{
			providerType: ProviderTypeStruct,
			order:        getOrder(PriorityStruct, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				l.logger.Debug("struct provider")
				if err := k.Load(kprv, nil, mergeFunc()); err != nil {
					return errors.Wrap(err,
						errors.CategoryOperation,
						"failed to load box options from struct",
					).
						WithTextCode("STRUCT_LOAD_FAILED")
				}
				return nil
			},
		}, nil
	}
}

type ErrorFilter func(err error) bool

func DefaultErrorFilter(allowedErrors ...error) ErrorFilter {
	return func(err error) bool {
		if err == nil {
			return false
		}

		if len(allowedErrors) == 0 {
			// ignore absent files but surface other errors i.e. JSON parsing blow up
			return os.IsNotExist(err) || goerrors.Is(err, syscall.ENOENT)
		}

		for _, allowed := range allowedErrors {
			if goerrors.Is(err, allowed) {
				return true
			}
		}

		return false
	}
}

// OptionalProvider wraps a provider so that errors accepted by the filter
// are ignored.
func OptionalProvider(f ProviderBuilder, errIgnoreFuncs ...ErrorFilter) ProviderBuilder {
	errIgnore := DefaultErrorFilter()
	if len(errIgnoreFuncs) > 0 {
		errIgnore = errIgnoreFuncs[0]
	}

	return func(l *Loader) (Provider, error) {
		baseProvider, err := f(l)
		if err != nil {
			return &provider{}, err
		}

		return &provider{
			providerType: baseProvider.Type(),
			order:        baseProvider.Priority(),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				if err := baseProvider.Load(ctx, k); err != nil && !errIgnore(err) {
					return err
				}
				return nil
			},
		}, nil
	}
}

func getOrder(defaultOrder Priority, orders ...int) int {
	if len(orders) > 0 {
		return orders[0]
	}
	return int(defaultOrder)
}
