package config

import (
	"fmt"

	"github.com/goliatone/go-lasercut/cfgx"
	"github.com/goliatone/go-lasercut/logger"
	"github.com/goliatone/go-lasercut/pagesize"
	"github.com/goliatone/go-lasercut/units"
	"github.com/mitchellh/copystructure"
)

// Configuration is the normalized description of one box plan.
// Absent numeric options and an absent file are nil.
type Configuration struct {
	Units      units.System `koanf:"units" json:"units" yaml:"units"`
	PageSize   string       `koanf:"page_size" json:"page_size" yaml:"page_size"`
	PageLayout string       `koanf:"page_layout" json:"page_layout" yaml:"page_layout"`
	Metadata   bool         `koanf:"metadata" json:"metadata" yaml:"metadata"`

	Width     *float64 `koanf:"width" json:"width,omitempty" yaml:"width,omitempty"`
	Height    *float64 `koanf:"height" json:"height,omitempty" yaml:"height,omitempty"`
	Depth     *float64 `koanf:"depth" json:"depth,omitempty" yaml:"depth,omitempty"`
	Thickness *float64 `koanf:"thickness" json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Notch     *float64 `koanf:"notch" json:"notch,omitempty" yaml:"notch,omitempty"`
	Margin    *float64 `koanf:"margin" json:"margin,omitempty" yaml:"margin,omitempty"`
	Padding   *float64 `koanf:"padding" json:"padding,omitempty" yaml:"padding,omitempty"`
	Stroke    *float64 `koanf:"stroke" json:"stroke,omitempty" yaml:"stroke,omitempty"`

	File *string `koanf:"file" json:"file,omitempty" yaml:"file,omitempty"`

	// Extra holds unrecognized options, including a size shorthand that did not parse.
	Extra map[string]any `koanf:",remain" json:"extra,omitempty" yaml:"extra,omitempty"`

	catalog pagesize.Catalog
	logger  logger.Logger
}

type buildOptions struct {
	logger        logger.Logger
	catalog       pagesize.Catalog
	strictNumbers bool
	validate      bool
}

// Option configures Build.
type Option func(*buildOptions)

// WithLogger sets the logger used for coercion warnings.
func WithLogger(l logger.Logger) Option {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCatalog replaces the page size catalog.
func WithCatalog(c pagesize.Catalog) Option {
	return func(o *buildOptions) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithStrictNumbers makes Build fail with ErrInvalidNumericValue instead of
// falling back to zero for numeric options that do not parse.
func WithStrictNumbers() Option {
	return func(o *buildOptions) {
		o.strictNumbers = true
	}
}

// WithValidation runs Validate as the last build stage.
func WithValidation() Option {
	return func(o *buildOptions) {
		o.validate = true
	}
}

// Build normalizes options into a Configuration. With the default options it
// only fails on internal errors; WithStrictNumbers and WithValidation add
// failure modes. Returned errors are *cfgx.StageError values, so errors.Is
// works against both the cfgx stage sentinels and the Err* values here.
func Build(options map[string]any, opts ...Option) (*Configuration, error) {
	o := &buildOptions{
		logger:  logger.NewDefaultLogger("lasercut"),
		catalog: pagesize.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	stages := []cfgx.Option[Configuration]{
		cfgx.WithTagName[Configuration]("koanf"),
		// option keys are case sensitive
		cfgx.WithMatchName[Configuration](cfgx.ExactMatch),
		// recognized keys are already typed by the stages
		cfgx.WithWeakTyping[Configuration](false),
		cfgx.WithStage[Configuration]("strip_nil", cfgx.MapStage(noErr(stripNil))),
		cfgx.WithStage[Configuration]("units", cfgx.MapStage(noErr(dropUnknownUnits))),
		cfgx.WithStage[Configuration]("scalars", cfgx.MapStage(coerceScalars(o.logger))),
		cfgx.WithStage[Configuration]("defaults", cfgx.MapStage(noErr(mergeGeneralDefaults))),
		cfgx.WithStage[Configuration]("size", cfgx.MapStage(noErr(expandSize))),
		cfgx.WithStage[Configuration]("floats", cfgx.MapStage(coerceFloats(o.logger, o.strictNumbers))),
		cfgx.WithStage[Configuration]("unit_defaults", cfgx.MapStage(noErr(mergeUnitDefaults))),
	}
	if o.validate {
		stages = append(stages, cfgx.WithValidator[Configuration](func(c *Configuration) error {
			return c.Validate()
		}))
	}

	cfg, err := cfgx.Build[Configuration](options, stages...)
	if err != nil {
		return nil, err
	}
	cfg.catalog = o.catalog
	cfg.logger = o.logger
	return &cfg, nil
}

// New is Build without options. It never fails: unknown units, an unparsable
// size and non numeric dimensions are tolerated rather than rejected.
func New(options map[string]any) *Configuration {
	cfg, err := Build(options)
	if err != nil {
		panic(fmt.Sprintf("lasercut: lenient build failed: %v", err))
	}
	return cfg
}

func noErr(fn func(map[string]any) map[string]any) func(map[string]any) (map[string]any, error) {
	return func(m map[string]any) (map[string]any, error) {
		return fn(m), nil
	}
}

type floatRef struct {
	name string
	ref  **float64
}

func (c *Configuration) floatRefs() []floatRef {
	return []floatRef{
		{KeyWidth, &c.Width},
		{KeyHeight, &c.Height},
		{KeyDepth, &c.Depth},
		{KeyThickness, &c.Thickness},
		{KeyNotch, &c.Notch},
		{KeyMargin, &c.Margin},
		{KeyPadding, &c.Padding},
		{KeyStroke, &c.Stroke},
	}
}

// Float returns a numeric option by key.
func (c *Configuration) Float(key string) (float64, bool) {
	for _, f := range c.floatRefs() {
		if f.name != key {
			continue
		}
		if *f.ref == nil {
			return 0, false
		}
		return **f.ref, true
	}
	return 0, false
}

// Has reports whether a recognized option is present.
func (c *Configuration) Has(key string) bool {
	if key == KeyFile {
		return c.File != nil
	}
	_, ok := c.Float(key)
	return ok
}

// FilePath returns the output path or "" when unset.
func (c *Configuration) FilePath() string {
	if c.File == nil {
		return ""
	}
	return *c.File
}

// FloatValue is a numeric option that is present on the record.
type FloatValue struct {
	Name  string
	Value float64
}

// Floats lists the numeric options that are set, in FloatFields order.
func (c *Configuration) Floats() []FloatValue {
	var out []FloatValue
	for _, f := range c.floatRefs() {
		if *f.ref != nil {
			out = append(out, FloatValue{Name: f.name, Value: **f.ref})
		}
	}
	return out
}

// Map returns the record as a flat option map. Absent options are left out
// and Extra keys are included as is, so Build(c.Map()) yields an equal record.
func (c *Configuration) Map() map[string]any {
	out := make(map[string]any, len(c.Extra)+12)
	for k, v := range c.Extra {
		out[k] = v
	}
	out[KeyUnits] = string(c.Units)
	out[KeyPageSize] = c.PageSize
	out[KeyPageLayout] = c.PageLayout
	out[KeyMetadata] = c.Metadata
	for _, f := range c.Floats() {
		out[f.Name] = f.Value
	}
	if c.File != nil {
		out[KeyFile] = *c.File
	}
	return out
}

// Clone returns a deep copy that shares the catalog and logger.
func (c *Configuration) Clone() *Configuration {
	var out Configuration
	if copied, err := copystructure.Copy(*c); err == nil {
		out = copied.(Configuration)
	} else {
		out = c.shallowClone()
	}
	out.catalog = c.catalog
	out.logger = c.logger
	return &out
}

func (c *Configuration) shallowClone() Configuration {
	out := *c
	for _, f := range out.floatRefs() {
		if *f.ref != nil {
			v := **f.ref
			*f.ref = &v
		}
	}
	if c.File != nil {
		file := *c.File
		out.File = &file
	}
	if c.Extra != nil {
		out.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (c *Configuration) pageCatalog() pagesize.Catalog {
	if c.catalog == nil {
		return pagesize.Default()
	}
	return c.catalog
}
