package cfgx

import (
	"errors"
	"fmt"
	"testing"
)

type sampleConfig struct {
	Name  string         `mapstructure:"name"`
	Count int            `mapstructure:"count"`
	Ratio *float64       `mapstructure:"ratio"`
	Rest  map[string]any `mapstructure:",remain"`
}

func TestBuildNoOptions(t *testing.T) {
	runTestCases(t, []testCase{
		{
			name: "value target",
			run: func(t *testing.T) {
				input := map[string]any{
					"name":  "alpha",
					"count": 3,
				}
				cfg, err := Build[sampleConfig](input)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.Name != "alpha" || cfg.Count != 3 {
					t.Fatalf("unexpected result: %#v", cfg)
				}
				if cfg.Ratio != nil {
					t.Fatalf("expected absent ratio to stay nil, got %v", *cfg.Ratio)
				}
			},
		},
		{
			name: "pointer target",
			run: func(t *testing.T) {
				input := map[string]any{
					"name":  "beta",
					"count": 9,
				}
				cfg, err := Build[*sampleConfig](input)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg == nil {
					t.Fatalf("expected non-nil pointer result")
				}
				if cfg.Name != "beta" || cfg.Count != 9 {
					t.Fatalf("unexpected result: %#v", cfg)
				}
			},
		},
		{
			name: "weak typing and remain",
			run: func(t *testing.T) {
				input := map[string]any{
					"count": "7",
					"ratio": 1,
					"size":  "bogus",
				}
				cfg, err := Build[sampleConfig](input)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.Count != 7 || cfg.Ratio == nil || *cfg.Ratio != 1 {
					t.Fatalf("unexpected result: %#v", cfg)
				}
				if cfg.Rest["size"] != "bogus" {
					t.Fatalf("expected unknown key in remain map, got %#v", cfg.Rest)
				}
			},
		},
		{
			name: "strict typing",
			run: func(t *testing.T) {
				_, err := Build[sampleConfig](map[string]any{"count": "7"}, WithWeakTyping[sampleConfig](false))
				if !errors.Is(err, ErrDecode) {
					t.Fatalf("expected ErrDecode, got %v", err)
				}
			},
		},
	})
}

func TestBuildStagesRunInOrder(t *testing.T) {
	var order []string
	stage := func(name string) Preprocessor {
		return MapStage(func(m map[string]any) (map[string]any, error) {
			order = append(order, name)
			m["name"] = name
			return m, nil
		})
	}

	cfg, err := Build[sampleConfig](map[string]any{},
		WithStage[sampleConfig]("first", stage("first")),
		WithStage[sampleConfig]("second", stage("second")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "second" {
		t.Fatalf("expected last stage to win, got %q", cfg.Name)
	}
	if fmt.Sprint(order) != "[first second]" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestMapStageDoesNotMutateInput(t *testing.T) {
	input := map[string]any{"name": "original"}
	_, err := Build[sampleConfig](input, WithStage[sampleConfig]("mutate", MapStage(func(m map[string]any) (map[string]any, error) {
		m["name"] = "changed"
		return m, nil
	})))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input["name"] != "original" {
		t.Fatalf("input was mutated: %#v", input)
	}
}

func TestMapStageRejectsNonMap(t *testing.T) {
	_, err := Build[sampleConfig]([]string{"bad"}, WithStage[sampleConfig]("identity", MapStage(func(m map[string]any) (map[string]any, error) {
		return m, nil
	})))
	if !errors.Is(err, ErrPreprocess) {
		t.Fatalf("expected ErrPreprocess, got %v", err)
	}
}

func TestBuildPreprocessorError(t *testing.T) {
	_, err := Build[sampleConfig](map[string]any{}, WithStage[sampleConfig]("explode", func(any) (any, error) {
		return nil, errors.New("boom")
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrPreprocess) {
		t.Fatalf("expected ErrPreprocess, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %T", err)
	}
	if stageErr.Meta["preprocessor_index"] != 0 || stageErr.Meta["preprocessor"] != "explode" {
		t.Fatalf("unexpected metadata: %+v", stageErr.Meta)
	}
}

func TestBuildDecodeError(t *testing.T) {
	_, err := Build[sampleConfig]([]string{"bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestBuildValidatorError(t *testing.T) {
	sentinel := errors.New("count required")
	_, err := Build[sampleConfig](map[string]any{}, WithValidator[sampleConfig](func(cfg *sampleConfig) error {
		if cfg.Count == 0 {
			return sentinel
		}
		return nil
	}))
	if !errors.Is(err, ErrValidate) {
		t.Fatalf("expected ErrValidate, got %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped validator error, got %v", err)
	}
}

func TestBuildDuplicateValidator(t *testing.T) {
	v := func(*sampleConfig) error { return nil }
	_, err := Build[sampleConfig](map[string]any{}, WithValidator[sampleConfig](v), WithValidator[sampleConfig](v))
	if !errors.Is(err, ErrOption) {
		t.Fatalf("expected ErrOption, got %v", err)
	}
}

type level string

func (l *level) UnmarshalText(text []byte) error {
	if string(text) != "low" && string(text) != "high" {
		return fmt.Errorf("bad level %q", text)
	}
	*l = level(text)
	return nil
}

type leveled struct {
	Level level `mapstructure:"level"`
}

func TestTextUnmarshalerHook(t *testing.T) {
	cfg, err := Build[leveled](map[string]any{"level": "high"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Level != "high" {
		t.Fatalf("unexpected level %q", cfg.Level)
	}

	if _, err := Build[leveled](map[string]any{"level": "mid"}); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestMatchName(t *testing.T) {
	input := map[string]any{"Count": "abc", "name": "gamma"}

	if _, err := Build[sampleConfig](input); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected folded key to reach the typed field and fail, got %v", err)
	}

	cfg, err := Build[sampleConfig](input, WithMatchName[sampleConfig](ExactMatch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Count != 0 || cfg.Name != "gamma" {
		t.Fatalf("unexpected result: %#v", cfg)
	}
	if cfg.Rest["Count"] != "abc" {
		t.Fatalf("expected differently cased key in remain map, got %#v", cfg.Rest)
	}
}

func TestCustomTagName(t *testing.T) {
	type tagged struct {
		Name string `koanf:"label"`
	}
	cfg, err := Build[tagged](map[string]any{"label": "x"}, WithTagName[tagged]("koanf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "x" {
		t.Fatalf("unexpected name %q", cfg.Name)
	}
}

func ExampleBuild_minimal() {
	type Config struct {
		Addr string `mapstructure:"addr"`
		Port int    `mapstructure:"port"`
	}

	cfg, err := Build[Config](map[string]any{
		"addr": "localhost",
		"port": 8080,
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s:%d\n", cfg.Addr, cfg.Port)
	// Output: localhost:8080
}
