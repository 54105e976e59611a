// Package config loads dsviz settings from defaults, an optional
// dsviz.yaml, DSVIZ_* environment variables and command-line flags, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "dsviz.yaml"

// EnvPrefix prefixes environment overrides: DSVIZ_RENDER_FPS sets
// render.fps.
const EnvPrefix = "DSVIZ_"

// Config is the resolved dsviz configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Render RenderConfig `koanf:"render"`
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// RenderConfig controls frame output.
type RenderConfig struct {
	FPS            int     `koanf:"fps" validate:"min=1,max=240"`
	Format         string  `koanf:"format" validate:"oneof=svg png"`
	Out            string  `koanf:"out" validate:"required"`
	Width          float64 `koanf:"width" validate:"gt=0"`
	Height         float64 `koanf:"height" validate:"gt=0"`
	AllowUnderflow bool    `koanf:"allow_underflow"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "error"},
		Render: RenderConfig{
			FPS:    30,
			Format: "svg",
			Out:    "frames",
			Width:  480,
			Height: 140,
		},
	}
}

func defaultMap() map[string]any {
	def := Default()
	return map[string]any{
		"log.level":              def.Log.Level,
		"render.fps":             def.Render.FPS,
		"render.format":          def.Render.Format,
		"render.out":             def.Render.Out,
		"render.width":           def.Render.Width,
		"render.height":          def.Render.Height,
		"render.allow_underflow": def.Render.AllowUnderflow,
	}
}

// flagKeys maps CLI flag names to configuration keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"fps":             "render.fps",
	"format":          "render.format",
	"out":             "render.out",
	"width":           "render.width",
	"height":          "render.height",
	"allow-underflow": "render.allow_underflow",
}

// BindRenderFlags registers the frame output flags on flags.
func BindRenderFlags(flags *pflag.FlagSet) {
	def := Default().Render
	flags.Int("fps", def.FPS, "Frames per second of animation time")
	flags.String("format", def.Format, "Frame format (svg|png)")
	flags.StringP("out", "o", def.Out, "Output directory for frames")
	flags.Float64("width", def.Width, "Frame width in pixels")
	flags.Float64("height", def.Height, "Frame height in pixels")
	flags.Bool("allow-underflow", def.AllowUnderflow, "Pass pops on an empty container through to the container")
}

// Load resolves the configuration. path names a YAML file; when empty,
// DefaultFile is used if it exists. flags may be nil.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	required := path != ""
	if !required {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %w", path, err)
		}
	} else if required || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error checking config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("error loading command-line flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps DSVIZ_RENDER_ALLOW_UNDERFLOW to render.allow_underflow: the
// first underscore separates the section from the field.
func envKey(name string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_", ".", 1)
}
