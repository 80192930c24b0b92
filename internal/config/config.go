package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"element-autodoc/internal/document"
	"element-autodoc/internal/key"
)

const (
	// AppName is the application name.
	AppName = "autodoc"
	// EnvPrefix prefixes every environment variable read.
	EnvPrefix = "AUTODOC"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "autodoc"
)

// Config is the complete run configuration.
type Config struct {
	// Settings is copied verbatim into the document set.
	Settings document.Settings `mapstructure:"settings"`

	// Packages are Go package patterns to analyze.
	Packages []string `mapstructure:"packages" validate:"dive,required"`

	// Manifest is the path of a YAML universe manifest.
	Manifest string `mapstructure:"manifest"`

	// KeyPattern overrides the model key pattern.
	KeyPattern string `mapstructure:"key_pattern"`

	// Workers bounds per-model parallelism; 0 selects GOMAXPROCS.
	Workers int `mapstructure:"workers" validate:"gte=0"`

	// Output is the output file path; empty writes to stdout.
	Output string `mapstructure:"output"`

	// Format is json or yaml; empty derives it from Output.
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml yml"`

	// Indent pretty-prints JSON output.
	Indent bool `mapstructure:"indent"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Indent: true,
	}
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set.
	// When empty, autodoc.yaml is looked up in Dir.
	ConfigFile string

	// Dir is searched for autodoc.yaml. Default: the working directory.
	Dir string

	// Flags are bound over file and environment values.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"pkg":         "packages",
	"manifest":    "manifest",
	"key-pattern": "key_pattern",
	"workers":     "workers",
	"output":      "output",
	"format":      "format",
	"indent":      "indent",
	"verbose":     "verbose",
	"record-time": "settings.record_time",
}

// Load reads and validates the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("settings.description", defaults.Settings.Description)
	v.SetDefault("settings.url", defaults.Settings.URL)
	v.SetDefault("settings.founded", defaults.Settings.Founded)
	v.SetDefault("settings.maintainers", defaults.Settings.Maintainers)
	v.SetDefault("settings.record_time", defaults.Settings.RecordTime)
	v.SetDefault("packages", defaults.Packages)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("key_pattern", defaults.KeyPattern)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("indent", defaults.Indent)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, k := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}

		return nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// validate is configured to report configuration key names.
var validate = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return val
}

// Validate checks field constraints, the source selection and the key
// pattern.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q check", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
			}

			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}

		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(c.Packages) > 0 && c.Manifest != "" {
		return errors.New("invalid configuration: packages and manifest are mutually exclusive")
	}

	if c.KeyPattern != "" {
		if _, err := key.Compile(c.KeyPattern); err != nil {
			return fmt.Errorf("invalid configuration: key_pattern: %w", err)
		}
	}

	return nil
}

// OutputFormat returns the configured format, derived from the output
// path when unset.
func (c *Config) OutputFormat() (document.Format, error) {
	if c.Format == "" {
		return document.FormatForPath(c.Output), nil
	}

	return document.ParseFormat(c.Format)
}

// Keys returns the configured key format.
func (c *Config) Keys() (*key.Format, error) {
	return key.Compile(c.KeyPattern)
}
