// Package config loads duotone settings from file, environment and flags.
//
// Settings are read with viper from (in increasing precedence) built-in
// defaults, a YAML or TOML config file, DUOTONE_* environment variables and
// bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/dshills/duotone/internal/logging"
	"github.com/dshills/duotone/internal/tracing"
	"github.com/dshills/duotone/internal/variant"
)

// EnvPrefix prefixes environment overrides, e.g. DUOTONE_FORMAT.
const EnvPrefix = "DUOTONE"

// NoDefaultColor as DefaultColor renders every variant as CSS variables.
const NoDefaultColor = "none"

// Formats lists the supported output formats.
var Formats = []string{"html", "ansi", "json", "yaml", "msgpack"}

// Config holds all configuration options for duotone.
type Config struct {
	// Lang forces the source language. Empty infers it from the file name.
	Lang string `mapstructure:"lang"`

	// Themes lists "key=theme" variant requests in output order.
	Themes []string `mapstructure:"themes"`

	// DefaultColor is the variant key rendered as plain colors in HTML and
	// shown by single-variant outputs. Empty means the first theme key.
	DefaultColor string `mapstructure:"default_color"`

	// Explain includes scope explanations in structured output.
	Explain bool `mapstructure:"explain"`

	// Format is one of Formats.
	Format string `mapstructure:"format"`

	// ThemeDirs are searched for TOML and YAML theme files.
	ThemeDirs []string `mapstructure:"theme_dirs"`

	// LuaLexers are Lua scripts that define extra languages.
	LuaLexers []string `mapstructure:"lua_lexers"`

	// CSSVariablePrefix prefixes the CSS variables of non-default variants.
	CSSVariablePrefix string `mapstructure:"css_variable_prefix"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`

	// Jobs bounds how many files are rendered concurrently.
	Jobs int `mapstructure:"jobs"`

	Tracing tracing.Config `mapstructure:"tracing"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Themes:            []string{"light=light-plus", "dark=dark-plus"},
		Format:            "html",
		CSSVariablePrefix: "--duotone-",
		LogLevel:          "warn",
		Jobs:              4,
		Tracing:           tracing.DefaultConfig(),
	}
}

// SetDefaults registers the defaults with v. Every key gets a default so
// environment overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("lang", d.Lang)
	v.SetDefault("themes", d.Themes)
	v.SetDefault("default_color", d.DefaultColor)
	v.SetDefault("explain", d.Explain)
	v.SetDefault("format", d.Format)
	v.SetDefault("theme_dirs", d.ThemeDirs)
	v.SetDefault("lua_lexers", d.LuaLexers)
	v.SetDefault("css_variable_prefix", d.CSSVariablePrefix)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load reads the configuration into a validated Config. When path is empty
// the file is looked up as .duotone/config.{yaml,toml} in the working
// directory, then in ~/.config/duotone; a missing file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".duotone")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "duotone"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting and joins all failures.
func (c Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if len(c.Themes) == 0 {
		add("themes", "at least one theme is required", c.Themes, ErrCodeRequiredMissing)
	}
	keys := make(map[string]bool, len(c.Themes))
	for i, spec := range c.Themes {
		req, err := variant.ParseRequest(spec)
		if err != nil {
			add(fmt.Sprintf("themes[%d]", i), "must be key=theme", spec, ErrCodePatternMismatch)
			continue
		}
		if keys[req.Key] {
			add(fmt.Sprintf("themes[%d]", i), "duplicate key "+req.Key, spec, ErrCodeDuplicate)
		}
		keys[req.Key] = true
	}

	if c.DefaultColor != "" && c.DefaultColor != NoDefaultColor && len(keys) > 0 && !keys[c.DefaultColor] {
		add("default_color", "must be one of the theme keys", c.DefaultColor, ErrCodeInvalidEnum)
	}
	if !slices.Contains(Formats, c.Format) {
		add("format", "must be one of "+strings.Join(Formats, ", "), c.Format, ErrCodeInvalidEnum)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		add("log_level", "must be debug, info, warn or error", c.LogLevel, ErrCodeInvalidEnum)
	}
	if c.Jobs < 1 {
		add("jobs", "must be at least 1", c.Jobs, ErrCodeOutOfRange)
	}
	if !strings.HasPrefix(c.CSSVariablePrefix, "--") {
		add("css_variable_prefix", "must start with --", c.CSSVariablePrefix, ErrCodePatternMismatch)
	}
	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case "none", "stdout", "otlp", "":
		case "file":
			if c.Tracing.FilePath == "" {
				add("tracing.file_path", "required for the file exporter", c.Tracing.FilePath, ErrCodeRequiredMissing)
			}
		default:
			add("tracing.exporter", "must be none, stdout, file or otlp", c.Tracing.Exporter, ErrCodeInvalidEnum)
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
			add("tracing.sample_rate", "must be between 0 and 1", c.Tracing.SampleRate, ErrCodeOutOfRange)
		}
	}

	return errors.Join(errs...)
}

// Requests returns the theme requests in configured order.
func (c Config) Requests() ([]variant.ThemeRequest, error) {
	requests := make([]variant.ThemeRequest, 0, len(c.Themes))
	for _, spec := range c.Themes {
		req, err := variant.ParseRequest(spec)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// DefaultKey resolves DefaultColor against the themes. It returns "" for
// NoDefaultColor.
func (c Config) DefaultKey() string {
	switch c.DefaultColor {
	case NoDefaultColor:
		return ""
	case "":
		if len(c.Themes) == 0 {
			return ""
		}
		req, err := variant.ParseRequest(c.Themes[0])
		if err != nil {
			return ""
		}
		return req.Key
	default:
		return c.DefaultColor
	}
}

// Level returns the parsed log level, or warn if it does not parse.
func (c Config) Level() logging.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.LevelWarn
	}
	return level
}
