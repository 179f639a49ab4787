package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/duotone/internal/config"
	"github.com/dshills/duotone/internal/config/loader"
	"github.com/dshills/duotone/internal/logging"
	lualexer "github.com/dshills/duotone/internal/plugin/lua"
	"github.com/dshills/duotone/internal/renderer/highlight"
	"github.com/dshills/duotone/internal/tokenize"
	"github.com/dshills/duotone/internal/tracing"
	"github.com/dshills/duotone/internal/variant"
)

// app carries the state shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger  *logging.Logger
	themes  *loader.ThemeLoader
	engine  *tokenize.Engine
	tracing *tracing.Provider
	lexers  []*lualexer.Lexer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		themes: loader.NewThemeLoader(),
	}

	root := &cobra.Command{
		Use:   "duotone",
		Short: "Highlight source code with several themes at once",
		Long: `duotone tokenizes source code once per theme and merges the results
into one token stream that carries every theme's colors, ready to be
rendered as HTML with CSS variables, ANSI text or structured data.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown(cmd.Context())
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .duotone/config.yaml, then ~/.config/duotone/config.yaml)")
	flags.StringSliceP("theme", "t", nil, "variant as key=theme, repeatable (default light=light-plus,dark=dark-plus)")
	flags.StringP("lang", "l", "", "source language (default: inferred from the file name)")
	flags.StringSlice("theme-dir", nil, "directory of TOML/YAML theme files, repeatable")
	flags.StringSlice("lua-lexer", nil, "Lua lexer script, repeatable")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	// Unchanged flags leave these keys to config files and the environment.
	_ = a.v.BindPFlag("themes", flags.Lookup("theme"))
	_ = a.v.BindPFlag("lang", flags.Lookup("lang"))
	_ = a.v.BindPFlag("theme_dirs", flags.Lookup("theme-dir"))
	_ = a.v.BindPFlag("lua_lexers", flags.Lookup("lua-lexer"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newRenderCmd(a),
		newPreviewCmd(a),
		newThemesCmd(a),
		newCSSCmd(a),
	)
	return root
}

// setup loads configuration and builds the tokenizer stack.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Level:  cfg.Level(),
		Output: a.stderr,
		Prefix: "duotone",
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config from %s", used)
	}

	a.tracing, err = tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	for _, path := range cfg.LuaLexers {
		lx, err := lualexer.Load(path, lualexer.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.lexers = append(a.lexers, lx)
		a.logger.Debug("registered lua lexer %s for %s", path, lx.Language())
	}

	return a.build()
}

// build creates the engine from the current theme files. It is called
// again when watch mode sees a theme file change.
func (a *app) build() error {
	themes := highlight.NewThemeRegistry()
	var files []*loader.ThemeFile
	for _, dir := range a.cfg.ThemeDirs {
		dirFiles, err := a.themes.LoadDir(dir)
		if err != nil {
			return err
		}
		files = append(files, dirFiles...)
	}
	if err := loader.Register(themes, files); err != nil {
		return err
	}

	languages := highlight.DefaultRegistry()
	for _, lx := range a.lexers {
		languages.Register(lx)
	}

	a.engine = tokenize.NewEngine(languages, themes)
	a.engine.SetLogger(a.logger)
	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	for _, lx := range a.lexers {
		_ = lx.Close()
	}
	if a.tracing == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.tracing.Shutdown(ctx)
}

// tokenizer returns the engine, traced when tracing is on.
func (a *app) tokenizer(ctx context.Context) tokenize.Tokenizer {
	if a.tracing != nil && a.tracing.Enabled() {
		return tokenize.NewTraced(ctx, a.engine, a.tracing.Tracer())
	}
	return a.engine
}

// requests returns the configured variants, failing early on unknown themes.
func (a *app) requests() ([]variant.ThemeRequest, error) {
	requests, err := a.cfg.Requests()
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if _, err := a.engine.Themes().Lookup(req.Theme.Name()); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

// themeMap maps each request key to its theme.
func (a *app) themeMap(requests []variant.ThemeRequest) map[string]*highlight.Theme {
	out := make(map[string]*highlight.Theme, len(requests))
	for _, req := range requests {
		if theme, ok := a.engine.Themes().Get(req.Theme.Name()); ok {
			out[req.Key] = theme
		}
	}
	return out
}

// langFor returns the configured language, or the one registered for path.
func (a *app) langFor(path string) string {
	if a.cfg.Lang != "" {
		return a.cfg.Lang
	}
	if h, ok := a.engine.Languages().ForPath(path); ok {
		return h.Language()
	}
	return tokenize.PlainText
}
