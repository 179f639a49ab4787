package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/duotone/internal/renderer"
	"github.com/dshills/duotone/internal/variant"
)

// stdinPath names standard input among the render inputs.
const stdinPath = "-"

var formatExt = map[string]string{
	"html":    ".html",
	"ansi":    ".txt",
	"json":    ".json",
	"yaml":    ".yaml",
	"msgpack": ".msgpack",
}

type renderOptions struct {
	outDir  string
	watch   bool
	noColor bool
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [files or globs...]",
		Short: "Render files with every configured theme",
		Long: `Render tokenizes each input once per theme and writes the merged result.
Inputs may be files, doublestar globs such as "src/**/*.go", or "-" for
standard input. With no inputs standard input is read.`,
		Example: `  duotone render main.go
  duotone render -t light=github-light -t dark=nord 'src/**/*.go' -o out/
  cat query.sql | duotone render --lang text -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			if err := a.renderAll(cmd.Context(), paths, opts); err != nil {
				return err
			}
			if opts.watch {
				return a.watch(cmd.Context(), paths, opts)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "", "output format: html, ansi, json, yaml or msgpack (default html)")
	flags.Bool("explain", false, "include scope explanations in structured output")
	flags.String("default-color", "", `variant rendered as plain HTML colors, or "none" for CSS variables only (default: the first theme)`)
	flags.IntP("jobs", "j", 0, "files rendered concurrently (default 4)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-render when inputs or theme files change")
	flags.StringVarP(&opts.outDir, "out-dir", "o", "", "write one file per input into this directory")
	flags.BoolVar(&opts.noColor, "no-color", false, "write ANSI output without escape sequences")

	_ = a.v.BindPFlag("format", flags.Lookup("format"))
	_ = a.v.BindPFlag("explain", flags.Lookup("explain"))
	_ = a.v.BindPFlag("default_color", flags.Lookup("default-color"))
	_ = a.v.BindPFlag("jobs", flags.Lookup("jobs"))

	return cmd
}

// expandInputs resolves globs. Literal paths are kept even when missing so
// the read reports them.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinPath}, nil
	}

	var paths []string
	seen := make(map[string]bool)
	for _, arg := range args {
		if arg == stdinPath {
			if !seen[arg] {
				seen[arg] = true
				paths = append(paths, arg)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if strings.ContainsAny(arg, "*?[{") {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

// renderAll renders paths concurrently and writes them in input order.
func (a *app) renderAll(ctx context.Context, paths []string, opts renderOptions) error {
	requests, err := a.requests()
	if err != nil {
		return err
	}
	merger := variant.NewMerger(a.tokenizer(ctx), a.logger)

	results := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := a.renderOne(merger, path, requests, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.outDir != "" {
		return a.writeFiles(opts.outDir, paths, results)
	}
	for i, out := range results {
		if len(paths) > 1 {
			fmt.Fprintf(a.stdout, "==> %s <==\n", paths[i])
		}
		if _, err := a.stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) renderOne(merger *variant.Merger, path string, requests []variant.ThemeRequest, opts renderOptions) ([]byte, error) {
	code, err := a.read(path)
	if err != nil {
		return nil, err
	}

	lines, err := merger.Merge(code, requests, variant.Options{
		Lang:               a.langFor(path),
		IncludeExplanation: a.cfg.Explain,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.write(&buf, lines, requests, opts.noColor || color.NoColor); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *app) read(path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(a.stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// write renders merged lines in the configured format.
func (a *app) write(w io.Writer, lines [][]variant.MergedToken, requests []variant.ThemeRequest, noColor bool) error {
	switch a.cfg.Format {
	case "html":
		out := renderer.HTML(lines, renderer.HTMLOptions{
			Keys:              variant.Keys(requests),
			DefaultColor:      a.cfg.DefaultKey(),
			CSSVariablePrefix: a.cfg.CSSVariablePrefix,
			Themes:            a.themeMap(requests),
		})
		_, err := io.WriteString(w, out+"\n")
		return err
	case "ansi":
		return renderer.ANSI(w, lines, a.primaryKey(requests), renderer.ANSIOptions{NoColor: noColor})
	default:
		return renderer.Encode(w, lines, a.cfg.Format)
	}
}

// primaryKey is the variant shown by single-variant outputs.
func (a *app) primaryKey(requests []variant.ThemeRequest) string {
	if key := a.cfg.DefaultKey(); key != "" {
		return key
	}
	return requests[0].Key
}

// writeFiles mirrors each input's relative path under outDir. Inputs
// outside the working directory keep only their base name.
func (a *app) writeFiles(outDir string, paths []string, results [][]byte) error {
	dests := make([]string, len(paths))
	owner := make(map[string]string, len(paths))
	for i, path := range paths {
		dest := filepath.Join(outDir, outputName(path)+formatExt[a.cfg.Format])
		if prev, ok := owner[dest]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, path, dest)
		}
		owner[dest] = path
		dests[i] = dest
	}

	for i, dest := range dests {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, results[i], 0o644); err != nil {
			return err
		}
		a.logger.Info("wrote %s", dest)
	}
	return nil
}

func outputName(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	if clean := filepath.Clean(path); filepath.IsLocal(clean) {
		return clean
	}
	return filepath.Base(path)
}
