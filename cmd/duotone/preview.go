package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/duotone/internal/renderer"
	"github.com/dshills/duotone/internal/variant"
)

// newScreen opens the terminal. Tests replace it with a simulation screen.
var newScreen = tcell.NewScreen

func newPreviewCmd(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show a file in the terminal, one variant at a time",
		Long: `Preview renders a file full screen. Tab switches variant, arrow and
page keys scroll, q or Esc quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.preview(args[0], key)
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "variant shown first (default: the first theme)")
	return cmd
}

func (a *app) preview(path, key string) error {
	requests, err := a.requests()
	if err != nil {
		return err
	}
	code, err := a.read(path)
	if err != nil {
		return err
	}
	lines, err := variant.NewMerger(a.engine, a.logger).Merge(code, requests, variant.Options{Lang: a.langFor(path)})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer screen.Fini()

	viewer, err := renderer.NewViewer(screen, lines, variant.Keys(requests), a.themeMap(requests), key)
	if err != nil {
		return err
	}
	return viewer.Run()
}
