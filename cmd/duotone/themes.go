package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/duotone/internal/renderer"
	"github.com/dshills/duotone/internal/renderer/highlight"
)

func newThemesCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long:  "List the built-in themes and those loaded from theme directories.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.listThemes(highlight.ThemeType(strings.ToLower(kind)))
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "only list light or dark themes")
	return cmd
}

func (a *app) listThemes(kind highlight.ThemeType) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tDISPLAY NAME")
	for _, name := range a.engine.Themes().Names() {
		theme, _ := a.engine.Themes().Get(name)
		if kind != "" && theme.Type != kind {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", theme.Name, theme.Type, theme.DisplayName)
	}
	return tw.Flush()
}

func newCSSCmd(a *app) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print CSS that switches rendered HTML between variants",
		Long: `css prints one rule per variant other than the default color. Each rule
activates its variant's CSS variables under the selector, with {key}
replaced by the variant key.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			requests, err := a.requests()
			if err != nil {
				return err
			}
			for _, req := range requests {
				if req.Key == a.cfg.DefaultKey() {
					continue
				}
				sel := strings.ReplaceAll(selector, "{key}", req.Key)
				if _, err := fmt.Fprint(a.stdout, renderer.VariantCSS(sel, a.cfg.CSSVariablePrefix, req.Key)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&selector, "selector", `[data-theme="{key}"] .duotone`, "CSS selector for each variant")
	return cmd
}
