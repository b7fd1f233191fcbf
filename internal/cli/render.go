package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BardicNoel/perktree/pkg/config"
	perrors "github.com/BardicNoel/perktree/pkg/errors"
	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

var renderFlagBindings = flagBindings{
	"render.formats":     "format",
	"render.show_labels": "show-labels",
	"render.flip_y":      "flip-y",
	"cache.backend":      "cache-backend",
	"cache.dir":          "cache-dir",
}

// renderCommand creates the render command, which turns a layout JSON file
// into DOT or SVG without recomputing the layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render LAYOUT",
		Short: "Render a computed layout to DOT or SVG",
		Long: `Render a layout file produced by 'perktree layout' to DOT or SVG.

Node positions are pinned, so Graphviz draws the layout exactly as computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, renderFlagBindings)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args[0], output, noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output base path (default: input without .layout.json)")
	f.StringP("format", "f", "", "output format(s): svg, dot, json (comma-separated)")
	f.Bool("show-labels", false, "use record labels as node text")
	f.Bool("flip-y", false, "keep screen y-down coordinates")
	f.BoolVar(&noCache, "no-cache", false, "disable caching")
	addCacheFlags(f)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg *config.Config, input, output string, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return perrors.Wrap(perrors.ErrCodeFileNotFound, err, "layout file not found: %s", input)
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read layout %s", input)
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := cfg.PipelineOptions()
	opts.Logger = c.Logger

	sp := c.newSpinner(ctx, "Rendering...")
	sp.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()

	base := basePath(output, input)
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	printSuccess("Rendered %s", input)
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(l.Nodes), len(l.Edges), l.Diagnostics.Trees, cached)
	return nil
}

// basePath derives the output base path. Without an explicit output the
// input's ".layout.json" (or plain extension) is stripped; an explicit output
// loses a trailing format extension.
func basePath(output, input string) string {
	if output == "" {
		if trimmed, ok := strings.CutSuffix(input, layoutSuffix); ok {
			return trimmed
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
