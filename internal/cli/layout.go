package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BardicNoel/perktree/pkg/config"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// layoutFlagBindings maps config keys to layout command flags.
var layoutFlagBindings = flagBindings{
	"layout.node_width":         "node-width",
	"layout.node_height":        "node-height",
	"layout.horizontal_spacing": "h-spacing",
	"layout.vertical_spacing":   "v-spacing",
	"layout.padding":            "padding",
	"layout.grid_scale_x":       "grid-x",
	"layout.grid_scale_y":       "grid-y",
	"layout.label_char_width":   "label-char-width",
	"render.formats":            "format",
	"render.show_labels":        "show-labels",
	"render.flip_y":             "flip-y",
	"concurrency":               "concurrency",
	"cache.backend":             "cache-backend",
	"cache.dir":                 "cache-dir",
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		outDir  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout FILE...",
		Short: "Compute layouts for perk record files",
		Long: `Compute layouts for one or more perk record files.

Each input is a JSON, TOML or YAML file with a top-level "records" list.
Files are laid out concurrently and independently. For every input the
requested formats are written next to it (or into --out-dir):

  perks.json  ->  perks.layout.json, perks.dot, perks.svg

Layouts are cached; repeated runs over unchanged records are instant.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, layoutFlagBindings)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, args, outDir, noCache, refresh)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outDir, "out-dir", "o", "", "output directory (default: next to each input)")
	f.StringP("format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	f.Bool("show-labels", false, "use record labels as node text (dot, svg)")
	f.Bool("flip-y", false, "keep screen y-down coordinates in dot/svg output")
	f.Int("concurrency", 0, fmt.Sprintf("files laid out in parallel (default %d)", pipeline.DefaultConcurrency))
	f.BoolVar(&noCache, "no-cache", false, "disable caching")
	f.BoolVar(&refresh, "refresh", false, "recompute even when cached")
	addLayoutFlags(f)
	addCacheFlags(f)

	return cmd
}

// addLayoutFlags registers the engine distance flags. Zero means "use the
// configured value".
func addLayoutFlags(f *pflag.FlagSet) {
	f.Float64("node-width", 0, "node width")
	f.Float64("node-height", 0, "node height")
	f.Float64("h-spacing", 0, "horizontal spacing between siblings and trees")
	f.Float64("v-spacing", 0, "vertical spacing between depth bands")
	f.Float64("padding", 0, "outer padding")
	f.Float64("grid-x", 0, "seed grid cell width for cyclic trees")
	f.Float64("grid-y", 0, "seed grid cell height for cyclic trees")
	f.Float64("label-char-width", 0, "widen nodes to fit labels at this width per character (0 disables)")
}

func addCacheFlags(f *pflag.FlagSet) {
	f.String("cache-backend", "", "cache backend: file (default), memory, redis, none")
	f.String("cache-dir", "", "file cache directory")
}

// runLayout lays out every input and writes the requested artifacts.
func (c *CLI) runLayout(ctx context.Context, cfg *config.Config, inputs []string, outDir string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := cfg.PipelineOptions()
	opts.Refresh = refresh
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	sp := c.newSpinner(ctx, fmt.Sprintf("Laying out %d file(s)...", len(inputs)))
	sp.Start()

	results, err := runner.ExecuteBatch(ctx, inputs, opts)
	if err != nil {
		sp.StopWithError("Layout failed")
		return err
	}
	sp.Stop()

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var lastLayout string
	for _, res := range results {
		paths, err := writeArtifacts(res, outDir)
		if err != nil {
			return err
		}
		printSuccess("%s", res.Source)
		for _, p := range paths {
			printFile(p)
			if strings.HasSuffix(p, layoutSuffix) {
				lastLayout = p
			}
		}
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Layout.Diagnostics.Trees, res.CacheInfo.LayoutHit)
		printDiagnostics(res)
	}
	prog.done("Layout complete", "files", len(results))

	if len(results) == 1 && lastLayout != "" {
		printNewline()
		printNextStep("Render", appName+" render "+lastLayout+" -f svg")
	}
	return nil
}

// layoutSuffix names layout JSON outputs.
const layoutSuffix = ".layout.json"

// artifactPath returns the output path for one format of input.
func artifactPath(input, outDir, format string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if format == pipeline.FormatJSON {
		return filepath.Join(dir, name+layoutSuffix)
	}
	return filepath.Join(dir, name+"."+format)
}

// writeArtifacts writes res's artifacts in sorted format order and returns
// the paths written.
func writeArtifacts(res *pipeline.Result, outDir string) ([]string, error) {
	formats := make([]string, 0, len(res.Artifacts))
	for f := range res.Artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := artifactPath(res.Source, outDir, f)
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// printDiagnostics warns about trees that were not laid out hierarchically.
func printDiagnostics(res *pipeline.Result) {
	d := res.Layout.Diagnostics
	if len(d.FallbackTrees) > 0 {
		printWarning("%d cyclic tree(s) placed from seed positions: %s",
			len(d.FallbackTrees), strings.Join(d.FallbackTrees, ", "))
	}
	if len(d.DegenerateTrees) > 0 {
		printWarning("%d tree(s) could not be placed: %s",
			len(d.DegenerateTrees), strings.Join(d.DegenerateTrees, ", "))
	}
	if d.EmptyIDs > 0 {
		printWarning("%d record(s) without an id dropped", d.EmptyIDs)
	}
	if d.IgnoredReferences > 0 {
		printDetail("%d dangling reference(s) ignored", d.IgnoredReferences)
	}
	if len(d.DuplicateIDs) > 0 {
		printDetail("duplicate ids (first record kept): %s", strings.Join(d.DuplicateIDs, ", "))
	}
}

// newSpinner returns a spinner on stderr, or an inert one when stderr is
// not a terminal.
func (c *CLI) newSpinner(ctx context.Context, msg string) *spinner {
	if !stderrIsTerminal() {
		return newSpinner(ctx, nil, msg)
	}
	return newSpinner(ctx, os.Stderr, msg)
}
