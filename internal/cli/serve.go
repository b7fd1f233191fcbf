package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/BardicNoel/perktree/internal/metrics"
	"github.com/BardicNoel/perktree/internal/server"
	"github.com/BardicNoel/perktree/pkg/cache"
	"github.com/BardicNoel/perktree/pkg/config"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// apiKeyPrefix scopes API cache entries apart from CLI entries in a shared
// cache.
const apiKeyPrefix = "api:"

var serveFlagBindings = flagBindings{
	"server.addr":        "addr",
	"server.max_records": "max-records",
	"log.file":           "log-file",
	"cache.backend":      "cache-backend",
	"cache.dir":          "cache-dir",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  POST /v1/layout   {"records": [...], "options": {...}}
  POST /v1/render   {"layout": {...}, "options": {...}}
  GET  /healthz
  GET  /metrics     Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, serveFlagBindings)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "listen address (default localhost:8080)")
	f.Int("max-records", 0, fmt.Sprintf("maximum records per request (default %d)", pipeline.DefaultMaxRecords))
	f.String("log-file", "", "also write logs to this file, rotated by size")
	addCacheFlags(f)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	store, err := cfg.Cache.OpenCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix), c.Logger)
	runner.TTL = cfg.Cache.TTL
	runner.Hooks = m.Hooks()
	defer runner.Close()

	srv := server.New(server.Options{
		Runner:   runner,
		Config:   cfg.Server,
		Defaults: cfg.PipelineOptions(),
		Gatherer: reg,
		Logger:   c.Logger,
		Hooks:    m.Hooks(),
	})

	printInfo("Serving on %s", StyleValue.Render("http://"+cfg.Server.Addr))
	printDetail("cache: %s", cfg.Cache.Backend)
	return srv.ListenAndServe(ctx)
}
