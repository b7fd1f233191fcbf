package pipeline

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BardicNoel/perktree/pkg/cache"
	perrors "github.com/BardicNoel/perktree/pkg/errors"
	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/layout"
	"github.com/BardicNoel/perktree/pkg/observability"
)

var tracer = otel.Tracer("github.com/BardicNoel/perktree/pkg/pipeline")

// Cache key kinds reported to cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and hooks - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Hooks:  observability.Noop(),
	}
}

// Execute runs the layout → render pipeline on records with caching.
func (r *Runner) Execute(ctx context.Context, records []graph.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "invalid options")
	}

	result := &Result{
		RecordsHash: RecordsHash(records),
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.RecordCount = len(records)

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"trees", l.Diagnostics.Trees,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteFile loads records from path and runs the pipeline on them.
// The record format is chosen from the file extension.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	loadStart := time.Now()
	records, err := graph.ReadRecordsFile(path)
	if err != nil {
		return nil, classifyLoadError(err, path)
	}
	loadTime := time.Since(loadStart)

	result, err := r.Execute(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.Source = path
	result.Stats.LoadTime = loadTime
	return result, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
//
// The cache key combines the records' content hash with the normalized
// layout configuration. A cached entry that no longer decodes is ignored
// and recomputed.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, records []graph.Record, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if opts.MaxRecords > 0 && len(records) > opts.MaxRecords {
		return graph.Layout{}, false, perrors.New(perrors.ErrCodeTooLarge,
			"too many records: %d (max %d)", len(records), opts.MaxRecords)
	}
	hooks := r.Hooks.WithDefaults()
	runID := uuid.NewString()[:8]
	logger := opts.Logger.With("run", runID)

	ctx, span := tracer.Start(ctx, "pipeline.layout",
		trace.WithAttributes(
			attribute.String("perktree.run_id", runID),
			attribute.Int("perktree.records", len(records)),
		),
	)
	defer span.End()

	cacheKey := r.Keyer.LayoutKey(RecordsHash(records), opts.LayoutKeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			hooks.Cache.OnCacheError(ctx, keyTypeLayout, err)
			logger.Warn("layout cache read failed", "error", err)
		case hit:
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				hooks.Cache.OnCacheHit(ctx, keyTypeLayout)
				span.SetAttributes(attribute.Bool("perktree.cache_hit", true))
				return cached, true, nil
			}
			logger.Debug("discarding undecodable layout cache entry", "key", cacheKey)
		}
		hooks.Cache.OnCacheMiss(ctx, keyTypeLayout)
	}

	start := time.Now()
	hooks.Pipeline.OnLayoutStart(ctx, len(records))
	res := layout.Compute(records, opts.Layout)
	l := res.Export()
	duration := time.Since(start)
	hooks.Pipeline.OnLayoutComplete(ctx, len(l.Nodes), duration, nil)

	for _, tree := range res.Diagnostics.FallbackTrees {
		hooks.Pipeline.OnFallback(ctx, tree)
	}
	if d := res.Diagnostics; d.UsedFallback() || len(d.UnstableTrees) > 0 {
		logger.Warn("layout degraded",
			"fallback", d.FallbackTrees,
			"degenerate", d.DegenerateTrees,
			"unstable", d.UnstableTrees,
			"cycle_edges", len(d.CycleEdges))
	}
	if n := res.Diagnostics.EmptyIDs; n > 0 {
		logger.Warn("records without id dropped", "count", n)
	}
	if d := res.Diagnostics; d.IgnoredReferences > 0 || len(d.DuplicateIDs) > 0 {
		logger.Debug("input cleaned",
			"ignored_references", d.IgnoredReferences,
			"duplicate_ids", d.DuplicateIDs)
	}
	span.SetAttributes(
		attribute.Bool("perktree.cache_hit", false),
		attribute.Int("perktree.trees", res.Diagnostics.Trees),
		attribute.Int("perktree.fallback_trees", len(res.Diagnostics.FallbackTrees)),
	)

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
			hooks.Cache.OnCacheError(ctx, keyTypeLayout, err)
			logger.Warn("layout cache write failed", "error", err)
		} else {
			hooks.Cache.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, records []graph.Record, opts Options) (graph.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, records, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "invalid render options")
	}
	hooks := r.Hooks.WithDefaults()

	ctx, span := tracer.Start(ctx, "pipeline.render",
		trace.WithAttributes(attribute.StringSlice("perktree.formats", opts.Formats)),
	)
	defer span.End()

	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				hooks.Cache.OnCacheError(ctx, keyTypeArtifact, err)
			}
			if !hit {
				hooks.Cache.OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			hooks.Cache.OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	start := time.Now()
	hooks.Pipeline.OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderLayout(ctx, l, opts)
	hooks.Pipeline.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			hooks.Cache.OnCacheError(ctx, keyTypeArtifact, err)
			continue
		}
		hooks.Cache.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// RecordsHash returns a content hash of records that does not depend on
// their order in the input. Records sharing an ID keep their relative order,
// since the first of them wins during layout.
func RecordsHash(records []graph.Record) string {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b graph.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})
	data, err := json.Marshal(sorted)
	if err != nil {
		// Non-finite seeds are not valid JSON.
		data = fmt.Appendf(nil, "%+v", sorted)
	}
	return cache.Hash(data)
}
