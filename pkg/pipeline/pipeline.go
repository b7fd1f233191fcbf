// Package pipeline provides the load → layout → render pipeline for perktree.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// API. By centralizing this logic, both entry points validate options, hash
// inputs and cache results the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read perk records from JSON, TOML or YAML files
//  2. Layout: Compute node positions with [layout.Compute]
//  3. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Layout and render results are cached under content hashes, so a repeated
// request for the same records and options never recomputes.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.GenerateLayout(ctx, records, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
//
// Lay out many files at once with a bounded worker pool:
//
//	results, err := runner.ExecuteBatch(ctx, paths, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/BardicNoel/perktree/pkg/cache"
	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxRecords bounds the number of records accepted per run.
	DefaultMaxRecords = 10000

	// DefaultConcurrency is the number of files laid out in parallel by
	// ExecuteBatch.
	DefaultConcurrency = 4
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Layout layout.Config `json:"layout"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	FlipY      bool     `json:"flip_y,omitempty"`

	// Limits
	MaxRecords  int `json:"max_records,omitempty"`
	Concurrency int `json:"concurrency,omitempty"`

	// Refresh bypasses cache lookups; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source names where the records came from (a file path, or empty).
	Source string

	// RecordsHash is the content hash of the input records.
	RecordsHash string

	// Layout is the serializable layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.MaxRecords < 0 {
		return fmt.Errorf("max_records must not be negative")
	}
	if o.MaxRecords == 0 {
		o.MaxRecords = DefaultMaxRecords
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults normalizes the layout configuration. Normalizing here,
// rather than only inside layout.Compute, gives equivalent configurations
// the same cache key.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.Normalize()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Layout
	return cache.LayoutKeyOpts{
		NodeWidth:         c.NodeWidth,
		NodeHeight:        c.NodeHeight,
		HorizontalSpacing: c.HorizontalSpacing,
		VerticalSpacing:   c.VerticalSpacing,
		Padding:           c.Padding,
		GridScaleX:        c.GridScaleX,
		GridScaleY:        c.GridScaleY,
		LabelCharWidth:    c.LabelCharWidth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		ShowLabel: o.ShowLabels,
		FlipY:     o.FlipY,
	}
}
