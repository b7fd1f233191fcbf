package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	perrors "github.com/BardicNoel/perktree/pkg/errors"
	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/render/nodelink"
)

// RenderLayout generates output artifacts in the requested formats without
// consulting any cache. The DOT source is built at most once and shared by
// the dot and svg formats.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	nlOpts := nodelink.Options{ShowLabels: opts.ShowLabels, FlipY: opts.FlipY}

	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(l, nlOpts)
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dotSource())
		default:
			return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached or
// written by an earlier "perktree layout" run).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse layout")
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "invalid render options")
	}
	return RenderLayout(ctx, parsed, opts)
}

// classifyLoadError attaches an error code to a record loading failure.
func classifyLoadError(err error, path string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return perrors.Wrap(perrors.ErrCodeFileNotFound, err, "records file not found: %s", path)
	case errors.Is(err, graph.ErrUnknownFormat):
		return perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "cannot load %s", path)
	default:
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "cannot load %s", path)
	}
}
