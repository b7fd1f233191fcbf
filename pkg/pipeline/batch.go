package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExecuteBatch runs [Runner.ExecuteFile] for every path, at most
// opts.Concurrency at a time. Results are returned in the order of paths.
//
// Each file is laid out independently. The first failure cancels the files
// not yet started and is returned; results of files that completed are
// discarded.
func (r *Runner) ExecuteBatch(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.ExecuteFile(ctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
