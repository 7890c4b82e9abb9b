package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ramen/internal/trace"
)

// BatchResult pairs a path with its compilation outcome.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// CompileBatch compiles independent files concurrently, one Session per
// file. Per-file failures, diagnostics included, land in BatchResult.Err;
// the returned error is only set when ctx is cancelled. Results keep the
// order of paths.
func CompileBatch(ctx context.Context, paths []string, opts Options, jobs int) ([]BatchResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if opts.Tracer == nil && !trace.FromContext(ctx).Enabled() {
		// один поток трассы на весь батч; события различаются по run id
		t, closeTracer, err := OpenTracer(opts.Config.Trace)
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeTracer() }()
		ctx = trace.WithTracer(ctx, t)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res, err := CompileFile(gctx, path, opts)
			results[i] = BatchResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed counts results that ended with an error.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
