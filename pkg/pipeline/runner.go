package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the preview server both use it so that output never depends
// on the entry point.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// Execute runs the complete validate → layout → route → render pipeline.
// When every requested artifact is cached, layout, routing and rendering
// are skipped; the board is still validated.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src, err := LoadBoard(opts.BoardPath)
	if err != nil {
		return nil, err
	}
	return r.ExecuteSource(ctx, src, opts)
}

// ExecuteSource runs the pipeline over an already loaded board.
func (r *Runner) ExecuteSource(ctx context.Context, src *Source, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Board:     src.Board,
		BoardHash: src.Hash(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Validate
	d, err := r.stage(ctx, StageValidate, func() error {
		return board.Validate(src.Board)
	})
	if err != nil {
		return nil, err
	}
	result.Stats.Stats = src.Board.Stats()
	result.Stats.ValidateTime = d
	r.Logger.Info("validated board",
		"board", src.Name,
		"modules", result.Stats.Modules,
		"mapped", result.Stats.Mapped,
		"unrendered", result.Stats.Unrendered,
		"duration", d)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.BoardHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("rendered outputs from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Layout
	d, err = r.stage(ctx, StageLayout, func() error {
		var err error
		result.Scene, err = layout.Build(src.Board)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = d
	r.Logger.Info("computed layout",
		"modules", len(result.Scene.Modules),
		"ports", len(result.Scene.CPU.Ports),
		"duration", d)

	// Stage 3: Route
	d, err = r.stage(ctx, StageRoute, func() error {
		var err error
		result.Wires, err = route.Build(result.Scene)
		return err
	})
	if err != nil {
		return nil, err
	}
	rs := route.Summarize(result.Wires)
	result.Stats.Explicit = rs.Explicit
	result.Stats.Segments = rs.Segments
	result.Stats.RouteTime = d
	r.Logger.Info("routed wires",
		"wires", rs.Wires,
		"explicit", rs.Explicit,
		"segments", rs.Segments,
		"duration", d)

	// Stage 4: Render
	d, err = r.stage(ctx, StageRender, func() error {
		var err error
		result.Artifacts, err = Render(result.Scene, result.Wires, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = d
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", d)

	for format, data := range result.Artifacts {
		key := r.Keyer.ArtifactKey(result.BoardHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return result, nil
}

// Graph renders the connectivity graph of a board with caching. The board
// must pass validation first.
func (r *Runner) Graph(ctx context.Context, opts GraphOptions) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src, err := LoadBoard(opts.BoardPath)
	if err != nil {
		return nil, err
	}
	if _, err := r.stage(ctx, StageValidate, func() error {
		return board.Validate(src.Board)
	}); err != nil {
		return nil, err
	}

	hash := src.Hash()
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.GraphKey(hash, opts.GraphKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "graph")
			return artifacts, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	var artifacts map[string][]byte
	d, err := r.stage(ctx, StageRender, func() error {
		var err error
		artifacts, err = RenderGraph(src.Board, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("rendered connectivity graph", "formats", opts.Formats, "duration", d)

	for format, data := range artifacts {
		_ = r.Cache.Set(ctx, r.Keyer.GraphKey(hash, opts.GraphKeyOpts(format)), data, cache.TTLGraph)
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stage runs fn as one named pipeline stage. It checks for cancellation
// first, reports to the pipeline hooks, and prefixes errors with the stage
// name.
func (r *Runner) stage(ctx context.Context, name string, fn func() error) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "%s: cancelled", name)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, d, err)
	if err != nil {
		r.Logger.Debug("stage failed", "stage", name, "error", err)
		return d, stageError(name, err)
	}
	return d, nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}
