package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// means [cache.DefaultKeyer].
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout then render.
func (r *Runner) Execute(ctx context.Context, m mindmap.MindMap, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	work, err := PrepareMap(m)
	if err != nil {
		return nil, err
	}
	result := &Result{Map: work}

	layoutStart := time.Now()
	model, hash, layoutHit, err := r.layout(ctx, work, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Model = model
	result.MapHash = hash
	result.Stats.Primary = len(model.Primary)
	result.Stats.Secondary = len(model.Secondary)
	result.Stats.Connectors = len(model.Connectors)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"primary", result.Stats.Primary,
		"secondary", result.Stats.Secondary,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, model, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the radial model of m and reports whether it
// came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, m mindmap.MindMap, opts Options) (radial.Model, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return radial.Model{}, false, err
	}
	r.applyLogger(&opts)

	work, err := PrepareMap(m)
	if err != nil {
		return radial.Model{}, false, err
	}
	model, _, hit, err := r.layout(ctx, work, opts)
	return model, hit, err
}

// Layout is [Runner.LayoutWithCacheInfo] without the cache flag.
func (r *Runner) Layout(ctx context.Context, m mindmap.MindMap, opts Options) (radial.Model, error) {
	model, _, err := r.LayoutWithCacheInfo(ctx, m, opts)
	return model, err
}

// layout expects a prepared map and validated options.
func (r *Runner) layout(ctx context.Context, work mindmap.MindMap, opts Options) (radial.Model, string, bool, error) {
	mapData, err := json.Marshal(work)
	if err != nil {
		return radial.Model{}, "", false, fmt.Errorf("serialize map for cache key: %w", err)
	}
	hash := cache.Hash(mapData)
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached radial.Model
			if json.Unmarshal(data, &cached) == nil {
				hooks.OnCacheHit(ctx, "layout")
				return cached, hash, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	stats := work.Stats()
	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnLayoutStart(ctx, opts.VizType, stats.Primary, stats.Secondary)
	start := time.Now()
	model, err := radial.Compute(work, opts.Width, opts.Height)
	pipelineHooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return radial.Model{}, "", false, err
	}

	if data, err := json.Marshal(model); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "layout", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return model, hash, false, nil
}

// RenderWithCacheInfo renders model in every requested format and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, model radial.Model, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if err := model.Validate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(model)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, model, opts)
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "artifact", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is [Runner.RenderWithCacheInfo] without the cache flag.
func (r *Runner) Render(ctx context.Context, model radial.Model, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, model, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger replaces the discarding default logger with the runner's.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}
