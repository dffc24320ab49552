package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/cabledraw/pkg/assembly"
	"github.com/matzehuels/cabledraw/pkg/buildinfo"
	"github.com/matzehuels/cabledraw/pkg/cache"
	"github.com/matzehuels/cabledraw/pkg/drawing"
	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/observability"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/schema"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// DefaultLockTTL bounds how long a cross-instance render lock is held.
const DefaultLockTTL = 2 * time.Minute

// Runner encapsulates render execution with caching.
// Both CLI and API use it so cache keys and de-duplication stay identical.
//
// The Runner holds no per-request state; multiple goroutines can safely call
// Execute concurrently.
type Runner struct {
	Loader     *templatepack.Loader
	Assemblies assembly.Store
	Drawings   drawing.Store
	Renderer   render.Renderer
	Keyer      cache.Keyer
	Locker     cache.Locker
	Mapper     dsl.Mapper
	Logger     *log.Logger
	LockTTL    time.Duration

	group singleflight.Group
}

// NewRunner creates a runner over the template loader and drawing store.
// If renderer is nil, an in-process renderer is used. Assemblies default to
// an empty in-memory store, the keyer to DefaultKeyer and the locker to a
// no-op; override the fields before the first Execute.
func NewRunner(loader *templatepack.Loader, drawings drawing.Store, renderer render.Renderer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if renderer == nil {
		renderer = render.NewLocal(loader, logger)
	}
	return &Runner{
		Loader:     loader,
		Assemblies: assembly.NewMemoryStore(),
		Drawings:   drawings,
		Renderer:   renderer,
		Keyer:      cache.NewDefaultKeyer(),
		Locker:     cache.NewNullLocker(),
		Mapper:     dsl.Mapper{Logger: logger},
		Logger:     logger,
		LockTTL:    DefaultLockTTL,
	}
}

// job is a resolved request: everything needed to serve or render it.
type job struct {
	schema     *schema.Assembly
	templateID string
	pack       *templatepack.Pack
	hash       string
	cacheKey   string
	key        drawing.Key
}

// outcome is what a render (or a late cache hit inside the lock) produced.
type outcome struct {
	svg      []byte
	manifest render.Manifest
	hit      bool
}

// Execute serves the drawing for req, rendering and persisting it on a miss.
func (r *Runner) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	format, warnings := producedFormat(req.Format)
	if warnings != nil {
		r.Logger.Warn("format not supported, falling back to svg", "requested", req.Format)
	}

	j, err := r.resolve(ctx, req, format)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		RenderManifest: RenderManifest{
			RendererVersion: buildinfo.Version,
			TemplatePackID:  req.TemplatePackID,
			RendererKind:    cache.RendererKind,
			SchemaHash:      j.hash,
		},
		Format:   format,
		Warnings: warnings,
		Revision: j.key.Revision,
	}

	exists, err := r.Drawings.Exists(ctx, j.key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "check drawing store")
	}

	var out outcome
	if exists {
		out.hit = true
	} else {
		observability.Cache().OnCacheMiss(ctx, format)
		out, err = r.renderShared(ctx, j)
		if err != nil {
			return nil, err
		}
	}

	if out.hit {
		observability.Cache().OnCacheHit(ctx, format)
		r.Logger.Info("cache hit", "assembly", j.key.AssemblyID, "rev", j.key.Revision, "format", format)
	} else if out.manifest.RendererVersion != "" {
		resp.RenderManifest.RendererVersion = out.manifest.RendererVersion
	}
	resp.RenderManifest.CacheHit = out.hit

	if !req.Inline {
		resp.URL = j.key.URL()
		return resp, nil
	}
	svg := out.svg
	if svg == nil {
		if svg, err = r.Drawings.Read(ctx, j.key); err != nil {
			return nil, err
		}
	}
	resp.SVG = string(svg)
	return resp, nil
}

// resolve loads the schema and template pack and derives the cache key.
func (r *Runner) resolve(ctx context.Context, req Request, format string) (*job, error) {
	s := req.Schema
	if s == nil {
		var err error
		if s, err = r.Assemblies.Get(ctx, req.AssemblyID); err != nil {
			return nil, err
		}
	}
	if s.AssemblyID == "" && req.AssemblyID != "" {
		withID := *s
		withID.AssemblyID = req.AssemblyID
		s = &withID
	}
	if s.AssemblyID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema has no assembly_id")
	}

	pack, err := r.Loader.Load(req.TemplatePackID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeTemplateNotFound) {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "template pack %q not found", req.TemplatePackID)
		}
		return nil, err
	}

	hash := s.ContentHash()
	cacheKey := r.Keyer.RenderKey(hash, req.TemplatePackID, cache.RendererKind)
	key := drawing.Key{
		AssemblyID: s.AssemblyID,
		Revision:   cache.Revision(cacheKey),
		Format:     format,
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return &job{schema: s, templateID: req.TemplatePackID, pack: pack, hash: hash, cacheKey: cacheKey, key: key}, nil
}

// renderShared collapses concurrent misses for the same drawing into one
// render. The group key is the full drawing key: assemblies sharing a schema
// hash still get their own render and file.
func (r *Runner) renderShared(ctx context.Context, j *job) (outcome, error) {
	v, err, shared := r.group.Do(j.key.URL(), func() (any, error) {
		return r.renderLocked(ctx, j)
	})
	if err != nil {
		return outcome{}, err
	}
	out := v.(outcome)
	if shared {
		r.Logger.Debug("joined in-flight render", "assembly", j.key.AssemblyID, "rev", j.key.Revision)
	}
	return out, nil
}

// renderLocked holds the cross-instance lock, re-checks the store and renders
// when the drawing is still absent.
func (r *Runner) renderLocked(ctx context.Context, j *job) (outcome, error) {
	unlock, err := r.Locker.Lock(ctx, r.Keyer.LockKey(j.cacheKey), r.lockTTL())
	if err != nil {
		if ctx.Err() != nil {
			return outcome{}, ctx.Err()
		}
		// Rendering unlocked only risks an identical duplicate write.
		r.Logger.Warn("render lock unavailable, rendering anyway", "key", j.cacheKey, "err", err)
	} else {
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				r.Logger.Warn("release render lock", "key", j.cacheKey, "err", err)
			}
		}()
	}

	exists, err := r.Drawings.Exists(ctx, j.key)
	if err != nil {
		return outcome{}, errors.Wrap(errors.ErrCodeInternal, err, "check drawing store")
	}
	if exists {
		return outcome{hit: true}, nil
	}

	return r.render(ctx, j)
}

func (r *Runner) render(ctx context.Context, j *job) (outcome, error) {
	start := time.Now()
	r.Logger.Info("generating drawing",
		"assembly", j.key.AssemblyID,
		"template", j.templateID,
		"version", j.pack.Manifest.Version,
		"rev", j.key.Revision)

	d, err := r.Mapper.Map(j.schema, j.templateID)
	if err != nil {
		return outcome{}, err
	}
	if err := d.Validate(); err != nil {
		return outcome{}, err
	}

	res, err := r.Renderer.Render(ctx, render.Request{DSL: d, TemplatePackID: j.templateID, Format: j.key.Format})
	if err != nil {
		return outcome{}, err
	}
	if res == nil || len(res.SVG) == 0 {
		return outcome{}, errors.New(errors.ErrCodeInternal, "renderer produced no output for %s", j.key.AssemblyID)
	}

	if err := r.Drawings.Write(ctx, j.key, res.SVG); err != nil {
		return outcome{}, errors.Wrap(errors.ErrCodeInternal, err, "persist drawing")
	}
	observability.Cache().OnCacheSet(ctx, j.key.Format, len(res.SVG))

	r.Logger.Info("drawing persisted",
		"url", j.key.URL(),
		"bytes", len(res.SVG),
		"duration", time.Since(start))

	return outcome{svg: res.SVG, manifest: res.Manifest}, nil
}

func (r *Runner) lockTTL() time.Duration {
	if r.LockTTL > 0 {
		return r.LockTTL
	}
	return DefaultLockTTL
}
