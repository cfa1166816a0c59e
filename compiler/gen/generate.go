package gen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Generator renders one graph for every configured target, in parallel,
// and writes the resulting units to the output directory. Rendering is
// pure and happens fully in memory; a unit is written only when its
// render succeeded, so a failing target never leaves partial output.
type Generator struct {
	graph   *Graph
	cfg     *Config
	workers int

	mu       sync.Mutex
	metrics  Metrics
	manifest []ManifestEntry
}

// ManifestEntry describes one written unit in the generation manifest.
type ManifestEntry struct {
	Target string `json:"target"`
	File   string `json:"file"`
	Bytes  int    `json:"bytes"`
}

// Manifest is written as manifest.json when FeatureManifest is enabled.
type Manifest struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Files       []ManifestEntry `json:"files"`
}

// NewGenerator creates a generator for the graph and config.
func NewGenerator(g *Graph, cfg *Config) *Generator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		graph:   g,
		cfg:     cfg,
		workers: workers,
	}
}

// Metrics returns a copy of the generation metrics.
func (g *Generator) Metrics() Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// Generate runs all configured targets. Targets render concurrently;
// each render invocation owns its target instance and name table, so
// they share no mutable state.
func (g *Generator) Generate(ctx context.Context) error {
	if g.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing output directory: use WithTarget()")
	}
	if len(g.cfg.Targets) == 0 {
		return NewConfigError("Targets", nil, "no render targets selected: use WithTargets()")
	}
	for _, hook := range g.cfg.Hooks {
		if err := hook(g.graph); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return err
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, name := range g.cfg.Targets {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.generateTarget(name)
			}
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}

	if g.cfg.FeatureEnabled(FeatureSnapshot.Name) {
		if err := g.writeSnapshot(); err != nil {
			return err
		}
	}
	if g.cfg.FeatureEnabled(FeatureManifest.Name) {
		if err := g.writeManifest(); err != nil {
			return err
		}
	}
	return CleanupFeatures(g.cfg)
}

// unitName is the base name of the single unit each target produces.
const unitName = "types"

func (g *Generator) generateTarget(name string) error {
	t, err := NewTarget(name, g.cfg)
	if err != nil {
		return err
	}

	started := time.Now()
	lines, err := Render(t, g.graph, g.cfg)
	if err != nil {
		return err
	}
	src := joinLines(lines)
	renderTime := time.Since(started)

	file := t.FileName(unitName)
	src, err = postprocess(t, g.cfg.Target, file, src)
	if err != nil {
		return err
	}

	started = time.Now()
	if err := writeUnit(g.cfg.Target, file, src); err != nil {
		return NewRenderError(t.Name(), "write", file, "write unit", err)
	}
	writeTime := time.Since(started)

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(src))
	g.metrics.RenderTime += renderTime
	g.metrics.WriteTime += writeTime
	g.manifest = append(g.manifest, ManifestEntry{Target: t.Name(), File: file, Bytes: len(src)})
	g.mu.Unlock()
	return nil
}

func (g *Generator) writeManifest() error {
	g.mu.Lock()
	m := Manifest{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       append([]ManifestEntry{}, g.manifest...),
	}
	g.mu.Unlock()
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.cfg.Target, "manifest.json"), append(buf, '\n'), 0o644)
}

func (g *Generator) writeSnapshot() error {
	buf, err := EncodeSnapshot(g.graph)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.cfg.Target, "graph.snapshot"), buf, 0o644)
}

// Generate is the convenience entry point: build a config from options
// and run all targets for the graph.
func Generate(ctx context.Context, g *Graph, opts ...Option) error {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return err
	}
	return NewGenerator(g, cfg).Generate(ctx)
}
