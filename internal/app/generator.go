// Package app wires the stubbing domain to its adapters: it discovers
// source files, runs the per-file pipeline over a bounded worker pool, and
// emits, checks or watches the resulting stub tree.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corey/apistub/internal/adapters/ahocorasick"
	"github.com/corey/apistub/internal/domain/javasrc"
	"github.com/corey/apistub/internal/domain/stub"
	"github.com/corey/apistub/internal/ports"
)

// FileResult is the outcome for one source file.
type FileResult struct {
	Path    string
	Stub    stub.Result
	Emitted bool // false when no type survived filtering
	Cached  bool // unchanged since the cached run; Stub counts are zero
	Bytes   int
	Err     error
}

// Summary aggregates a run.
type Summary struct {
	Files    int
	Written  int
	Skipped  int
	Cached   int
	Failed   int
	Bytes    int64
	Totals   stub.Result
	Duration time.Duration
	Results  []FileResult // discovery order
}

func (s *Summary) add(r FileResult) {
	s.Files++
	if r.Cached {
		s.Cached++
	}
	switch {
	case r.Err != nil:
		s.Failed++
		return
	case r.Emitted:
		s.Written++
		s.Bytes += int64(r.Bytes)
	default:
		s.Skipped++
	}
	s.Totals.ImportsRemoved += r.Stub.ImportsRemoved
	s.Totals.TypesRemoved += r.Stub.TypesRemoved
	s.Totals.MembersRemoved += r.Stub.MembersRemoved
	s.Totals.BodiesErased += r.Stub.BodiesErased
	s.Totals.InvocationsPreserved += r.Stub.InvocationsPreserved
}

// Generator runs the stubbing pipeline over a source tree.
type Generator struct {
	cfg     *Config
	loader  ports.TreeLoader
	emitter ports.Emitter
	stubber *stub.Stubber
	printer javasrc.Printer
	log     *slog.Logger

	cache ports.StubCache  // nil unless UseCache was called
	stubs ports.StubReader // reads stubs back to validate cache hits
}

// NewGenerator builds a generator. The import denylist is compiled once
// here and shared by every worker. A nil logger discards output.
func NewGenerator(cfg *Config, loader ports.TreeLoader, emitter ports.Emitter, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	indent := cfg.Indent
	if indent == "" {
		indent = javasrc.DefaultIndent
	}
	deny := ahocorasick.NewMatcher(cfg.DenyImports)
	log.Debug("import denylist", "prefixes", deny.Prefixes())
	return &Generator{
		cfg:     cfg,
		loader:  loader,
		emitter: emitter,
		stubber: stub.New(deny),
		printer: javasrc.Printer{Indent: indent},
		log:     log,
	}
}

// StubSource runs load, prune, filter and print over one in-memory source.
// It returns nil content when no type declaration survives.
func (g *Generator) StubSource(rel string, src []byte) ([]byte, stub.Result, error) {
	u, err := g.loader.Load(rel, src)
	if err != nil {
		return nil, stub.Result{}, err
	}
	res := g.stubber.Stub(u)
	if stub.Empty(u) {
		return nil, res, nil
	}
	return g.printer.Print(u), res, nil
}

// Run stubs every selected file under the source root and emits the
// non-empty results. Without keep_going the first failure cancels the
// remaining work; with it every failure is collected and joined.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	files, err := Discover(g.cfg)
	if err != nil {
		return nil, err
	}
	g.log.Debug("discovered sources", "root", g.cfg.SourceRoot, "files", len(files))

	sum, err := g.process(ctx, files, true, g.emit)
	if sum != nil {
		g.log.Info("generated",
			"files", sum.Files,
			"written", sum.Written,
			"skipped", sum.Skipped,
			"cached", sum.Cached,
			"failed", sum.Failed,
			"elapsed", sum.Duration.Round(time.Millisecond))
	}
	return sum, err
}

func (g *Generator) emit(rel string, content []byte) error {
	if content == nil {
		return nil
	}
	return g.emitter.Emit(rel, content)
}

// process runs the per-file pipeline over files on a bounded pool and hands
// each result to handle. handle receives nil content for files that yield
// no surviving type and may be called concurrently. With cached set, files
// the cache proves unchanged skip the pipeline and handle entirely.
func (g *Generator) process(ctx context.Context, files []string, cached bool, handle func(rel string, content []byte) error) (*Summary, error) {
	start := time.Now()
	results := make([]FileResult, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i, rel := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Path: rel, Err: err}
				return err
			}
			results[i] = g.processOne(rel, cached, handle)
			if results[i].Err != nil && !g.cfg.KeepGoing {
				return results[i].Err
			}
			return nil
		})
	}
	waitErr := eg.Wait()

	sum := &Summary{Results: results}
	var errs []error
	for _, r := range results {
		sum.add(r)
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			errs = append(errs, r.Err)
		}
	}
	sum.Duration = time.Since(start)

	if g.cfg.KeepGoing {
		return sum, errors.Join(errs...)
	}
	return sum, waitErr
}

func (g *Generator) processOne(rel string, cached bool, handle func(rel string, content []byte) error) FileResult {
	r := FileResult{Path: rel}
	src, err := os.ReadFile(filepath.Join(g.cfg.SourceRoot, rel))
	if err != nil {
		r.Err = fmt.Errorf("read %s: %w", rel, err)
		g.log.Error("stub failed", "path", rel, "err", r.Err)
		return r
	}

	var sourceSum string
	if cached && g.cache != nil {
		sourceSum = digest(src)
		if e, ok := g.lookup(rel, sourceSum); ok {
			r.Cached = true
			r.Emitted = e.StubSum != ""
			r.Bytes = e.Bytes
			g.log.Debug("unchanged", "path", rel)
			return r
		}
	}

	content, res, err := g.StubSource(rel, src)
	r.Stub = res
	if err != nil {
		r.Err = err
		g.log.Error("stub failed", "path", rel, "err", err)
		return r
	}
	if err := handle(rel, content); err != nil {
		r.Err = err
		g.log.Error("emit failed", "path", rel, "err", err)
		return r
	}
	if sourceSum != "" {
		g.remember(rel, sourceSum, content)
	}
	if content == nil {
		g.log.Debug("skipped", "path", rel, "reason", "no public types")
		return r
	}
	r.Emitted = true
	r.Bytes = len(content)
	g.log.Debug("stubbed", "path", rel,
		"members_removed", res.MembersRemoved,
		"bodies_erased", res.BodiesErased)
	return r
}
