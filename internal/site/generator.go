// Package site assembles the complete output directory of a blog.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/content"
	"github.com/lucawellmeier/octoblog/internal/dates"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/logfields"
	"github.com/lucawellmeier/octoblog/internal/markdown"
	"github.com/lucawellmeier/octoblog/internal/metrics"
	"github.com/lucawellmeier/octoblog/internal/render"
)

// Generator renders a site into an output directory.
type Generator struct {
	cfg       *config.Config
	outputDir string
	recorder  metrics.Recorder
	finder    dates.Finder
	md        markdown.Renderer
}

// NewGenerator creates a generator writing to outputDir.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	return &Generator{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		recorder:  metrics.NoopRecorder{},
		md:        markdown.New(),
	}
}

// WithRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// WithDateFinder overrides the date source selected by the configuration.
func (g *Generator) WithDateFinder(f dates.Finder) *Generator {
	g.finder = f
	return g
}

// Generate clears the output directory and renders the whole site. The first
// failure aborts the run.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := newReport()
	slog.Info("Starting site generation",
		logfields.BuildID(report.BuildID),
		logfields.Path(g.outputDir),
		logfields.Theme(g.cfg.Theme))

	finder, err := g.dateFinder()
	if err != nil {
		report.finish()
		return report, err
	}

	bs := &buildState{gen: g, report: report, finder: finder}
	err = runStages(ctx, bs, pipeline)
	report.finish()
	g.recorder.ObserveBuildDuration(report.Duration)
	g.recorder.IncBuildOutcome(report.Outcome)
	if err != nil {
		return report, err
	}

	slog.Info("Site generated",
		logfields.BuildID(report.BuildID),
		slog.Int("articles", report.Articles),
		slog.Int("categories", report.Categories),
		slog.Int("pages", report.Pages),
		slog.Int("assets", report.Assets),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (g *Generator) dateFinder() (dates.Finder, error) {
	if g.finder != nil {
		return g.finder, nil
	}
	if g.cfg.Dates.Source == config.DateSourceNone {
		return dates.None{}, nil
	}
	f, err := dates.NewGitFinder(".")
	if err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryGit, berrors.SeverityFatal, "open repository for dates")
	}
	return f, nil
}

func stageClean(_ context.Context, bs *buildState) error {
	dir := bs.gen.outputDir
	if err := os.RemoveAll(dir); err != nil {
		return berrors.WriteFailed(dir, fmt.Errorf("clear output directory: %w", err))
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return berrors.WriteFailed(dir, err)
	}
	return nil
}

func stageIndex(ctx context.Context, bs *buildState) error {
	g := bs.gen
	ex := content.NewExtractor(g.cfg, g.md, bs.finder)
	idx, err := content.NewIndexer(g.cfg, ex).Index(ctx)
	if err != nil {
		return err
	}
	bs.index = idx
	bs.report.Articles = len(idx.Articles)
	bs.report.Categories = len(idx.Categories)
	bs.report.Pages = len(idx.Pages)
	g.recorder.SetEntityCount("articles", len(idx.Articles))
	g.recorder.SetEntityCount("categories", len(idx.Categories))
	g.recorder.SetEntityCount("pages", len(idx.Pages))
	return nil
}

func stageContext(_ context.Context, bs *buildState) error {
	bs.ctx = render.BuildContext(bs.gen.cfg, bs.index)
	engine, err := render.NewEngine(bs.gen.cfg.ThemeTemplatesDir(), bs.ctx)
	if err != nil {
		return err
	}
	bs.engine = engine
	return nil
}

func stageHome(_ context.Context, bs *buildState) error {
	html, err := bs.engine.RenderOnce(render.HomeTemplate, "home", render.HomeEntity{ActiveMenuItem: content.MenuHome})
	if err != nil {
		return err
	}
	return bs.emit(KindHome, content.HomeOutput, html)
}

func stageCategories(ctx context.Context, bs *buildState) error {
	for _, c := range bs.index.Categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := bs.engine.RenderOnce(render.CategoryTemplate, "category "+c.Name, c)
		if err != nil {
			return err
		}
		if err := bs.emit(KindCategory, c.OutputPath, html); err != nil {
			return err
		}
	}
	return nil
}

func stageArticles(ctx context.Context, bs *buildState) error {
	for _, a := range bs.index.Articles {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := bs.engine.RenderTwoPass(render.ArticleTemplate, a.Name, a)
		if err != nil {
			return err
		}
		if err := bs.emit(KindArticle, a.OutputPath, html); err != nil {
			return err
		}
	}
	return nil
}

func stagePages(ctx context.Context, bs *buildState) error {
	for _, p := range bs.index.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := bs.engine.RenderTwoPass(render.PageTemplate, p.Name, p)
		if err != nil {
			return err
		}
		if err := bs.emit(KindPage, p.OutputPath, html); err != nil {
			return err
		}
	}
	return nil
}

func stageAssets(_ context.Context, bs *buildState) error {
	g := bs.gen
	dst := filepath.Join(g.outputDir, "assets")
	n, err := copyLayers(dst, g.cfg.Content.AssetsDir, g.cfg.ThemeAssetsDir())
	if err != nil {
		return err
	}
	bs.report.Assets = n
	return nil
}

// emit writes one rendered file and records it in the report.
func (bs *buildState) emit(kind OutputKind, rel, html string) error {
	full, err := render.Write(bs.gen.outputDir, rel, html)
	if err != nil {
		return err
	}
	bs.report.addOutput(kind, rel, html)
	bs.gen.recorder.IncRendered(string(kind))
	slog.Debug("Wrote output", logfields.File(full), slog.String("kind", string(kind)))
	return nil
}
