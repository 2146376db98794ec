package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/lucawellmeier/octoblog/internal/config"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/logfields"
)

// ErrPathCollision is returned when two entities map to the same output file.
var ErrPathCollision = errors.New("output path already taken")

// Indexer walks the content trees and extracts every record.
type Indexer struct {
	cfg       *config.Config
	extractor *Extractor
}

// NewIndexer returns an indexer over the directories named in cfg.
func NewIndexer(cfg *config.Config, extractor *Extractor) *Indexer {
	return &Indexer{cfg: cfg, extractor: extractor}
}

// Index walks the articles root (required) and the pages root (optional).
// Records come out in walk order.
func (ix *Indexer) Index(ctx context.Context) (*Index, error) {
	idx := &Index{}

	dirs, err := Walk(ix.cfg.Content.ArticlesDir)
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		idx.Categories = append(idx.Categories, ix.extractor.Category(dir.Rel))
		for _, file := range dir.Files {
			if !IsMarkdown(file) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			article, err := ix.extractor.Article(file)
			if err != nil {
				return nil, err
			}
			if article.Draft() {
				slog.Debug("Skipping draft", logfields.Path(file))
				continue
			}
			idx.Articles = append(idx.Articles, article)
		}
	}

	pageDirs, err := Walk(ix.cfg.Content.PagesDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("No pages directory, skipping pages", logfields.Path(ix.cfg.Content.PagesDir))
	case err != nil:
		return nil, err
	}
	for _, dir := range pageDirs {
		for _, file := range dir.Files {
			if !IsMarkdown(file) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			page, err := ix.extractor.Page(file)
			if err != nil {
				return nil, err
			}
			if page.Draft() {
				slog.Debug("Skipping draft", logfields.Path(file))
				continue
			}
			idx.Pages = append(idx.Pages, page)
		}
	}

	if err := checkCollisions(idx); err != nil {
		return nil, err
	}
	slog.Debug("Indexed content",
		slog.Int("articles", len(idx.Articles)),
		slog.Int("categories", len(idx.Categories)),
		slog.Int("pages", len(idx.Pages)))
	return idx, nil
}

// checkCollisions fails when two entities, the home page included, resolve to
// the same output path.
func checkCollisions(idx *Index) error {
	owners := map[string]string{HomeOutput: "home page"}
	claim := func(output, owner string) error {
		if prev, taken := owners[output]; taken {
			return berrors.PathCollision(output, prev, owner, fmt.Errorf("%w: %s", ErrPathCollision, output))
		}
		owners[output] = owner
		return nil
	}
	for _, c := range idx.Categories {
		if err := claim(c.OutputPath, "category "+c.Name); err != nil {
			return err
		}
	}
	for _, a := range idx.Articles {
		if err := claim(a.OutputPath, a.Name); err != nil {
			return err
		}
	}
	for _, p := range idx.Pages {
		if err := claim(p.OutputPath, p.Name); err != nil {
			return err
		}
	}
	return nil
}
